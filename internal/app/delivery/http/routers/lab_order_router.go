package routers

import (
	"medilab-service/internal/app/delivery/http/controllers"
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachLabOrderRoutes(router chi.Router, middlewares *middlewares.Middlewares, labOrderController *controllers.LabOrderController) {
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RolePatient)).Post("/", labOrderController.CreateLabOrder)
	router.With(middlewares.Authenticate).Get("/", labOrderController.GetLabOrders)
	router.With(middlewares.Authenticate).Get("/{orderID}", labOrderController.GetLabOrderByID)

	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Post("/{orderID}/confirm", labOrderController.ConfirmLabOrder)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleAdmin)).Post("/{orderID}/paid", labOrderController.MarkLabOrderPaid)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Post("/{orderID}/samples-collected", labOrderController.MarkSamplesCollected)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Post("/{orderID}/start", labOrderController.StartLabWork)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Post("/{orderID}/in-progress", labOrderController.MarkLabOrderInProgress)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Post("/{orderID}/results-ready", labOrderController.MarkResultsReady)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Post("/{orderID}/complete", labOrderController.CompleteLabOrder)

	router.With(middlewares.Authenticate).Post("/{orderID}/cancel", labOrderController.CancelLabOrder)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Post("/{orderID}/reject", labOrderController.RejectLabOrder)

	router.With(middlewares.AdminAPIKeyAuth).Delete("/{orderID}", labOrderController.DeleteLabOrderByAdmin)
}
