package routers

import (
	"medilab-service/internal/app/delivery/http/controllers"
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachLabResultRoutes(router chi.Router, middlewares *middlewares.Middlewares, labResultController *controllers.LabResultController) {
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Post("/orders/{orderID}", labResultController.CreateLabResult)
	router.With(middlewares.Authenticate).Get("/orders/{orderID}", labResultController.GetLabResultsByOrderID)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Put("/{labResultID}", labResultController.UpdateLabResult)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleLaboratory)).Post("/{labResultID}/document", labResultController.UploadResultDocument)
}
