package routers

import (
	"medilab-service/internal/app/delivery/http/controllers"
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RolePatient)).Post("/", paymentController.InitiatePayment)
	router.With(middlewares.Authenticate).Get("/{paymentID}", paymentController.GetPaymentByID)
	router.With(middlewares.Authenticate).Post("/{paymentID}/cancel", paymentController.CancelPayment)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleAdmin)).Post("/{paymentID}/refund", paymentController.RefundPayment)

	// Provider webhook, authenticated by HMAC inside the usecase.
	router.Post("/callback", paymentController.PaymentCallback)
}
