package routers

import (
	"medilab-service/internal/app/delivery/http/controllers"
	"medilab-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachLabPrescriptionRoutes(router chi.Router, middlewares *middlewares.Middlewares, labPrescriptionController *controllers.LabPrescriptionController) {
	router.With(middlewares.Authenticate).Post("/", labPrescriptionController.CreateLabPrescription)
	router.With(middlewares.Authenticate).Get("/{prescriptionID}", labPrescriptionController.GetLabPrescriptionByID)
}
