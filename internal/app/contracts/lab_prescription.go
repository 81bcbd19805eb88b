package contracts

import (
	"context"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
)

type LabPrescriptionRepository interface {
	CreateLabPrescription(ctx context.Context, prescription *models.LabPrescription) (*models.LabPrescription, error)
	FindByID(ctx context.Context, prescriptionID string) (*models.LabPrescription, error)
	FindItemsByPrescriptionID(ctx context.Context, prescriptionID string) ([]models.LabPrescriptionItem, error)
}

type LabPrescriptionUsecase interface {
	CreateLabPrescription(ctx context.Context, request *requests.CreateLabPrescription) (*responses.LabPrescription, error)
	FindByID(ctx context.Context, prescriptionID string) (*responses.LabPrescription, error)
}
