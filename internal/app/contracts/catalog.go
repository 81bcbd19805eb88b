package contracts

import (
	"context"
	"medilab-service/internal/app/models"
)

type CatalogRepository interface {
	FindLaboratoryByID(ctx context.Context, laboratoryID string) (*models.Laboratory, error)
	FindLabTestByID(ctx context.Context, labTestID string) (*models.LabTest, error)
	FindPriceByLaboratoryAndTest(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error)
	FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error)
}

// CatalogService is the read-through view over CatalogRepository. PriceFor
// serves the display path and may return a cached price; CurrentPriceFor
// always reads the repository and is what the cost snapshot taken at
// confirmation goes through.
type CatalogService interface {
	LaboratoryByID(ctx context.Context, laboratoryID string) (*models.Laboratory, error)
	LabTestByID(ctx context.Context, labTestID string) (*models.LabTest, error)
	PriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error)
	CurrentPriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error)
	PatientByID(ctx context.Context, patientID string) (*models.Patient, error)
}
