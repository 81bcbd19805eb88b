package contracts

import (
	"context"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
)

// LabOrderRepository is the storage collaborator for lab orders. The
// implementation must provide at least serializable isolation for
// UpdateWithGuard on a single order.
type LabOrderRepository interface {
	CreateLabOrder(ctx context.Context, order *models.LabOrder) (*models.LabOrder, error)
	FindByID(ctx context.Context, orderID string) (*models.LabOrder, error)
	FindByPrescriptionID(ctx context.Context, prescriptionID string) (*models.LabOrder, error)
	FindByPatientID(ctx context.Context, patientID string) ([]models.LabOrder, error)
	FindByLaboratoryID(ctx context.Context, laboratoryID string) ([]models.LabOrder, error)
	// UpdateWithGuard executes one atomic read-modify-write: it loads the
	// order, re-validates the persisted status against allowed, applies the
	// mutator and persists, all inside a single storage transaction. The
	// status check runs against the row read inside that transaction, never
	// against caller-supplied data.
	UpdateWithGuard(ctx context.Context, orderID string, allowed []models.LabOrderStatus, mutate func(*models.LabOrder) error) (*models.LabOrder, error)
}

type LabOrderUsecase interface {
	CreateLabOrder(ctx context.Context, request *requests.CreateLabOrder) (*responses.LabOrder, error)
	FindByID(ctx context.Context, orderID string) (*responses.LabOrder, error)
	FindAll(ctx context.Context, session *models.Session, query *requests.LabOrderQuery) ([]responses.LabOrder, error)
	Confirm(ctx context.Context, orderID string) (*responses.LabOrder, error)
	MarkPaid(ctx context.Context, orderID string) (*responses.LabOrder, error)
	MarkSampleCollected(ctx context.Context, orderID string) (*responses.LabOrder, error)
	StartLabWork(ctx context.Context, orderID, laboratoryID string) (*responses.LabOrder, error)
	MarkInProgress(ctx context.Context, orderID string) (*responses.LabOrder, error)
	MarkResultsReady(ctx context.Context, orderID string) (*responses.LabOrder, error)
	Complete(ctx context.Context, orderID string) (*responses.LabOrder, error)
	Cancel(ctx context.Context, orderID, reason string) (*responses.LabOrder, error)
	Reject(ctx context.Context, orderID, reason string) (*responses.LabOrder, error)
	DeleteByAdmin(ctx context.Context, orderID string) (*responses.LabOrder, error)
}
