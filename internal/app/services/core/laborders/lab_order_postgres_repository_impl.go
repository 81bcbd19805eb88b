package laborders

import (
	"context"
	"database/sql"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/queries"
)

type labOrderPostgresRepository struct {
	DB *sql.DB
}

func NewLabOrderPostgresRepository(db *sql.DB) contracts.LabOrderRepository {
	return &labOrderPostgresRepository{
		DB: db,
	}
}

func (repo *labOrderPostgresRepository) CreateLabOrder(ctx context.Context, order *models.LabOrder) (*models.LabOrder, error) {
	query := queries.InsertLabOrder
	var inserted models.LabOrder
	err := repo.DB.QueryRowContext(ctx, query,
		order.ID,
		order.PrescriptionID,
		order.LaboratoryID,
		order.PatientID,
		order.Status,
		order.SampleCollectionType,
	).Scan(scanTargets(&inserted)...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return &inserted, nil
}

func (repo *labOrderPostgresRepository) FindByID(ctx context.Context, orderID string) (*models.LabOrder, error) {
	query := queries.GetLabOrderByID
	var order models.LabOrder
	err := repo.DB.QueryRowContext(ctx, query, orderID).Scan(scanTargets(&order)...)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &order, nil
}

func (repo *labOrderPostgresRepository) FindByPrescriptionID(ctx context.Context, prescriptionID string) (*models.LabOrder, error) {
	query := queries.GetLabOrderByPrescriptionID
	var order models.LabOrder
	err := repo.DB.QueryRowContext(ctx, query, prescriptionID).Scan(scanTargets(&order)...)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &order, nil
}

func (repo *labOrderPostgresRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.LabOrder, error) {
	return repo.findAll(ctx, queries.GetLabOrdersByPatientID, patientID)
}

func (repo *labOrderPostgresRepository) FindByLaboratoryID(ctx context.Context, laboratoryID string) ([]models.LabOrder, error) {
	return repo.findAll(ctx, queries.GetLabOrdersByLaboratoryID, laboratoryID)
}

// UpdateWithGuard loads the order under a row lock, checks the persisted
// status against allowed and applies the mutator inside one transaction.
// The guard check always runs against the locked row, so two concurrent
// transitions on the same order serialize and the loser fails its guard.
func (repo *labOrderPostgresRepository) UpdateWithGuard(ctx context.Context, orderID string, allowed []models.LabOrderStatus, mutate func(*models.LabOrder) error) (*models.LabOrder, error) {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, exceptions.ErrPostgresDBBeginTx(err)
	}
	defer tx.Rollback()

	var order models.LabOrder
	err = tx.QueryRowContext(ctx, queries.GetLabOrderByIDForUpdate, orderID).Scan(scanTargets(&order)...)
	if err == sql.ErrNoRows {
		return nil, exceptions.ErrLabOrderNotFound(orderID)
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	statusAllowed := false
	allowedNames := make([]string, 0, len(allowed))
	for _, status := range allowed {
		allowedNames = append(allowedNames, string(status))
		if order.Status == status {
			statusAllowed = true
		}
	}
	if !statusAllowed {
		return nil, exceptions.ErrLabOrderInvalidState(string(order.Status), allowedNames)
	}

	if err := mutate(&order); err != nil {
		return nil, err
	}

	var updated models.LabOrder
	err = tx.QueryRowContext(ctx, queries.UpdateLabOrder,
		order.ID,
		order.Status,
		order.TestsTotalCost,
		order.SampleCollectionDeliveryCost,
		order.CancellationReason,
		order.RejectionReason,
		order.UpdatedAt,
		order.ConfirmedByLabAt,
		order.PaidAt,
		order.SamplesCollectedAt,
		order.CancelledAt,
		order.RejectedAt,
	).Scan(scanTargets(&updated)...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, exceptions.ErrPostgresDBCommitTx(err)
	}
	return &updated, nil
}

func (repo *labOrderPostgresRepository) findAll(ctx context.Context, query, argument string) ([]models.LabOrder, error) {
	rows, err := repo.DB.QueryContext(ctx, query, argument)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var orders []models.LabOrder
	for rows.Next() {
		var order models.LabOrder
		if err := rows.Scan(scanTargets(&order)...); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return orders, nil
}

func scanTargets(order *models.LabOrder) []interface{} {
	return []interface{}{
		&order.ID,
		&order.PrescriptionID,
		&order.LaboratoryID,
		&order.PatientID,
		&order.Status,
		&order.SampleCollectionType,
		&order.TestsTotalCost,
		&order.SampleCollectionDeliveryCost,
		&order.CancellationReason,
		&order.RejectionReason,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.ConfirmedByLabAt,
		&order.PaidAt,
		&order.SamplesCollectedAt,
		&order.CancelledAt,
		&order.RejectedAt,
	}
}
