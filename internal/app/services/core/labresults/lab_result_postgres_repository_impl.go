package labresults

import (
	"context"
	"database/sql"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/queries"
)

type labResultPostgresRepository struct {
	DB *sql.DB
}

func NewLabResultPostgresRepository(db *sql.DB) contracts.LabResultRepository {
	return &labResultPostgresRepository{
		DB: db,
	}
}

func (repo *labResultPostgresRepository) CreateLabResult(ctx context.Context, result *models.LabResult) (*models.LabResult, error) {
	query := queries.InsertLabResult
	var inserted models.LabResult
	err := repo.DB.QueryRowContext(ctx, query,
		result.ID,
		result.OrderID,
		result.LabTestID,
		result.Value,
		result.ReferenceRange,
		result.Unit,
		result.Notes,
	).Scan(scanTargets(&inserted)...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return &inserted, nil
}

func (repo *labResultPostgresRepository) FindByID(ctx context.Context, labResultID string) (*models.LabResult, error) {
	query := queries.GetLabResultByID
	var result models.LabResult
	err := repo.DB.QueryRowContext(ctx, query, labResultID).Scan(scanTargets(&result)...)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &result, nil
}

func (repo *labResultPostgresRepository) FindByOrderID(ctx context.Context, orderID string) ([]models.LabResult, error) {
	query := queries.GetLabResultsByOrderID
	rows, err := repo.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var results []models.LabResult
	for rows.Next() {
		var result models.LabResult
		if err := rows.Scan(scanTargets(&result)...); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return results, nil
}

func (repo *labResultPostgresRepository) UpdateLabResult(ctx context.Context, result *models.LabResult) (*models.LabResult, error) {
	query := queries.UpdateLabResult
	var updated models.LabResult
	err := repo.DB.QueryRowContext(ctx, query,
		result.ID,
		result.Value,
		result.ReferenceRange,
		result.Unit,
		result.Notes,
		result.DocumentURL,
		result.UpdatedAt,
	).Scan(scanTargets(&updated)...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return &updated, nil
}

func scanTargets(result *models.LabResult) []interface{} {
	return []interface{}{
		&result.ID,
		&result.OrderID,
		&result.LabTestID,
		&result.Value,
		&result.ReferenceRange,
		&result.Unit,
		&result.Notes,
		&result.DocumentURL,
		&result.CreatedAt,
		&result.UpdatedAt,
	}
}
