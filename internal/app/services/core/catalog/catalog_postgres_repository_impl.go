package catalog

import (
	"context"
	"database/sql"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/queries"
)

type catalogPostgresRepository struct {
	DB *sql.DB
}

func NewCatalogPostgresRepository(db *sql.DB) contracts.CatalogRepository {
	return &catalogPostgresRepository{
		DB: db,
	}
}

func (repo *catalogPostgresRepository) FindLaboratoryByID(ctx context.Context, laboratoryID string) (*models.Laboratory, error) {
	query := queries.GetLaboratoryByID
	var laboratory models.Laboratory
	err := repo.DB.QueryRowContext(ctx, query, laboratoryID).Scan(
		&laboratory.ID,
		&laboratory.Name,
		&laboratory.HasHomeCollection,
		&laboratory.HomeCollectionFee,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &laboratory, nil
}

func (repo *catalogPostgresRepository) FindLabTestByID(ctx context.Context, labTestID string) (*models.LabTest, error) {
	query := queries.GetLabTestByID
	var labTest models.LabTest
	err := repo.DB.QueryRowContext(ctx, query, labTestID).Scan(
		&labTest.ID,
		&labTest.Name,
		&labTest.Category,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &labTest, nil
}

func (repo *catalogPostgresRepository) FindPriceByLaboratoryAndTest(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	query := queries.GetLabTestPriceByLaboratoryAndTest
	var price models.LabTestPrice
	err := repo.DB.QueryRowContext(ctx, query, laboratoryID, labTestID).Scan(
		&price.LaboratoryID,
		&price.LabTestID,
		&price.Price,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &price, nil
}

func (repo *catalogPostgresRepository) FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	query := queries.GetPatientByID
	var patient models.Patient
	err := repo.DB.QueryRowContext(ctx, query, patientID).Scan(
		&patient.ID,
		&patient.UserID,
		&patient.FullName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &patient, nil
}
