package labprescriptions

import (
	"context"
	"database/sql"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/queries"

	"github.com/google/uuid"
)

type labPrescriptionPostgresRepository struct {
	DB *sql.DB
}

func NewLabPrescriptionPostgresRepository(db *sql.DB) contracts.LabPrescriptionRepository {
	return &labPrescriptionPostgresRepository{
		DB: db,
	}
}

func (repo *labPrescriptionPostgresRepository) CreateLabPrescription(ctx context.Context, prescription *models.LabPrescription) (*models.LabPrescription, error) {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, exceptions.ErrPostgresDBBeginTx(err)
	}
	defer tx.Rollback()

	var inserted models.LabPrescription
	err = tx.QueryRowContext(ctx, queries.InsertLabPrescription,
		prescription.ID,
		prescription.AppointmentID,
		prescription.PatientID,
		prescription.DoctorID,
	).Scan(
		&inserted.ID,
		&inserted.AppointmentID,
		&inserted.PatientID,
		&inserted.DoctorID,
		&inserted.CreatedAt,
	)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}

	for _, item := range prescription.Items {
		itemID := item.ID
		if itemID == "" {
			itemID = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx, queries.InsertLabPrescriptionItem,
			itemID,
			inserted.ID,
			item.LabTestID,
			item.PhysicianNotes,
		)
		if err != nil {
			return nil, exceptions.ErrPostgresDBInsertData(err)
		}
		inserted.Items = append(inserted.Items, models.LabPrescriptionItem{
			ID:             itemID,
			PrescriptionID: inserted.ID,
			LabTestID:      item.LabTestID,
			PhysicianNotes: item.PhysicianNotes,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, exceptions.ErrPostgresDBCommitTx(err)
	}
	return &inserted, nil
}

func (repo *labPrescriptionPostgresRepository) FindByID(ctx context.Context, prescriptionID string) (*models.LabPrescription, error) {
	query := queries.GetLabPrescriptionByID
	var prescription models.LabPrescription
	err := repo.DB.QueryRowContext(ctx, query, prescriptionID).Scan(
		&prescription.ID,
		&prescription.AppointmentID,
		&prescription.PatientID,
		&prescription.DoctorID,
		&prescription.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	items, err := repo.FindItemsByPrescriptionID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	prescription.Items = items

	return &prescription, nil
}

func (repo *labPrescriptionPostgresRepository) FindItemsByPrescriptionID(ctx context.Context, prescriptionID string) ([]models.LabPrescriptionItem, error) {
	query := queries.GetLabPrescriptionItemsByPrescriptionID
	rows, err := repo.DB.QueryContext(ctx, query, prescriptionID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var items []models.LabPrescriptionItem
	for rows.Next() {
		var item models.LabPrescriptionItem
		if err := rows.Scan(
			&item.ID,
			&item.PrescriptionID,
			&item.LabTestID,
			&item.PhysicianNotes,
		); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return items, nil
}
