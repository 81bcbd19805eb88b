package labprescriptions

import (
	"context"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeLabPrescriptionRepository struct {
	prescriptions map[string]*models.LabPrescription
}

func (r *fakeLabPrescriptionRepository) CreateLabPrescription(ctx context.Context, prescription *models.LabPrescription) (*models.LabPrescription, error) {
	r.prescriptions[prescription.ID] = prescription
	return prescription, nil
}

func (r *fakeLabPrescriptionRepository) FindByID(ctx context.Context, prescriptionID string) (*models.LabPrescription, error) {
	return r.prescriptions[prescriptionID], nil
}

func (r *fakeLabPrescriptionRepository) FindItemsByPrescriptionID(ctx context.Context, prescriptionID string) ([]models.LabPrescriptionItem, error) {
	prescription, ok := r.prescriptions[prescriptionID]
	if !ok {
		return nil, nil
	}
	return prescription.Items, nil
}

type fakeCatalogService struct {
	tests map[string]*models.LabTest
}

func (s *fakeCatalogService) LaboratoryByID(ctx context.Context, laboratoryID string) (*models.Laboratory, error) {
	return nil, nil
}

func (s *fakeCatalogService) LabTestByID(ctx context.Context, labTestID string) (*models.LabTest, error) {
	return s.tests[labTestID], nil
}

func (s *fakeCatalogService) PriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	return nil, nil
}

func (s *fakeCatalogService) CurrentPriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	return nil, nil
}

func (s *fakeCatalogService) PatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return nil, nil
}

func newPrescriptionFixture() (*labPrescriptionUsecase, *fakeLabPrescriptionRepository) {
	repo := &fakeLabPrescriptionRepository{prescriptions: make(map[string]*models.LabPrescription)}
	catalog := &fakeCatalogService{
		tests: map[string]*models.LabTest{
			"test-cbc": {ID: "test-cbc", Name: "Complete Blood Count", Category: "hematology"},
		},
	}
	usecase := &labPrescriptionUsecase{
		LabPrescriptionRepository: repo,
		CatalogService:            catalog,
		Log:                       zap.NewNop(),
	}
	return usecase, repo
}

func TestCreateLabPrescription(t *testing.T) {
	t.Run("creates a prescription with resolved test names", func(t *testing.T) {
		usecase, _ := newPrescriptionFixture()

		response, err := usecase.CreateLabPrescription(context.Background(), &requests.CreateLabPrescription{
			AppointmentID: "appt-1",
			PatientID:     "patient-1",
			DoctorID:      "doctor-1",
			Items: []requests.CreateLabPrescriptionItem{
				{LabTestID: "test-cbc", PhysicianNotes: "fasting sample"},
			},
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, response.ID)
		assert.Len(t, response.Items, 1)
		assert.Equal(t, "Complete Blood Count", response.Items[0].TestName)
		assert.Equal(t, "fasting sample", response.Items[0].PhysicianNotes)
	})

	t.Run("rejects an unknown lab test", func(t *testing.T) {
		usecase, repo := newPrescriptionFixture()

		_, err := usecase.CreateLabPrescription(context.Background(), &requests.CreateLabPrescription{
			AppointmentID: "appt-1",
			PatientID:     "patient-1",
			DoctorID:      "doctor-1",
			Items: []requests.CreateLabPrescriptionItem{
				{LabTestID: "test-unknown"},
			},
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
		assert.Empty(t, repo.prescriptions, "nothing must be stored when validation fails")
	})
}

func TestFindLabPrescriptionByID(t *testing.T) {
	t.Run("returns the stored prescription", func(t *testing.T) {
		usecase, repo := newPrescriptionFixture()
		repo.prescriptions["rx-1"] = &models.LabPrescription{
			ID:        "rx-1",
			PatientID: "patient-1",
			Items: []models.LabPrescriptionItem{
				{ID: "item-1", PrescriptionID: "rx-1", LabTestID: "test-cbc"},
			},
		}

		response, err := usecase.FindByID(context.Background(), "rx-1")

		assert.NoError(t, err)
		assert.Equal(t, "patient-1", response.PatientID)
		assert.Equal(t, "Complete Blood Count", response.Items[0].TestName)
	})

	t.Run("unknown id is a not found error", func(t *testing.T) {
		usecase, _ := newPrescriptionFixture()

		_, err := usecase.FindByID(context.Background(), "rx-missing")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}
