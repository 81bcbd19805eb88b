package laborders

import (
	"context"
	"errors"
	"fmt"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeLabOrderRepository struct {
	orders map[string]*models.LabOrder
}

func newFakeLabOrderRepository() *fakeLabOrderRepository {
	return &fakeLabOrderRepository{orders: make(map[string]*models.LabOrder)}
}

func (r *fakeLabOrderRepository) CreateLabOrder(ctx context.Context, order *models.LabOrder) (*models.LabOrder, error) {
	stored := *order
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.orders[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (r *fakeLabOrderRepository) FindByID(ctx context.Context, orderID string) (*models.LabOrder, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, nil
	}
	result := *order
	return &result, nil
}

func (r *fakeLabOrderRepository) FindByPrescriptionID(ctx context.Context, prescriptionID string) (*models.LabOrder, error) {
	for _, order := range r.orders {
		if order.PrescriptionID == prescriptionID {
			result := *order
			return &result, nil
		}
	}
	return nil, nil
}

func (r *fakeLabOrderRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.LabOrder, error) {
	var result []models.LabOrder
	for _, order := range r.orders {
		if order.PatientID == patientID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakeLabOrderRepository) FindByLaboratoryID(ctx context.Context, laboratoryID string) ([]models.LabOrder, error) {
	var result []models.LabOrder
	for _, order := range r.orders {
		if order.LaboratoryID == laboratoryID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakeLabOrderRepository) UpdateWithGuard(ctx context.Context, orderID string, allowed []models.LabOrderStatus, mutate func(*models.LabOrder) error) (*models.LabOrder, error) {
	stored, ok := r.orders[orderID]
	if !ok {
		return nil, exceptions.ErrLabOrderNotFound(orderID)
	}

	allowedNames := make([]string, 0, len(allowed))
	statusAllowed := false
	for _, status := range allowed {
		allowedNames = append(allowedNames, string(status))
		if stored.Status == status {
			statusAllowed = true
		}
	}
	if !statusAllowed {
		return nil, exceptions.ErrLabOrderInvalidState(string(stored.Status), allowedNames)
	}

	candidate := *stored
	if err := mutate(&candidate); err != nil {
		return nil, err
	}
	r.orders[orderID] = &candidate
	result := candidate
	return &result, nil
}

type fakeLabPrescriptionRepository struct {
	prescriptions map[string]*models.LabPrescription
}

func (r *fakeLabPrescriptionRepository) CreateLabPrescription(ctx context.Context, prescription *models.LabPrescription) (*models.LabPrescription, error) {
	r.prescriptions[prescription.ID] = prescription
	return prescription, nil
}

func (r *fakeLabPrescriptionRepository) FindByID(ctx context.Context, prescriptionID string) (*models.LabPrescription, error) {
	prescription, ok := r.prescriptions[prescriptionID]
	if !ok {
		return nil, nil
	}
	return prescription, nil
}

func (r *fakeLabPrescriptionRepository) FindItemsByPrescriptionID(ctx context.Context, prescriptionID string) ([]models.LabPrescriptionItem, error) {
	prescription, ok := r.prescriptions[prescriptionID]
	if !ok {
		return nil, nil
	}
	return prescription.Items, nil
}

type fakeCatalogService struct {
	laboratories map[string]*models.Laboratory
	tests        map[string]*models.LabTest
	prices       map[string]float64
	patients     map[string]*models.Patient
}

func priceKey(laboratoryID, labTestID string) string {
	return laboratoryID + "|" + labTestID
}

func (s *fakeCatalogService) LaboratoryByID(ctx context.Context, laboratoryID string) (*models.Laboratory, error) {
	return s.laboratories[laboratoryID], nil
}

func (s *fakeCatalogService) LabTestByID(ctx context.Context, labTestID string) (*models.LabTest, error) {
	return s.tests[labTestID], nil
}

func (s *fakeCatalogService) PriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	price, ok := s.prices[priceKey(laboratoryID, labTestID)]
	if !ok {
		return nil, nil
	}
	return &models.LabTestPrice{LaboratoryID: laboratoryID, LabTestID: labTestID, Price: price}, nil
}

func (s *fakeCatalogService) CurrentPriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	return s.PriceFor(ctx, laboratoryID, labTestID)
}

func (s *fakeCatalogService) PatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return s.patients[patientID], nil
}

type fakeNotificationService struct {
	notifications []string
	err           error
}

func (s *fakeNotificationService) Notify(ctx context.Context, userID, notificationType, title, message, relatedEntityID, relatedEntityType, priority string) error {
	if s.err != nil {
		return s.err
	}
	s.notifications = append(s.notifications, notificationType)
	return nil
}

type labOrderFixture struct {
	usecase       *labOrderUsecase
	orders        *fakeLabOrderRepository
	prescriptions *fakeLabPrescriptionRepository
	catalog       *fakeCatalogService
	notifications *fakeNotificationService
}

func newLabOrderFixture() *labOrderFixture {
	catalog := &fakeCatalogService{
		laboratories: map[string]*models.Laboratory{
			"lab-1": {ID: "lab-1", Name: "Central Lab", HasHomeCollection: true, HomeCollectionFee: 20},
			"lab-2": {ID: "lab-2", Name: "Walk-in Lab", HasHomeCollection: false},
		},
		tests: map[string]*models.LabTest{
			"test-cbc":   {ID: "test-cbc", Name: "Complete Blood Count", Category: "hematology"},
			"test-lipid": {ID: "test-lipid", Name: "Lipid Panel", Category: "chemistry"},
		},
		prices: map[string]float64{
			priceKey("lab-1", "test-cbc"):   100,
			priceKey("lab-1", "test-lipid"): 150,
			priceKey("lab-2", "test-cbc"):   90,
		},
		patients: map[string]*models.Patient{
			"patient-1": {ID: "patient-1", UserID: "user-1", FullName: "Sara Ahmed"},
		},
	}
	prescriptions := &fakeLabPrescriptionRepository{
		prescriptions: map[string]*models.LabPrescription{
			"rx-1": {
				ID:        "rx-1",
				PatientID: "patient-1",
				DoctorID:  "doctor-1",
				Items: []models.LabPrescriptionItem{
					{ID: "item-1", PrescriptionID: "rx-1", LabTestID: "test-cbc"},
					{ID: "item-2", PrescriptionID: "rx-1", LabTestID: "test-lipid"},
				},
			},
		},
	}
	orders := newFakeLabOrderRepository()
	notifications := &fakeNotificationService{}

	usecase := &labOrderUsecase{
		LabOrderRepository:        orders,
		LabPrescriptionRepository: prescriptions,
		CatalogService:            catalog,
		NotificationService:       notifications,
		Calculator:                &costCalculator{CatalogService: catalog},
		Log:                       zap.NewNop(),
	}
	return &labOrderFixture{
		usecase:       usecase,
		orders:        orders,
		prescriptions: prescriptions,
		catalog:       catalog,
		notifications: notifications,
	}
}

func (f *labOrderFixture) seedOrder(t *testing.T, status models.LabOrderStatus) string {
	t.Helper()
	order := &models.LabOrder{
		ID:                           fmt.Sprintf("order-%s-%d", status, len(f.orders.orders)),
		PrescriptionID:               "rx-1",
		LaboratoryID:                 "lab-1",
		PatientID:                    "patient-1",
		Status:                       status,
		SampleCollectionType:         models.SampleCollectionHomeVisit,
		TestsTotalCost:               250,
		SampleCollectionDeliveryCost: 20,
	}
	f.orders.orders[order.ID] = order
	return order.ID
}

func TestCreateLabOrder(t *testing.T) {
	t.Run("creates a new_request order from a prescription", func(t *testing.T) {
		fixture := newLabOrderFixture()

		response, err := fixture.usecase.CreateLabOrder(context.Background(), &requests.CreateLabOrder{
			PrescriptionID:       "rx-1",
			LaboratoryID:         "lab-1",
			SampleCollectionType: string(models.SampleCollectionClinicVisit),
		})

		assert.NoError(t, err)
		assert.Equal(t, string(models.LabOrderNewRequest), response.Status)
		assert.Equal(t, "patient-1", response.PatientID)
		assert.Equal(t, "Sara Ahmed", response.PatientName)
		assert.Equal(t, "Central Lab", response.LaboratoryName)
		assert.Len(t, response.Tests, 2)
	})

	t.Run("rejects an unknown prescription", func(t *testing.T) {
		fixture := newLabOrderFixture()

		_, err := fixture.usecase.CreateLabOrder(context.Background(), &requests.CreateLabOrder{
			PrescriptionID:       "rx-missing",
			LaboratoryID:         "lab-1",
			SampleCollectionType: string(models.SampleCollectionClinicVisit),
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("rejects a prescription that already has an order", func(t *testing.T) {
		fixture := newLabOrderFixture()
		fixture.seedOrder(t, models.LabOrderNewRequest)

		_, err := fixture.usecase.CreateLabOrder(context.Background(), &requests.CreateLabOrder{
			PrescriptionID:       "rx-1",
			LaboratoryID:         "lab-1",
			SampleCollectionType: string(models.SampleCollectionClinicVisit),
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("rejects home collection at a laboratory without it", func(t *testing.T) {
		fixture := newLabOrderFixture()

		_, err := fixture.usecase.CreateLabOrder(context.Background(), &requests.CreateLabOrder{
			PrescriptionID:       "rx-1",
			LaboratoryID:         "lab-2",
			SampleCollectionType: string(models.SampleCollectionHomeVisit),
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}

func TestConfirmLabOrder(t *testing.T) {
	t.Run("snapshots cost and moves to awaiting_payment", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderNewRequest)
		fixture.orders.orders[orderID].TestsTotalCost = 0
		fixture.orders.orders[orderID].SampleCollectionDeliveryCost = 0

		response, err := fixture.usecase.Confirm(context.Background(), orderID)

		assert.NoError(t, err)
		assert.Equal(t, string(models.LabOrderAwaitingPayment), response.Status)
		assert.Equal(t, 250.0, response.TestsTotalCost)
		assert.Equal(t, 20.0, response.SampleCollectionDeliveryCost)
		assert.NotNil(t, response.ConfirmedByLabAt)
		assert.Contains(t, fixture.notifications.notifications, constvars.NotificationTypeOrderConfirmed)
	})

	t.Run("fails when a prescribed test has no price at the laboratory", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderNewRequest)
		delete(fixture.catalog.prices, priceKey("lab-1", "test-lipid"))

		_, err := fixture.usecase.Confirm(context.Background(), orderID)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Equal(t, models.LabOrderNewRequest, fixture.orders.orders[orderID].Status)
	})

	t.Run("rejects confirmation outside new_request", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderAwaitingPayment)

		_, err := fixture.usecase.Confirm(context.Background(), orderID)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})

	t.Run("succeeds even when the notification publish fails", func(t *testing.T) {
		fixture := newLabOrderFixture()
		fixture.notifications.err = errors.New("broker unavailable")
		orderID := fixture.seedOrder(t, models.LabOrderNewRequest)

		response, err := fixture.usecase.Confirm(context.Background(), orderID)

		assert.NoError(t, err)
		assert.Equal(t, string(models.LabOrderAwaitingPayment), response.Status)
	})
}

func TestCostSnapshotIsImmutable(t *testing.T) {
	fixture := newLabOrderFixture()
	orderID := fixture.seedOrder(t, models.LabOrderNewRequest)

	_, err := fixture.usecase.Confirm(context.Background(), orderID)
	assert.NoError(t, err)

	// Catalog price changes after confirmation must not leak into the order.
	fixture.catalog.prices[priceKey("lab-1", "test-cbc")] = 999

	response, err := fixture.usecase.FindByID(context.Background(), orderID)
	assert.NoError(t, err)
	assert.Equal(t, 250.0, response.TestsTotalCost)
	assert.Equal(t, 20.0, response.SampleCollectionDeliveryCost)
}

func TestLabOrderTransitionGraph(t *testing.T) {
	allStates := []models.LabOrderStatus{
		models.LabOrderNewRequest,
		models.LabOrderAwaitingPayment,
		models.LabOrderPaid,
		models.LabOrderAwaitingSamples,
		models.LabOrderInProgress,
		models.LabOrderResultsReady,
		models.LabOrderCompleted,
		models.LabOrderCancelledByPatient,
		models.LabOrderRejectedByLab,
	}

	testCases := []struct {
		name    string
		allowed map[models.LabOrderStatus]bool
		run     func(uc *labOrderUsecase, orderID string) error
	}{
		{
			name:    "MarkPaid",
			allowed: map[models.LabOrderStatus]bool{models.LabOrderAwaitingPayment: true},
			run: func(uc *labOrderUsecase, orderID string) error {
				_, err := uc.MarkPaid(context.Background(), orderID)
				return err
			},
		},
		{
			name:    "MarkSampleCollected",
			allowed: map[models.LabOrderStatus]bool{models.LabOrderPaid: true},
			run: func(uc *labOrderUsecase, orderID string) error {
				_, err := uc.MarkSampleCollected(context.Background(), orderID)
				return err
			},
		},
		{
			name: "MarkInProgress",
			allowed: map[models.LabOrderStatus]bool{
				models.LabOrderAwaitingSamples: true,
				models.LabOrderInProgress:      true,
			},
			run: func(uc *labOrderUsecase, orderID string) error {
				_, err := uc.MarkInProgress(context.Background(), orderID)
				return err
			},
		},
		{
			name:    "MarkResultsReady",
			allowed: map[models.LabOrderStatus]bool{models.LabOrderInProgress: true},
			run: func(uc *labOrderUsecase, orderID string) error {
				_, err := uc.MarkResultsReady(context.Background(), orderID)
				return err
			},
		},
		{
			name: "Complete",
			allowed: map[models.LabOrderStatus]bool{
				models.LabOrderInProgress:   true,
				models.LabOrderResultsReady: true,
			},
			run: func(uc *labOrderUsecase, orderID string) error {
				_, err := uc.Complete(context.Background(), orderID)
				return err
			},
		},
		{
			name: "Cancel",
			allowed: map[models.LabOrderStatus]bool{
				models.LabOrderNewRequest:      true,
				models.LabOrderAwaitingPayment: true,
				models.LabOrderPaid:            true,
				models.LabOrderAwaitingSamples: true,
				models.LabOrderInProgress:      true,
				models.LabOrderResultsReady:    true,
			},
			run: func(uc *labOrderUsecase, orderID string) error {
				_, err := uc.Cancel(context.Background(), orderID, "changed my mind")
				return err
			},
		},
		{
			name: "Reject",
			allowed: map[models.LabOrderStatus]bool{
				models.LabOrderNewRequest:      true,
				models.LabOrderAwaitingPayment: true,
				models.LabOrderPaid:            true,
				models.LabOrderAwaitingSamples: true,
				models.LabOrderInProgress:      true,
				models.LabOrderResultsReady:    true,
			},
			run: func(uc *labOrderUsecase, orderID string) error {
				_, err := uc.Reject(context.Background(), orderID, "out of reagents")
				return err
			},
		},
	}

	for _, tc := range testCases {
		for _, state := range allStates {
			name := fmt.Sprintf("%s from %s", tc.name, state)
			t.Run(name, func(t *testing.T) {
				fixture := newLabOrderFixture()
				orderID := fixture.seedOrder(t, state)
				before := *fixture.orders.orders[orderID]

				err := tc.run(fixture.usecase, orderID)

				if tc.allowed[state] {
					assert.NoError(t, err)
					return
				}

				var customErr *exceptions.CustomError
				assert.ErrorAs(t, err, &customErr)
				assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
				assert.Equal(t, before, *fixture.orders.orders[orderID], "order must stay unmodified on a rejected transition")
			})
		}
	}
}

func TestStartLabWork(t *testing.T) {
	t.Run("moves the order to in_progress for the owning laboratory", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderAwaitingSamples)

		response, err := fixture.usecase.StartLabWork(context.Background(), orderID, "lab-1")

		assert.NoError(t, err)
		assert.Equal(t, string(models.LabOrderInProgress), response.Status)
	})

	t.Run("ownership mismatch wins over the status guard", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderCompleted)

		_, err := fixture.usecase.StartLabWork(context.Background(), orderID, "lab-2")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("rejects the owning laboratory outside awaiting_samples", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderPaid)

		_, err := fixture.usecase.StartLabWork(context.Background(), orderID, "lab-1")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})
}

func TestCancelAndReject(t *testing.T) {
	t.Run("cancel requires a reason", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderNewRequest)

		_, err := fixture.usecase.Cancel(context.Background(), orderID, "   ")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderNewRequest)

		_, err := fixture.usecase.Reject(context.Background(), orderID, "")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("cancel records the reason and timestamp", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderAwaitingPayment)

		response, err := fixture.usecase.Cancel(context.Background(), orderID, "found a cheaper lab")

		assert.NoError(t, err)
		assert.Equal(t, string(models.LabOrderCancelledByPatient), response.Status)
		assert.Equal(t, "found a cheaper lab", response.CancellationReason)
		assert.NotNil(t, response.CancelledAt)
	})
}

func TestDeleteByAdmin(t *testing.T) {
	t.Run("is a forced reject with the administrative reason", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderInProgress)

		response, err := fixture.usecase.DeleteByAdmin(context.Background(), orderID)

		assert.NoError(t, err)
		assert.Equal(t, string(models.LabOrderRejectedByLab), response.Status)
		assert.Equal(t, constvars.LabOrderDeletedByAdminReason, response.RejectionReason)
	})

	t.Run("fails on a terminal order", func(t *testing.T) {
		fixture := newLabOrderFixture()
		orderID := fixture.seedOrder(t, models.LabOrderCompleted)

		_, err := fixture.usecase.DeleteByAdmin(context.Background(), orderID)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})
}

func TestFindAllScoping(t *testing.T) {
	t.Run("patients see their own orders", func(t *testing.T) {
		fixture := newLabOrderFixture()
		fixture.seedOrder(t, models.LabOrderNewRequest)

		session := &models.Session{UserID: "user-1", Role: constvars.RolePatient, PatientID: "patient-1"}
		result, err := fixture.usecase.FindAll(context.Background(), session, &requests.LabOrderQuery{})

		assert.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("status filter narrows the listing", func(t *testing.T) {
		fixture := newLabOrderFixture()
		fixture.seedOrder(t, models.LabOrderNewRequest)

		session := &models.Session{UserID: "user-1", Role: constvars.RolePatient, PatientID: "patient-1"}
		result, err := fixture.usecase.FindAll(context.Background(), session, &requests.LabOrderQuery{
			Status: string(models.LabOrderCompleted),
		})

		assert.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("admin without a scope is rejected", func(t *testing.T) {
		fixture := newLabOrderFixture()

		session := &models.Session{UserID: "admin-1", Role: constvars.RoleAdmin}
		_, err := fixture.usecase.FindAll(context.Background(), session, &requests.LabOrderQuery{})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}
