package payments

import (
	"context"
	"errors"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
	"medilab-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePaymentRepository struct {
	payments map[string]*models.Payment
}

func newFakePaymentRepository() *fakePaymentRepository {
	return &fakePaymentRepository{payments: make(map[string]*models.Payment)}
}

func (r *fakePaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	stored := *payment
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.payments[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (r *fakePaymentRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, ok := r.payments[paymentID]
	if !ok {
		return nil, nil
	}
	result := *payment
	return &result, nil
}

func (r *fakePaymentRepository) FindByProviderTransactionID(ctx context.Context, providerTransactionID string) (*models.Payment, error) {
	for _, payment := range r.payments {
		if payment.ProviderTransactionID == providerTransactionID {
			result := *payment
			return &result, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepository) UpdatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	stored := *payment
	r.payments[stored.ID] = &stored
	result := stored
	return &result, nil
}

type fakePaymentLedger struct {
	entries []models.PaymentTransaction
}

func (l *fakePaymentLedger) AppendEntry(ctx context.Context, entry *models.PaymentTransaction) (*models.PaymentTransaction, error) {
	stored := *entry
	stored.CreatedAt = time.Now().UTC()
	l.entries = append(l.entries, stored)
	return &stored, nil
}

func (l *fakePaymentLedger) FindByPaymentID(ctx context.Context, paymentID string) ([]models.PaymentTransaction, error) {
	var result []models.PaymentTransaction
	for _, entry := range l.entries {
		if entry.PaymentID == paymentID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (l *fakePaymentLedger) CountByPaymentIDAndType(ctx context.Context, paymentID string, entryType models.PaymentTransactionType) (int64, error) {
	var count int64
	for _, entry := range l.entries {
		if entry.PaymentID == paymentID && entry.Type == entryType {
			count++
		}
	}
	return count, nil
}

type fakeLabOrderUsecase struct {
	order        *responses.LabOrder
	markPaidErr  error
	markPaidsFor []string
}

func (u *fakeLabOrderUsecase) CreateLabOrder(ctx context.Context, request *requests.CreateLabOrder) (*responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) FindByID(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	if u.order == nil {
		return nil, exceptions.ErrLabOrderNotFound(orderID)
	}
	return u.order, nil
}

func (u *fakeLabOrderUsecase) FindAll(ctx context.Context, session *models.Session, query *requests.LabOrderQuery) ([]responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) Confirm(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) MarkPaid(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	if u.markPaidErr != nil {
		return nil, u.markPaidErr
	}
	u.markPaidsFor = append(u.markPaidsFor, orderID)
	return u.order, nil
}

func (u *fakeLabOrderUsecase) MarkSampleCollected(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) StartLabWork(ctx context.Context, orderID, laboratoryID string) (*responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) MarkInProgress(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) MarkResultsReady(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) Complete(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) Cancel(ctx context.Context, orderID, reason string) (*responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) Reject(ctx context.Context, orderID, reason string) (*responses.LabOrder, error) {
	return nil, nil
}

func (u *fakeLabOrderUsecase) DeleteByAdmin(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	return nil, nil
}

type fakeCatalogService struct {
	patients map[string]*models.Patient
}

func (s *fakeCatalogService) LaboratoryByID(ctx context.Context, laboratoryID string) (*models.Laboratory, error) {
	return nil, nil
}

func (s *fakeCatalogService) LabTestByID(ctx context.Context, labTestID string) (*models.LabTest, error) {
	return nil, nil
}

func (s *fakeCatalogService) PriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	return nil, nil
}

func (s *fakeCatalogService) CurrentPriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	return nil, nil
}

func (s *fakeCatalogService) PatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return s.patients[patientID], nil
}

type fakePaymentGateway struct {
	signatureValid bool
}

func (g *fakePaymentGateway) Authenticate(ctx context.Context) (string, error) {
	return "auth-token", nil
}

func (g *fakePaymentGateway) CreateOrder(ctx context.Context, token string, request *requests.GatewayCreateOrder) (string, error) {
	return "77001", nil
}

func (g *fakePaymentGateway) GeneratePaymentKey(ctx context.Context, token string, request *requests.GatewayPaymentKey) (string, error) {
	return "payment-key", nil
}

func (g *fakePaymentGateway) IframeURL(paymentToken string) string {
	return "https://gateway.example/iframe?payment_token=" + paymentToken
}

func (g *fakePaymentGateway) VerifyWebhookSignature(receivedSignature string, payload *responses.GatewayWebhookPayload) bool {
	return g.signatureValid
}

type fakeLockerService struct {
	acquired bool
}

func (s *fakeLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return s.acquired, "lock-value", nil
}

func (s *fakeLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return nil
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

type paymentFixture struct {
	usecase       *paymentUsecase
	payments      *fakePaymentRepository
	ledger        *fakePaymentLedger
	labOrders     *fakeLabOrderUsecase
	gateway       *fakePaymentGateway
	locker        *fakeLockerService
	notifications *fakeNotificationService
}

func newPaymentFixture() *paymentFixture {
	payments := newFakePaymentRepository()
	ledger := &fakePaymentLedger{}
	labOrders := &fakeLabOrderUsecase{
		order: &responses.LabOrder{ID: "order-1", PatientID: "patient-1", Status: string(models.LabOrderAwaitingPayment)},
	}
	catalog := &fakeCatalogService{
		patients: map[string]*models.Patient{
			"patient-1": {ID: "patient-1", UserID: "user-1", FullName: "Sara Ahmed"},
		},
	}
	gateway := &fakePaymentGateway{signatureValid: true}
	locker := &fakeLockerService{acquired: true}
	notifications := &fakeNotificationService{}

	usecase := &paymentUsecase{
		PaymentRepository:       payments,
		PaymentLedgerRepository: ledger,
		LabOrderUsecase:         labOrders,
		CatalogService:          catalog,
		PaymentGatewayService:   gateway,
		NotificationService:     notifications,
		LockerService:           locker,
		InternalConfig:          &config.InternalConfig{},
		Log:                     zap.NewNop(),
	}
	return &paymentFixture{
		usecase:       usecase,
		payments:      payments,
		ledger:        ledger,
		labOrders:     labOrders,
		gateway:       gateway,
		locker:        locker,
		notifications: notifications,
	}
}

func (f *paymentFixture) seedPayment(status models.PaymentStatus, amount, refunded float64) *models.Payment {
	payment := &models.Payment{
		ID:             "payment-1",
		UserID:         "user-1",
		OrderType:      constvars.OrderTypeLabOrder,
		OrderID:        "order-1",
		Amount:         amount,
		RefundedAmount: refunded,
		Method:         models.PaymentMethodCardOnline,
		Status:         status,
	}
	f.payments.payments[payment.ID] = payment
	return payment
}

func confirmRequest(paymentID string, providerTrxID int64) *requests.PaymentCallback {
	return &requests.PaymentCallback{
		HMAC: "valid-signature",
		Payload: &responses.GatewayWebhookPayload{
			ID:      providerTrxID,
			Success: true,
			Order:   responses.GatewayWebhookOrder{MerchantOrderID: paymentID},
		},
	}
}

func TestInitiatePayment(t *testing.T) {
	t.Run("creates a pending cash payment with an initiation ledger entry", func(t *testing.T) {
		fixture := newPaymentFixture()

		response, err := fixture.usecase.InitiatePayment(context.Background(), "user-1", &requests.InitiatePayment{
			OrderType: constvars.OrderTypeLabOrder,
			OrderID:   "order-1",
			Amount:    270,
			Method:    string(models.PaymentMethodCashOnDelivery),
		})

		assert.NoError(t, err)
		assert.Equal(t, string(models.PaymentPending), response.Payment.Status)
		assert.False(t, response.RequiresRedirect)
		assert.Empty(t, response.RedirectURL)

		entries, _ := fixture.ledger.FindByPaymentID(context.Background(), response.Payment.ID)
		assert.Len(t, entries, 1)
		assert.Equal(t, models.PaymentTransactionInitiation, entries[0].Type)
	})

	t.Run("returns the gateway redirect for card payments", func(t *testing.T) {
		fixture := newPaymentFixture()

		response, err := fixture.usecase.InitiatePayment(context.Background(), "user-1", &requests.InitiatePayment{
			OrderType: constvars.OrderTypeLabOrder,
			OrderID:   "order-1",
			Amount:    270,
			Method:    string(models.PaymentMethodCardOnline),
		})

		assert.NoError(t, err)
		assert.True(t, response.RequiresRedirect)
		assert.Contains(t, response.RedirectURL, "payment_token=payment-key")
	})

	t.Run("rejects a lab order owned by another user", func(t *testing.T) {
		fixture := newPaymentFixture()

		_, err := fixture.usecase.InitiatePayment(context.Background(), "user-2", &requests.InitiatePayment{
			OrderType: constvars.OrderTypeLabOrder,
			OrderID:   "order-1",
			Amount:    270,
			Method:    string(models.PaymentMethodCashOnDelivery),
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})
}

func TestConfirmPayment(t *testing.T) {
	t.Run("completes a pending payment and advances the order", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentPending, 270, 0)

		response, err := fixture.usecase.ConfirmPayment(context.Background(), confirmRequest("payment-1", 555))

		assert.NoError(t, err)
		assert.Equal(t, string(models.PaymentCompleted), response.Status)
		assert.Equal(t, "555", response.ProviderTransactionID)
		assert.Equal(t, []string{"order-1"}, fixture.labOrders.markPaidsFor)

		count, _ := fixture.ledger.CountByPaymentIDAndType(context.Background(), "payment-1", models.PaymentTransactionConfirmation)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects an invalid webhook signature before touching the payment", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.gateway.signatureValid = false
		fixture.seedPayment(models.PaymentPending, 270, 0)

		_, err := fixture.usecase.ConfirmPayment(context.Background(), confirmRequest("payment-1", 555))

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
		assert.Equal(t, models.PaymentPending, fixture.payments.payments["payment-1"].Status)
		assert.Empty(t, fixture.ledger.entries)
	})

	t.Run("a repeated delivery for a completed payment is a no-op", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentPending, 270, 0)

		_, err := fixture.usecase.ConfirmPayment(context.Background(), confirmRequest("payment-1", 555))
		assert.NoError(t, err)

		response, err := fixture.usecase.ConfirmPayment(context.Background(), confirmRequest("payment-1", 555))
		assert.NoError(t, err)
		assert.Equal(t, string(models.PaymentCompleted), response.Status)

		count, _ := fixture.ledger.CountByPaymentIDAndType(context.Background(), "payment-1", models.PaymentTransactionConfirmation)
		assert.Equal(t, int64(1), count, "a duplicate webhook must not append a second confirmation entry")
	})

	t.Run("an in-flight duplicate reports the current state without processing", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.locker.acquired = false
		fixture.seedPayment(models.PaymentPending, 270, 0)

		response, err := fixture.usecase.ConfirmPayment(context.Background(), confirmRequest("payment-1", 555))

		assert.NoError(t, err)
		assert.Equal(t, string(models.PaymentPending), response.Status)
		assert.Empty(t, fixture.ledger.entries)
	})

	t.Run("a completed payment with a different provider transaction conflicts", func(t *testing.T) {
		fixture := newPaymentFixture()
		payment := fixture.seedPayment(models.PaymentCompleted, 270, 0)
		payment.ProviderTransactionID = "111"

		_, err := fixture.usecase.ConfirmPayment(context.Background(), confirmRequest("payment-1", 555))

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})

	t.Run("a provider transaction bound to another payment conflicts", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentPending, 270, 0)
		fixture.payments.payments["payment-2"] = &models.Payment{
			ID:                    "payment-2",
			UserID:                "user-1",
			OrderType:             constvars.OrderTypeLabOrder,
			OrderID:               "order-2",
			Amount:                90,
			Method:                models.PaymentMethodCardOnline,
			Status:                models.PaymentCompleted,
			ProviderTransactionID: "555",
		}

		_, err := fixture.usecase.ConfirmPayment(context.Background(), confirmRequest("payment-1", 555))

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		assert.Equal(t, models.PaymentPending, fixture.payments.payments["payment-1"].Status,
			"a replayed transaction id must not complete a second payment")
		assert.Empty(t, fixture.ledger.entries)
	})

	t.Run("a failed order reconciliation does not fail the confirmation", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.labOrders.markPaidErr = errors.New("order already paid")
		fixture.seedPayment(models.PaymentPending, 270, 0)

		response, err := fixture.usecase.ConfirmPayment(context.Background(), confirmRequest("payment-1", 555))

		assert.NoError(t, err)
		assert.Equal(t, string(models.PaymentCompleted), response.Status)
	})
}

func TestCancelPayment(t *testing.T) {
	t.Run("cancels a pending payment for its owner", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentPending, 270, 0)

		response, err := fixture.usecase.CancelPayment(context.Background(), "payment-1", "user-1")

		assert.NoError(t, err)
		assert.Equal(t, string(models.PaymentCancelled), response.Status)
	})

	t.Run("rejects cancellation by another user", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentPending, 270, 0)

		_, err := fixture.usecase.CancelPayment(context.Background(), "payment-1", "user-2")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("rejects cancellation of a completed payment", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentCompleted, 270, 0)

		_, err := fixture.usecase.CancelPayment(context.Background(), "payment-1", "user-1")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})

	t.Run("cancellation requires a pending or processing payment", func(t *testing.T) {
		cases := []struct {
			status   models.PaymentStatus
			refunded float64
		}{
			{models.PaymentRefunded, 270},
			{models.PaymentPartialRefund, 100},
			{models.PaymentCancelled, 0},
		}
		for _, tc := range cases {
			t.Run(string(tc.status), func(t *testing.T) {
				fixture := newPaymentFixture()
				fixture.seedPayment(tc.status, 270, tc.refunded)

				_, err := fixture.usecase.CancelPayment(context.Background(), "payment-1", "user-1")

				var customErr *exceptions.CustomError
				assert.ErrorAs(t, err, &customErr)
				assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
				assert.Equal(t, tc.status, fixture.payments.payments["payment-1"].Status)
			})
		}
	})
}

func TestRefundPayment(t *testing.T) {
	t.Run("a full refund marks the payment refunded", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentCompleted, 270, 0)

		response, err := fixture.usecase.RefundPayment(context.Background(), "payment-1", "admin-1", &requests.RefundPayment{
			Amount: 270,
			Reason: "order rejected by the laboratory",
		})

		assert.NoError(t, err)
		assert.Equal(t, string(models.PaymentRefunded), response.Status)
		assert.Equal(t, 270.0, response.RefundedAmount)

		entries, _ := fixture.ledger.FindByPaymentID(context.Background(), "payment-1")
		assert.Len(t, entries, 1)
		assert.Equal(t, models.PaymentTransactionRefund, entries[0].Type)
		assert.Equal(t, "admin-1", entries[0].Metadata["admin_user_id"])
	})

	t.Run("a partial refund keeps the remaining balance refundable", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentCompleted, 270, 0)

		response, err := fixture.usecase.RefundPayment(context.Background(), "payment-1", "admin-1", &requests.RefundPayment{
			Amount: 100,
			Reason: "one test not performed",
		})
		assert.NoError(t, err)
		assert.Equal(t, string(models.PaymentPartialRefund), response.Status)

		response, err = fixture.usecase.RefundPayment(context.Background(), "payment-1", "admin-1", &requests.RefundPayment{
			Amount: 170,
			Reason: "remaining balance",
		})
		assert.NoError(t, err)
		assert.Equal(t, string(models.PaymentRefunded), response.Status)
	})

	t.Run("a refund above the remaining balance is rejected", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentCompleted, 270, 100)

		_, err := fixture.usecase.RefundPayment(context.Background(), "payment-1", "admin-1", &requests.RefundPayment{
			Amount: 171,
			Reason: "too much",
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Equal(t, models.PaymentCompleted, fixture.payments.payments["payment-1"].Status)
	})

	t.Run("only completed or partially refunded payments are refundable", func(t *testing.T) {
		fixture := newPaymentFixture()
		fixture.seedPayment(models.PaymentPending, 270, 0)

		_, err := fixture.usecase.RefundPayment(context.Background(), "payment-1", "admin-1", &requests.RefundPayment{
			Amount: 50,
			Reason: "not yet captured",
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})
}
