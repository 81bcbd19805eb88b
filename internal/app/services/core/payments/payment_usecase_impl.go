package payments

import (
	"context"
	"fmt"
	"math"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
	"medilab-service/internal/pkg/exceptions"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// amountEpsilon absorbs float rounding when comparing refund totals against
// the original amount.
const amountEpsilon = 1e-9

const callbackLockExpiry = 30 * time.Second

type paymentUsecase struct {
	PaymentRepository       contracts.PaymentRepository
	PaymentLedgerRepository contracts.PaymentLedgerRepository
	LabOrderUsecase         contracts.LabOrderUsecase
	CatalogService          contracts.CatalogService
	PaymentGatewayService   contracts.PaymentGatewayService
	NotificationService     contracts.NotificationService
	LockerService           contracts.LockerService
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	paymentLedgerRepository contracts.PaymentLedgerRepository,
	labOrderUsecase contracts.LabOrderUsecase,
	catalogService contracts.CatalogService,
	paymentGatewayService contracts.PaymentGatewayService,
	notificationService contracts.NotificationService,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		PaymentRepository:       paymentRepository,
		PaymentLedgerRepository: paymentLedgerRepository,
		LabOrderUsecase:         labOrderUsecase,
		CatalogService:          catalogService,
		PaymentGatewayService:   paymentGatewayService,
		NotificationService:     notificationService,
		LockerService:           lockerService,
		InternalConfig:          internalConfig,
		Log:                     logger,
	}
}

func (uc *paymentUsecase) InitiatePayment(ctx context.Context, userID string, request *requests.InitiatePayment) (*responses.InitiatePayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.InitiatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingOrderTypeKey, request.OrderType),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		zap.Float64(constvars.LoggingAmountKey, request.Amount),
	)

	// Only lab orders live in this service. Other order types are owned by
	// their respective services and arrive here pre-validated.
	if request.OrderType == constvars.OrderTypeLabOrder {
		if err := uc.validateLabOrderOwnership(ctx, request.OrderID, userID); err != nil {
			return nil, err
		}
	}

	payment := &models.Payment{
		ID:        uuid.NewString(),
		UserID:    userID,
		OrderType: request.OrderType,
		OrderID:   request.OrderID,
		Amount:    request.Amount,
		Method:    models.PaymentMethod(request.Method),
		Provider:  request.Provider,
		Status:    models.PaymentPending,
	}

	created, err := uc.PaymentRepository.CreatePayment(ctx, payment)
	if err != nil {
		uc.Log.Error("paymentUsecase.InitiatePayment error creating payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	_, err = uc.PaymentLedgerRepository.AppendEntry(ctx, &models.PaymentTransaction{
		PaymentID: created.ID,
		Type:      models.PaymentTransactionInitiation,
		Amount:    created.Amount,
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.InitiatePayment error appending initiation ledger entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, created.ID),
			zap.Error(err),
		)
		return nil, err
	}

	response := &responses.InitiatePayment{
		Payment: *buildPaymentResponse(created),
	}

	if created.Method == models.PaymentMethodCardOnline {
		redirectURL, err := uc.buildGatewayRedirect(ctx, created)
		if err != nil {
			uc.Log.Error("paymentUsecase.InitiatePayment gateway flow failed, payment stays pending",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, created.ID),
				zap.Error(err),
			)
			return nil, err
		}
		response.RequiresRedirect = true
		response.RedirectURL = redirectURL
	}

	uc.Log.Info("paymentUsecase.InitiatePayment completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, created.ID),
		zap.Bool("requires_redirect", response.RequiresRedirect),
	)
	return response, nil
}

// ConfirmPayment handles the signature-verified provider webhook. Confirming
// an already completed payment with the same provider transaction id is a
// no-op that appends no second ledger entry.
func (uc *paymentUsecase) ConfirmPayment(ctx context.Context, request *requests.PaymentCallback) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ConfirmPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !uc.PaymentGatewayService.VerifyWebhookSignature(request.HMAC, request.Payload) {
		uc.Log.Warn("paymentUsecase.ConfirmPayment webhook signature verification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidWebhookSignature()
	}

	if !request.Payload.Success {
		return nil, exceptions.ErrPaymentGatewayResponse(fmt.Errorf("provider reported unsuccessful transaction %d", request.Payload.ID))
	}

	paymentID := request.Payload.Order.MerchantOrderID
	providerTrxID := strconv.FormatInt(request.Payload.ID, 10)

	lockKey := fmt.Sprintf(constvars.RedisPaymentCallbackLock, providerTrxID)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, callbackLockExpiry)
	if err != nil {
		return nil, err
	}
	if !acquired {
		// A duplicate delivery is already being processed. Report the
		// current payment state instead of racing it.
		uc.Log.Info("paymentUsecase.ConfirmPayment duplicate webhook delivery detected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderTrxIDKey, providerTrxID),
		)
		return uc.FindByID(ctx, paymentID)
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("paymentUsecase.ConfirmPayment failed to release callback lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	payment, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(paymentID)
	}

	if payment.Status == models.PaymentCompleted && payment.ProviderTransactionID == providerTrxID {
		uc.Log.Info("paymentUsecase.ConfirmPayment payment already completed, no-op",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.String(constvars.LoggingProviderTrxIDKey, providerTrxID),
		)
		return buildPaymentResponse(payment), nil
	}

	if payment.Status != models.PaymentPending && payment.Status != models.PaymentProcessing {
		return nil, exceptions.ErrPaymentInvalidState(string(payment.Status),
			[]string{string(models.PaymentPending), string(models.PaymentProcessing)})
	}

	// The merchant order id alone could replay a transaction against a
	// different payment row.
	existing, err := uc.PaymentRepository.FindByProviderTransactionID(ctx, providerTrxID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != payment.ID {
		uc.Log.Warn("paymentUsecase.ConfirmPayment provider transaction already bound to another payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderTrxIDKey, providerTrxID),
			zap.String(constvars.LoggingPaymentIDKey, existing.ID),
		)
		return nil, exceptions.ErrProviderTransactionConflict(providerTrxID, payment.ID)
	}

	payment.Status = models.PaymentCompleted
	payment.ProviderTransactionID = providerTrxID
	payment.UpdatedAt = time.Now().UTC()

	updated, err := uc.PaymentRepository.UpdatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	_, err = uc.PaymentLedgerRepository.AppendEntry(ctx, &models.PaymentTransaction{
		PaymentID: updated.ID,
		Type:      models.PaymentTransactionConfirmation,
		Amount:    updated.Amount,
		Metadata: map[string]string{
			"provider_transaction_id": providerTrxID,
		},
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.ConfirmPayment error appending confirmation ledger entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, updated.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.reconcileOrderStatus(ctx, updated)

	uc.Log.Info("paymentUsecase.ConfirmPayment completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, updated.ID),
		zap.String(constvars.LoggingPaymentStatusKey, string(updated.Status)),
	)
	return buildPaymentResponse(updated), nil
}

func (uc *paymentUsecase) CancelPayment(ctx context.Context, paymentID, userID string) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CancelPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	payment, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(paymentID)
	}
	if payment.UserID != userID {
		return nil, exceptions.ErrPaymentOwnerMismatch(paymentID, userID)
	}
	if payment.Status != models.PaymentPending && payment.Status != models.PaymentProcessing {
		return nil, exceptions.ErrPaymentInvalidState(string(payment.Status),
			[]string{string(models.PaymentPending), string(models.PaymentProcessing)})
	}

	payment.Status = models.PaymentCancelled
	payment.UpdatedAt = time.Now().UTC()

	updated, err := uc.PaymentRepository.UpdatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CancelPayment completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, updated.ID),
	)
	return buildPaymentResponse(updated), nil
}

func (uc *paymentUsecase) RefundPayment(ctx context.Context, paymentID, adminUserID string, request *requests.RefundPayment) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.RefundPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
		zap.Float64(constvars.LoggingAmountKey, request.Amount),
	)

	payment, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(paymentID)
	}
	if payment.Status != models.PaymentCompleted && payment.Status != models.PaymentPartialRefund {
		return nil, exceptions.ErrPaymentInvalidState(string(payment.Status),
			[]string{string(models.PaymentCompleted), string(models.PaymentPartialRefund)})
	}

	remaining := payment.Amount - payment.RefundedAmount
	if request.Amount > remaining+amountEpsilon {
		return nil, exceptions.ErrRefundExceedsBalance(request.Amount, remaining)
	}

	payment.RefundedAmount += request.Amount
	if math.Abs(payment.Amount-payment.RefundedAmount) <= amountEpsilon {
		payment.Status = models.PaymentRefunded
	} else {
		payment.Status = models.PaymentPartialRefund
	}
	payment.UpdatedAt = time.Now().UTC()

	updated, err := uc.PaymentRepository.UpdatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	_, err = uc.PaymentLedgerRepository.AppendEntry(ctx, &models.PaymentTransaction{
		PaymentID: updated.ID,
		Type:      models.PaymentTransactionRefund,
		Amount:    request.Amount,
		Metadata: map[string]string{
			"reason":        request.Reason,
			"admin_user_id": adminUserID,
		},
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.RefundPayment error appending refund ledger entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, updated.ID),
			zap.Error(err),
		)
		return nil, err
	}

	notifyErr := uc.NotificationService.Notify(ctx,
		updated.UserID,
		constvars.NotificationTypePaymentRefunded,
		"Payment refunded",
		fmt.Sprintf("A refund of %.2f was issued for your payment: %s", request.Amount, request.Reason),
		updated.ID,
		updated.OrderType,
		constvars.NotificationPriorityNormal,
	)
	if notifyErr != nil {
		uc.Log.Warn("paymentUsecase.RefundPayment notification publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, updated.ID),
			zap.Error(notifyErr),
		)
	}

	uc.Log.Info("paymentUsecase.RefundPayment completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, updated.ID),
		zap.String(constvars.LoggingPaymentStatusKey, string(updated.Status)),
	)
	return buildPaymentResponse(updated), nil
}

func (uc *paymentUsecase) FindByID(ctx context.Context, paymentID string) (*responses.Payment, error) {
	payment, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(paymentID)
	}
	return buildPaymentResponse(payment), nil
}

func (uc *paymentUsecase) validateLabOrderOwnership(ctx context.Context, orderID, userID string) error {
	order, err := uc.LabOrderUsecase.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	patient, err := uc.CatalogService.PatientByID(ctx, order.PatientID)
	if err != nil {
		return err
	}
	if patient == nil || patient.UserID != userID {
		return exceptions.ErrPaymentOwnerMismatch(orderID, userID)
	}
	return nil
}

func (uc *paymentUsecase) buildGatewayRedirect(ctx context.Context, payment *models.Payment) (string, error) {
	token, err := uc.PaymentGatewayService.Authenticate(ctx)
	if err != nil {
		return "", err
	}

	amountCents := toCents(payment.Amount)
	gatewayOrderID, err := uc.PaymentGatewayService.CreateOrder(ctx, token, &requests.GatewayCreateOrder{
		AmountCents:     amountCents,
		MerchantOrderID: payment.ID,
		ItemName:        payment.OrderType,
		ItemDescription: fmt.Sprintf("%s %s", payment.OrderType, payment.OrderID),
	})
	if err != nil {
		return "", err
	}

	paymentKey, err := uc.PaymentGatewayService.GeneratePaymentKey(ctx, token, &requests.GatewayPaymentKey{
		GatewayOrderID: gatewayOrderID,
		AmountCents:    amountCents,
		IntegrationID:  uc.InternalConfig.PaymentGateway.IntegrationID,
		Billing: requests.GatewayBillingInfo{
			FirstName:   "NA",
			LastName:    "NA",
			Email:       "na@example.com",
			PhoneNumber: "NA",
			City:        "NA",
			Country:     "EG",
		},
	})
	if err != nil {
		return "", err
	}

	return uc.PaymentGatewayService.IframeURL(paymentKey), nil
}

// reconcileOrderStatus is a best-effort side channel, not part of the payment
// transaction. The order may legitimately be elsewhere in its lifecycle when
// webhooks arrive out of order, so an InvalidState here is logged and
// swallowed.
func (uc *paymentUsecase) reconcileOrderStatus(ctx context.Context, payment *models.Payment) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if payment.OrderType != constvars.OrderTypeLabOrder {
		return
	}

	_, err := uc.LabOrderUsecase.MarkPaid(ctx, payment.OrderID)
	if err != nil {
		uc.Log.Warn("paymentUsecase.reconcileOrderStatus could not advance order, payment stays confirmed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.String(constvars.LoggingOrderIDKey, payment.OrderID),
			zap.Error(err),
		)
	}
}

// toCents converts a major-unit amount to integer minor units at the gateway
// boundary.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func buildPaymentResponse(payment *models.Payment) *responses.Payment {
	return &responses.Payment{
		ID:                    payment.ID,
		UserID:                payment.UserID,
		OrderType:             payment.OrderType,
		OrderID:               payment.OrderID,
		Amount:                payment.Amount,
		RefundedAmount:        payment.RefundedAmount,
		Method:                string(payment.Method),
		Provider:              payment.Provider,
		Status:                string(payment.Status),
		ProviderTransactionID: payment.ProviderTransactionID,
		CreatedAt:             payment.CreatedAt,
		UpdatedAt:             payment.UpdatedAt,
	}
}
