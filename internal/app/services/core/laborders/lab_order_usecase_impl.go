package laborders

import (
	"context"
	"fmt"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
	"medilab-service/internal/pkg/exceptions"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// nonTerminalStates are the states Cancel and Reject may leave from.
var nonTerminalStates = []models.LabOrderStatus{
	models.LabOrderNewRequest,
	models.LabOrderAwaitingPayment,
	models.LabOrderPaid,
	models.LabOrderAwaitingSamples,
	models.LabOrderInProgress,
	models.LabOrderResultsReady,
}

type labOrderUsecase struct {
	LabOrderRepository        contracts.LabOrderRepository
	LabPrescriptionRepository contracts.LabPrescriptionRepository
	CatalogService            contracts.CatalogService
	NotificationService       contracts.NotificationService
	Calculator                *costCalculator
	Log                       *zap.Logger
}

func NewLabOrderUsecase(
	labOrderRepository contracts.LabOrderRepository,
	labPrescriptionRepository contracts.LabPrescriptionRepository,
	catalogService contracts.CatalogService,
	notificationService contracts.NotificationService,
	logger *zap.Logger,
) contracts.LabOrderUsecase {
	return &labOrderUsecase{
		LabOrderRepository:        labOrderRepository,
		LabPrescriptionRepository: labPrescriptionRepository,
		CatalogService:            catalogService,
		NotificationService:       notificationService,
		Calculator:                &costCalculator{CatalogService: catalogService},
		Log:                       logger,
	}
}

func (uc *labOrderUsecase) CreateLabOrder(ctx context.Context, request *requests.CreateLabOrder) (*responses.LabOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labOrderUsecase.CreateLabOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, request.PrescriptionID),
		zap.String(constvars.LoggingLaboratoryIDKey, request.LaboratoryID),
	)

	prescription, err := uc.LabPrescriptionRepository.FindByID(ctx, request.PrescriptionID)
	if err != nil {
		uc.Log.Error("labOrderUsecase.CreateLabOrder error fetching prescription",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if prescription == nil {
		return nil, exceptions.ErrLabPrescriptionNotFound(request.PrescriptionID)
	}

	existingOrder, err := uc.LabOrderRepository.FindByPrescriptionID(ctx, request.PrescriptionID)
	if err != nil {
		return nil, err
	}
	if existingOrder != nil {
		return nil, exceptions.ErrPrescriptionAlreadyOrdered(request.PrescriptionID)
	}

	laboratory, err := uc.CatalogService.LaboratoryByID(ctx, request.LaboratoryID)
	if err != nil {
		return nil, err
	}
	if laboratory == nil {
		return nil, exceptions.ErrLaboratoryNotFound(request.LaboratoryID)
	}

	collectionType := models.SampleCollectionType(request.SampleCollectionType)
	if collectionType == models.SampleCollectionHomeVisit && !laboratory.HasHomeCollection {
		return nil, exceptions.ErrHomeCollectionUnavailable(laboratory.ID)
	}

	order := &models.LabOrder{
		ID:                   uuid.NewString(),
		PrescriptionID:       prescription.ID,
		LaboratoryID:         laboratory.ID,
		PatientID:            prescription.PatientID,
		Status:               models.LabOrderNewRequest,
		SampleCollectionType: collectionType,
	}

	created, err := uc.LabOrderRepository.CreateLabOrder(ctx, order)
	if err != nil {
		uc.Log.Error("labOrderUsecase.CreateLabOrder error creating order",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("labOrderUsecase.CreateLabOrder completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, created.ID),
	)
	return uc.buildLabOrderResponse(ctx, created)
}

func (uc *labOrderUsecase) FindByID(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labOrderUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	order, err := uc.LabOrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrLabOrderNotFound(orderID)
	}

	return uc.buildLabOrderResponse(ctx, order)
}

func (uc *labOrderUsecase) FindAll(ctx context.Context, session *models.Session, query *requests.LabOrderQuery) ([]responses.LabOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labOrderUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	var (
		orders []models.LabOrder
		err    error
	)
	switch {
	case session.IsPatient():
		orders, err = uc.LabOrderRepository.FindByPatientID(ctx, session.PatientID)
	case session.IsLaboratory():
		orders, err = uc.LabOrderRepository.FindByLaboratoryID(ctx, session.LaboratoryID)
	case session.IsAdmin() && query.PatientID != "":
		orders, err = uc.LabOrderRepository.FindByPatientID(ctx, query.PatientID)
	case session.IsAdmin() && query.LaboratoryID != "":
		orders, err = uc.LabOrderRepository.FindByLaboratoryID(ctx, query.LaboratoryID)
	default:
		return nil, exceptions.ErrInputValidation(fmt.Errorf("no order scope resolvable for role %s", session.Role))
	}
	if err != nil {
		return nil, err
	}

	var result []responses.LabOrder
	for i := range orders {
		if query.Status != "" && string(orders[i].Status) != query.Status {
			continue
		}
		response, err := uc.buildLabOrderResponse(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *response)
	}

	uc.Log.Info("labOrderUsecase.FindAll completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(result)),
	)
	return result, nil
}

// Confirm snapshots the order cost and moves the order to awaiting_payment.
// The snapshot is computed inside the guarded transition so a concurrent
// Confirm cannot double-price the order.
func (uc *labOrderUsecase) Confirm(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labOrderUsecase.Confirm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	updated, err := uc.LabOrderRepository.UpdateWithGuard(ctx, orderID,
		[]models.LabOrderStatus{models.LabOrderNewRequest},
		func(order *models.LabOrder) error {
			laboratory, err := uc.CatalogService.LaboratoryByID(ctx, order.LaboratoryID)
			if err != nil {
				return err
			}
			if laboratory == nil {
				return exceptions.ErrLaboratoryNotFound(order.LaboratoryID)
			}

			items, err := uc.LabPrescriptionRepository.FindItemsByPrescriptionID(ctx, order.PrescriptionID)
			if err != nil {
				return err
			}

			cost, err := uc.Calculator.Calculate(ctx, laboratory, items, order.SampleCollectionType)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			order.Status = models.LabOrderAwaitingPayment
			order.TestsTotalCost = cost.TestsTotal
			order.SampleCollectionDeliveryCost = cost.DeliveryCost
			order.ConfirmedByLabAt = &now
			order.UpdatedAt = now
			return nil
		},
	)
	if err != nil {
		uc.Log.Error("labOrderUsecase.Confirm transition failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.notifyPatient(ctx, updated, constvars.NotificationTypeOrderConfirmed,
		"Lab order confirmed",
		fmt.Sprintf("Your lab order has been confirmed. Total cost: %.2f", updated.TestsTotalCost+updated.SampleCollectionDeliveryCost),
		constvars.NotificationPriorityNormal,
	)

	uc.Log.Info("labOrderUsecase.Confirm completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, updated.ID),
		zap.String(constvars.LoggingOrderStatusKey, string(updated.Status)),
	)
	return uc.buildLabOrderResponse(ctx, updated)
}

func (uc *labOrderUsecase) MarkPaid(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	updated, err := uc.transition(ctx, "MarkPaid", orderID,
		[]models.LabOrderStatus{models.LabOrderAwaitingPayment},
		func(order *models.LabOrder, now time.Time) {
			order.Status = models.LabOrderPaid
			order.PaidAt = &now
		},
	)
	if err != nil {
		return nil, err
	}

	uc.notifyPatient(ctx, updated, constvars.NotificationTypeOrderPaid,
		"Payment received",
		"Your lab order payment has been received.",
		constvars.NotificationPriorityNormal,
	)
	return uc.buildLabOrderResponse(ctx, updated)
}

func (uc *labOrderUsecase) MarkSampleCollected(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	updated, err := uc.transition(ctx, "MarkSampleCollected", orderID,
		[]models.LabOrderStatus{models.LabOrderPaid},
		func(order *models.LabOrder, now time.Time) {
			order.Status = models.LabOrderAwaitingSamples
			order.SamplesCollectedAt = &now
		},
	)
	if err != nil {
		return nil, err
	}
	return uc.buildLabOrderResponse(ctx, updated)
}

// StartLabWork is the one transition with an explicit actor identity guard.
// The ownership check runs before the status guard and wins over it.
func (uc *labOrderUsecase) StartLabWork(ctx context.Context, orderID, laboratoryID string) (*responses.LabOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labOrderUsecase.StartLabWork called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingLaboratoryIDKey, laboratoryID),
	)

	order, err := uc.LabOrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrLabOrderNotFound(orderID)
	}
	if order.LaboratoryID != laboratoryID {
		uc.Log.Warn("labOrderUsecase.StartLabWork laboratory ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.String(constvars.LoggingLaboratoryIDKey, laboratoryID),
		)
		return nil, exceptions.ErrOrderLaboratoryMismatch(orderID, laboratoryID)
	}

	updated, err := uc.transition(ctx, "StartLabWork", orderID,
		[]models.LabOrderStatus{models.LabOrderAwaitingSamples},
		func(order *models.LabOrder, now time.Time) {
			order.Status = models.LabOrderInProgress
		},
	)
	if err != nil {
		return nil, err
	}

	uc.notifyPatient(ctx, updated, constvars.NotificationTypeOrderInProgress,
		"Lab work started",
		"The laboratory has started processing your samples.",
		constvars.NotificationPriorityNormal,
	)
	return uc.buildLabOrderResponse(ctx, updated)
}

func (uc *labOrderUsecase) MarkInProgress(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	// Re-entry from in_progress is accepted so repeated progress callbacks
	// stay harmless.
	updated, err := uc.transition(ctx, "MarkInProgress", orderID,
		[]models.LabOrderStatus{models.LabOrderAwaitingSamples, models.LabOrderInProgress},
		func(order *models.LabOrder, now time.Time) {
			order.Status = models.LabOrderInProgress
		},
	)
	if err != nil {
		return nil, err
	}
	return uc.buildLabOrderResponse(ctx, updated)
}

func (uc *labOrderUsecase) MarkResultsReady(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	updated, err := uc.transition(ctx, "MarkResultsReady", orderID,
		[]models.LabOrderStatus{models.LabOrderInProgress},
		func(order *models.LabOrder, now time.Time) {
			order.Status = models.LabOrderResultsReady
		},
	)
	if err != nil {
		return nil, err
	}

	uc.notifyPatient(ctx, updated, constvars.NotificationTypeResultsReady,
		"Results ready",
		"Your lab results are ready.",
		constvars.NotificationPriorityHigh,
	)
	return uc.buildLabOrderResponse(ctx, updated)
}

func (uc *labOrderUsecase) Complete(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	updated, err := uc.transition(ctx, "Complete", orderID,
		[]models.LabOrderStatus{models.LabOrderInProgress, models.LabOrderResultsReady},
		func(order *models.LabOrder, now time.Time) {
			order.Status = models.LabOrderCompleted
		},
	)
	if err != nil {
		return nil, err
	}

	uc.notifyPatient(ctx, updated, constvars.NotificationTypeOrderCompleted,
		"Lab order completed",
		"Your lab order has been completed.",
		constvars.NotificationPriorityNormal,
	)
	return uc.buildLabOrderResponse(ctx, updated)
}

func (uc *labOrderUsecase) Cancel(ctx context.Context, orderID, reason string) (*responses.LabOrder, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, exceptions.ErrReasonRequired()
	}

	updated, err := uc.transition(ctx, "Cancel", orderID, nonTerminalStates,
		func(order *models.LabOrder, now time.Time) {
			order.Status = models.LabOrderCancelledByPatient
			order.CancellationReason = reason
			order.CancelledAt = &now
		},
	)
	if err != nil {
		return nil, err
	}

	uc.notifyPatient(ctx, updated, constvars.NotificationTypeOrderCancelled,
		"Lab order cancelled",
		fmt.Sprintf("Your lab order was cancelled: %s", reason),
		constvars.NotificationPriorityNormal,
	)
	return uc.buildLabOrderResponse(ctx, updated)
}

func (uc *labOrderUsecase) Reject(ctx context.Context, orderID, reason string) (*responses.LabOrder, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, exceptions.ErrReasonRequired()
	}

	updated, err := uc.transition(ctx, "Reject", orderID, nonTerminalStates,
		func(order *models.LabOrder, now time.Time) {
			order.Status = models.LabOrderRejectedByLab
			order.RejectionReason = reason
			order.RejectedAt = &now
		},
	)
	if err != nil {
		return nil, err
	}

	uc.notifyPatient(ctx, updated, constvars.NotificationTypeOrderRejected,
		"Lab order rejected",
		fmt.Sprintf("Your lab order was rejected by the laboratory: %s", reason),
		constvars.NotificationPriorityHigh,
	)
	return uc.buildLabOrderResponse(ctx, updated)
}

// DeleteByAdmin is a forced reject, not a physical delete. The row and its
// history stay queryable.
func (uc *labOrderUsecase) DeleteByAdmin(ctx context.Context, orderID string) (*responses.LabOrder, error) {
	return uc.Reject(ctx, orderID, constvars.LabOrderDeletedByAdminReason)
}

func (uc *labOrderUsecase) transition(
	ctx context.Context,
	operation string,
	orderID string,
	allowed []models.LabOrderStatus,
	apply func(order *models.LabOrder, now time.Time),
) (*models.LabOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labOrderUsecase."+operation+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	updated, err := uc.LabOrderRepository.UpdateWithGuard(ctx, orderID, allowed,
		func(order *models.LabOrder) error {
			now := time.Now().UTC()
			apply(order, now)
			order.UpdatedAt = now
			return nil
		},
	)
	if err != nil {
		uc.Log.Error("labOrderUsecase."+operation+" transition failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("labOrderUsecase."+operation+" completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, updated.ID),
		zap.String(constvars.LoggingOrderStatusKey, string(updated.Status)),
	)
	return updated, nil
}

// notifyPatient is fire and forget. A failed publish is logged and never
// fails the transition that triggered it.
func (uc *labOrderUsecase) notifyPatient(ctx context.Context, order *models.LabOrder, notificationType, title, message, priority string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	patient, err := uc.CatalogService.PatientByID(ctx, order.PatientID)
	if err != nil || patient == nil {
		uc.Log.Warn("labOrderUsecase.notifyPatient could not resolve patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, order.PatientID),
			zap.Error(err),
		)
		return
	}

	err = uc.NotificationService.Notify(ctx,
		patient.UserID,
		notificationType,
		title,
		message,
		order.ID,
		constvars.OrderTypeLabOrder,
		priority,
	)
	if err != nil {
		uc.Log.Warn("labOrderUsecase.notifyPatient publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, order.ID),
			zap.String(constvars.LoggingNotificationTypeKey, notificationType),
			zap.Error(err),
		)
	}
}

// buildLabOrderResponse joins the order with the patient, the laboratory and
// the prescription's tests. Cost fields come from the stored snapshot once
// the order has been confirmed; only new_request orders show live catalog
// pricing.
func (uc *labOrderUsecase) buildLabOrderResponse(ctx context.Context, order *models.LabOrder) (*responses.LabOrder, error) {
	response := &responses.LabOrder{
		ID:                           order.ID,
		Status:                       string(order.Status),
		PrescriptionID:               order.PrescriptionID,
		PatientID:                    order.PatientID,
		LaboratoryID:                 order.LaboratoryID,
		SampleCollectionType:         string(order.SampleCollectionType),
		TestsTotalCost:               order.TestsTotalCost,
		SampleCollectionDeliveryCost: order.SampleCollectionDeliveryCost,
		CancellationReason:           order.CancellationReason,
		RejectionReason:              order.RejectionReason,
		CreatedAt:                    order.CreatedAt,
		ConfirmedByLabAt:             order.ConfirmedByLabAt,
		PaidAt:                       order.PaidAt,
		SamplesCollectedAt:           order.SamplesCollectedAt,
		CancelledAt:                  order.CancelledAt,
		RejectedAt:                   order.RejectedAt,
	}

	patient, err := uc.CatalogService.PatientByID(ctx, order.PatientID)
	if err != nil {
		return nil, err
	}
	if patient != nil {
		response.PatientName = patient.FullName
	}

	laboratory, err := uc.CatalogService.LaboratoryByID(ctx, order.LaboratoryID)
	if err != nil {
		return nil, err
	}
	if laboratory != nil {
		response.LaboratoryName = laboratory.Name
	}

	items, err := uc.LabPrescriptionRepository.FindItemsByPrescriptionID(ctx, order.PrescriptionID)
	if err != nil {
		return nil, err
	}

	liveTotal := 0.0
	for _, item := range items {
		test := responses.LabOrderTest{
			LabTestID:      item.LabTestID,
			PhysicianNotes: item.PhysicianNotes,
		}
		labTest, err := uc.CatalogService.LabTestByID(ctx, item.LabTestID)
		if err != nil {
			return nil, err
		}
		if labTest != nil {
			test.Name = labTest.Name
			test.Category = labTest.Category
		}
		price, err := uc.CatalogService.PriceFor(ctx, order.LaboratoryID, item.LabTestID)
		if err != nil {
			return nil, err
		}
		if price != nil {
			test.Price = price.Price
			liveTotal += price.Price
		}
		response.Tests = append(response.Tests, test)
	}

	if order.Status == models.LabOrderNewRequest {
		response.TestsTotalCost = liveTotal
		if order.SampleCollectionType == models.SampleCollectionHomeVisit && laboratory != nil {
			response.SampleCollectionDeliveryCost = laboratory.HomeCollectionFee
		}
	}

	return response, nil
}
