package controllers

import (
	"context"
	"encoding/json"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const labOrderRequestTimeout = 10 * time.Second

type LabOrderController struct {
	Log             *zap.Logger
	LabOrderUsecase contracts.LabOrderUsecase
}

var (
	labOrderControllerInstance *LabOrderController
	onceLabOrderController     sync.Once
)

func NewLabOrderController(logger *zap.Logger, labOrderUsecase contracts.LabOrderUsecase) *LabOrderController {
	onceLabOrderController.Do(func() {
		instance := &LabOrderController{
			Log:             logger,
			LabOrderUsecase: labOrderUsecase,
		}
		labOrderControllerInstance = instance
	})
	return labOrderControllerInstance
}

func (ctrl *LabOrderController) CreateLabOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.CreateLabOrder)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("Failed to parse create lab order request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), labOrderRequestTimeout)
	defer cancel()

	response, err := ctrl.LabOrderUsecase.CreateLabOrder(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "lab_order_created", requestID,
		zap.String(constvars.LoggingOrderIDKey, response.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SuccessCreateLabOrder, response)
}

func (ctrl *LabOrderController) GetLabOrderByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	orderID := chi.URLParam(r, constvars.URLParamOrderID)
	if orderID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamOrderID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), labOrderRequestTimeout)
	defer cancel()

	response, err := ctrl.LabOrderUsecase.FindByID(ctx, orderID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetLabOrder, response)
}

func (ctrl *LabOrderController) GetLabOrders(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session := middlewares.SessionFromContext(r.Context())
	if session == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	query := utils.BuildLabOrderQuery(r)

	ctx, cancel := context.WithTimeout(r.Context(), labOrderRequestTimeout)
	defer cancel()

	response, err := ctrl.LabOrderUsecase.FindAll(ctx, session, query)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetLabOrders, response)
}

func (ctrl *LabOrderController) ConfirmLabOrder(w http.ResponseWriter, r *http.Request) {
	ctrl.runTransition(w, r, "lab_order_confirmed", constvars.SuccessConfirmLabOrder, ctrl.LabOrderUsecase.Confirm)
}

func (ctrl *LabOrderController) MarkLabOrderPaid(w http.ResponseWriter, r *http.Request) {
	ctrl.runTransition(w, r, "lab_order_marked_paid", constvars.SuccessMarkLabOrderPaid, ctrl.LabOrderUsecase.MarkPaid)
}

func (ctrl *LabOrderController) MarkSamplesCollected(w http.ResponseWriter, r *http.Request) {
	ctrl.runTransition(w, r, "lab_order_samples_collected", constvars.SuccessMarkSamplesCollected, ctrl.LabOrderUsecase.MarkSampleCollected)
}

func (ctrl *LabOrderController) StartLabWork(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session := middlewares.SessionFromContext(r.Context())
	if session == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	orderID := chi.URLParam(r, constvars.URLParamOrderID)
	if orderID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamOrderID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), labOrderRequestTimeout)
	defer cancel()

	response, err := ctrl.LabOrderUsecase.StartLabWork(ctx, orderID, session.LaboratoryID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "lab_work_started", requestID,
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingLaboratoryIDKey, session.LaboratoryID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessStartLabWork, response)
}

func (ctrl *LabOrderController) MarkLabOrderInProgress(w http.ResponseWriter, r *http.Request) {
	ctrl.runTransition(w, r, "lab_order_in_progress", constvars.SuccessStartLabWork, ctrl.LabOrderUsecase.MarkInProgress)
}

func (ctrl *LabOrderController) MarkResultsReady(w http.ResponseWriter, r *http.Request) {
	ctrl.runTransition(w, r, "lab_order_results_ready", constvars.SuccessMarkResultsReady, ctrl.LabOrderUsecase.MarkResultsReady)
}

func (ctrl *LabOrderController) CompleteLabOrder(w http.ResponseWriter, r *http.Request) {
	ctrl.runTransition(w, r, "lab_order_completed", constvars.SuccessCompleteLabOrder, ctrl.LabOrderUsecase.Complete)
}

func (ctrl *LabOrderController) CancelLabOrder(w http.ResponseWriter, r *http.Request) {
	ctrl.runReasonedTransition(w, r, "lab_order_cancelled", constvars.SuccessCancelLabOrder, ctrl.LabOrderUsecase.Cancel)
}

func (ctrl *LabOrderController) RejectLabOrder(w http.ResponseWriter, r *http.Request) {
	ctrl.runReasonedTransition(w, r, "lab_order_rejected", constvars.SuccessRejectLabOrder, ctrl.LabOrderUsecase.Reject)
}

func (ctrl *LabOrderController) DeleteLabOrderByAdmin(w http.ResponseWriter, r *http.Request) {
	ctrl.runTransition(w, r, "lab_order_deleted_by_admin", constvars.SuccessDeleteLabOrder, ctrl.LabOrderUsecase.DeleteByAdmin)
}

func (ctrl *LabOrderController) runTransition(
	w http.ResponseWriter,
	r *http.Request,
	event string,
	successMessage string,
	operation func(ctx context.Context, orderID string) (*responses.LabOrder, error),
) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	orderID := chi.URLParam(r, constvars.URLParamOrderID)
	if orderID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamOrderID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), labOrderRequestTimeout)
	defer cancel()

	response, err := operation(ctx, orderID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, event, requestID,
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingOrderStatusKey, response.Status),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, response)
}

func (ctrl *LabOrderController) runReasonedTransition(
	w http.ResponseWriter,
	r *http.Request,
	event string,
	successMessage string,
	operation func(ctx context.Context, orderID, reason string) (*responses.LabOrder, error),
) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	orderID := chi.URLParam(r, constvars.URLParamOrderID)
	if orderID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamOrderID))
		return
	}

	request := new(requests.CancelLabOrder)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), labOrderRequestTimeout)
	defer cancel()

	response, err := operation(ctx, orderID, request.Reason)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, event, requestID,
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingOrderStatusKey, response.Status),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, response)
}
