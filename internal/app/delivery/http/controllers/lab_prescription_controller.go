package controllers

import (
	"context"
	"encoding/json"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LabPrescriptionController struct {
	Log                    *zap.Logger
	LabPrescriptionUsecase contracts.LabPrescriptionUsecase
}

var (
	labPrescriptionControllerInstance *LabPrescriptionController
	onceLabPrescriptionController     sync.Once
)

func NewLabPrescriptionController(logger *zap.Logger, labPrescriptionUsecase contracts.LabPrescriptionUsecase) *LabPrescriptionController {
	onceLabPrescriptionController.Do(func() {
		instance := &LabPrescriptionController{
			Log:                    logger,
			LabPrescriptionUsecase: labPrescriptionUsecase,
		}
		labPrescriptionControllerInstance = instance
	})
	return labPrescriptionControllerInstance
}

func (ctrl *LabPrescriptionController) CreateLabPrescription(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.CreateLabPrescription)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("Failed to parse create lab prescription request",
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

	response, err := ctrl.LabPrescriptionUsecase.CreateLabPrescription(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "lab_prescription_created", requestID,
		zap.String(constvars.LoggingPrescriptionIDKey, response.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SuccessCreateLabPrescription, response)
}

func (ctrl *LabPrescriptionController) GetLabPrescriptionByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	prescriptionID := chi.URLParam(r, constvars.URLParamPrescriptionID)
	if prescriptionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamPrescriptionID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), labOrderRequestTimeout)
	defer cancel()

	response, err := ctrl.LabPrescriptionUsecase.FindByID(ctx, prescriptionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetLabPrescription, response)
}
