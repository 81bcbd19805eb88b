package controllers

import (
	"context"
	"encoding/json"
	"medilab-service/internal/app/config"
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

type LabResultController struct {
	Log              *zap.Logger
	LabResultUsecase contracts.LabResultUsecase
	InternalConfig   *config.InternalConfig
}

var (
	labResultControllerInstance *LabResultController
	onceLabResultController     sync.Once
)

func NewLabResultController(logger *zap.Logger, labResultUsecase contracts.LabResultUsecase, internalConfig *config.InternalConfig) *LabResultController {
	onceLabResultController.Do(func() {
		instance := &LabResultController{
			Log:              logger,
			LabResultUsecase: labResultUsecase,
			InternalConfig:   internalConfig,
		}
		labResultControllerInstance = instance
	})
	return labResultControllerInstance
}

func (ctrl *LabResultController) CreateLabResult(w http.ResponseWriter, r *http.Request) {
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

	request := new(requests.CreateLabResult)
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

	response, err := ctrl.LabResultUsecase.CreateLabResult(ctx, orderID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "lab_result_created", requestID,
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingLabResultIDKey, response.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SuccessCreateLabResult, response)
}

func (ctrl *LabResultController) GetLabResultsByOrderID(w http.ResponseWriter, r *http.Request) {
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

	response, err := ctrl.LabResultUsecase.FindByOrderID(ctx, orderID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetLabResults, response)
}

func (ctrl *LabResultController) UpdateLabResult(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	labResultID := chi.URLParam(r, constvars.URLParamLabResultID)
	if labResultID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamLabResultID))
		return
	}

	request := new(requests.UpdateLabResult)
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

	response, err := ctrl.LabResultUsecase.UpdateLabResult(ctx, labResultID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessUpdateLabResult, response)
}

func (ctrl *LabResultController) UploadResultDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	labResultID := chi.URLParam(r, constvars.URLParamLabResultID)
	if labResultID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamLabResultID))
		return
	}

	maxUploadBytes := int64(ctrl.InternalConfig.Minio.ResultDocumentMaxUploadSizeInMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	file, fileHeader, err := r.FormFile("document")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), labOrderRequestTimeout)
	defer cancel()

	response, err := ctrl.LabResultUsecase.UploadResultDocument(ctx, labResultID, file, fileHeader)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "lab_result_document_uploaded", requestID,
		zap.String(constvars.LoggingLabResultIDKey, labResultID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessUploadResultDocument, response)
}
