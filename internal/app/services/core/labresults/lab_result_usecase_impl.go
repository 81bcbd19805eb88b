package labresults

import (
	"context"
	"io"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
	"medilab-service/internal/pkg/exceptions"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type labResultUsecase struct {
	LabResultRepository contracts.LabResultRepository
	LabOrderRepository  contracts.LabOrderRepository
	Storage             contracts.Storage
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

func NewLabResultUsecase(
	labResultRepository contracts.LabResultRepository,
	labOrderRepository contracts.LabOrderRepository,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.LabResultUsecase {
	return &labResultUsecase{
		LabResultRepository: labResultRepository,
		LabOrderRepository:  labOrderRepository,
		Storage:             storage,
		InternalConfig:      internalConfig,
		Log:                 logger,
	}
}

func (uc *labResultUsecase) CreateLabResult(ctx context.Context, orderID string, request *requests.CreateLabResult) (*responses.LabResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labResultUsecase.CreateLabResult called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingLabTestIDKey, request.LabTestID),
	)

	order, err := uc.LabOrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrLabOrderNotFound(orderID)
	}

	result := &models.LabResult{
		ID:             uuid.NewString(),
		OrderID:        order.ID,
		LabTestID:      request.LabTestID,
		Value:          request.Value,
		ReferenceRange: request.ReferenceRange,
		Unit:           request.Unit,
		Notes:          request.Notes,
	}

	created, err := uc.LabResultRepository.CreateLabResult(ctx, result)
	if err != nil {
		uc.Log.Error("labResultUsecase.CreateLabResult error creating result",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("labResultUsecase.CreateLabResult completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabResultIDKey, created.ID),
	)
	return buildLabResultResponse(created), nil
}

func (uc *labResultUsecase) UpdateLabResult(ctx context.Context, labResultID string, request *requests.UpdateLabResult) (*responses.LabResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labResultUsecase.UpdateLabResult called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabResultIDKey, labResultID),
	)

	result, err := uc.LabResultRepository.FindByID(ctx, labResultID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, exceptions.ErrLabResultNotFound(labResultID)
	}

	result.Value = request.Value
	result.ReferenceRange = request.ReferenceRange
	result.Unit = request.Unit
	result.Notes = request.Notes
	result.UpdatedAt = time.Now().UTC()

	updated, err := uc.LabResultRepository.UpdateLabResult(ctx, result)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("labResultUsecase.UpdateLabResult completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabResultIDKey, updated.ID),
	)
	return buildLabResultResponse(updated), nil
}

func (uc *labResultUsecase) FindByOrderID(ctx context.Context, orderID string) ([]responses.LabResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labResultUsecase.FindByOrderID called",
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

	results, err := uc.LabResultRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := make([]responses.LabResult, 0, len(results))
	for i := range results {
		response = append(response, *buildLabResultResponse(&results[i]))
	}
	return response, nil
}

func (uc *labResultUsecase) UploadResultDocument(ctx context.Context, labResultID string, file io.Reader, fileHeader *multipart.FileHeader) (*responses.LabResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labResultUsecase.UploadResultDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabResultIDKey, labResultID),
	)

	result, err := uc.LabResultRepository.FindByID(ctx, labResultID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, exceptions.ErrLabResultNotFound(labResultID)
	}

	bucket := uc.InternalConfig.Minio.BucketName
	objectName, err := uc.Storage.UploadFile(ctx, file, fileHeader, bucket)
	if err != nil {
		uc.Log.Error("labResultUsecase.UploadResultDocument upload failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, bucket),
			zap.Error(err),
		)
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHours) * time.Hour
	documentURL, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucket, objectName, expiry)
	if err != nil {
		return nil, err
	}

	result.DocumentURL = documentURL
	result.UpdatedAt = time.Now().UTC()

	updated, err := uc.LabResultRepository.UpdateLabResult(ctx, result)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("labResultUsecase.UploadResultDocument completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLabResultIDKey, updated.ID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return buildLabResultResponse(updated), nil
}

func buildLabResultResponse(result *models.LabResult) *responses.LabResult {
	return &responses.LabResult{
		ID:             result.ID,
		OrderID:        result.OrderID,
		LabTestID:      result.LabTestID,
		Value:          result.Value,
		ReferenceRange: result.ReferenceRange,
		Unit:           result.Unit,
		Notes:          result.Notes,
		DocumentURL:    result.DocumentURL,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}
}
