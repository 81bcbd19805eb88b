package contracts

import (
	"context"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
	"io"
	"mime/multipart"
)

type LabResultRepository interface {
	CreateLabResult(ctx context.Context, result *models.LabResult) (*models.LabResult, error)
	FindByID(ctx context.Context, labResultID string) (*models.LabResult, error)
	FindByOrderID(ctx context.Context, orderID string) ([]models.LabResult, error)
	UpdateLabResult(ctx context.Context, result *models.LabResult) (*models.LabResult, error)
}

type LabResultUsecase interface {
	CreateLabResult(ctx context.Context, orderID string, request *requests.CreateLabResult) (*responses.LabResult, error)
	UpdateLabResult(ctx context.Context, labResultID string, request *requests.UpdateLabResult) (*responses.LabResult, error)
	FindByOrderID(ctx context.Context, orderID string) ([]responses.LabResult, error)
	UploadResultDocument(ctx context.Context, labResultID string, file io.Reader, fileHeader *multipart.FileHeader) (*responses.LabResult, error)
}
