package labprescriptions

import (
	"context"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
	"medilab-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type labPrescriptionUsecase struct {
	LabPrescriptionRepository contracts.LabPrescriptionRepository
	CatalogService            contracts.CatalogService
	Log                       *zap.Logger
}

func NewLabPrescriptionUsecase(
	labPrescriptionRepository contracts.LabPrescriptionRepository,
	catalogService contracts.CatalogService,
	logger *zap.Logger,
) contracts.LabPrescriptionUsecase {
	return &labPrescriptionUsecase{
		LabPrescriptionRepository: labPrescriptionRepository,
		CatalogService:            catalogService,
		Log:                       logger,
	}
}

func (uc *labPrescriptionUsecase) CreateLabPrescription(ctx context.Context, request *requests.CreateLabPrescription) (*responses.LabPrescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labPrescriptionUsecase.CreateLabPrescription called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	for _, item := range request.Items {
		labTest, err := uc.CatalogService.LabTestByID(ctx, item.LabTestID)
		if err != nil {
			uc.Log.Error("labPrescriptionUsecase.CreateLabPrescription error fetching lab test",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingLabTestIDKey, item.LabTestID),
				zap.Error(err),
			)
			return nil, err
		}
		if labTest == nil {
			return nil, exceptions.ErrLabTestNotFound(item.LabTestID)
		}
	}

	prescription := &models.LabPrescription{
		ID:            uuid.NewString(),
		AppointmentID: request.AppointmentID,
		PatientID:     request.PatientID,
		DoctorID:      request.DoctorID,
	}
	for _, item := range request.Items {
		prescription.Items = append(prescription.Items, models.LabPrescriptionItem{
			LabTestID:      item.LabTestID,
			PhysicianNotes: item.PhysicianNotes,
		})
	}

	created, err := uc.LabPrescriptionRepository.CreateLabPrescription(ctx, prescription)
	if err != nil {
		uc.Log.Error("labPrescriptionUsecase.CreateLabPrescription error creating prescription",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("labPrescriptionUsecase.CreateLabPrescription completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, created.ID),
	)
	return uc.buildLabPrescriptionResponse(ctx, created)
}

func (uc *labPrescriptionUsecase) FindByID(ctx context.Context, prescriptionID string) (*responses.LabPrescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("labPrescriptionUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, prescriptionID),
	)

	prescription, err := uc.LabPrescriptionRepository.FindByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, exceptions.ErrLabPrescriptionNotFound(prescriptionID)
	}

	return uc.buildLabPrescriptionResponse(ctx, prescription)
}

func (uc *labPrescriptionUsecase) buildLabPrescriptionResponse(ctx context.Context, prescription *models.LabPrescription) (*responses.LabPrescription, error) {
	response := &responses.LabPrescription{
		ID:            prescription.ID,
		AppointmentID: prescription.AppointmentID,
		PatientID:     prescription.PatientID,
		DoctorID:      prescription.DoctorID,
		CreatedAt:     prescription.CreatedAt,
	}

	for _, item := range prescription.Items {
		responseItem := responses.LabPrescriptionItem{
			ID:             item.ID,
			LabTestID:      item.LabTestID,
			PhysicianNotes: item.PhysicianNotes,
		}
		labTest, err := uc.CatalogService.LabTestByID(ctx, item.LabTestID)
		if err != nil {
			return nil, err
		}
		if labTest != nil {
			responseItem.TestName = labTest.Name
		}
		response.Items = append(response.Items, responseItem)
	}

	return response, nil
}
