package catalog

import (
	"context"
	"fmt"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const priceCacheExpiry = 15 * time.Minute

type catalogService struct {
	CatalogRepository contracts.CatalogRepository
	RedisRepository   contracts.RedisRepository
	Log               *zap.Logger
}

// NewCatalogService wraps the catalog repository with a read-through price
// cache. Cache failures degrade to repository reads, never to request
// failures.
func NewCatalogService(
	catalogRepository contracts.CatalogRepository,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
) contracts.CatalogService {
	return &catalogService{
		CatalogRepository: catalogRepository,
		RedisRepository:   redisRepository,
		Log:               logger,
	}
}

func (svc *catalogService) LaboratoryByID(ctx context.Context, laboratoryID string) (*models.Laboratory, error) {
	return svc.CatalogRepository.FindLaboratoryByID(ctx, laboratoryID)
}

func (svc *catalogService) LabTestByID(ctx context.Context, labTestID string) (*models.LabTest, error) {
	return svc.CatalogRepository.FindLabTestByID(ctx, labTestID)
}

func (svc *catalogService) PriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cacheKey := fmt.Sprintf(constvars.RedisLabTestPriceKeyFormat, laboratoryID, labTestID)

	cached, err := svc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		svc.Log.Warn("catalogService.PriceFor cache read failed, falling back to repository",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	} else if cached != "" {
		var price models.LabTestPrice
		if unmarshalErr := json.Unmarshal([]byte(cached), &price); unmarshalErr == nil {
			return &price, nil
		}
	}

	return svc.fetchAndCachePrice(ctx, cacheKey, laboratoryID, labTestID)
}

// CurrentPriceFor bypasses the cache and reads the repository, refreshing
// the cached entry so the display path converges on the same price.
func (svc *catalogService) CurrentPriceFor(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	cacheKey := fmt.Sprintf(constvars.RedisLabTestPriceKeyFormat, laboratoryID, labTestID)
	return svc.fetchAndCachePrice(ctx, cacheKey, laboratoryID, labTestID)
}

func (svc *catalogService) fetchAndCachePrice(ctx context.Context, cacheKey, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	price, err := svc.CatalogRepository.FindPriceByLaboratoryAndTest(ctx, laboratoryID, labTestID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, nil
	}

	if setErr := svc.RedisRepository.Set(ctx, cacheKey, price, priceCacheExpiry); setErr != nil {
		svc.Log.Warn("catalogService price cache write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(setErr),
		)
	}

	return price, nil
}

func (svc *catalogService) PatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return svc.CatalogRepository.FindPatientByID(ctx, patientID)
}
