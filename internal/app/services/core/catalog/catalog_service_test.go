package catalog

import (
	"context"
	"errors"
	"medilab-service/internal/app/models"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeCatalogRepository struct {
	prices     map[string]*models.LabTestPrice
	priceReads int
}

func (r *fakeCatalogRepository) FindLaboratoryByID(ctx context.Context, laboratoryID string) (*models.Laboratory, error) {
	return nil, nil
}

func (r *fakeCatalogRepository) FindLabTestByID(ctx context.Context, labTestID string) (*models.LabTest, error) {
	return nil, nil
}

func (r *fakeCatalogRepository) FindPriceByLaboratoryAndTest(ctx context.Context, laboratoryID, labTestID string) (*models.LabTestPrice, error) {
	r.priceReads++
	return r.prices[laboratoryID+"|"+labTestID], nil
}

func (r *fakeCatalogRepository) FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return nil, nil
}

type fakeRedisRepository struct {
	values map[string]string
	getErr error
	setErr error
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{values: make(map[string]string)}
}

func (r *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	delete(r.values, key)
	return nil
}

func (r *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	if r.setErr != nil {
		return r.setErr
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(encoded)
	return nil
}

func (r *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	if r.getErr != nil {
		return "", r.getErr
	}
	return r.values[key], nil
}

func (r *fakeRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	if _, exists := r.values[key]; exists {
		return false, nil
	}
	return true, r.Set(ctx, key, value, exp)
}

func newCatalogFixture() (*catalogService, *fakeCatalogRepository, *fakeRedisRepository) {
	repo := &fakeCatalogRepository{
		prices: map[string]*models.LabTestPrice{
			"lab-1|test-cbc": {LaboratoryID: "lab-1", LabTestID: "test-cbc", Price: 100},
		},
	}
	cache := newFakeRedisRepository()
	service := &catalogService{
		CatalogRepository: repo,
		RedisRepository:   cache,
		Log:               zap.NewNop(),
	}
	return service, repo, cache
}

func TestPriceFor(t *testing.T) {
	t.Run("serves the second lookup from cache", func(t *testing.T) {
		service, repo, _ := newCatalogFixture()

		first, err := service.PriceFor(context.Background(), "lab-1", "test-cbc")
		assert.NoError(t, err)
		assert.Equal(t, 100.0, first.Price)

		second, err := service.PriceFor(context.Background(), "lab-1", "test-cbc")
		assert.NoError(t, err)
		assert.Equal(t, 100.0, second.Price)
		assert.Equal(t, 1, repo.priceReads, "second lookup should not hit the repository")
	})

	t.Run("falls back to the repository when the cache read fails", func(t *testing.T) {
		service, repo, cache := newCatalogFixture()
		cache.getErr = errors.New("connection refused")

		price, err := service.PriceFor(context.Background(), "lab-1", "test-cbc")

		assert.NoError(t, err)
		assert.Equal(t, 100.0, price.Price)
		assert.Equal(t, 1, repo.priceReads)
	})

	t.Run("a cache write failure does not fail the lookup", func(t *testing.T) {
		service, _, cache := newCatalogFixture()
		cache.setErr = errors.New("connection refused")

		price, err := service.PriceFor(context.Background(), "lab-1", "test-cbc")

		assert.NoError(t, err)
		assert.Equal(t, 100.0, price.Price)
	})

	t.Run("an unpriced pair yields nil without error", func(t *testing.T) {
		service, _, _ := newCatalogFixture()

		price, err := service.PriceFor(context.Background(), "lab-1", "test-unknown")

		assert.NoError(t, err)
		assert.Nil(t, price)
	})
}

func TestCurrentPriceFor(t *testing.T) {
	t.Run("ignores a stale cached price", func(t *testing.T) {
		service, repo, _ := newCatalogFixture()

		cached, err := service.PriceFor(context.Background(), "lab-1", "test-cbc")
		assert.NoError(t, err)
		assert.Equal(t, 100.0, cached.Price)

		repo.prices["lab-1|test-cbc"] = &models.LabTestPrice{LaboratoryID: "lab-1", LabTestID: "test-cbc", Price: 150}

		current, err := service.CurrentPriceFor(context.Background(), "lab-1", "test-cbc")
		assert.NoError(t, err)
		assert.Equal(t, 150.0, current.Price, "confirmation pricing must reflect the current catalog")
		assert.Equal(t, 2, repo.priceReads)
	})

	t.Run("refreshes the cached entry for the display path", func(t *testing.T) {
		service, repo, _ := newCatalogFixture()

		_, err := service.PriceFor(context.Background(), "lab-1", "test-cbc")
		assert.NoError(t, err)

		repo.prices["lab-1|test-cbc"] = &models.LabTestPrice{LaboratoryID: "lab-1", LabTestID: "test-cbc", Price: 150}

		_, err = service.CurrentPriceFor(context.Background(), "lab-1", "test-cbc")
		assert.NoError(t, err)

		display, err := service.PriceFor(context.Background(), "lab-1", "test-cbc")
		assert.NoError(t, err)
		assert.Equal(t, 150.0, display.Price)
		assert.Equal(t, 2, repo.priceReads, "the refreshed entry should serve the display lookup")
	})

	t.Run("an unpriced pair yields nil without error", func(t *testing.T) {
		service, _, _ := newCatalogFixture()

		price, err := service.CurrentPriceFor(context.Background(), "lab-1", "test-unknown")

		assert.NoError(t, err)
		assert.Nil(t, price)
	})
}
