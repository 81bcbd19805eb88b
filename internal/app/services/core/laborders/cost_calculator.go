package laborders

import (
	"context"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/exceptions"
)

// orderCost is the cost snapshot captured at laboratory confirmation. It is
// written to the order row once and never recomputed afterwards.
type orderCost struct {
	TestsTotal   float64
	DeliveryCost float64
}

func (c orderCost) Total() float64 {
	return c.TestsTotal + c.DeliveryCost
}

type costCalculator struct {
	CatalogService contracts.CatalogService
}

// Calculate prices every prescription item at the chosen laboratory and adds
// the laboratory's home collection fee when home collection was requested.
// Prices come from the repository, not the display cache, so the snapshot
// reflects the catalog at the moment of confirmation. A test the laboratory
// does not price fails the calculation rather than silently contributing
// zero.
func (c *costCalculator) Calculate(
	ctx context.Context,
	laboratory *models.Laboratory,
	items []models.LabPrescriptionItem,
	collectionType models.SampleCollectionType,
) (*orderCost, error) {
	cost := &orderCost{}

	for _, item := range items {
		price, err := c.CatalogService.CurrentPriceFor(ctx, laboratory.ID, item.LabTestID)
		if err != nil {
			return nil, err
		}
		if price == nil {
			return nil, exceptions.ErrLabTestNotPriced(laboratory.ID, item.LabTestID)
		}
		cost.TestsTotal += price.Price
	}

	if collectionType == models.SampleCollectionHomeVisit {
		if !laboratory.HasHomeCollection {
			return nil, exceptions.ErrHomeCollectionUnavailable(laboratory.ID)
		}
		cost.DeliveryCost = laboratory.HomeCollectionFee
	}

	return cost, nil
}
