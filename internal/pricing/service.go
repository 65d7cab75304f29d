package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-tiket/internal/fare"
)

// Service prices fare categories against a single catalog snapshot.
type Service struct {
	catalog *Catalog
	engine  Engine
}

// NewService binds a pricing service to catalog.
func NewService(catalog *Catalog) *Service {
	if catalog == nil {
		catalog = &Catalog{}
	}
	return &Service{catalog: catalog, engine: Engine{Discounts: catalog.Discounts}}
}

// BasePrice returns the undiscounted unit price for category.
func (s *Service) BasePrice(category fare.Category) (decimal.Decimal, error) {
	return s.catalog.BasePrice(category)
}

// PriceCategory looks up the base price and applies the catalog discounts.
func (s *Service) PriceCategory(category fare.Category, counts fare.Counts) (Outcome, error) {
	base, err := s.BasePrice(category)
	if err != nil {
		return Outcome{}, err
	}
	return s.engine.ApplyDiscounts(category, base, counts), nil
}
