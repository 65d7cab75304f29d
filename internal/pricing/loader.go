package pricing

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/noah-isme/backend-tiket/internal/fare"
)

// LoadCatalogFile reads a YAML catalog from path and validates it.
func LoadCatalogFile(path string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	catalog, err := CatalogFromKoanf(k)
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// CatalogFromKoanf decodes the pricing.rules and pricing.discounts lists.
func CatalogFromKoanf(k *koanf.Koanf) (*Catalog, error) {
	catalog := &Catalog{}
	for i, item := range k.Slices("pricing.rules") {
		category, err := fare.ParseCategory(item.String("ticketType"))
		if err != nil {
			return nil, fmt.Errorf("%w: rules[%d]: %v", ErrInvalidCatalog, i, err)
		}
		price, err := decimalValue(item.Get("basePrice"))
		if err != nil {
			return nil, fmt.Errorf("%w: rules[%d].basePrice: %v", ErrInvalidCatalog, i, err)
		}
		catalog.Rules = append(catalog.Rules, PricingRule{Category: category, BasePrice: price})
	}

	for i, item := range k.Slices("pricing.discounts") {
		rule := DiscountRule{Name: strings.TrimSpace(item.String("name"))}
		if raw := strings.TrimSpace(item.String("applicableTicketType")); raw != "" {
			category, err := fare.ParseCategory(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: discounts[%d]: %v", ErrInvalidCatalog, i, err)
			}
			rule.Category = &category
		}
		percent, err := decimalValue(item.Get("discountPercentage"))
		if err != nil {
			return nil, fmt.Errorf("%w: discounts[%d].discountPercentage: %v", ErrInvalidCatalog, i, err)
		}
		rule.Percent = percent
		if item.Exists("minQuantity") && item.Get("minQuantity") != nil {
			q, err := cast.ToIntE(item.Get("minQuantity"))
			if err != nil {
				return nil, fmt.Errorf("%w: discounts[%d].minQuantity: %v", ErrInvalidCatalog, i, err)
			}
			rule.MinQuantity = &q
		}
		condition, err := ParseCondition(item.String("condition"))
		if err != nil {
			return nil, fmt.Errorf("discounts[%d]: %w", i, err)
		}
		rule.Condition = condition
		enabled, err := cast.ToBoolE(item.Get("enabled"))
		if err != nil {
			return nil, fmt.Errorf("%w: discounts[%d].enabled: %v", ErrInvalidCatalog, i, err)
		}
		rule.Enabled = enabled
		catalog.Discounts = append(catalog.Discounts, rule)
	}
	return catalog, nil
}

func decimalValue(raw any) (decimal.Decimal, error) {
	if raw == nil {
		return decimal.Zero, fmt.Errorf("value is required")
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}
