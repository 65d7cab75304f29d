package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-tiket/internal/fare"
)

var (
	// ErrNoPricingRule is returned when the catalog has no base price for a category.
	ErrNoPricingRule = errors.New("no pricing rule found")
	// ErrInvalidCatalog indicates the catalog data cannot be used for pricing.
	ErrInvalidCatalog = errors.New("invalid pricing catalog")
)

var hundred = decimal.NewFromInt(100)

// Condition selects how a discount decides eligibility.
type Condition string

const (
	// ByCategoryCount requires MinQuantity tickets of the rule's category.
	ByCategoryCount Condition = "BY_CATEGORY_COUNT"
	// ByCategoryMatch applies whenever the priced category equals the rule's category.
	ByCategoryMatch Condition = "BY_CATEGORY_MATCH"
	// ByTotalCount requires MinQuantity tickets across the whole transaction.
	ByTotalCount Condition = "BY_TOTAL_COUNT"
)

var conditionAliases = map[string]Condition{
	string(ByCategoryCount): ByCategoryCount,
	string(ByCategoryMatch): ByCategoryMatch,
	string(ByTotalCount):    ByTotalCount,
	"MIN_QUANTITY":          ByCategoryCount,
	"TICKET_TYPE":           ByCategoryMatch,
	"GROUP_DISCOUNT":        ByTotalCount,
}

// ParseCondition accepts canonical condition names and their legacy aliases.
func ParseCondition(value string) (Condition, error) {
	c, ok := conditionAliases[strings.ToUpper(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("%w: unknown discount condition %q", ErrInvalidCatalog, value)
	}
	return c, nil
}

// PricingRule sets the base unit price of one category.
type PricingRule struct {
	Category  fare.Category
	BasePrice decimal.Decimal
}

// DiscountRule describes a percentage discount. Category nil means any category.
type DiscountRule struct {
	Name        string
	Category    *fare.Category
	Percent     decimal.Decimal
	MinQuantity *int
	Condition   Condition
	Enabled     bool
}

func (r DiscountRule) minQuantity() int {
	if r.MinQuantity == nil {
		return 0
	}
	return *r.MinQuantity
}

// Catalog is the immutable set of base prices and ordered discounts used for pricing.
type Catalog struct {
	Rules     []PricingRule
	Discounts []DiscountRule
}

// BasePrice returns the first configured base price for the category.
func (c *Catalog) BasePrice(category fare.Category) (decimal.Decimal, error) {
	if c != nil {
		for _, rule := range c.Rules {
			if rule.Category == category {
				return rule.BasePrice, nil
			}
		}
	}
	return decimal.Zero, fmt.Errorf("%w for ticket type: %s", ErrNoPricingRule, category)
}

// Validate checks the catalog is complete and well formed.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: catalog is nil", ErrInvalidCatalog)
	}
	var problems []string
	seen := make(map[fare.Category]bool, len(c.Rules))
	for i, rule := range c.Rules {
		if !rule.Category.Valid() {
			problems = append(problems, fmt.Sprintf("rules[%d]: unknown ticket type %q", i, rule.Category))
			continue
		}
		if seen[rule.Category] {
			problems = append(problems, fmt.Sprintf("rules[%d]: duplicate ticket type %s", i, rule.Category))
		}
		seen[rule.Category] = true
		if rule.BasePrice.IsNegative() {
			problems = append(problems, fmt.Sprintf("rules[%d]: negative base price %s", i, rule.BasePrice))
		}
	}
	for _, category := range fare.Categories {
		if !seen[category] {
			problems = append(problems, fmt.Sprintf("missing pricing rule for ticket type %s", category))
		}
	}

	names := make(map[string]bool, len(c.Discounts))
	for i, d := range c.Discounts {
		name := strings.TrimSpace(d.Name)
		switch {
		case name == "":
			problems = append(problems, fmt.Sprintf("discounts[%d]: name is required", i))
		case names[name]:
			problems = append(problems, fmt.Sprintf("discounts[%d]: duplicate name %q", i, name))
		}
		names[name] = true
		if d.Percent.IsNegative() || d.Percent.GreaterThan(hundred) {
			problems = append(problems, fmt.Sprintf("discounts[%d]: percentage %s outside [0,100]", i, d.Percent))
		}
		if d.Category != nil && !d.Category.Valid() {
			problems = append(problems, fmt.Sprintf("discounts[%d]: unknown ticket type %q", i, *d.Category))
		}
		switch d.Condition {
		case ByTotalCount:
			if d.MinQuantity == nil {
				problems = append(problems, fmt.Sprintf("discounts[%d]: minQuantity is required", i))
			}
		case ByCategoryCount:
			if d.MinQuantity == nil {
				problems = append(problems, fmt.Sprintf("discounts[%d]: minQuantity is required", i))
			}
			if d.Category == nil {
				problems = append(problems, fmt.Sprintf("discounts[%d]: applicableTicketType is required", i))
			}
		case ByCategoryMatch:
			if d.Category == nil {
				problems = append(problems, fmt.Sprintf("discounts[%d]: applicableTicketType is required", i))
			}
		default:
			problems = append(problems, fmt.Sprintf("discounts[%d]: unknown condition %q", i, d.Condition))
		}
		if d.MinQuantity != nil && *d.MinQuantity < 0 {
			problems = append(problems, fmt.Sprintf("discounts[%d]: negative minQuantity", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return nil
}

// DefaultCatalog returns the built-in catalog used when no catalog file is configured.
func DefaultCatalog() *Catalog {
	senior := fare.Senior
	child := fare.Child
	childMin := 3
	groupMin := 4
	return &Catalog{
		Rules: []PricingRule{
			{Category: fare.Adult, BasePrice: decimal.RequireFromString("25.00")},
			{Category: fare.Teen, BasePrice: decimal.RequireFromString("12.00")},
			{Category: fare.Child, BasePrice: decimal.RequireFromString("5.00")},
			{Category: fare.Senior, BasePrice: decimal.RequireFromString("25.00")},
		},
		Discounts: []DiscountRule{
			{Name: "Senior Discount", Category: &senior, Percent: decimal.NewFromInt(30), Condition: ByCategoryMatch, Enabled: true},
			{Name: "Children Discount", Category: &child, Percent: decimal.NewFromInt(25), MinQuantity: &childMin, Condition: ByCategoryCount, Enabled: true},
			{Name: "Group Discount", Percent: decimal.NewFromInt(15), MinQuantity: &groupMin, Condition: ByTotalCount, Enabled: true},
		},
	}
}
