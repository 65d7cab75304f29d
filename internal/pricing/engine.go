package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-tiket/internal/fare"
)

// Outcome is the discounted unit price of one category.
type Outcome struct {
	Category         fare.Category
	BasePrice        decimal.Decimal
	FinalPrice       decimal.Decimal
	DiscountAmount   decimal.Decimal
	AppliedDiscounts []string
}

// Engine evaluates an ordered discount list against a unit price.
type Engine struct {
	Discounts []DiscountRule
}

// ApplyDiscounts stacks every eligible discount in catalog order. Each discount
// is taken from the price left by the previous ones and rounded half-up to cents.
func (e Engine) ApplyDiscounts(category fare.Category, basePrice decimal.Decimal, counts fare.Counts) Outcome {
	applied := []string{}
	current := basePrice
	total := decimal.Zero.Round(2)

	for _, rule := range e.Discounts {
		if !rule.Enabled || !Eligible(rule, category, counts) {
			continue
		}
		amount := Compute(current, rule.Percent)
		current = current.Sub(amount)
		total = total.Add(amount)
		applied = append(applied, rule.Name)
	}

	return Outcome{
		Category:         category,
		BasePrice:        basePrice,
		FinalPrice:       current,
		DiscountAmount:   total,
		AppliedDiscounts: applied,
	}
}

// Eligible reports whether rule applies to category given the whole-transaction counts.
func Eligible(rule DiscountRule, category fare.Category, counts fare.Counts) bool {
	if rule.Condition == ByTotalCount {
		return counts.Total() >= rule.minQuantity()
	}
	if rule.Category != nil && *rule.Category != category {
		return false
	}
	switch rule.Condition {
	case ByCategoryCount:
		if rule.Category == nil {
			return false
		}
		return counts[*rule.Category] >= rule.minQuantity()
	case ByCategoryMatch:
		return rule.Category != nil && *rule.Category == category
	default:
		return false
	}
}

// Compute returns percent% of price rounded half-up to two places, capped at price.
func Compute(price, percent decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() || !percent.IsPositive() {
		return decimal.Zero.Round(2)
	}
	amount := price.Mul(percent).DivRound(hundred, 2)
	if amount.GreaterThan(price) {
		return price
	}
	return amount
}
