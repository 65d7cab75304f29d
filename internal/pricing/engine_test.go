package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-tiket/internal/fare"
	"github.com/noah-isme/backend-tiket/internal/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(v int) *int { return &v }

func categoryPtr(c fare.Category) *fare.Category { return &c }

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "expected %s got %s", want, got)
}

func groupDiscount(percent string, min int) pricing.DiscountRule {
	return pricing.DiscountRule{
		Name:        "Group Discount",
		Percent:     dec(percent),
		MinQuantity: intPtr(min),
		Condition:   pricing.ByTotalCount,
		Enabled:     true,
	}
}

func seniorDiscount(percent string) pricing.DiscountRule {
	return pricing.DiscountRule{
		Name:      "Senior Discount",
		Category:  categoryPtr(fare.Senior),
		Percent:   dec(percent),
		Condition: pricing.ByCategoryMatch,
		Enabled:   true,
	}
}

func TestApplyDiscountsNoDiscounts(t *testing.T) {
	engine := pricing.Engine{}
	out := engine.ApplyDiscounts(fare.Adult, dec("25.00"), fare.Counts{fare.Adult: 1})
	requireAmount(t, "25.00", out.FinalPrice)
	require.Equal(t, "0.00", out.DiscountAmount.StringFixed(2))
	require.Empty(t, out.AppliedDiscounts)
	require.Equal(t, fare.Adult, out.Category)
}

func TestApplyDiscountsGroup(t *testing.T) {
	engine := pricing.Engine{Discounts: []pricing.DiscountRule{groupDiscount("10", 4)}}
	out := engine.ApplyDiscounts(fare.Adult, dec("25.00"), fare.Counts{fare.Adult: 4})
	requireAmount(t, "22.50", out.FinalPrice)
	requireAmount(t, "2.50", out.DiscountAmount)
	require.Equal(t, []string{"Group Discount"}, out.AppliedDiscounts)
}

func TestApplyDiscountsStacksOnRunningPrice(t *testing.T) {
	engine := pricing.Engine{Discounts: []pricing.DiscountRule{groupDiscount("10", 4), seniorDiscount("5")}}
	out := engine.ApplyDiscounts(fare.Senior, dec("15.00"), fare.Counts{fare.Senior: 4})
	// 15.00 -> 13.50 -> 13.50 - 0.675(0.68) = 12.82
	requireAmount(t, "12.82", out.FinalPrice)
	requireAmount(t, "2.18", out.DiscountAmount)
	require.Equal(t, []string{"Group Discount", "Senior Discount"}, out.AppliedDiscounts)
}

func TestApplyDiscountsGroupCountsAllCategories(t *testing.T) {
	engine := pricing.Engine{Discounts: []pricing.DiscountRule{groupDiscount("10", 4), seniorDiscount("5")}}
	out := engine.ApplyDiscounts(fare.Senior, dec("15.00"), fare.Counts{fare.Senior: 3, fare.Adult: 1})
	requireAmount(t, "12.82", out.FinalPrice)
	require.Len(t, out.AppliedDiscounts, 2)
}

func TestApplyDiscountsGroupIgnoresCategoryScope(t *testing.T) {
	rule := groupDiscount("10", 2)
	rule.Category = categoryPtr(fare.Child)
	engine := pricing.Engine{Discounts: []pricing.DiscountRule{rule}}
	out := engine.ApplyDiscounts(fare.Adult, dec("25.00"), fare.Counts{fare.Adult: 2})
	requireAmount(t, "22.50", out.FinalPrice)
}

func TestApplyDiscountsMinQuantity(t *testing.T) {
	rule := pricing.DiscountRule{
		Name:        "Child Group Discount",
		Category:    categoryPtr(fare.Child),
		Percent:     dec("10"),
		MinQuantity: intPtr(4),
		Condition:   pricing.ByCategoryCount,
		Enabled:     true,
	}
	engine := pricing.Engine{Discounts: []pricing.DiscountRule{rule}}

	out := engine.ApplyDiscounts(fare.Child, dec("25.00"), fare.Counts{fare.Child: 4})
	requireAmount(t, "22.50", out.FinalPrice)
	requireAmount(t, "2.50", out.DiscountAmount)

	out = engine.ApplyDiscounts(fare.Child, dec("25.00"), fare.Counts{fare.Child: 3, fare.Adult: 5})
	requireAmount(t, "25.00", out.FinalPrice)
	require.Empty(t, out.AppliedDiscounts)
}

func TestApplyDiscountsTicketTypeOnlyMatchingCategory(t *testing.T) {
	engine := pricing.Engine{Discounts: []pricing.DiscountRule{seniorDiscount("5")}}

	out := engine.ApplyDiscounts(fare.Senior, dec("15.00"), fare.Counts{fare.Senior: 1})
	requireAmount(t, "14.25", out.FinalPrice)
	requireAmount(t, "0.75", out.DiscountAmount)

	out = engine.ApplyDiscounts(fare.Adult, dec("25.00"), fare.Counts{fare.Adult: 2})
	requireAmount(t, "25.00", out.FinalPrice)
	require.Empty(t, out.AppliedDiscounts)
}

func TestApplyDiscountsSkipsDisabled(t *testing.T) {
	disabled := pricing.DiscountRule{
		Name:        "Disabled Discount",
		Percent:     dec("50"),
		MinQuantity: intPtr(1),
		Condition:   pricing.ByTotalCount,
		Enabled:     false,
	}
	engine := pricing.Engine{Discounts: []pricing.DiscountRule{disabled}}
	out := engine.ApplyDiscounts(fare.Adult, dec("25.00"), fare.Counts{fare.Adult: 5})
	requireAmount(t, "25.00", out.FinalPrice)
	require.NotContains(t, out.AppliedDiscounts, "Disabled Discount")
}

func TestApplyDiscountsCompoundsRatherThanAdds(t *testing.T) {
	a := groupDiscount("20", 1)
	b := pricing.DiscountRule{Name: "Adult Saver", Category: categoryPtr(fare.Adult), Percent: dec("20"), Condition: pricing.ByCategoryMatch, Enabled: true}

	both := pricing.Engine{Discounts: []pricing.DiscountRule{a, b}}.ApplyDiscounts(fare.Adult, dec("25.00"), fare.Counts{fare.Adult: 1})
	single := pricing.Engine{Discounts: []pricing.DiscountRule{a}}.ApplyDiscounts(fare.Adult, dec("25.00"), fare.Counts{fare.Adult: 1})

	requireAmount(t, "16.00", both.FinalPrice)
	requireAmount(t, "20.00", single.FinalPrice)
	require.True(t, both.FinalPrice.LessThan(single.FinalPrice))
	// An additive 40% would give 15.00.
	require.False(t, both.FinalPrice.Equal(dec("15.00")))
}

func TestApplyDiscountsMonotonicInPercent(t *testing.T) {
	previous := dec("25.00")
	for p := 0; p <= 100; p += 5 {
		rule := groupDiscount(decimal.NewFromInt(int64(p)).String(), 1)
		out := pricing.Engine{Discounts: []pricing.DiscountRule{rule}}.ApplyDiscounts(fare.Adult, dec("25.00"), fare.Counts{fare.Adult: 1})
		require.Falsef(t, out.FinalPrice.GreaterThan(previous), "percent %d raised price to %s", p, out.FinalPrice)
		previous = out.FinalPrice
	}
	requireAmount(t, "0", previous)
}

func TestApplyDiscountsNeverNegative(t *testing.T) {
	rules := []pricing.DiscountRule{groupDiscount("100", 1), seniorDiscount("100")}
	out := pricing.Engine{Discounts: rules}.ApplyDiscounts(fare.Senior, dec("15.00"), fare.Counts{fare.Senior: 1})
	requireAmount(t, "0", out.FinalPrice)
	requireAmount(t, "15.00", out.DiscountAmount)
}

func TestComputeRoundsHalfUp(t *testing.T) {
	requireAmount(t, "0.68", pricing.Compute(dec("13.50"), dec("5")))
	requireAmount(t, "0.56", pricing.Compute(dec("3.75"), dec("15")))
	requireAmount(t, "0.00", pricing.Compute(dec("0"), dec("15")))
	requireAmount(t, "0.00", pricing.Compute(dec("10"), dec("0")))
}
