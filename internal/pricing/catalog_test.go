package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-tiket/internal/fare"
	"github.com/noah-isme/backend-tiket/internal/pricing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	require.NoError(t, pricing.DefaultCatalog().Validate())
}

func TestValidateReportsProblems(t *testing.T) {
	catalog := &pricing.Catalog{
		Rules: []pricing.PricingRule{
			{Category: fare.Adult, BasePrice: dec("25.00")},
			{Category: fare.Adult, BasePrice: dec("20.00")},
			{Category: fare.Child, BasePrice: dec("-1")},
		},
		Discounts: []pricing.DiscountRule{
			{Name: "Too Much", Percent: dec("150"), MinQuantity: intPtr(1), Condition: pricing.ByTotalCount},
			{Name: "Too Much", Percent: dec("5"), Condition: pricing.ByCategoryMatch},
			{Name: "", Percent: dec("5"), Condition: pricing.ByCategoryCount},
		},
	}
	err := catalog.Validate()
	require.ErrorIs(t, err, pricing.ErrInvalidCatalog)
	msg := err.Error()
	for _, want := range []string{
		"duplicate ticket type ADULT",
		"negative base price",
		"missing pricing rule for ticket type TEEN",
		"missing pricing rule for ticket type SENIOR",
		"outside [0,100]",
		"duplicate name \"Too Much\"",
		"name is required",
		"minQuantity is required",
		"applicableTicketType is required",
	} {
		require.Contains(t, msg, want)
	}
}

func TestParseConditionAliases(t *testing.T) {
	cases := map[string]pricing.Condition{
		"GROUP_DISCOUNT":    pricing.ByTotalCount,
		"min_quantity":      pricing.ByCategoryCount,
		"TICKET_TYPE":       pricing.ByCategoryMatch,
		"BY_TOTAL_COUNT":    pricing.ByTotalCount,
		"BY_CATEGORY_COUNT": pricing.ByCategoryCount,
		"BY_CATEGORY_MATCH": pricing.ByCategoryMatch,
	}
	for in, want := range cases {
		got, err := pricing.ParseCondition(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := pricing.ParseCondition("LOYALTY")
	require.ErrorIs(t, err, pricing.ErrInvalidCatalog)
}
