package pricing_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-tiket/internal/fare"
	"github.com/noah-isme/backend-tiket/internal/pricing"
)

const catalogYAML = `
pricing:
  rules:
    - ticketType: ADULT
      basePrice: "25.00"
    - ticketType: TEEN
      basePrice: 12
    - ticketType: CHILD
      basePrice: 5.5
    - ticketType: SENIOR
      basePrice: "15.00"
  discounts:
    - name: Group Discount
      discountPercentage: 10
      minQuantity: 4
      condition: GROUP_DISCOUNT
      enabled: true
    - name: Senior Discount
      applicableTicketType: SENIOR
      discountPercentage: "5"
      condition: TICKET_TYPE
      enabled: true
    - name: Weekday Children
      applicableTicketType: child
      discountPercentage: 20
      minQuantity: "2"
      condition: BY_CATEGORY_COUNT
      enabled: false
`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCatalogFile(t *testing.T) {
	catalog, err := pricing.LoadCatalogFile(writeCatalog(t, catalogYAML))
	require.NoError(t, err)
	require.Len(t, catalog.Rules, 4)
	require.Len(t, catalog.Discounts, 3)

	child, err := catalog.BasePrice(fare.Child)
	require.NoError(t, err)
	requireAmount(t, "5.50", child)

	group := catalog.Discounts[0]
	require.Equal(t, pricing.ByTotalCount, group.Condition)
	require.Nil(t, group.Category)
	require.Equal(t, 4, *group.MinQuantity)
	require.True(t, group.Enabled)

	senior := catalog.Discounts[1]
	require.Equal(t, fare.Senior, *senior.Category)
	require.Nil(t, senior.MinQuantity)
	requireAmount(t, "5", senior.Percent)

	weekday := catalog.Discounts[2]
	require.Equal(t, fare.Child, *weekday.Category)
	require.Equal(t, 2, *weekday.MinQuantity)
	require.False(t, weekday.Enabled)

	out, err := pricing.NewService(catalog).PriceCategory(fare.Senior, fare.Counts{fare.Senior: 4})
	require.NoError(t, err)
	requireAmount(t, "12.82", out.FinalPrice)
}

func TestLoadCatalogFileMissing(t *testing.T) {
	_, err := pricing.LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadCatalogFileInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad ticket type": `
pricing:
  rules:
    - ticketType: INFANT
      basePrice: 1
`,
		"bad price": `
pricing:
  rules:
    - ticketType: ADULT
      basePrice: cheap
`,
		"bad condition": `
pricing:
  discounts:
    - name: X
      discountPercentage: 1
      condition: LOYALTY
`,
		"incomplete": `
pricing:
  rules:
    - ticketType: ADULT
      basePrice: 25
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pricing.LoadCatalogFile(writeCatalog(t, body))
			require.ErrorIs(t, err, pricing.ErrInvalidCatalog)
		})
	}
}

func TestShippedCatalogMatchesDefault(t *testing.T) {
	loaded, err := pricing.LoadCatalogFile("../../configs/pricing.yaml")
	require.NoError(t, err)
	builtin := pricing.DefaultCatalog()

	require.Len(t, loaded.Rules, len(builtin.Rules))
	for _, category := range fare.Categories {
		want, err := builtin.BasePrice(category)
		require.NoError(t, err)
		got, err := loaded.BasePrice(category)
		require.NoError(t, err)
		requireAmount(t, want.StringFixed(2), got)
	}

	require.Len(t, loaded.Discounts, len(builtin.Discounts))
	for i, d := range builtin.Discounts {
		require.Equal(t, d.Name, loaded.Discounts[i].Name)
		require.Equal(t, d.Condition, loaded.Discounts[i].Condition)
		requireAmount(t, d.Percent.String(), loaded.Discounts[i].Percent)
	}
}
