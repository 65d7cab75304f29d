package app_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-tiket/internal/app"
	"github.com/noah-isme/backend-tiket/internal/fare"
	"github.com/noah-isme/backend-tiket/internal/obs"
	"github.com/noah-isme/backend-tiket/internal/pricing"
)

const catalogYAML = `pricing:
  rules:
    - ticketType: ADULT
      basePrice: "%s"
    - ticketType: TEEN
      basePrice: "12.00"
    - ticketType: CHILD
      basePrice: "5.00"
    - ticketType: SENIOR
      basePrice: "25.00"
  discounts:
    - name: Group Discount
      discountPercentage: 15
      minQuantity: 4
      condition: GROUP_DISCOUNT
      enabled: true
`

func writeCatalog(t *testing.T, path, adult string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(catalogYAML, adult)), 0o600))
}

func TestReloaderSwapsValidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, "25.00")

	catalog, err := app.LoadCatalog(path)
	require.NoError(t, err)
	store, err := pricing.NewStore(catalog)
	require.NoError(t, err)

	metrics := obs.NewPricingMetrics("test", prometheus.NewRegistry())
	reloader := app.Reloader{Path: path, Store: store, Metrics: metrics, Logger: zerolog.Nop()}

	writeCatalog(t, path, "30.00")
	require.NoError(t, reloader.Reload())
	price, err := store.Service().BasePrice(fare.Adult)
	require.NoError(t, err)
	require.Equal(t, "30.00", price.StringFixed(2))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.CatalogReloads.WithLabelValues("ok")))
}

func TestReloaderKeepsPreviousCatalogOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, "25.00")
	catalog, err := app.LoadCatalog(path)
	require.NoError(t, err)
	store, err := pricing.NewStore(catalog)
	require.NoError(t, err)

	metrics := obs.NewPricingMetrics("test", prometheus.NewRegistry())
	reloader := app.Reloader{Path: path, Store: store, Metrics: metrics, Logger: zerolog.Nop()}

	writeCatalog(t, path, "-1.00")
	require.Error(t, reloader.Reload())
	price, err := store.Service().BasePrice(fare.Adult)
	require.NoError(t, err)
	require.Equal(t, "25.00", price.StringFixed(2))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.CatalogReloads.WithLabelValues("error")))
}

func TestLoadCatalogDefaultsToBuiltin(t *testing.T) {
	catalog, err := app.LoadCatalog("")
	require.NoError(t, err)
	require.Len(t, catalog.Rules, 4)
	require.Len(t, catalog.Discounts, 3)
}
