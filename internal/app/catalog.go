package app

import (
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-tiket/internal/obs"
	"github.com/noah-isme/backend-tiket/internal/pricing"
)

// LoadCatalog reads the catalog file, or returns the built-in catalog when
// path is empty.
func LoadCatalog(path string) (*pricing.Catalog, error) {
	if path == "" {
		return pricing.DefaultCatalog(), nil
	}
	return pricing.LoadCatalogFile(path)
}

func catalogSource(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

// Reloader re-reads the catalog file into the store. A catalog that fails to
// load or validate leaves the current one in place.
type Reloader struct {
	Path    string
	Store   *pricing.Store
	Metrics *obs.PricingMetrics
	Logger  zerolog.Logger
}

// Reload performs a single reload attempt.
func (r Reloader) Reload() error {
	catalog, err := LoadCatalog(r.Path)
	if err == nil {
		err = r.Store.Swap(catalog)
	}
	if err != nil {
		r.Metrics.ObserveCatalogReload("error")
		r.Logger.Error().Err(err).Str("source", catalogSource(r.Path)).Msg("pricing catalog reload failed; keeping previous catalog")
		return err
	}
	r.Metrics.ObserveCatalogReload("ok")
	r.Logger.Info().
		Str("source", catalogSource(r.Path)).
		Int("rules", len(catalog.Rules)).
		Int("discounts", len(catalog.Discounts)).
		Msg("pricing catalog reloaded")
	return nil
}
