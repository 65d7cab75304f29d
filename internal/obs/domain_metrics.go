package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics counts ticket pricing outcomes.
type PricingMetrics struct {
	Transactions     *prometheus.CounterVec
	TicketsPriced    *prometheus.CounterVec
	DiscountsApplied *prometheus.CounterVec
	CatalogReloads   *prometheus.CounterVec
}

// NewPricingMetrics creates and registers pricing collectors on reg.
func NewPricingMetrics(namespace string, reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &PricingMetrics{
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_transactions_total",
			Help:      "Count of ticket transaction pricing outcomes.",
		}, []string{"result"}),
		TicketsPriced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_priced_total",
			Help:      "Number of tickets priced by fare category.",
		}, []string{"category"}),
		DiscountsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discounts_applied_total",
			Help:      "Number of tickets that received each discount.",
		}, []string{"discount"}),
		CatalogReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Count of pricing catalog reload attempts by outcome.",
		}, []string{"result"}),
	}
	for _, pair := range []struct {
		c   *prometheus.CounterVec
		dst **prometheus.CounterVec
	}{
		{m.Transactions, &m.Transactions},
		{m.TicketsPriced, &m.TicketsPriced},
		{m.DiscountsApplied, &m.DiscountsApplied},
		{m.CatalogReloads, &m.CatalogReloads},
	} {
		dst := pair.dst
		registerOrReuse(reg, pair.c, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				*dst = v
			}
		})
	}
	return m
}

// ObserveTransaction records a transaction outcome.
func (m *PricingMetrics) ObserveTransaction(result string) {
	if m == nil {
		return
	}
	m.Transactions.WithLabelValues(result).Inc()
}

// ObserveSegment records quantity tickets of category and the discounts they received.
func (m *PricingMetrics) ObserveSegment(category string, quantity int, discounts []string) {
	if m == nil || quantity <= 0 {
		return
	}
	m.TicketsPriced.WithLabelValues(category).Add(float64(quantity))
	for _, name := range discounts {
		m.DiscountsApplied.WithLabelValues(name).Add(float64(quantity))
	}
}

// ObserveCatalogReload records a catalog reload outcome.
func (m *PricingMetrics) ObserveCatalogReload(result string) {
	if m == nil {
		return
	}
	m.CatalogReloads.WithLabelValues(result).Inc()
}
