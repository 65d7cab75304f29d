package ticket

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/backend-tiket/internal/fare"
	"github.com/noah-isme/backend-tiket/internal/obs"
	"github.com/noah-isme/backend-tiket/internal/pricing"
)

// ErrInvalidTransaction marks a transaction the caller must correct.
var ErrInvalidTransaction = errors.New("invalid transaction")

// InvalidTransactionError carries the client-facing reason for ErrInvalidTransaction.
type InvalidTransactionError struct {
	Reason string
}

func (e *InvalidTransactionError) Error() string { return e.Reason }

// Is matches ErrInvalidTransaction.
func (e *InvalidTransactionError) Is(target error) bool { return target == ErrInvalidTransaction }

func invalid(format string, args ...any) error {
	return &InvalidTransactionError{Reason: fmt.Sprintf(format, args...)}
}

// Customer is one ticket holder.
type Customer struct {
	Name string
	Age  int
}

// Segment is the aggregate of all tickets of one category.
type Segment struct {
	Category  fare.Category
	Quantity  int
	TotalCost decimal.Decimal
}

// Result is a priced transaction. Segments are ordered by category name.
type Result struct {
	TransactionID int64
	TotalCost     decimal.Decimal
	Segments      []Segment
}

// Service prices whole transactions against the live catalog.
type Service struct {
	Catalogs *pricing.Store
	Metrics  *obs.PricingMetrics
}

// PriceTransaction classifies every customer, prices each category with the
// full transaction counts and sums the rounded segment totals. A failure in
// any category fails the whole transaction.
func (s *Service) PriceTransaction(ctx context.Context, id int64, customers []Customer) (Result, error) {
	_, span := otel.Tracer("ticket.Service").Start(ctx, "TicketService.PriceTransaction")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("ticket.transaction_id", id),
		attribute.Int("ticket.customers", len(customers)),
	)

	outcome := "error"
	defer func() {
		span.SetAttributes(attribute.String("ticket.result", outcome))
		s.Metrics.ObserveTransaction(outcome)
	}()

	if len(customers) == 0 {
		outcome = "invalid"
		return Result{}, invalid("Transaction must include at least one customer")
	}

	counts := fare.Counts{}
	for _, c := range customers {
		category, err := fare.Classify(c.Age)
		if err != nil {
			outcome = "invalid"
			return Result{}, invalid("Invalid age for customer: %s", c.Name)
		}
		counts[category]++
	}

	// one snapshot for every category so a concurrent reload cannot mix catalogs
	pricer := s.Catalogs.Service()

	categories := make([]fare.Category, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	segments := make([]Segment, 0, len(categories))
	applied := make([][]string, 0, len(categories))
	total := decimal.Zero.Round(2)
	for _, category := range categories {
		priced, err := pricer.PriceCategory(category, counts)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Result{}, fmt.Errorf("price %s tickets: %w", category, err)
		}
		quantity := counts[category]
		cost := priced.FinalPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
		segments = append(segments, Segment{Category: category, Quantity: quantity, TotalCost: cost})
		applied = append(applied, priced.AppliedDiscounts)
		total = total.Add(cost)
	}

	for i, seg := range segments {
		s.Metrics.ObserveSegment(seg.Category.String(), seg.Quantity, applied[i])
	}
	outcome = "ok"
	span.SetAttributes(attribute.String("ticket.total_cost", total.StringFixed(2)))
	return Result{TransactionID: id, TotalCost: total, Segments: segments}, nil
}
