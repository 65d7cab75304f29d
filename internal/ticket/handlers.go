package ticket

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-tiket/internal/common"
	"github.com/noah-isme/backend-tiket/internal/fare"
	"github.com/noah-isme/backend-tiket/internal/pricing"
)

// Handler exposes the ticket pricing endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// NewHandler builds a handler with the shared request validator.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, Validate: common.NewValidator()}
}

type transactionRequest struct {
	TransactionID *int64            `json:"transactionId" validate:"required,min=1"`
	Customers     []customerRequest `json:"customers" validate:"required,min=1,dive"`
}

type customerRequest struct {
	Name string `json:"name" validate:"notblank"`
	Age  *int   `json:"age" validate:"required,min=0"`
}

type transactionResponse struct {
	TransactionID int64           `json:"transactionId"`
	TotalCost     json.Number     `json:"totalCost"`
	Tickets       []ticketSegment `json:"tickets"`
}

type ticketSegment struct {
	TicketType string      `json:"ticketType"`
	Quantity   int         `json:"quantity"`
	TotalCost  json.Number `json:"totalCost"`
}

type basePrice struct {
	TicketType string      `json:"ticketType"`
	BasePrice  json.Number `json:"basePrice"`
}

// CreateTransaction prices a batch of customers.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "Malformed request body", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeValidationFailed, "Validation failed", common.ValidationDetails(err))
		return
	}

	customers := make([]Customer, len(req.Customers))
	for i, c := range req.Customers {
		customers[i] = Customer{Name: c.Name, Age: *c.Age}
	}

	result, err := h.Svc.PriceTransaction(r.Context(), *req.TransactionID, customers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.Info().
		Int64("transaction_id", result.TransactionID).
		Int("customers", len(customers)).
		Str("total_cost", result.TotalCost.StringFixed(2)).
		Msg("ticket transaction priced")
	common.JSON(w, http.StatusOK, toResponse(result))
}

// Prices lists the base price of every fare category in the live catalog.
func (h *Handler) Prices(w http.ResponseWriter, r *http.Request) {
	pricer := h.Svc.Catalogs.Service()
	prices := make([]basePrice, 0, len(fare.Categories))
	for _, category := range fare.Categories {
		price, err := pricer.BasePrice(category)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		prices = append(prices, basePrice{TicketType: category.String(), BasePrice: json.Number(price.StringFixed(2))})
	}
	common.JSON(w, http.StatusOK, map[string]any{"prices": prices})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())
	var invalidErr *InvalidTransactionError
	switch {
	case errors.As(err, &invalidErr):
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidTransaction, invalidErr.Reason, nil)
	case errors.Is(err, pricing.ErrNoPricingRule), errors.Is(err, pricing.ErrInvalidCatalog):
		logger.Error().Err(err).Msg("pricing configuration error")
		common.JSONError(w, http.StatusInternalServerError, common.CodePricingError, err.Error(), nil)
	default:
		logger.Error().Err(err).Msg("ticket pricing failed")
		common.WriteError(w, err)
	}
}

func toResponse(result Result) transactionResponse {
	tickets := make([]ticketSegment, len(result.Segments))
	for i, seg := range result.Segments {
		tickets[i] = ticketSegment{
			TicketType: seg.Category.String(),
			Quantity:   seg.Quantity,
			TotalCost:  json.Number(seg.TotalCost.StringFixed(2)),
		}
	}
	return transactionResponse{
		TransactionID: result.TransactionID,
		TotalCost:     json.Number(result.TotalCost.StringFixed(2)),
		Tickets:       tickets,
	}
}
