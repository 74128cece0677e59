package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/card-market/internal/validate"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

// TradeHandler serves trade listing, creation, and deletion.
type TradeHandler struct {
	market *Marketplace
	log    *slog.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(m *Marketplace, log *slog.Logger) *TradeHandler {
	return &TradeHandler{market: m, log: log}
}

// --- Input/Output types ---

// ListTradesInput selects one page of trades.
type ListTradesInput struct {
	Page int `query:"page" default:"1"  doc:"Page number"`
	RPP  int `query:"rpp"  default:"10" doc:"Trades per page (at most 100)"`
}

// TradePageOutput is one page of trades, newest first.
type TradePageOutput struct {
	Body domain.Page[domain.Trade]
}

// CreateTradeInput is the body of POST /trades.
type CreateTradeInput struct {
	Body struct {
		Cards []domain.TradeCardRequest `json:"cards,omitempty" doc:"Offered and requested cards"`
	}
}

// CreateTradeOutput carries the id of the published trade.
type CreateTradeOutput struct {
	Body domain.CreateTradeResponse
}

// DeleteTradeInput names the trade to remove.
type DeleteTradeInput struct {
	ID string `path:"id" doc:"Trade id"`
}

// --- Handlers ---

// List returns one page of trades.
func (h *TradeHandler) List(_ context.Context, input *ListTradesInput) (*TradePageOutput, error) {
	page, rpp := pageParams(input.Page, input.RPP, 10)
	return &TradePageOutput{Body: h.market.Trades(page, rpp)}, nil
}

// Create publishes a trade for the signed-in user.
func (h *TradeHandler) Create(ctx context.Context, input *CreateTradeInput) (*CreateTradeOutput, error) {
	req := domain.CreateTradeRequest{Cards: input.Body.Cards}
	if msg := checkTradeRequest(req); msg != "" {
		return nil, huma.Error400BadRequest(msg)
	}

	userID := currentUser(ctx)
	id, err := h.market.CreateTrade(userID, req)
	switch {
	case errors.Is(err, ErrCardNotFound), errors.Is(err, ErrCardNotOwned):
		return nil, huma.Error400BadRequest(err.Error())
	case errors.Is(err, ErrUserNotFound):
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	case err != nil:
		h.log.Error("creating trade", "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}

	h.log.Info("trade created", "trade_id", id, "user_id", userID)
	return &CreateTradeOutput{Body: domain.CreateTradeResponse{TradeID: id}}, nil
}

// Delete removes a trade owned by the signed-in user.
func (h *TradeHandler) Delete(ctx context.Context, input *DeleteTradeInput) (*struct{}, error) {
	err := h.market.DeleteTrade(currentUser(ctx), input.ID)
	switch {
	case errors.Is(err, ErrTradeNotFound):
		return nil, huma.Error404NotFound("Trade not found")
	case errors.Is(err, ErrNotOwner):
		return nil, huma.Error403Forbidden("Forbidden")
	case err != nil:
		h.log.Error("deleting trade", "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}
	return nil, nil
}

// checkTradeRequest returns the failure message for a malformed trade, or
// "" for a valid one.
func checkTradeRequest(req domain.CreateTradeRequest) string {
	var form validate.TradeForm
	for _, tc := range req.Cards {
		switch tc.Type {
		case domain.TradeCardOffering:
			form.OfferingIDs = append(form.OfferingIDs, tc.CardID)
		case domain.TradeCardReceiving:
			form.ReceivingIDs = append(form.ReceivingIDs, tc.CardID)
		default:
			return "invalid trade card type"
		}
	}

	errs := validate.Trade(form)
	switch {
	case errs["receivingIds"] == validate.MsgOverlap:
		return "a card cannot be offered and received"
	case !errs.Valid():
		return "a trade needs offering and receiving cards"
	}
	return ""
}

// RegisterTradeRoutes registers trade endpoints with the Huma API.
func RegisterTradeRoutes(api huma.API, h *TradeHandler, requireUser huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID: "list-trades",
		Method:      http.MethodGet,
		Path:        "/trades",
		Summary:     "List trades",
		Description: "Returns one page of trades, newest first.",
		Tags:        []string{"trades"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID:   "create-trade",
		Method:        http.MethodPost,
		Path:          "/trades",
		Summary:       "Publish a trade",
		Description:   "Offered cards must be owned by the caller. Requested cards must exist in the catalog.",
		Tags:          []string{"trades"},
		Security:      bearerSecurity,
		Middlewares:   requireUser,
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusUnauthorized},
	}, h.Create)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-trade",
		Method:        http.MethodDelete,
		Path:          "/trades/{id}",
		Summary:       "Delete a trade",
		Tags:          []string{"trades"},
		Security:      bearerSecurity,
		Middlewares:   requireUser,
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound},
	}, h.Delete)
}
