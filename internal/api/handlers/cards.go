package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/card-market/pkg/types"
)

const maxRPP = 100

// CardHandler serves the catalog and the signed-in user's inventory.
type CardHandler struct {
	market *Marketplace
	log    *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(m *Marketplace, log *slog.Logger) *CardHandler {
	return &CardHandler{market: m, log: log}
}

// --- Input/Output types ---

// ListCardsInput selects one catalog page.
type ListCardsInput struct {
	Page int `query:"page" default:"1"  doc:"Page number"`
	RPP  int `query:"rpp"  default:"12" doc:"Cards per page (at most 100)"`
}

// CardPageOutput is one page of catalog cards.
type CardPageOutput struct {
	Body domain.Page[domain.Card]
}

// MyCardsOutput lists the cards the signed-in user owns.
type MyCardsOutput struct {
	Body []domain.Card
}

// AddCardsInput is the body of POST /me/cards.
type AddCardsInput struct {
	Body struct {
		CardIDs []string `json:"cardIds,omitempty" doc:"Catalog card ids to add"`
	}
}

// --- Handlers ---

// List returns one catalog page.
func (h *CardHandler) List(_ context.Context, input *ListCardsInput) (*CardPageOutput, error) {
	page, rpp := pageParams(input.Page, input.RPP, 12)
	return &CardPageOutput{Body: h.market.Catalog(page, rpp)}, nil
}

// Mine returns the signed-in user's cards.
func (h *CardHandler) Mine(ctx context.Context, _ *struct{}) (*MyCardsOutput, error) {
	cards, err := h.market.Inventory(currentUser(ctx))
	if err != nil {
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	}
	return &MyCardsOutput{Body: cards}, nil
}

// Add puts catalog cards into the signed-in user's inventory.
func (h *CardHandler) Add(ctx context.Context, input *AddCardsInput) (*struct{}, error) {
	if len(input.Body.CardIDs) == 0 {
		return nil, huma.Error400BadRequest("cardIds must not be empty")
	}

	err := h.market.AddCards(currentUser(ctx), input.Body.CardIDs)
	switch {
	case errors.Is(err, ErrCardNotFound):
		return nil, huma.Error404NotFound(err.Error())
	case errors.Is(err, ErrUserNotFound):
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	case err != nil:
		h.log.Error("adding cards", "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}
	return nil, nil
}

// pageParams clamps the requested page to at least 1 and rpp to
// [1, maxRPP], using defaultRPP for a non-positive rpp.
func pageParams(page, rpp, defaultRPP int) (int, int) {
	if page < 1 {
		page = 1
	}
	if rpp < 1 {
		rpp = defaultRPP
	}
	return page, min(rpp, maxRPP)
}

// RegisterCardRoutes registers catalog and inventory endpoints with the Huma API.
func RegisterCardRoutes(api huma.API, h *CardHandler, requireUser huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID: "list-cards",
		Method:      http.MethodGet,
		Path:        "/cards",
		Summary:     "List catalog cards",
		Tags:        []string{"cards"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "list-my-cards",
		Method:      http.MethodGet,
		Path:        "/me/cards",
		Summary:     "List the signed-in user's cards",
		Tags:        []string{"cards"},
		Security:    bearerSecurity,
		Middlewares: requireUser,
		Errors:      []int{http.StatusUnauthorized},
	}, h.Mine)

	huma.Register(api, huma.Operation{
		OperationID:   "add-my-cards",
		Method:        http.MethodPost,
		Path:          "/me/cards",
		Summary:       "Add cards to the signed-in user's inventory",
		Description:   "Cards already owned are skipped. Nothing is added when any id is unknown.",
		Tags:          []string{"cards"},
		Security:      bearerSecurity,
		Middlewares:   requireUser,
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound},
	}, h.Add)
}
