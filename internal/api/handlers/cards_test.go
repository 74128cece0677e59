package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/card-market/pkg/types"
)

func TestCardHandler_List(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, 30)

	tests := []struct {
		name     string
		path     string
		wantLen  int
		wantRPP  int
		wantPage int
		wantMore bool
	}{
		{name: "defaults", path: "/cards", wantLen: 12, wantRPP: 12, wantPage: 1, wantMore: true},
		{name: "last page", path: "/cards?page=3&rpp=12", wantLen: 6, wantRPP: 12, wantPage: 3},
		{name: "rpp capped", path: "/cards?rpp=500", wantLen: 30, wantRPP: 100, wantPage: 1},
		{name: "page clamped", path: "/cards?page=0&rpp=10", wantLen: 10, wantRPP: 10, wantPage: 1, wantMore: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := api.Get(tt.path)
			require.Equal(t, http.StatusOK, resp.Code)

			var page domain.Page[domain.Card]
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
			assert.Len(t, page.List, tt.wantLen)
			assert.Equal(t, tt.wantRPP, page.RPP)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantMore, page.More)
		})
	}
}

func TestCardHandler_AddAndMine(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, 3)
	_, bearer := api.signUp(t, "ana@example.com")
	catalog := api.market.Catalog(1, 3)

	resp := api.Post("/me/cards", bearer, strings.NewReader(`{"cardIds":[]}`))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "cardIds must not be empty")

	resp = api.Post("/me/cards", bearer, strings.NewReader(`{"cardIds":["missing"]}`))
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Post("/me/cards", bearer, strings.NewReader(`{"cardIds":["`+catalog.List[1].ID+`"]}`))
	require.Equal(t, http.StatusNoContent, resp.Code)
	assert.Empty(t, resp.Body.String())

	resp = api.Get("/me/cards", bearer)
	require.Equal(t, http.StatusOK, resp.Code)
	var mine []domain.Card
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, catalog.List[1].ID, mine[0].ID)

	resp = api.Get("/me/cards")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
