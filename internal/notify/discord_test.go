package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/card-market/pkg/logger"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

func makeCards(n int) []domain.Card {
	cards := make([]domain.Card, n)
	for i := range n {
		cards[i] = domain.Card{
			ID:       fmt.Sprintf("c%d", i),
			Name:     fmt.Sprintf("Card %d", i),
			ImageURL: "https://img.example.com/" + fmt.Sprint(i),
		}
	}
	return cards
}

func TestDiscordNotifier_NotifyNewCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cards      int
		wantEmbeds int
		wantMore   bool
	}{
		{name: "single card", cards: 1, wantEmbeds: 1},
		{name: "exactly ten", cards: 10, wantEmbeds: 10},
		{name: "overflow summarized", cards: 13, wantEmbeds: 10, wantMore: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got discordWebhookPayload
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL, WithHTTPClient(srv.Client()))
			require.NoError(t, d.NotifyNewCards(context.Background(), "Ana", makeCards(tt.cards)))

			require.Len(t, got.Embeds, tt.wantEmbeds)
			assert.Contains(t, got.Content, "Ana")
			assert.Equal(t, "Card 0", got.Embeds[0].Title)
			require.NotNil(t, got.Embeds[0].Thumbnail)
			last := got.Embeds[len(got.Embeds)-1]
			if tt.wantMore {
				assert.Equal(t, fmt.Sprintf("... and %d more", tt.cards-9), last.Title)
			} else {
				assert.NotContains(t, last.Title, "more")
			}
		})
	}
}

func TestDiscordNotifier_NoCards(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1")
	assert.NoError(t, d.NotifyNewCards(context.Background(), "Ana", nil))
}

func TestDiscordNotifier_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: "rate limited"},
		{name: "server error", status: http.StatusInternalServerError, wantErr: "discord returned 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("boom"))
			}))
			defer srv.Close()

			err := NewDiscordNotifier(srv.URL).NotifyNewCards(context.Background(), "Ana", makeCards(1))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNoOpNotifier(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(logger.Discard())
	assert.NoError(t, n.NotifyNewCards(context.Background(), "Ana", makeCards(2)))
}
