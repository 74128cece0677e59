package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	domain "github.com/donaldgifford/card-market/pkg/types"
)

const (
	colorPurple = 0x9B59B6
	maxEmbeds   = 10
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string            `json:"title"`
	Color       int               `json:"color"`
	Description string            `json:"description,omitempty"`
	Thumbnail   *discordThumbnail `json:"thumbnail,omitempty"`
}

type discordThumbnail struct {
	URL string `json:"url"`
}

// NotifyNewCards posts one message with an embed per card. Discord accepts at
// most ten embeds; the rest are summarized in a final embed.
func (d *DiscordNotifier) NotifyNewCards(ctx context.Context, owner string, cards []domain.Card) error {
	if len(cards) == 0 {
		return nil
	}

	limit := min(len(cards), maxEmbeds)
	if len(cards) > maxEmbeds {
		limit = maxEmbeds - 1
	}

	embeds := make([]discordEmbed, 0, maxEmbeds)
	for i := range limit {
		embeds = append(embeds, buildEmbed(&cards[i]))
	}
	if rest := len(cards) - limit; rest > 0 {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more", rest),
			Color:       colorPurple,
			Description: "Run 'cardmarket cards mine' for the full list.",
		})
	}

	return d.post(ctx, discordWebhookPayload{
		Content: fmt.Sprintf("%d new card(s) in %s's collection", len(cards), owner),
		Embeds:  embeds,
	})
}

func buildEmbed(card *domain.Card) discordEmbed {
	embed := discordEmbed{
		Title:       card.Name,
		Color:       colorPurple,
		Description: card.Description,
	}
	if card.ImageURL != "" {
		embed.Thumbnail = &discordThumbnail{URL: card.ImageURL}
	}
	return embed
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
