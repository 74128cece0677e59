// Package notify delivers new-card notifications found by the background
// refresher.
package notify

import (
	"context"

	domain "github.com/donaldgifford/card-market/pkg/types"
)

// Notifier announces cards that appeared in the signed-in user's inventory.
type Notifier interface {
	NotifyNewCards(ctx context.Context, owner string, cards []domain.Card) error
}
