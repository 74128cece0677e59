package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/donaldgifford/card-market/internal/api/client"
	"github.com/donaldgifford/card-market/internal/storage"
	"github.com/donaldgifford/card-market/pkg/logger"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

// staticAuth is a fixed identity for the cards and trades stores.
type staticAuth struct {
	token string
	user  *domain.UserProfile
}

func (a staticAuth) Token() string             { return a.token }
func (a staticAuth) User() *domain.UserProfile { return a.user }

func signedIn(id string) staticAuth {
	return staticAuth{token: "tok-" + id, user: &domain.UserProfile{ID: id, Name: id, Email: id + "@example.com"}}
}

// switchableAuth lets a test change the signed-in user between calls.
type switchableAuth struct {
	mu   sync.Mutex
	auth staticAuth
}

func (a *switchableAuth) set(auth staticAuth) {
	a.mu.Lock()
	a.auth = auth
	a.mu.Unlock()
}

func (a *switchableAuth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.auth.token
}

func (a *switchableAuth) User() *domain.UserProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.auth.user
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newPersister(t *testing.T, backend storage.Storage) *storage.Persister {
	t.Helper()
	return storage.NewPersister(backend, logger.Discard())
}

var errBroken = errors.New("disk on fire")

type brokenStorage struct{}

func (brokenStorage) Get(string) ([]byte, bool, error) { return nil, false, errBroken }
func (brokenStorage) Set(string, []byte) error         { return errBroken }
func (brokenStorage) Remove(string) error              { return errBroken }

func apiErr(status int, msg string) error {
	return &client.APIError{Status: status, Message: msg}
}

func cards(ids ...string) []domain.Card {
	out := make([]domain.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Card{ID: id, Name: "card " + id})
	}
	return out
}

func asAPIError(err error) (*client.APIError, bool) {
	return client.AsAPIError(err)
}
