// Package prefs keeps local user preferences: the color theme and per-user
// profile avatars. Both live in persistent storage and never reach the API.
package prefs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/donaldgifford/card-market/internal/storage"
)

const (
	themeKey        = "theme"
	avatarKeyPrefix = "marketplace-profile-avatar:"
)

// Theme is the color scheme preference.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme applies when nothing valid is stored.
const DefaultTheme = ThemeDark

// ParseTheme converts s into a Theme, case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Prefs reads and writes preferences through a best-effort persister.
type Prefs struct {
	store *storage.Persister

	mu          sync.Mutex
	theme       Theme
	initialized bool
}

// New returns preferences backed by store.
func New(store *storage.Persister) *Prefs {
	return &Prefs{store: store, theme: DefaultTheme}
}

// Theme returns the current theme. The first call loads it from storage;
// when no theme was ever stored the default is written back.
func (p *Prefs) Theme() Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initLocked()
	return p.theme
}

// SetTheme switches to t and persists it.
func (p *Prefs) SetTheme(t Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initialized = true
	p.theme = t
	p.store.TrySet(themeKey, []byte(t))
}

// ToggleTheme flips between light and dark and returns the new theme.
func (p *Prefs) ToggleTheme() Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initLocked()

	next := ThemeDark
	if p.theme == ThemeDark {
		next = ThemeLight
	}
	p.theme = next
	p.store.TrySet(themeKey, []byte(next))
	return next
}

func (p *Prefs) initLocked() {
	if p.initialized {
		return
	}
	p.initialized = true

	raw, ok := p.store.TryGet(themeKey)
	switch stored := Theme(raw); {
	case ok && (stored == ThemeLight || stored == ThemeDark):
		p.theme = stored
	case !ok:
		p.theme = DefaultTheme
		p.store.TrySet(themeKey, []byte(DefaultTheme))
	default:
		// Unrecognized values are ignored but left in place.
		p.theme = DefaultTheme
	}
}

// Avatar returns the stored avatar data URL for userID.
func (p *Prefs) Avatar(userID string) (string, bool) {
	if userID == "" {
		return "", false
	}
	raw, ok := p.store.TryGet(avatarKeyPrefix + userID)
	if !ok {
		return "", false
	}
	return string(raw), true
}

// SetAvatar stores dataURL as the avatar of userID and reports success.
func (p *Prefs) SetAvatar(userID, dataURL string) bool {
	if userID == "" {
		return false
	}
	return p.store.TrySet(avatarKeyPrefix+userID, []byte(dataURL))
}

// RemoveAvatar deletes the avatar of userID and reports success.
func (p *Prefs) RemoveAvatar(userID string) bool {
	if userID == "" {
		return false
	}
	return p.store.TryRemove(avatarKeyPrefix + userID)
}
