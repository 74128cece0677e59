package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/donaldgifford/card-market/internal/credential"
	"github.com/donaldgifford/card-market/internal/storage"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

const tokenKey = "marketplace-token"

// Session actions reported in events.
const (
	ActionHydrate     = "hydrate"
	ActionRegister    = "register"
	ActionLogin       = "login"
	ActionGoogleLogin = "google_login"
	ActionRefreshMe   = "refresh_me"
	ActionLogout      = "logout"
)

// SessionState is a snapshot of the session.
type SessionState struct {
	Token    string
	User     *domain.UserProfile
	Hydrated bool
	Loading  bool
	// Error is the translated message of the last failed action, or empty.
	Error string
}

// Session tracks the signed-in user. Only the token is persisted; the
// profile is fetched again on hydration.
type Session struct {
	api     SessionAPI
	decoder credential.Decoder
	persist *storage.Persister
	log     *slog.Logger

	hydrateMu sync.Mutex

	mu    sync.Mutex
	state SessionState
	obs   observers
}

// NewSession creates a session store.
func NewSession(api SessionAPI, persist *storage.Persister, opts ...Option) *Session {
	o := buildOptions("session", opts)
	return &Session{
		api:     api,
		decoder: o.decoder,
		persist: persist,
		log:     o.log,
	}
}

// State returns a snapshot of the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.User = cloneUser(s.state.User)
	return st
}

// Token returns the session token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// User returns a copy of the signed-in profile, or nil.
func (s *Session) User() *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUser(s.state.User)
}

// IsAuthenticated reports whether both a token and a profile are present.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token != "" && s.state.User != nil
}

// Subscribe registers fn for change events and returns its unsubscribe func.
func (s *Session) Subscribe(fn func(Event)) func() {
	return s.obs.subscribe(fn)
}

// Hydrate restores the session from the persisted token. It runs once; later
// calls return immediately. A token the API rejects is discarded.
func (s *Session) Hydrate(ctx context.Context) {
	s.hydrateMu.Lock()
	defer s.hydrateMu.Unlock()

	s.mu.Lock()
	if s.state.Hydrated {
		s.mu.Unlock()
		return
	}
	raw, ok := s.persist.TryGet(tokenKey)
	token := string(raw)
	if !ok || token == "" {
		s.state.Hydrated = true
		s.mu.Unlock()
		s.emit(ActionHydrate)
		return
	}
	s.state.Token = token
	s.mu.Unlock()

	me, err := s.api.Me(ctx, token)

	s.mu.Lock()
	if err != nil {
		s.log.Debug("discarding stored session", "error", err)
		s.setTokenLocked("")
		s.state.User = nil
	} else {
		s.state.User = profileOf(me)
	}
	s.state.Hydrated = true
	s.mu.Unlock()
	s.emit(ActionHydrate)
}

// Register creates an account. It does not sign in.
func (s *Session) Register(ctx context.Context, req domain.RegisterRequest) (err error) {
	s.begin(ActionRegister)
	defer func() { s.end(ActionRegister, err, RegisterMessage) }()

	_, err = s.api.Register(ctx, req)
	return err
}

// Login signs in with email and password.
func (s *Session) Login(ctx context.Context, req domain.LoginRequest) (err error) {
	s.begin(ActionLogin)
	defer func() { s.end(ActionLogin, err, LoginMessage) }()

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return err
	}
	s.signIn(resp)
	return nil
}

// LoginWithGoogleCredential signs in with an identity-provider credential.
// The account is registered first with a password derived from the
// credential subject; an already existing account is not an error.
func (s *Session) LoginWithGoogleCredential(ctx context.Context, raw string) (err error) {
	s.begin(ActionGoogleLogin)
	defer func() { s.end(ActionGoogleLogin, err, GoogleLoginMessage) }()

	profile, err := s.decoder.Decode(raw)
	if err != nil {
		return err
	}
	password := profile.Password()

	_, err = s.api.Register(ctx, domain.RegisterRequest{
		Name:     profile.Name,
		Email:    profile.Email,
		Password: password,
	})
	if err != nil && !IsDuplicateAccount(err) {
		return err
	}

	resp, err := s.api.Login(ctx, domain.LoginRequest{Email: profile.Email, Password: password})
	if err != nil {
		return err
	}
	s.signIn(resp)
	return nil
}

// RefreshMe fetches the profile again. Without a token it does nothing. A
// failure keeps the current session.
func (s *Session) RefreshMe(ctx context.Context) (err error) {
	token := s.Token()
	if token == "" {
		return nil
	}

	s.begin(ActionRefreshMe)
	defer func() { s.end(ActionRefreshMe, err, RegisterMessage) }()

	me, err := s.api.Me(ctx, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state.User = profileOf(me)
	s.mu.Unlock()
	return nil
}

// Logout clears the token, the profile, and the last error.
func (s *Session) Logout() {
	s.mu.Lock()
	s.setTokenLocked("")
	s.state.User = nil
	s.state.Error = ""
	s.mu.Unlock()
	s.emit(ActionLogout)
}

func (s *Session) begin(action string) {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.emit(action)
}

func (s *Session) end(action string, err error, translate func(error) string) {
	s.mu.Lock()
	s.state.Loading = false
	if err != nil {
		s.state.Error = translate(err)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Debug("session action failed", "action", action, "error", err)
	}
	s.emit(action)
}

func (s *Session) signIn(resp *domain.LoginResponse) {
	s.mu.Lock()
	s.setTokenLocked(resp.Token)
	user := resp.User
	s.state.User = &user
	s.mu.Unlock()
}

func (s *Session) setTokenLocked(token string) {
	s.state.Token = token
	if token == "" {
		s.persist.TryRemove(tokenKey)
		return
	}
	s.persist.TrySet(tokenKey, []byte(token))
}

func (s *Session) emit(action string) {
	s.obs.notify(Event{Store: "session", Action: action})
}

func profileOf(me *domain.MeResponse) *domain.UserProfile {
	if me == nil {
		return nil
	}
	p := me.UserProfile
	return &p
}

func cloneUser(u *domain.UserProfile) *domain.UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
