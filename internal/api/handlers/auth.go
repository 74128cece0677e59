package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/card-market/internal/validate"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

// BearerScheme names the security scheme of operations that need a session.
const BearerScheme = "bearer"

const msgUnauthorized = "Unauthorized"

var bearerSecurity = []map[string][]string{{BearerScheme: {}}}

type userIDKey struct{}

// RequireUser returns operation middleware that rejects requests without a
// valid bearer token and stores the token subject in the request context.
func RequireUser(api huma.API, tokens *Tokens) huma.Middlewares {
	return huma.Middlewares{func(ctx huma.Context, next func(huma.Context)) {
		raw, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		userID, err := tokens.Verify(raw)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		next(huma.WithValue(ctx, userIDKey{}, userID))
	}}
}

func currentUser(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// AuthHandler serves registration, login, and the profile.
type AuthHandler struct {
	market *Marketplace
	tokens *Tokens
	log    *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(m *Marketplace, t *Tokens, log *slog.Logger) *AuthHandler {
	return &AuthHandler{market: m, tokens: t, log: log}
}

// --- Input/Output types ---

// RegisterInput is the body of POST /register.
type RegisterInput struct {
	Body struct {
		Name     string `json:"name,omitempty"     doc:"Display name"          example:"Ana"`
		Email    string `json:"email,omitempty"    doc:"Account email"         example:"ana@example.com"`
		Password string `json:"password,omitempty" doc:"At least 6 characters" example:"123456"`
	}
}

// RegisterOutput is the response for a created account.
type RegisterOutput struct {
	Body domain.RegisterResponse
}

// LoginInput is the body of POST /login.
type LoginInput struct {
	Body struct {
		Email    string `json:"email,omitempty"    doc:"Account email" example:"ana@example.com"`
		Password string `json:"password,omitempty" doc:"Password"      example:"123456"`
	}
}

// LoginOutput carries the session token and the signed-in user.
type LoginOutput struct {
	Body domain.LoginResponse
}

// MeOutput is the signed-in user with the cards they own.
type MeOutput struct {
	Body domain.MeResponse
}

// registerMessages are the failure messages for registration fields, in the
// order they are reported.
var registerMessages = []struct{ field, msg string }{
	{field: "name", msg: "Name is required"},
	{field: "email", msg: "Invalid email"},
	{field: "password", msg: "Password must have at least 6 characters"},
}

// --- Handlers ---

// Register creates an account.
func (h *AuthHandler) Register(_ context.Context, input *RegisterInput) (*RegisterOutput, error) {
	in := input.Body
	errs := validate.Register(validate.RegisterForm{Name: in.Name, Email: in.Email, Password: in.Password})
	for _, m := range registerMessages {
		if _, failed := errs[m.field]; failed {
			return nil, huma.Error400BadRequest(m.msg)
		}
	}

	id, err := h.market.Register(in.Name, in.Email, in.Password)
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return nil, huma.Error409Conflict("Email already exists")
	case err != nil:
		h.log.Error("registering user", "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}

	h.log.Info("user registered", "user_id", id)
	return &RegisterOutput{Body: domain.RegisterResponse{UserID: id}}, nil
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(_ context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := h.market.Authenticate(input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error("issuing token", "user_id", user.ID, "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}
	return &LoginOutput{Body: domain.LoginResponse{Token: token, User: user}}, nil
}

// Me returns the signed-in user's profile.
func (h *AuthHandler) Me(ctx context.Context, _ *struct{}) (*MeOutput, error) {
	me, err := h.market.Profile(currentUser(ctx))
	if err != nil {
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	}
	return &MeOutput{Body: *me}, nil
}

// RegisterAuthRoutes registers account endpoints with the Huma API.
func RegisterAuthRoutes(api huma.API, h *AuthHandler, requireUser huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/register",
		Summary:       "Create an account",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusConflict},
	}, h.Register)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/login",
		Summary:     "Sign in",
		Description: "Returns a bearer token for the account.",
		Tags:        []string{"auth"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.Login)

	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/me",
		Summary:     "Get the signed-in user",
		Tags:        []string{"auth"},
		Security:    bearerSecurity,
		Middlewares: requireUser,
		Errors:      []int{http.StatusUnauthorized},
	}, h.Me)
}
