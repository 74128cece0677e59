// Package credential decodes identity-provider (Google) ID tokens into the
// profile the session store needs for the credential login flow.
//
// The token signature is not verified here; the identity provider's
// client-side library already did that before handing the credential over.
package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// PasswordPrefix prefixes the synthetic password derived from a subject.
const PasswordPrefix = "google_account_"

const fallbackName = "Usuario Google"

// ErrInvalidCredential is returned for credentials that cannot be decoded or
// lack the required claims.
var ErrInvalidCredential = errors.New("google-invalid-credential")

// Profile is the identity extracted from a credential.
type Profile struct {
	Sub   string
	Email string
	Name  string
}

// Password returns the deterministic password used to register and sign in
// the account backing this profile.
func (p *Profile) Password() string {
	return SyntheticPassword(p.Sub)
}

// SyntheticPassword derives the account password for an identity-provider subject.
func SyntheticPassword(sub string) string {
	return PasswordPrefix + sub
}

// Decoder turns a raw credential into a Profile.
type Decoder interface {
	Decode(credential string) (*Profile, error)
}

// JWTDecoder decodes the payload segment of a JWT ID token.
type JWTDecoder struct {
	parser   *jwt.Parser
	clientID string
}

// DecoderOption configures a JWTDecoder.
type DecoderOption func(*JWTDecoder)

// WithClientID makes Decode reject tokens whose audience does not include id.
// An empty id accepts any audience.
func WithClientID(id string) DecoderOption {
	return func(d *JWTDecoder) {
		d.clientID = strings.TrimSpace(id)
	}
}

// NewJWTDecoder creates a decoder for unverified JWT ID tokens. Only the
// payload segment is read; padded and unpadded base64url are both accepted.
func NewJWTDecoder(opts ...DecoderOption) *JWTDecoder {
	d := &JWTDecoder{parser: jwt.NewParser(jwt.WithPaddingAllowed())}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode implements Decoder. Any failure wraps ErrInvalidCredential.
func (d *JWTDecoder) Decode(credential string) (*Profile, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments", ErrInvalidCredential)
	}

	payload, err := d.parser.DecodeSegment(urlAlphabet.Replace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %w", ErrInvalidCredential, err)
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: parsing payload: %w", ErrInvalidCredential, err)
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" || email == "" {
		return nil, fmt.Errorf("%w: missing sub or email", ErrInvalidCredential)
	}

	if d.clientID != "" {
		aud, err := claims.GetAudience()
		if err != nil || !slices.Contains(aud, d.clientID) {
			return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidCredential)
		}
	}

	name, _ := claims["name"].(string)
	return &Profile{Sub: sub, Email: email, Name: displayName(name, email)}, nil
}

// urlAlphabet maps standard base64 characters onto the URL alphabet.
var urlAlphabet = strings.NewReplacer("+", "-", "/", "_")

func displayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if local, _, _ := strings.Cut(email, "@"); local != "" {
		return local
	}
	return fallbackName
}
