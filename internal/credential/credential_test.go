package credential

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestJWTDecoder_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		claims   jwt.MapClaims
		wantName string
		wantErr  bool
	}{
		{
			name:     "full profile",
			claims:   jwt.MapClaims{"sub": "123", "email": "ana@example.com", "name": " Ana Lima "},
			wantName: "Ana Lima",
		},
		{
			name:     "missing name uses email local part",
			claims:   jwt.MapClaims{"sub": "123", "email": "ana@example.com"},
			wantName: "ana",
		},
		{
			name:     "email without local part uses fallback",
			claims:   jwt.MapClaims{"sub": "123", "email": "@example.com", "name": "  "},
			wantName: "Usuario Google",
		},
		{
			name:    "missing sub",
			claims:  jwt.MapClaims{"email": "ana@example.com"},
			wantErr: true,
		},
		{
			name:    "missing email",
			claims:  jwt.MapClaims{"sub": "123"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewJWTDecoder().Decode(signedToken(t, tt.claims))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCredential)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "123", p.Sub)
			assert.Equal(t, tt.wantName, p.Name)
		})
	}
}

func TestJWTDecoder_PayloadOnly(t *testing.T) {
	t.Parallel()

	body := []byte(`{"sub":"123","email":"ana@example.com","name":"Ana"}`)
	unpadded := base64.RawURLEncoding.EncodeToString(body)
	padded := base64.URLEncoding.EncodeToString(body)
	require.NotEqual(t, unpadded, padded, "payload must need padding")

	tests := []struct {
		name       string
		credential string
	}{
		{name: "garbage header", credential: "xx." + unpadded + ".sig"},
		{name: "padded payload", credential: "e30." + padded + ".sig"},
		{name: "empty header and signature", credential: "." + unpadded + "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewJWTDecoder().Decode(tt.credential)
			require.NoError(t, err)
			assert.Equal(t, "123", p.Sub)
			assert.Equal(t, "ana@example.com", p.Email)
			assert.Equal(t, "Ana", p.Name)
		})
	}
}

func TestJWTDecoder_Malformed(t *testing.T) {
	t.Parallel()

	payload := base64.RawURLEncoding.EncodeToString([]byte("{not json"))

	for _, raw := range []string{
		"",
		"only-one-segment",
		"a.b",
		"a.b.c.d",
		"e30." + payload + ".sig",
	} {
		_, err := NewJWTDecoder().Decode(raw)
		assert.ErrorIs(t, err, ErrInvalidCredential, raw)
	}
}

func TestJWTDecoder_ClientID(t *testing.T) {
	t.Parallel()

	const clientID = "client.apps.googleusercontent.com"
	base := jwt.MapClaims{"sub": "123", "email": "ana@example.com"}

	tests := []struct {
		name    string
		aud     any
		wantErr bool
	}{
		{name: "matching string audience", aud: clientID},
		{name: "matching list audience", aud: []any{"other", clientID}},
		{name: "other audience", aud: "other", wantErr: true},
		{name: "missing audience", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims := jwt.MapClaims{}
			for k, v := range base {
				claims[k] = v
			}
			if tt.aud != nil {
				claims["aud"] = tt.aud
			}

			_, err := NewJWTDecoder(WithClientID(clientID)).Decode(signedToken(t, claims))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredential)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSyntheticPassword(t *testing.T) {
	t.Parallel()

	p := &Profile{Sub: "sub-1"}
	assert.Equal(t, "google_account_sub-1", p.Password())
	assert.Equal(t, p.Password(), SyntheticPassword("sub-1"))
}
