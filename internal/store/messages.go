package store

import (
	"errors"
	"slices"
	"strings"

	"github.com/donaldgifford/card-market/internal/api/client"
	"github.com/donaldgifford/card-market/internal/credential"
)

// User-facing messages recorded in store state.
const (
	MsgDuplicateAccount      = "Este e-mail já está cadastrado."
	MsgInvalidEmail          = "E-mail inválido."
	MsgInvalidPassword       = "Senha inválida."
	MsgInvalidCredentials    = "E-mail ou senha inválidos."
	MsgServerError           = "Erro no servidor. Tente novamente em instantes."
	MsgLoginFailed           = "Não foi possível entrar. Tente novamente."
	MsgUnexpected            = "Ocorreu um erro inesperado."
	MsgNotAuthenticated      = "Usuario nao autenticado."
	MsgGoogleInvalid         = "Não foi possível validar o login com Google."
	MsgGooglePasswordAccount = "Este e-mail já possui senha cadastrada. Use login com e-mail e senha."
	MsgGoogleFailed          = "Não foi possível entrar com Google."
)

// rule maps an API error to a message when its status is listed, its status
// is at least minStatus, or its lowercased message contains a substring.
// An empty message means the API message itself.
type rule struct {
	statuses   []int
	minStatus  int
	substrings []string
	message    string
}

func (r rule) matches(status int, normalized string) bool {
	if slices.Contains(r.statuses, status) {
		return true
	}
	if r.minStatus > 0 && status >= r.minStatus {
		return true
	}
	return slices.ContainsFunc(r.substrings, func(s string) bool {
		return strings.Contains(normalized, s)
	})
}

var duplicateAccount = rule{
	statuses: []int{409},
	substrings: []string{
		"email already",
		"already exists",
		"user already",
		"duplicate",
		"unique constraint",
	},
	message: MsgDuplicateAccount,
}

var registerRules = []rule{
	duplicateAccount,
	{substrings: []string{"email"}, message: MsgInvalidEmail},
	{substrings: []string{"password"}, message: MsgInvalidPassword},
	{statuses: []int{401}, message: MsgInvalidCredentials},
}

var loginRules = []rule{
	{
		statuses: []int{400, 401, 403},
		substrings: []string{
			"invalid email",
			"invalid password",
			"invalid credentials",
			"wrong password",
			"unauthorized",
			"bad credentials",
			"user not found",
			"email or password",
			"email",
		},
		message: MsgInvalidCredentials,
	},
	{minStatus: 500, message: MsgServerError},
	{message: MsgLoginFailed},
}

var googleRules = []rule{
	{statuses: []int{400, 401, 403}, message: MsgGooglePasswordAccount},
	{message: MsgGoogleFailed},
}

// translate resolves err against rules. Errors that are not API errors map to
// MsgNotAuthenticated or MsgUnexpected. When no rule matches, the API message
// is used as is.
func translate(err error, rules []rule) string {
	if errors.Is(err, ErrNotAuthenticated) {
		return MsgNotAuthenticated
	}
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return MsgUnexpected
	}

	normalized := strings.ToLower(apiErr.Message)
	for _, r := range rules {
		catchAll := len(r.statuses) == 0 && r.minStatus == 0 && len(r.substrings) == 0
		if catchAll || r.matches(apiErr.Status, normalized) {
			if r.message == "" {
				return apiErr.Message
			}
			return r.message
		}
	}
	return apiErr.Message
}

// RegisterMessage translates a registration or profile failure.
func RegisterMessage(err error) string {
	return translate(err, registerRules)
}

// LoginMessage translates a login failure.
func LoginMessage(err error) string {
	return translate(err, loginRules)
}

// GoogleLoginMessage translates a failure of the credential login flow.
func GoogleLoginMessage(err error) string {
	if errors.Is(err, credential.ErrInvalidCredential) {
		return MsgGoogleInvalid
	}
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return MsgGoogleFailed
	}
	return translate(apiErr, googleRules)
}

// ResourceMessage translates a catalog, inventory, or trade failure: the API
// message when there is one.
func ResourceMessage(err error) string {
	return translate(err, nil)
}

// IsDuplicateAccount reports whether err is an API error saying the account
// already exists.
func IsDuplicateAccount(err error) bool {
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return false
	}
	return duplicateAccount.matches(apiErr.Status, strings.ToLower(apiErr.Message))
}
