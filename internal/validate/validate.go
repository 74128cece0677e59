// Package validate checks the registration, login, and trade forms before any
// request is sent. Each check returns field-keyed user-facing messages.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field messages.
const (
	MsgName          = "Informe seu nome."
	MsgEmail         = "Informe um e-mail valido."
	MsgPasswordShort = "A senha precisa ter no minimo 6 caracteres."
	MsgPasswordBlank = "Informe sua senha."
	MsgOffering      = "Selecione ao menos uma carta para oferecer."
	MsgReceiving     = "Selecione ao menos uma carta para receber."
	MsgOverlap       = "Nao e permitido receber a mesma carta que esta sendo oferecida."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// Errors maps a form field to its message. An empty map means the form is valid.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Err joins the messages into a single error, ordered by field name, or
// returns nil for a valid form.
func (e Errors) Err() error {
	if e.Valid() {
		return nil
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	errs := make([]error, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, errors.New(f+": "+e[f]))
	}
	return errors.Join(errs...)
}

// RegisterForm is the input of the registration form.
type RegisterForm struct {
	Name     string `form:"name"     validate:"notblank"`
	Email    string `form:"email"    validate:"simple_email"`
	Password string `form:"password" validate:"min=6"`
}

// LoginForm is the input of the login form.
type LoginForm struct {
	Email    string `form:"email"    validate:"simple_email"`
	Password string `form:"password" validate:"notblank"`
}

// TradeForm is the input of the trade creation form.
type TradeForm struct {
	OfferingIDs  []string `form:"offeringIds"  validate:"min=1"`
	ReceivingIDs []string `form:"receivingIds" validate:"min=1"`
}

// Register validates a registration form.
func Register(f RegisterForm) Errors {
	return check(f, map[string]string{
		"name":     MsgName,
		"email":    MsgEmail,
		"password": MsgPasswordShort,
	})
}

// Login validates a login form.
func Login(f LoginForm) Errors {
	return check(f, map[string]string{
		"email":    MsgEmail,
		"password": MsgPasswordBlank,
	})
}

// Trade validates a trade form. Offered and received cards must not overlap.
func Trade(f TradeForm) Errors {
	errs := check(f, map[string]string{
		"offeringIds":  MsgOffering,
		"receivingIds": MsgReceiving,
	})

	offered := make(map[string]struct{}, len(f.OfferingIDs))
	for _, id := range f.OfferingIDs {
		offered[id] = struct{}{}
	}
	for _, id := range f.ReceivingIDs {
		if _, ok := offered[id]; ok {
			errs["receivingIds"] = MsgOverlap
			break
		}
	}
	return errs
}

func check(form any, messages map[string]string) Errors {
	errs := Errors{}

	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(form); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			field := fe.Field()
			if _, seen := errs[field]; !seen {
				errs[field] = messages[field]
			}
		}
	}
	return errs
}
