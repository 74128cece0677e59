// Package handlers implements an in-memory fake of the card marketplace API
// for local development and end-to-end tests of the client.
package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorResponse is the error body. The client reads the message field.
type ErrorResponse struct {
	Status  int    `json:"-"`
	Message string `json:"message" example:"Email already exists"`
}

// Error implements error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorResponse) GetStatus() int {
	return e.Status
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// Every huma error, including request validation failures, renders as an
// ErrorResponse.
func init() {
	huma.NewError = newError
}

func newError(status int, msg string, errs ...error) huma.StatusError {
	if details := errors.Join(errs...); details != nil {
		msg += ": " + details.Error()
	}
	return &ErrorResponse{Status: status, Message: msg}
}
