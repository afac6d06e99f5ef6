package api

import (
	"errors"
	"strings"
)

const (
	fallbackMessage = "request failed"
	loginMessage    = "invalid login credentials"
)

var ErrMissingAccessToken = errors.New("login response carried no access_token")

// RequestError is a non-2xx answer from the HR API. Message is the response
// body text as received, or "request failed" when the body was empty.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func newRequestError(status int, body []byte) *RequestError {
	message := string(body)
	if strings.TrimSpace(message) == "" {
		message = fallbackMessage
	}
	return &RequestError{Status: status, Message: message}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}
