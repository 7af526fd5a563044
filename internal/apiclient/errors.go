// Package apiclient talks to the club REST API. It attaches the bearer token,
// decodes JSON bodies and turns every failure into an error whose message can
// be shown to a person as is.
package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrSessionExpired is returned for any 401. Callers clear the session and
// send the user to the login screen.
var ErrSessionExpired = errors.New("session expired")

// ErrUnexpectedShape is returned when a successful response is not the JSON
// the endpoint promises.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// ErrTransport wraps network failures where no response was received.
var ErrTransport = errors.New("transport failure")

// DefaultMessage is shown when nothing more specific is known.
const DefaultMessage = "Something went wrong"

// APIError is a non-2xx response from the API.
type APIError struct {
	Status int    // HTTP status code
	Detail string // flattened detail, empty when the body carried none
	Body   []byte // raw response body
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// Is lets errors.Is match ErrSessionExpired on 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && e.Status == http.StatusUnauthorized
}

// flattenDetail reads the "detail" field, which is either a string or a list
// of {msg, ...} objects joined with ", ".
func flattenDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	d := gjson.GetBytes(body, "detail")
	switch {
	case d.Type == gjson.String:
		return d.String()
	case d.IsArray():
		var msgs []string
		for _, e := range d.Array() {
			if m := e.Get("msg"); m.Exists() {
				msgs = append(msgs, m.String())
			}
		}
		return strings.Join(msgs, ", ")
	}
	return ""
}

// Message returns the display string for err, or DefaultMessage.
func Message(err error) string {
	return MessageOr(err, DefaultMessage)
}

// MessageOr is Message with a caller-chosen fallback, used when the screen
// knows what it was trying to do ("Failed to create reservation").
func MessageOr(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var verr interface{ UserMessage() string }
	if errors.As(err, &verr) {
		return verr.UserMessage()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
