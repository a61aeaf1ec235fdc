package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
	ErrNotFound     = errors.New("not found")
)

// Error is a structured API failure: the HTTP status, the server's free-form
// message (if any), and field-keyed validation errors for form endpoints.
type Error struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Sprintf("api error %d: validation failed (%s)", e.StatusCode, strings.Join(keys, ", "))
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Unwrap maps well-known statuses onto sentinel errors so callers can use
// errors.Is without caring about HTTP codes.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}
	return nil
}

// FirstFieldError returns the first validation message found when checking
// the given field names in order, or an empty string.
func (e *Error) FirstFieldError(fields ...string) string {
	for _, f := range fields {
		if msgs := e.Fields[f]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}

// Message returns the best human-readable description the payload carried:
// detail first, then the first field error, then the generic fallback.
func (e *Error) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	for _, msgs := range e.Fields {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return fallback
}

// parseError builds an *Error from a response body. It tolerates any body
// shape: non-JSON payloads simply produce an Error with only the status set.
func parseError(statusCode int, body []byte) *Error {
	e := &Error{StatusCode: statusCode}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return e
	}

	for key, val := range raw {
		switch key {
		case "detail", "error":
			var s string
			if json.Unmarshal(val, &s) == nil && e.Detail == "" {
				e.Detail = s
			}
		default:
			var msgs []string
			if json.Unmarshal(val, &msgs) == nil && len(msgs) > 0 {
				if e.Fields == nil {
					e.Fields = make(map[string][]string)
				}
				e.Fields[key] = msgs
				continue
			}
			// Django sometimes keys a single string by field name.
			var s string
			if json.Unmarshal(val, &s) == nil && s != "" {
				if e.Fields == nil {
					e.Fields = make(map[string][]string)
				}
				e.Fields[key] = []string{s}
			}
		}
	}

	return e
}
