package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError_Detail(t *testing.T) {
	e := parseError(http.StatusUnauthorized, []byte(`{"detail":"Invalid credentials"}`))
	assert.Equal(t, "Invalid credentials", e.Detail)
	assert.Equal(t, http.StatusUnauthorized, e.StatusCode)
}

func TestParseError_ErrorKey(t *testing.T) {
	e := parseError(http.StatusNotFound, []byte(`{"error":"Document not found"}`))
	assert.Equal(t, "Document not found", e.Detail)
}

func TestParseError_FieldArrays(t *testing.T) {
	body := []byte(`{"username":["A user with that username already exists."],"password":["This password is too short."]}`)
	e := parseError(http.StatusBadRequest, body)

	assert.Empty(t, e.Detail)
	assert.Equal(t, "A user with that username already exists.", e.FirstFieldError("username", "email", "password"))
	assert.Equal(t, "This password is too short.", e.FirstFieldError("email", "password"))
	assert.Empty(t, e.FirstFieldError("email"))
}

func TestParseError_SingleStringField(t *testing.T) {
	e := parseError(http.StatusBadRequest, []byte(`{"password":"Passwords do not match."}`))
	assert.Equal(t, "Passwords do not match.", e.FirstFieldError("password"))
}

func TestParseError_MalformedBody(t *testing.T) {
	e := parseError(http.StatusBadGateway, []byte(`<html>bad gateway</html>`))
	assert.Equal(t, http.StatusBadGateway, e.StatusCode)
	assert.Empty(t, e.Detail)
	assert.Empty(t, e.Fields)
}

func TestError_Unwrap(t *testing.T) {
	assert.True(t, errors.Is(&Error{StatusCode: http.StatusUnauthorized}, ErrUnauthorized))
	assert.True(t, errors.Is(&Error{StatusCode: http.StatusForbidden}, ErrUnauthorized))
	assert.True(t, errors.Is(&Error{StatusCode: http.StatusNotFound}, ErrNotFound))
	assert.True(t, errors.Is(&Error{StatusCode: http.StatusBadGateway}, ErrUnavailable))
	assert.False(t, errors.Is(&Error{StatusCode: http.StatusBadRequest}, ErrUnauthorized))
}

func TestError_Message(t *testing.T) {
	e := &Error{StatusCode: 400, Detail: "nope"}
	assert.Equal(t, "nope", e.Message("fallback"))

	e = &Error{StatusCode: 400, Fields: map[string][]string{"email": {"taken"}}}
	assert.Equal(t, "taken", e.Message("fallback"))

	e = &Error{StatusCode: 500}
	assert.Equal(t, "fallback", e.Message("fallback"))
}

func TestError_ErrorString(t *testing.T) {
	e := &Error{StatusCode: 400, Fields: map[string][]string{"b": {"x"}, "a": {"y"}}}
	assert.Equal(t, "api error 400: validation failed (a, b)", e.Error())

	e = &Error{StatusCode: 401, Detail: "nope"}
	assert.Equal(t, "api error 401: nope", e.Error())
}
