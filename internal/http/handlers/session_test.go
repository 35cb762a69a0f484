package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postclinics/clinic-dashboard/internal/gateway"
	"github.com/postclinics/clinic-dashboard/internal/session"
)

type loginFunc func(ctx context.Context, creds gateway.Credentials) (string, error)

func (f loginFunc) Login(ctx context.Context, creds gateway.Credentials) (string, error) {
	return f(ctx, creds)
}

func TestSessionLoginSuccess(t *testing.T) {
	tokens := session.NewMemoryStore()
	guard := session.NewGuard(tokens, nil, nil)
	h := NewSessionHandler(loginFunc(func(ctx context.Context, creds gateway.Credentials) (string, error) {
		assert.Equal(t, "debora", creds.Username)
		return "tok_new", nil
	}), guard, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/session/login", strings.NewReader(`{"username":"debora","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]bool
	decodeBody(t, rec, &body)
	assert.True(t, body["authenticated"])

	stored, ok := tokens.Token()
	require.True(t, ok)
	assert.Equal(t, "tok_new", stored)
}

func TestSessionLoginInvalidCredentials(t *testing.T) {
	tokens := session.NewMemoryStore()
	guard := session.NewGuard(tokens, nil, nil)
	h := NewSessionHandler(loginFunc(func(ctx context.Context, creds gateway.Credentials) (string, error) {
		return "", &gateway.APIError{Op: "login", StatusCode: http.StatusUnauthorized}
	}), guard, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/session/login", strings.NewReader(`{"username":"debora","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	_, ok := tokens.Token()
	assert.False(t, ok)
}

func TestSessionLoginGatewayUnreachable(t *testing.T) {
	guard := session.NewGuard(session.NewMemoryStore(), nil, nil)
	h := NewSessionHandler(loginFunc(func(ctx context.Context, creds gateway.Credentials) (string, error) {
		return "", &gateway.UnreachableError{Op: "login", Err: context.DeadlineExceeded}
	}), guard, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/session/login", strings.NewReader(`{"username":"debora","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSessionLoginRejectsBadPayload(t *testing.T) {
	guard := session.NewGuard(session.NewMemoryStore(), nil, nil)
	h := NewSessionHandler(loginFunc(func(ctx context.Context, creds gateway.Credentials) (string, error) {
		t.Fatal("gateway must not be called")
		return "", nil
	}), guard, nil)

	for name, payload := range map[string]string{
		"malformed json":   `{"username":`,
		"missing password": `{"username":"debora"}`,
		"empty":            `{}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/session/login", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestSessionLogoutClearsToken(t *testing.T) {
	tokens := session.NewMemoryStore()
	require.NoError(t, tokens.Set("tok_old"))
	guard := session.NewGuard(tokens, nil, nil)
	h := NewSessionHandler(nil, guard, nil)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/session/logout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := tokens.Token()
	assert.False(t, ok)
}

func TestSessionStatus(t *testing.T) {
	tokens := session.NewMemoryStore()
	guard := session.NewGuard(tokens, nil, nil)
	h := NewSessionHandler(nil, guard, nil)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/session/", nil))
	var body map[string]bool
	decodeBody(t, rec, &body)
	assert.False(t, body["authenticated"])

	require.NoError(t, tokens.Set("tok_ok"))
	rec = httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/session/", nil))
	decodeBody(t, rec, &body)
	assert.True(t, body["authenticated"])
}
