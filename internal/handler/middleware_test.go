package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyMiddleware_DisabledWhenNoKeyConfigured(t *testing.T) {
	mw := APIKeyMiddleware("", NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyMiddleware_MissingHeader(t *testing.T) {
	mw := APIKeyMiddleware("secret", NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyMiddleware_MalformedHeader(t *testing.T) {
	mw := APIKeyMiddleware("secret", NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert", nil)
	req.Header.Set("Authorization", "secret")
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyMiddleware_WrongKey(t *testing.T) {
	mw := APIKeyMiddleware("secret", NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyMiddleware_ValidKey(t *testing.T) {
	mw := APIKeyMiddleware("secret", NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
