package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func csrfTestHandler() http.Handler {
	return CSRFProtection()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCSRFProtection(t *testing.T) {
	t.Run("safe methods are exempt", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
			rec := httptest.NewRecorder()
			csrfTestHandler().ServeHTTP(rec, httptest.NewRequest(method, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code, method)
		}
	})

	t.Run("post without token is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		csrfTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching header passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
		req.Header.Set(CSRFHeaderName, "tok")
		rec := httptest.NewRecorder()
		csrfTestHandler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("mismatched header is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
		req.Header.Set(CSRFHeaderName, "other")
		rec := httptest.NewRecorder()
		csrfTestHandler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("cookie without echo is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
		rec := httptest.NewRecorder()
		csrfTestHandler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("form field passes", func(t *testing.T) {
		body := strings.NewReader("csrf_token=tok")
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
		rec := httptest.NewRecorder()
		csrfTestHandler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestIsForwardedHTTPS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, isForwardedHTTPS(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.True(t, isForwardedHTTPS(req))

	req.Header.Set("X-Forwarded-Proto", "https, http")
	assert.True(t, isForwardedHTTPS(req))

	req.Header.Set("X-Forwarded-Proto", "http")
	assert.False(t, isForwardedHTTPS(req))
}
