package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/filipedeo/fretboard-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(authMode, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(&config.Config{
		Environment:       "test",
		AuthMode:          authMode,
		JWTSecret:         secret,
		DefaultInstrument: "guitar",
		MaxFret:           22,
	}, nil, "test")
}

func get(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouterNoAuth(t *testing.T) {
	router := newTestRouter("none", "")

	assert.Equal(t, http.StatusOK, get(router, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, get(router, "/api/metrics", nil).Code)

	w := get(router, "/api/v1/tunings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patterns/notes-per-string",
		strings.NewReader(`{"key":"G","mode":"mixolydian","seed_fret":3}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouterGatewayAuth(t *testing.T) {
	router := newTestRouter("gateway", "")

	// health stays public
	assert.Equal(t, http.StatusOK, get(router, "/health", nil).Code)

	assert.Equal(t, http.StatusUnauthorized, get(router, "/api/v1/modes", nil).Code)
	assert.Equal(t, http.StatusOK, get(router, "/api/v1/modes", map[string]string{"X-User-ID": "u1"}).Code)
}

func TestRouterJWTAuth(t *testing.T) {
	const secret = "router-secret"
	router := newTestRouter("jwt", secret)

	assert.Equal(t, http.StatusUnauthorized, get(router, "/api/v1/voicings", nil).Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u2",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	w := get(router, "/api/v1/voicings", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterPreflight(t *testing.T) {
	router := newTestRouter("gateway", "")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/patterns/pentatonic-box", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
