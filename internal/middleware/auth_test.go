package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/filipedeo/fretboard-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "practice-room-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		Email: "player@example.com",
		Role:  "student",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestParseToken(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())
		claims, err := ParseToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "user-7", claims.Subject)
		assert.Equal(t, "player@example.com", claims.Email)
		assert.Equal(t, "student", claims.Role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims())
		_, err := ParseToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		_, err := ParseToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := validClaims()
		claims.Subject = ""
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		_, err := ParseToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims())
		_, err := ParseToken(token, testSecret)
		assert.Error(t, err)
	})
}

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(secret string) *gin.Engine {
		router := gin.New()
		router.GET("/me", JWTAuth(&config.Config{AuthMode: "jwt", JWTSecret: secret}), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"id":    c.GetString("user_id"),
				"email": c.GetString("user_email"),
				"role":  c.GetString("user_role"),
			})
		})
		return router
	}

	request := func(router *gin.Engine, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	t.Run("bearer token", func(t *testing.T) {
		w := request(newRouter(testSecret), "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"id":"user-7","email":"player@example.com","role":"student"}`, w.Body.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		w := httptest.NewRecorder()
		newRouter(testSecret).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(newRouter(testSecret), "").Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(newRouter(testSecret), "Token "+token).Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(newRouter("rotated"), "Bearer "+token).Code)
	})

	t.Run("secret not configured", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, request(newRouter(""), "Bearer "+token).Code)
	})
}
