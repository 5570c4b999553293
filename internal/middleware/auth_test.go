package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelstack/catalog-api/internal/utils"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

// resolve runs ResolvePrincipal over a request with the given Authorization
// header and reports the principal the downstream handler observed.
func resolve(t *testing.T, pub *rsa.PublicKey, authHeader string) (uint64, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var uid uint64
	var ok bool
	h := ResolvePrincipal(pub)(func(c echo.Context) error {
		uid, ok = Principal(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	require.Equal(t, http.StatusOK, rec.Code, "resolution must never reject the request")
	return uid, ok
}

func TestResolvePrincipal(t *testing.T) {
	key := testKey(t)

	t.Run("valid bearer token", func(t *testing.T) {
		access, err := utils.NewAccessToken(key, 42, 3600)
		require.NoError(t, err)

		uid, ok := resolve(t, &key.PublicKey, "Bearer "+access.Token)
		assert.True(t, ok)
		assert.Equal(t, uint64(42), uid)
	})

	t.Run("no header means no principal", func(t *testing.T) {
		_, ok := resolve(t, &key.PublicKey, "")
		assert.False(t, ok)
	})

	t.Run("wrong scheme means no principal", func(t *testing.T) {
		access, err := utils.NewAccessToken(key, 42, 3600)
		require.NoError(t, err)

		_, ok := resolve(t, &key.PublicKey, "Basic "+access.Token)
		assert.False(t, ok)
	})

	t.Run("garbage token means no principal", func(t *testing.T) {
		_, ok := resolve(t, &key.PublicKey, "Bearer not.a.token")
		assert.False(t, ok)
	})

	t.Run("expired token means no principal", func(t *testing.T) {
		access, err := utils.NewAccessToken(key, 42, -10)
		require.NoError(t, err)

		_, ok := resolve(t, &key.PublicKey, "Bearer "+access.Token)
		assert.False(t, ok)
	})

	t.Run("token signed by a different key means no principal", func(t *testing.T) {
		other := testKey(t)
		access, err := utils.NewAccessToken(other, 42, 3600)
		require.NoError(t, err)

		_, ok := resolve(t, &key.PublicKey, "Bearer "+access.Token)
		assert.False(t, ok)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("no principal yields 401 and the handler never runs", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/v1/movies", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handlerRan := false
		h := RequireAuth()(func(c echo.Context) error {
			handlerRan = true
			return c.NoContent(http.StatusCreated)
		})
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handlerRan, "gated handler must not execute without a principal")
	})

	t.Run("resolved principal passes through", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/v1/movies", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", uint64(7))

		h := RequireAuth()(func(c echo.Context) error {
			return c.NoContent(http.StatusCreated)
		})
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}
