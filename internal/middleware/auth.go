package middleware // middleware provides shared request processing for handlers

import (
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reelstack/catalog-api/internal/utils"
)

// principalKey is the echo context key under which the authenticated user id
// is stored. Absence of the key means the request is anonymous.
const principalKey = "user_id"

// ResolvePrincipal returns middleware that reads a Bearer credential from
// the Authorization header and, when it verifies against the RSA public
// key, stores the subject user id in the request context. A missing header,
// a non-Bearer scheme and a failed verification are all the same observable
// state: no principal. Resolution never rejects a request; read endpoints
// serve anonymous callers and write endpoints enforce the principal through
// RequireAuth.
func ResolvePrincipal(pub *rsa.PublicKey) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			uid, err := utils.VerifyAccessToken(raw, pub)
			if err != nil {
				// Invalid and expired tokens resolve to anonymous here;
				// only RequireAuth turns that into a 401.
				return next(c)
			}
			c.Set(principalKey, uid)
			return next(c)
		}
	}
}

// RequireAuth returns middleware that aborts with 401 Unauthorized when no
// principal was resolved. It is the sole authentication enforcement point
// and guards only the mutation routes, running before any handler side
// effect.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := Principal(c); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			return next(c)
		}
	}
}

// Principal reports the authenticated user id for the request, if any.
func Principal(c echo.Context) (uint64, bool) {
	uid, ok := c.Get(principalKey).(uint64)
	return uid, ok
}
