package handler

import (
	"crypto/rsa" // RSA private key used to sign access tokens
	"errors"     // sentinel error matching
	"net/http"   // HTTP status codes and primitives
	"strings"    // string manipulation utilities
	"time"       // token expiry timestamps

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/reelstack/catalog-api/internal/config"     // app configuration
	"github.com/reelstack/catalog-api/internal/repository" // DB repositories
	"github.com/reelstack/catalog-api/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for the registration and login
// endpoints. The signing key is the private half of the RSA pair; the
// public half lives in the principal-resolution middleware.
type AuthHandler struct {
	Cfg        config.Config
	Users      *repository.UserRepo
	SigningKey *rsa.PrivateKey
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, key *rsa.PrivateKey) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, SigningKey: key}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type loginResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	User    userPart  `json:"user"`
}

// Register: hash the password and create the user. The created row is
// re-read by the repository, so the response reflects exactly what was
// persisted.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Username, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user": userPart{ID: u.ID, Username: u.Username},
	})
}

// Login: verify credentials and issue a signed access token. An unknown
// username and a wrong password are deliberately indistinguishable.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.SigningKey, u.ID, h.Cfg.TokenTTLSecs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Token:   access.Token,
		Expires: access.Exp,
		User:    userPart{ID: u.ID, Username: u.Username},
	})
}
