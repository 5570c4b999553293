package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rsa" // RSA key types for asymmetric signing
    "errors"     // sentinel error definitions and matching
    "fmt"        // error wrapping with context
    "strconv"    // parsing string-encoded subject claims
    "time"       // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and verifying signed tokens
)

// Token verification errors. Callers match these with errors.Is to tell a
// stale-but-genuine token apart from a forged or garbled one.
var (
    ErrTokenExpired = errors.New("token expired")
    ErrTokenInvalid = errors.New("invalid token")
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string.  Exp stores the
// expiration timestamp.  Access tokens are carried in the Authorization
// header when calling protected endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an RS256 JWT for a user.  The signing key
// is the RSA private half of the configured key pair; verifiers hold only
// the public half, so the key material handed out for verification can
// never mint tokens.  The JWT carries the standard claims: subject (sub),
// expiration (exp) and issued at (iat).
func NewAccessToken(key *rsa.PrivateKey, userID uint64, ttlSecs int) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlSecs) * time.Second)
    claims := jwt.MapClaims{
        "sub": userID,
        "exp": exp.Unix(),
        "iat": now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
    signed, err := t.SignedString(key)
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken checks the signature and expiry of a serialized token
// against the RSA public key and returns the subject user id.  Claims are
// never read off an unverified token.  Expired tokens yield ErrTokenExpired;
// every other failure (bad signature, wrong algorithm, malformed claims)
// yields ErrTokenInvalid.
func VerifyAccessToken(raw string, key *rsa.PublicKey) (uint64, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject anything that is not RSA-signed; accepting an attacker
        // chosen algorithm here would defeat the key split.
        if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
        }
        return key, nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return 0, ErrTokenExpired
        }
        return 0, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
    }
    if !tok.Valid {
        return 0, ErrTokenInvalid
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, ErrTokenInvalid
    }
    // JSON numbers decode as float64; tolerate string-encoded ids as well.
    switch sub := claims["sub"].(type) {
    case float64:
        return uint64(sub), nil
    case string:
        if id, err := strconv.ParseUint(sub, 10, 64); err == nil {
            return id, nil
        }
    }
    return 0, fmt.Errorf("%w: missing sub claim", ErrTokenInvalid)
}
