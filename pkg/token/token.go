package token

import (
	"net/http"
	"net/url"
	"strconv"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const CookieName = "token"

var (
	ErrNoToken = errors.New("token cookie not found")
	ErrDecode  = errors.New("token decode failed")
)

// FromRequest reads the raw session token from the request cookie.
// The cookie value is URL-encoded by the issuer.
func FromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrNoToken
	}
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", ErrDecode
	}
	return raw, nil
}

// UserID extracts the requester id from a session token. The token is
// issued by the backend and already verified there; the gateway only
// decodes the claims.
func UserID(raw string) (int, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return 0, ErrDecode
	}
	id, ok := claims["id"]
	if !ok {
		return 0, ErrDecode
	}
	switch v := id.(type) {
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, ErrDecode
		}
		return n, nil
	case float64:
		return int(v), nil
	default:
		return 0, ErrDecode
	}
}
