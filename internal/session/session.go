// Package session issues and verifies the signed, self-contained tokens that
// prove authentication. There is no server-side session store: authenticity
// comes from the HMAC signature, liveness from the embedded expiry.
package session

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avoronov/cadscreen/internal/model"
)

const (
	CookieName = "session"
	TTL        = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid session token")

// Principal identifies the authenticated caller on a request.
type Principal struct {
	UserID   model.ID
	Username string
	Role     model.Role
}

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
}

func NewManager(secret []byte) *Manager {
	return &Manager{secret: secret}
}

func (m *Manager) Issue(p Principal) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(TTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: p.Username,
		Role:     string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiry, nil
}

func (m *Manager) Verify(tokenStr string) (Principal, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var c claims
	_, err := parser.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	if c.ExpiresAt == nil || time.Until(c.ExpiresAt.Time) <= 0 {
		return Principal{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	role, ok := model.ParseRole(c.Role)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	return Principal{
		UserID:   userID,
		Username: c.Username,
		Role:     role,
	}, nil
}

// WriteCookie sets the session cookie. HttpOnly and SameSite=Strict match
// the cookie contract of the original deployment.
func WriteCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiry,
		MaxAge:   int(time.Until(expiry).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// DeleteCookie instructs the client to discard the session token.
func DeleteCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
