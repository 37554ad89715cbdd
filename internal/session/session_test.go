package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avoronov/cadscreen/internal/model"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("super-secret"))
	want := Principal{UserID: 42, Username: "alice", Role: model.RolePatient}

	token, expiry, err := m.Issue(want)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if until := time.Until(expiry); until < 23*time.Hour || until > 25*time.Hour {
		t.Fatalf("expiry not ~24h away: %v", expiry)
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != want {
		t.Fatalf("principal mismatch: got %+v want %+v", got, want)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	m := NewManager(secret)

	expired := signedToken(t, secret, claims{
		Username: "bob",
		Role:     string(model.RoleDoctor),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := m.Verify(expired)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	right := NewManager([]byte("right-secret"))
	wrong := NewManager([]byte("wrong-secret"))

	token, _, err := right.Issue(Principal{UserID: 1, Username: "u", Role: model.RolePatient})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := wrong.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("k"))
	if _, err := m.Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestVerify_UnknownRole(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	m := NewManager(secret)

	token := signedToken(t, secret, claims{
		Username: "eve",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "3",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}
}

func TestVerify_NonNumericSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	m := NewManager(secret)

	token := signedToken(t, secret, claims{
		Username: "eve",
		Role:     string(model.RolePatient),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for non-numeric subject, got %v", err)
	}
}

func signedToken(t *testing.T, secret []byte, c claims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
