package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/j-prt/rating-app-backend/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	email := "alice@example.com"

	tok, err := GenerateToken(email, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotEmail, err := GetEmailFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetEmailFromToken error: %v", err)
	}
	if gotEmail != email {
		t.Fatalf("email mismatch: got %q want %q", gotEmail, email)
	}
}

func TestGetEmailFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("a@x.com", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetEmailFromToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestGetEmailFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("b@x.com", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetEmailFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetEmailFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetEmailFromToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
