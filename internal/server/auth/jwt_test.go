package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/umeduck/quack-note/internal/common"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("any-key"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}
	return signed
}

func TestUnverifiedDecoder_Subject(t *testing.T) {
	t.Parallel()

	tok := mintToken(t, jwt.MapClaims{
		"sub": "sub-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	sub, err := UnverifiedDecoder{}.Subject(tok)
	if err != nil {
		t.Fatalf("Subject error: %v", err)
	}
	if sub != "sub-1" {
		t.Fatalf("subject mismatch: got %q want %q", sub, "sub-1")
	}
}

func TestUnverifiedDecoder_SignatureIsNotChecked(t *testing.T) {
	t.Parallel()

	// the decoder trusts the payload regardless of who signed it
	tok := mintToken(t, jwt.MapClaims{"sub": "sub-2"})

	sub, err := UnverifiedDecoder{}.Subject(tok)
	if err != nil {
		t.Fatalf("Subject error: %v", err)
	}
	if sub != "sub-2" {
		t.Fatalf("subject mismatch: got %q", sub)
	}
}

func TestUnverifiedDecoder_MissingSub(t *testing.T) {
	t.Parallel()

	tok := mintToken(t, jwt.MapClaims{"email": "ann@x.com"})

	_, err := UnverifiedDecoder{}.Subject(tok)
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized for token without sub claim, got %v", err)
	}
}

func TestUnverifiedDecoder_Garbage(t *testing.T) {
	t.Parallel()

	_, err := UnverifiedDecoder{}.Subject("not-a-jwt")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized for malformed token, got %v", err)
	}
}
