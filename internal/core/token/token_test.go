package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/modavn/storefront-api/internal/core/domain"
)

var testUser = &domain.User{ID: 7, Email: "a@b.com", Name: "A", Role: domain.RoleUser}

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, err := iss.Issue(testUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := iss.Verify(raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("unexpected user id: %d", claims.UserID)
	}
	if claims.Email != "a@b.com" || claims.Name != "A" {
		t.Fatalf("unexpected identity claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", claims.ExpiresAt)
	}
}

func TestVerify_Expired(t *testing.T) {
	// Hand-sign an already expired token with the same secret: the signature is
	// valid but expiry must still reject it.
	now := time.Now()
	claims := &Claims{
		UserID: 7,
		Email:  "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	iss := NewIssuer("secret", time.Hour)
	if _, err := iss.Verify(raw); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret-a", time.Hour).Issue(testUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Verify(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := iss.Verify(raw); err != ErrInvalidToken {
			t.Fatalf("raw %q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestVerify_RejectsUnsignedAlg(t *testing.T) {
	claims := &Claims{UserID: 7, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	iss := NewIssuer("secret", time.Hour)
	if _, err := iss.Verify(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}
