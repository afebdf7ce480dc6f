package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testUserID = "6f1c2a7e-3b4d-4c5e-8f90-123456789abc"

func TestJWTValidator_RoundTrip(t *testing.T) {
	v := NewJWTValidator([]byte("test-secret"))

	token, err := v.Sign(testUserID, "agent@test.com", time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	for _, input := range []string{token, "Bearer " + token} {
		claims, err := v.Validate(input)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if claims.UserID != testUserID {
			t.Errorf("expected user %s, got %s", testUserID, claims.UserID)
		}
		if claims.Email != "agent@test.com" {
			t.Errorf("expected email agent@test.com, got %s", claims.Email)
		}
	}
}

func TestJWTValidator_Expired(t *testing.T) {
	v := NewJWTValidator([]byte("test-secret"))

	token, err := v.Sign(testUserID, "", -time.Minute)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if _, err := v.Validate(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTValidator_Rejects(t *testing.T) {
	v := NewJWTValidator([]byte("test-secret"))
	other := NewJWTValidator([]byte("other-secret"))

	wrongKey, _ := other.Sign(testUserID, "", time.Hour)
	badSubject, _ := v.Sign("not-a-uuid", "", time.Hour)

	noAudience, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: testUserID,
	}).SignedString([]byte("test-secret"))

	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Audience: jwt.ClaimStrings{audience}},
		UserID:           testUserID,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong key", token: wrongKey},
		{name: "subject is not a uuid", token: badSubject},
		{name: "missing audience", token: noAudience},
		{name: "none algorithm", token: noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Validate(tt.token); err != ErrInvalidToken {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
