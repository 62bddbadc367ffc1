package jwt

import (
	"testing"
	"time"

	"dailywag-backend/config"

	"github.com/google/uuid"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "vet@dailywag.test", 2)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID || claims.RoleID != 2 || claims.TokenID != tokenID {
		t.Fatalf("claims = %+v, want user %s role 2 token %s", claims, userID, tokenID)
	}
	if claims.TokenType != AccessToken {
		t.Fatalf("TokenType = %s, want %s", claims.TokenType, AccessToken)
	}
	if got := svc.RemainingLifetime(claims); got <= 0 || got > time.Hour {
		t.Fatalf("RemainingLifetime = %v, want within (0, 1h]", got)
	}
}

func TestValidateToken_RejectsForeignSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "issuer-secret", AccessExpiry: time.Hour})
	verifier := NewJWTService(config.JWTConfig{Secret: "other-secret", AccessExpiry: time.Hour})

	token, _, err := issuer.GenerateAccessToken(uuid.New(), "a@b.test", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatalf("ValidateToken accepted a token signed with another secret")
	}
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s", AccessExpiry: time.Minute})
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateAccessToken(uuid.New(), "a@b.test", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatalf("ValidateToken accepted an expired token")
	}
}
