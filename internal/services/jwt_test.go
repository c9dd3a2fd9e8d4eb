package services_test

import (
	"testing"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/services"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := services.NewJWTService("test-secret", 60)

	wallet := "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	token, err := svc.GenerateToken(wallet)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Wallet != wallet {
		t.Errorf("wallet %q, expected %q", claims.Wallet, wallet)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := services.NewJWTService("secret-a", 60).GenerateToken("walletX")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = services.NewJWTService("secret-b", 60).ValidateToken(token)
	if !errs.Is(err, errs.KindAuthenticationFailed) {
		t.Fatalf("expected authentication_failed, got %v", err)
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	_, err := services.NewJWTService("secret", 60).ValidateToken("not-a-token")
	if !errs.Is(err, errs.KindAuthenticationFailed) {
		t.Fatalf("expected authentication_failed, got %v", err)
	}
}
