package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWT(t *testing.T) {
	token, err := GenerateJWT("admin@example.com", "test-secret")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	if claims["email"] != "admin@example.com" {
		t.Fatalf("email claim = %v", claims["email"])
	}

	// Tokens are bound to the configured secret, not ambient state.
	if _, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	}); err == nil {
		t.Fatal("token should not verify under a different secret")
	}
}
