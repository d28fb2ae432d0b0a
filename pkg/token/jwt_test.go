package token

import "testing"

func TestGenerateAndVerifyToken(t *testing.T) {
	m := NewJWTManager("secret", 1, 7)

	tokenString, err := m.GenerateToken(42, "a@x.com", "STUDENT")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@x.com" || claims.Role != "STUDENT" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	m := NewJWTManager("secret", 1, 7)
	other := NewJWTManager("different", 1, 7)

	tokenString, err := m.GenerateToken(1, "a@x.com", "STUDENT")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := other.VerifyToken(tokenString); err == nil {
		t.Fatalf("expected verification to fail with wrong secret")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	m := NewJWTManager("secret", 1, 7)
	if _, err := m.VerifyToken("not.a.token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
