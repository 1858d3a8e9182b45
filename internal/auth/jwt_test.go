package auth

import (
	"testing"
	"time"

	"estate-backoffice/internal/config"
	"estate-backoffice/internal/models"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.Session.Secret = secret
	cfg.Session.Issuer = "estate-backoffice"
	cfg.Session.ExpirationHours = 1
	return cfg
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig("s3cret"))
	token, err := m.GenerateToken(&models.Session{ID: "sess-1", Username: "asha", Role: models.RoleSalesPerson})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.SessionID != "sess-1" || claims.Username != "asha" || claims.Role != "sales_person" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTManager(testConfig("one")).GenerateToken(&models.Session{ID: "s"})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, err := NewJWTManager(testConfig("two")).ValidateToken(token); err == nil {
			t.Fatal("expected signature error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		m := NewJWTManager(testConfig("s3cret"))
		token, err := m.GenerateToken(&models.Session{ID: "s", ExpiresAt: time.Now().Add(-time.Minute)})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, err := m.ValidateToken(token); err == nil {
			t.Fatal("expected expiry error")
		}
	})

	t.Run("missing session id", func(t *testing.T) {
		m := NewJWTManager(testConfig("s3cret"))
		token, err := m.GenerateToken(&models.Session{})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, err := m.ValidateToken(token); err == nil {
			t.Fatal("expected error for token without session")
		}
	})
}
