package auth

import (
	"testing"
	"time"

	"salon-booking-api/internal/model"
)

const secret = "test-secret"

func testUser() *model.User {
	return &model.User{ID: "u1", Name: "Test User", Role: model.RoleAdmin}
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken(testUser(), secret)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("uid mismatch: %s", claims.UserID)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("role mismatch: %s", claims.Role)
	}

	p := claims.Principal()
	if !p.IsAdmin() || p.ID != "u1" || p.Name != "Test User" {
		t.Errorf("bad principal: %+v", p)
	}

	// verify expiry is ~15 min from now
	diff := time.Until(claims.ExpiresAt.Time)
	if diff < 14*time.Minute || diff > 16*time.Minute {
		t.Errorf("expected ~15min expiry, got %v", diff)
	}
}

func TestPrincipalDefaultsToUser(t *testing.T) {
	c := &Claims{UserID: "u1"}
	if c.Principal().Role != model.RoleUser {
		t.Error("missing role claim should default to USER")
	}
	if c.Principal().IsAdmin() {
		t.Error("default principal must not be admin")
	}
}

func TestTokenRejection(t *testing.T) {
	tok, _ := MakeToken(testUser(), secret)

	// wrong secret fails
	if _, err := ParseToken(tok, "wrong-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}

	// garbage token fails
	if _, err := ParseToken("not.a.token", secret); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "hunter2hunter2") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestRefreshTokenGeneration(t *testing.T) {
	raw, hash, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(raw) != 64 { // 32 bytes hex = 64 chars
		t.Errorf("expected 64 char raw token, got %d", len(raw))
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}

	// verify hash matches
	if HashRefreshToken(raw) != hash {
		t.Error("hash mismatch")
	}
}
