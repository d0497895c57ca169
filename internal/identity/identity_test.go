package identity

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	in := Collaborator{
		ID:        "user-1",
		Email:     "ada@example.com",
		Name:      "Ada",
		AvatarURL: "https://cdn.example.com/ada.png",
	}

	token, err := CreateToken(in, secret, 0)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	out, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if out != in {
		t.Fatalf("collaborator mismatch: got %+v want %+v", out, in)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := CreateToken(Collaborator{ID: "user-1"}, "secret-a", 0)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := ParseToken(token, "secret-b"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	expired := time.Now().Add(-time.Hour).Unix()
	token, err := CreateToken(Collaborator{ID: "user-1"}, "secret", expired)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := ParseToken(token, "secret"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestCreateTokenRequiresID(t *testing.T) {
	if _, err := CreateToken(Collaborator{}, "secret", 0); err == nil {
		t.Fatal("expected error for empty collaborator id")
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name string
		in   Collaborator
		want string
	}{
		{"explicit name wins", Collaborator{ID: "u1", Email: "ada@example.com", Name: "Ada"}, "Ada"},
		{"email local part", Collaborator{ID: "u1", Email: "ada@example.com"}, "ada"},
		{"id fallback", Collaborator{ID: "u1"}, "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.DisplayLabel(); got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayLabelIgnoresLeadingAt(t *testing.T) {
	c := Collaborator{ID: "u1", Email: "@example.com"}
	if got := c.DisplayLabel(); got != "u1" || strings.Contains(got, "@") {
		t.Fatalf("got %q", got)
	}
}
