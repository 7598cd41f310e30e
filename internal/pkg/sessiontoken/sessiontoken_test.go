package sessiontoken

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateParseRoundtrip(t *testing.T) {
	token, err := Generate("secret", "session-123", time.Hour)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := Parse("secret", token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.SessionID != "session-123" {
		t.Errorf("session id = %q", claims.SessionID)
	}
}

func TestParseRejects(t *testing.T) {
	valid, err := Generate("secret", "session-123", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := Generate("secret", "session-123", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{name: "wrong secret", secret: "other", token: valid},
		{name: "expired token", secret: "secret", token: expired},
		{name: "garbage token", secret: "secret", token: "not.a.jwt"},
		{name: "empty token", secret: "secret", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.secret, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("got %v, want ErrInvalidToken", err)
			}
		})
	}
}
