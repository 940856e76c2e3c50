package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSession_Claims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-42",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}

	sess := &Session{JWT: signed}
	claims := sess.Claims()
	if claims == nil {
		t.Fatal("Claims() = nil, want parsed claims")
	}
	if claims.Subject != "user-42" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-42")
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt, exp)
	}
}

func TestSession_ClaimsOpaqueToken(t *testing.T) {
	// Telegram pseudo-tokens and plain API keys are not JWTs; the session
	// must still work with them.
	for _, tok := range []string{"telegram:42:tenant-1", "plain-api-key", ""} {
		sess := &Session{JWT: tok}
		if claims := sess.Claims(); claims != nil {
			t.Errorf("Claims() for %q = %+v, want nil", tok, claims)
		}
	}
}

func TestSession_IsExpired(t *testing.T) {
	fresh := &Session{CreatedAt: time.Now()}
	if fresh.IsExpired() {
		t.Error("fresh session reported expired")
	}

	old := &Session{CreatedAt: time.Now().Add(-Expiry - time.Second)}
	if !old.IsExpired() {
		t.Error("session past the expiry window reported valid")
	}
}
