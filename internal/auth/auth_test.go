package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/closurelabs/traininglog/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: "u1", UID: "u1", Role: models.Trainer, Email: "jane@x.com"}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)
	tok, err := m.IssueToken(testUser())
	if err != nil {
		t.Fatal(err)
	}
	claims, err := m.ParseToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UID != "u1" || claims.Role != string(models.Trainer) {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := NewManager("secret", time.Hour).IssueToken(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager("other", time.Hour).ParseToken(tok); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewManager("secret", -time.Minute)
	tok, err := m.IssueToken(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ParseToken(tok); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestResetTokenPurposeSeparation(t *testing.T) {
	m := NewManager("secret", time.Hour)
	session, err := m.IssueToken(testUser())
	if err != nil {
		t.Fatal(err)
	}
	reset, err := m.IssueResetToken(testUser())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.ParseResetToken(session); err != ErrInvalidToken {
		t.Error("session token accepted as reset token")
	}
	if _, err := m.ParseToken(reset); err != ErrInvalidToken {
		t.Error("reset token accepted as session token")
	}
	if _, err := m.ParseResetToken(reset); err != nil {
		t.Errorf("reset token rejected: %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("wrong password accepted")
	}
}

func TestRandomPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pw, err := RandomPassword()
		if err != nil {
			t.Fatal(err)
		}
		if len(pw) != 8 {
			t.Fatalf("len = %d", len(pw))
		}
		for _, r := range pw {
			if !strings.ContainsRune(passwordAlphabet, r) {
				t.Fatalf("unexpected char %q", r)
			}
		}
		seen[pw] = true
	}
	if len(seen) < 2 {
		t.Error("passwords do not vary")
	}
}
