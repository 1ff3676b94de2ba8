package service

import (
	"errors"
	"strings"
	"testing"
)

func TestLoginAndValidateToken(t *testing.T) {
	t.Setenv("HOST_USERNAME", "host")
	t.Setenv("HOST_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewAuthService()

	resp, err := svc.Login("host", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	if !strings.HasPrefix(resp.HostID, "host_") {
		t.Errorf("hostId = %q, want host_ prefix", resp.HostID)
	}

	claims, err := svc.ValidateHostToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateHostToken: %v", err)
	}
	if claims.HostID != resp.HostID {
		t.Errorf("claims hostId = %q, want %q", claims.HostID, resp.HostID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("HOST_USERNAME", "host")
	t.Setenv("HOST_PASSWORD", "hunter2")

	svc := NewAuthService()

	for _, tc := range []struct{ username, password string }{
		{"host", "wrong"},
		{"nobody", "hunter2"},
		{"", ""},
	} {
		if _, err := svc.Login(tc.username, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q): got %v, want ErrInvalidCredentials", tc.username, tc.password, err)
		}
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService()

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := svc.ValidateHostToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidateHostToken(%q): got %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	t.Setenv("HOST_USERNAME", "host")
	t.Setenv("HOST_PASSWORD", "hunter2")

	t.Setenv("JWT_SECRET", "secret-a")
	issuer := NewAuthService()
	resp, err := issuer.Login("host", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	verifier := NewAuthService()
	if _, err := verifier.ValidateHostToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken for token signed with another secret", err)
	}
}
