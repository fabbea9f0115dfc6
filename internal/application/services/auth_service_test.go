package services

import (
	"context"
	"testing"
	"time"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/config"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/ports"
)

func newAuthServiceFixture() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	cfg := config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "tasksphere-test",
	}
	return NewAuthService(users, cfg, logger.NewNop()), users
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newAuthServiceFixture()
	ctx := context.Background()

	resp, err := svc.Signup(ctx, ports.SignupRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("signup returned empty token")
	}
	if resp.User.Role != entities.UserRoleUser {
		t.Fatalf("new user role = %s, want user", resp.User.Role)
	}
	if resp.User.RewardPoints != 0 || resp.User.TasksCompleted != 0 {
		t.Fatalf("new user aggregates not zeroed: %+v", resp.User)
	}
	// The rating column allows 0 and defaults to it; a new account must
	// persist with rating 0 until the first completion is scored.
	if resp.User.Rating != 0 {
		t.Fatalf("new user rating = %v, want 0", resp.User.Rating)
	}
	if resp.User.PasswordHash != "" {
		t.Fatal("password hash leaked in response")
	}

	login, err := svc.Login(ctx, ports.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.ValidateToken(login.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != resp.User.ID.String() {
		t.Fatalf("token user_id = %s, want %s", claims.UserID, resp.User.ID)
	}
	if claims.Email != "ada@example.com" {
		t.Fatalf("token email = %s", claims.Email)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceFixture()
	ctx := context.Background()

	req := ports.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2"}
	if _, err := svc.Signup(ctx, req); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := svc.Signup(ctx, req); err == nil {
		t.Fatal("duplicate signup succeeded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceFixture()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, ports.SignupRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2",
	}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if _, err := svc.Login(ctx, ports.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	}); err == nil {
		t.Fatal("login with wrong password succeeded")
	}

	if _, err := svc.Login(ctx, ports.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
	}); err == nil {
		t.Fatal("login with unknown email succeeded")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage token validated")
	}
}
