package services

import (
	"context"
	"errors"
	"testing"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

func TestCreateAccountAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewAccountRepository(db))
	ctx := context.Background()

	signUp := request_models.SignUpRequest{
		DisplayName: "Traveler",
		Email:       "traveler@example.com",
		Password:    "correct horse",
	}
	if err := svc.CreateAccount(ctx, signUp); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	if err := svc.CreateAccount(ctx, signUp); !errors.Is(err, utils.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}

	token, err := svc.Login(ctx, request_models.LoginRequest{
		Email: "traveler@example.com", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("login should return a token")
	}

	if _, err := svc.Login(ctx, request_models.LoginRequest{
		Email: "traveler@example.com", Password: "wrong",
	}); !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.Login(ctx, request_models.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	}); !errors.Is(err, utils.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
