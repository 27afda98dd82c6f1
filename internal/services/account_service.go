package services

import (
	"context"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrPersistenceUnavailable
	}
	if account == nil {
		return "", utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}

	account := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "user",
	}

	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return utils.ErrPersistenceUnavailable
	}

	return nil
}
