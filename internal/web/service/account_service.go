package service

import (
	"context"
	"errors"
	"fmt"

	"animehub/internal/middleware/auth"
	"animehub/internal/web/models"
	"animehub/internal/web/repository"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrPasswordTooLong    = errors.New("password is too long")
)

type AccountService interface {
	Register(ctx context.Context, username, password string) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	Verify(ctx context.Context, username, password string) (*models.Account, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
}

func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

// Register creates an account with a bcrypt-hashed password.
func (s *accountService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	// Check if user exists
	_, err := s.accountRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, err
	}

	account := &models.Account{
		Username: username,
		Password: hashedPassword,
	}

	// the unique index still catches a signup racing this one
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return account, nil
}

func (s *accountService) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// Verify checks a username/password pair. Unknown usernames and wrong
// passwords produce the same error after the same amount of bcrypt work.
func (s *accountService) Verify(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			auth.BurnVerify(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.VerifyPassword(account.Password, password); err != nil {
		if auth.IsMismatch(err) {
			return nil, ErrInvalidCredentials
		}
		// a stored value that is not a bcrypt hash
		return nil, fmt.Errorf("verify password for %s: %w", username, err)
	}

	return account, nil
}
