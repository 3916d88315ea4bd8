package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, login, password string) (User, error)
	Authenticate(ctx context.Context, login, password string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	cost      int
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		cost:      bcrypt.DefaultCost,
		log:       log.With("component", "user_service"),
	}
}

// WithCost меняет стоимость bcrypt. Используется в тестах.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) Register(ctx context.Context, login, password string) (User, error) {
	if err := s.validator.ValidateRegister(login, password); err != nil {
		s.log.Debug("validation failed", "login", login, "error", err)
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	// Уникальность гарантирует первичный ключ, отдельной проверки нет.
	u, err := s.repo.Create(ctx, login, string(hash))
	if err != nil {
		if errors.Is(err, ErrDuplicateLogin) {
			s.log.Info("registration rejected, login exists", "login", login)
			return User{}, ErrDuplicateLogin
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "login", login)
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (User, error) {
	if err := s.validator.ValidateLogin(login); err != nil {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// выравниваем время ответа для несуществующего логина
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}
