package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrMissingFields = errors.New("name, email and password are required")

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	repo   Repository
	tokens *TokenManager
}

func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Register creates an operator account and returns it with a fresh
// token so the client is signed in immediately.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, string, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" {
		return nil, "", ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Name:         params.Name,
		Email:        strings.ToLower(params.Email),
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(u.ID, u.Name)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// Login checks the credentials and returns the user with a bearer
// token. Unknown emails and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Name)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}
