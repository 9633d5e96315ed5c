package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrEmptyName = errors.New("customer name is required")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	RecordVisit(ctx context.Context, id uuid.UUID, amount decimal.Decimal, at time.Time) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Phone string
	Email string
}

// Create registers a new customer. Visit count and total spent start at
// zero; they move only through RecordVisit.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrEmptyName
	}

	c := &Customer{
		Name:       params.Name,
		Phone:      params.Phone,
		Email:      params.Email,
		TotalSpent: decimal.Zero,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// Update replaces the customer's contact fields. The visit aggregates
// are deliberately not updatable through this path.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}

	return s.repo.UpdateCustomer(ctx, c)
}

// FindByName returns the first customer whose name contains the given
// text, ignoring case. Candidates are considered in creation order, so
// repeated lookups with the same text resolve to the same record.
// Returns (nil, nil) when nothing matches.
func (s *Service) FindByName(ctx context.Context, name string) (*Customer, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, nil
	}

	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return c, nil
		}
	}

	return nil, nil
}

// RecordVisit bumps the customer's visit count and lifetime spend after
// a bill was committed for them.
func (s *Service) RecordVisit(ctx context.Context, id uuid.UUID, amount decimal.Decimal, at time.Time) error {
	return s.repo.RecordVisit(ctx, id, amount, at)
}
