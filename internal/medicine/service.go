package medicine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("medicine name is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=medicine
type Repository interface {
	CreateMedicine(ctx context.Context, m *Medicine) error
	GetMedicine(ctx context.Context, id uuid.UUID) (*Medicine, error)
	ListMedicines(ctx context.Context) ([]*Medicine, error)
	UpdateMedicine(ctx context.Context, m *Medicine) error
	DeleteMedicine(ctx context.Context, id uuid.UUID) error
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	ExpiryDate   time.Time
	Category     string
	Manufacturer string
}

func (p CreateParams) validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}

	if p.Price.IsNegative() {
		return ErrNegativePrice
	}

	if p.Stock < 0 {
		return ErrNegativeStock
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Medicine, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	m := &Medicine{
		Name:         params.Name,
		Description:  params.Description,
		Price:        params.Price,
		Stock:        params.Stock,
		ExpiryDate:   params.ExpiryDate,
		Category:     params.Category,
		Manufacturer: params.Manufacturer,
	}
	if err := s.repo.CreateMedicine(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.repo.GetMedicine(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Medicine, error) {
	return s.repo.ListMedicines(ctx)
}

func (s *Service) Update(ctx context.Context, m *Medicine) error {
	if err := (CreateParams{
		Name:  m.Name,
		Price: m.Price,
		Stock: m.Stock,
	}).validate(); err != nil {
		return err
	}

	return s.repo.UpdateMedicine(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMedicine(ctx, id)
}

// DecrementStock reduces the on-hand quantity after a sale. The store
// floors the result at zero, so a committed bill can never drive stock
// negative even if it raced with another mutation.
func (s *Service) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	return s.repo.DecrementStock(ctx, id, quantity)
}
