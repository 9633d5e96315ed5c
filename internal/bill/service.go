package bill

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNoItems = errors.New("bill has no items")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=bill
type Repository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBill(ctx context.Context, id uuid.UUID) (*Bill, error)
	ListBills(ctx context.Context) ([]*Bill, error)
	UpdateBill(ctx context.Context, b *Bill) error
	SetPaid(ctx context.Context, id uuid.UUID, paid bool) error
	DeleteBill(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists the bill header and its line items. The store writes
// both in a single database transaction, so a bill either exists with
// all of its items or not at all.
func (s *Service) Create(ctx context.Context, b *Bill) error {
	if len(b.Items) == 0 {
		return ErrNoItems
	}

	b.TotalAmount = Total(b.Subtotal(), b.DiscountAmount)

	return s.repo.CreateBill(ctx, b)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.GetBill(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Bill, error) {
	return s.repo.ListBills(ctx)
}

// Update rewrites the bill's top-level fields. Items are immutable, so
// the total is recomputed from the stored items and the (possibly
// changed) discount to keep the amount invariant intact.
func (s *Service) Update(ctx context.Context, b *Bill) error {
	b.TotalAmount = Total(b.Subtotal(), b.DiscountAmount)

	return s.repo.UpdateBill(ctx, b)
}

func (s *Service) SetPaid(ctx context.Context, id uuid.UUID, paid bool) error {
	return s.repo.SetPaid(ctx, id, paid)
}

// Delete removes the bill header. Line items go with it via the
// store's cascade rule, not application logic.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBill(ctx, id)
}
