package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/bill"
	"github.com/medibill/medibill/internal/customer"
	"github.com/medibill/medibill/internal/medicine"
)

var (
	ErrEmptyCustomerName = errors.New("customer name is required")
	ErrEmptyCart         = errors.New("cart has no items")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotInCart         = errors.New("medicine is not in the cart")
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=cart
type Inventory interface {
	Get(ctx context.Context, id uuid.UUID) (*medicine.Medicine, error)
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type Customers interface {
	FindByName(ctx context.Context, name string) (*customer.Customer, error)
	Create(ctx context.Context, params customer.CreateParams) (*customer.Customer, error)
	RecordVisit(ctx context.Context, id uuid.UUID, amount decimal.Decimal, at time.Time) error
}

type Ledger interface {
	Create(ctx context.Context, b *bill.Bill) error
}

// Service owns the single current-bill session and orchestrates the
// commit against the inventory, customer and ledger stores. One
// instance exists per operator screen; the mutex only protects it from
// the HTTP server's concurrency, the workflow itself is single-actor.
type Service struct {
	inventory Inventory
	customers Customers
	ledger    Ledger

	mu      sync.Mutex
	session Session
}

func NewService(inventory Inventory, customers Customers, ledger Ledger) *Service {
	return &Service{
		inventory: inventory,
		customers: customers,
		ledger:    ledger,
	}
}

// Session returns a copy of the current session for display.
func (s *Service) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.session
	snapshot.Items = append([]bill.Item(nil), s.session.Items...)

	return snapshot
}

func (s *Service) SetCustomerName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.CustomerName = name
}

// SetCustomerID attaches a resolved customer record, or clears the
// association when id is nil (the operator edited the name after a
// match was made).
func (s *Service) SetCustomerID(id *uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.CustomerID = id
}

// SetDiscountAmount replaces the session discount. Any amount is
// accepted; the total is clamped at zero at display and commit time.
func (s *Service) SetDiscountAmount(amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.DiscountAmount = amount
}

// AddItem puts quantity units of a medicine into the cart. If the
// medicine is already a line, the quantities are summed and the
// combined quantity is re-checked against live stock; the whole
// operation is rejected, leaving the existing line unchanged, if the
// sum would exceed it. A new line carries a name and price snapshot
// taken from the inventory at this moment.
func (s *Service) AddItem(ctx context.Context, medicineID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	m, err := s.inventory.Get(ctx, medicineID)
	if err != nil {
		return fmt.Errorf("looking up medicine: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.session.itemIndex(medicineID); idx >= 0 {
		combined := s.session.Items[idx].Quantity + quantity
		if combined > m.Stock {
			return fmt.Errorf("%w: only %d of %s available", ErrInsufficientStock, m.Stock, m.Name)
		}

		s.session.Items[idx].Quantity = combined

		return nil
	}

	if quantity > m.Stock {
		return fmt.Errorf("%w: only %d of %s available", ErrInsufficientStock, m.Stock, m.Name)
	}

	s.session.Items = append(s.session.Items, bill.Item{
		MedicineID:   m.ID,
		MedicineName: m.Name,
		Quantity:     quantity,
		UnitPrice:    m.Price,
	})

	return nil
}

// RemoveItem deletes the matching line if present; no-op otherwise.
func (s *Service) RemoveItem(medicineID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.session.itemIndex(medicineID)
	if idx < 0 {
		return
	}

	s.session.Items = append(s.session.Items[:idx], s.session.Items[idx+1:]...)
}

// SetItemQuantity replaces the quantity of an existing line after
// re-checking it against live stock. Quantities below one are treated
// as a no-op; the UI rejects them before they get here.
func (s *Service) SetItemQuantity(ctx context.Context, medicineID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	m, err := s.inventory.Get(ctx, medicineID)
	if err != nil {
		return fmt.Errorf("looking up medicine: %w", err)
	}

	if quantity > m.Stock {
		return fmt.Errorf("%w: only %d of %s available", ErrInsufficientStock, m.Stock, m.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.session.itemIndex(medicineID)
	if idx < 0 {
		return ErrNotInCart
	}

	s.session.Items[idx].Quantity = quantity

	return nil
}

// Clear resets the session to its empty state.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{}
}

// Commit finalizes the current session into a persisted bill.
//
// The steps run sequentially without a cross-store transaction: the
// bill insert, the customer aggregate update and the stock decrements
// can partially fail and are not rolled back. Only the bill insert is
// fatal; in that case the session is kept so the operator can retry.
func (s *Service) Commit(ctx context.Context, paid bool) (*bill.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.session.CustomerName) == "" {
		return nil, ErrEmptyCustomerName
	}

	if len(s.session.Items) == 0 {
		return nil, ErrEmptyCart
	}

	customerID := s.resolveCustomer(ctx)

	now := time.Now()

	b := &bill.Bill{
		CustomerID:     customerID,
		CustomerName:   s.session.CustomerName,
		Date:           now,
		Items:          append([]bill.Item(nil), s.session.Items...),
		DiscountAmount: s.session.DiscountAmount,
		TotalAmount:    s.session.Total(),
		Paid:           paid,
	}

	if err := s.ledger.Create(ctx, b); err != nil {
		// Session stays populated so the operator can retry.
		return nil, fmt.Errorf("creating bill: %w", err)
	}

	if customerID != nil {
		if err := s.customers.RecordVisit(ctx, *customerID, b.TotalAmount, b.Date); err != nil {
			slog.Warn("failed to update customer aggregates", "customer_id", *customerID, "error", err)
		}
	}

	for _, item := range b.Items {
		if err := s.inventory.DecrementStock(ctx, item.MedicineID, item.Quantity); err != nil {
			slog.Warn("failed to decrement stock", "medicine_id", item.MedicineID, "error", err)
		}
	}

	s.session = Session{}

	return b, nil
}

// resolveCustomer returns the customer id to attach to the bill. An
// explicitly attached id wins; otherwise the typed name is matched
// against existing customers and a new record is created on miss.
// Failures degrade to an unlinked bill rather than blocking the sale.
func (s *Service) resolveCustomer(ctx context.Context) *uuid.UUID {
	if s.session.CustomerID != nil {
		return s.session.CustomerID
	}

	existing, err := s.customers.FindByName(ctx, s.session.CustomerName)
	if err != nil {
		slog.Warn("customer lookup failed", "name", s.session.CustomerName, "error", err)
		return nil
	}

	if existing != nil {
		return &existing.ID
	}

	created, err := s.customers.Create(ctx, customer.CreateParams{Name: s.session.CustomerName})
	if err != nil {
		slog.Warn("customer creation failed", "name", s.session.CustomerName, "error", err)
		return nil
	}

	return &created.ID
}
