package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/customer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectCustomerColumns = `
	id, name, phone, email, visit_count, total_spent, last_visit, created_at
`

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var phone, email sql.NullString

	var lastVisit sql.NullTime

	if err := s.Scan(
		&c.ID, &c.Name, &phone, &email, &c.VisitCount, &c.TotalSpent,
		&lastVisit, &c.CreatedAt,
	); err != nil {
		return nil, err
	}

	c.Phone = phone.String
	c.Email = email.String

	if lastVisit.Valid {
		c.LastVisit = &lastVisit.Time
	}

	return &c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (name, phone, email, visit_count, total_spent, created_at)
		VALUES ($1, $2, $3, 0, 0, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Email).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

// ListCustomers returns all customers in creation order. Name matching
// in the service relies on this ordering to stay deterministic.
func (s *Store) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, phone = $2, email = $3
		WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.Phone, c.Email, c.ID)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return customer.ErrNotFound
	}

	return nil
}

// RecordVisit applies the bill total to the customer's aggregates. The
// update is additive so the monotonic invariant holds regardless of
// what was loaded into memory earlier.
func (s *Store) RecordVisit(ctx context.Context, id uuid.UUID, amount decimal.Decimal, at time.Time) error {
	query := `
		UPDATE customers
		SET visit_count = visit_count + 1, total_spent = total_spent + $1, last_visit = $2
		WHERE id = $3
	`

	_, err := s.db.ExecContext(ctx, query, amount, at, id)
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}

	return nil
}
