package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/medibill/medibill/internal/bill"
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

const selectBillColumns = `
	id, customer_id, customer_name, date, discount_amount, total_amount, paid, created_at
`

func scanBill(s scanner) (*bill.Bill, error) {
	var b bill.Bill

	if err := s.Scan(
		&b.ID, &b.CustomerID, &b.CustomerName, &b.Date,
		&b.DiscountAmount, &b.TotalAmount, &b.Paid, &b.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBill writes the bill header and all line items in one database
// transaction. Either everything lands or nothing does.
func (s *Store) CreateBill(ctx context.Context, b *bill.Bill) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning bill transaction: %w", err)
	}
	defer dbTx.Rollback()

	headerQuery := `
		INSERT INTO bills (customer_id, customer_name, date, discount_amount, total_amount, paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, headerQuery,
		b.CustomerID,
		b.CustomerName,
		b.Date,
		b.DiscountAmount,
		b.TotalAmount,
		b.Paid,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, medicine_id, medicine_name, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	for _, item := range b.Items {
		if _, err := dbTx.ExecContext(ctx, itemQuery,
			b.ID,
			item.MedicineID,
			item.MedicineName,
			item.Quantity,
			item.UnitPrice,
		); err != nil {
			return fmt.Errorf("creating bill item: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing bill: %w", err)
	}

	return nil
}

func (s *Store) GetBill(ctx context.Context, id uuid.UUID) (*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills WHERE id = $1`

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w", err)
	}

	items, err := s.listItems(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Items = items

	return b, nil
}

func (s *Store) listItems(ctx context.Context, billID uuid.UUID) ([]bill.Item, error) {
	query := `
		SELECT medicine_id, medicine_name, quantity, price
		FROM bill_items
		WHERE bill_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("listing bill items: %w", err)
	}
	defer rows.Close()

	var items []bill.Item

	for rows.Next() {
		var item bill.Item
		if err := rows.Scan(&item.MedicineID, &item.MedicineName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning bill item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill item rows: %w", err)
	}

	return items, nil
}

func (s *Store) ListBills(ctx context.Context) ([]*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var bills []*bill.Bill

	byID := make(map[uuid.UUID]*bill.Bill)

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bills = append(bills, b)
		byID[b.ID] = b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill rows: %w", err)
	}

	if len(bills) == 0 {
		return nil, nil
	}

	// One pass over all items instead of a query per bill.
	itemQuery := `
		SELECT bill_id, medicine_id, medicine_name, quantity, price
		FROM bill_items
		ORDER BY created_at ASC, id ASC
	`

	itemRows, err := s.db.QueryContext(ctx, itemQuery)
	if err != nil {
		return nil, fmt.Errorf("listing bill items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var billID uuid.UUID

		var item bill.Item

		if err := itemRows.Scan(&billID, &item.MedicineID, &item.MedicineName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning bill item: %w", err)
		}

		if b, ok := byID[billID]; ok {
			b.Items = append(b.Items, item)
		}
	}

	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill item rows: %w", err)
	}

	return bills, nil
}

func (s *Store) UpdateBill(ctx context.Context, b *bill.Bill) error {
	query := `
		UPDATE bills
		SET customer_id = $1, customer_name = $2, date = $3, discount_amount = $4, total_amount = $5, paid = $6
		WHERE id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		b.CustomerID,
		b.CustomerName,
		b.Date,
		b.DiscountAmount,
		b.TotalAmount,
		b.Paid,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating bill: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return bill.ErrNotFound
	}

	return nil
}

func (s *Store) SetPaid(ctx context.Context, id uuid.UUID, paid bool) error {
	query := `UPDATE bills SET paid = $1 WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, paid, id)
	if err != nil {
		return fmt.Errorf("setting bill paid: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return bill.ErrNotFound
	}

	return nil
}

// DeleteBill removes the header; bill_items go via ON DELETE CASCADE.
func (s *Store) DeleteBill(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bills WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}

	return nil
}
