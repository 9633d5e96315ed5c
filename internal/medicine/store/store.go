package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/medibill/medibill/internal/medicine"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectMedicineColumns = `
	id, name, description, price, stock, expiry_date, category, manufacturer, created_at
`

func scanMedicine(s scanner) (*medicine.Medicine, error) {
	var m medicine.Medicine

	var description, category, manufacturer sql.NullString

	if err := s.Scan(
		&m.ID, &m.Name, &description, &m.Price, &m.Stock, &m.ExpiryDate,
		&category, &manufacturer, &m.CreatedAt,
	); err != nil {
		return nil, err
	}

	m.Description = description.String
	m.Category = category.String
	m.Manufacturer = manufacturer.String

	return &m, nil
}

func (s *Store) CreateMedicine(ctx context.Context, m *medicine.Medicine) error {
	query := `
		INSERT INTO medicines (name, description, price, stock, expiry_date, category, manufacturer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.Name,
		m.Description,
		m.Price,
		m.Stock,
		m.ExpiryDate,
		m.Category,
		m.Manufacturer,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating medicine: %w", err)
	}

	return nil
}

func (s *Store) GetMedicine(ctx context.Context, id uuid.UUID) (*medicine.Medicine, error) {
	query := `SELECT ` + selectMedicineColumns + ` FROM medicines WHERE id = $1`

	m, err := scanMedicine(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, medicine.ErrNotFound
		}

		return nil, fmt.Errorf("getting medicine: %w", err)
	}

	return m, nil
}

func (s *Store) ListMedicines(ctx context.Context) ([]*medicine.Medicine, error) {
	query := `SELECT ` + selectMedicineColumns + ` FROM medicines ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing medicines: %w", err)
	}
	defer rows.Close()

	var meds []*medicine.Medicine

	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning medicine: %w", err)
		}

		meds = append(meds, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating medicine rows: %w", err)
	}

	return meds, nil
}

func (s *Store) UpdateMedicine(ctx context.Context, m *medicine.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $1, description = $2, price = $3, stock = $4, expiry_date = $5, category = $6, manufacturer = $7
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		m.Name,
		m.Description,
		m.Price,
		m.Stock,
		m.ExpiryDate,
		m.Category,
		m.Manufacturer,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating medicine: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return medicine.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM medicines WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting medicine: %w", err)
	}

	return nil
}

// DecrementStock applies a sale quantity to the on-hand stock. The
// result is floored at zero so the column never goes negative.
func (s *Store) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `
		UPDATE medicines
		SET stock = GREATEST(stock - $1, 0)
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("decrementing stock: %w", err)
	}

	return nil
}
