// Package importer parses inventory CSV uploads into medicine create
// params. The file must carry a header row; columns may appear in any
// order and unknown columns are ignored.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/medibill/medibill/internal/encoding"
	"github.com/medibill/medibill/internal/medicine"
)

const dateLayout = "2006-01-02"

var requiredColumns = []string{"name", "price", "stock"}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// colIndex maps normalized column names to their position in a row.
type colIndex map[string]int

// Parse reads a medicine CSV export. The content is normalized to
// UTF-8 first, so exports from legacy spreadsheet tools work too.
func (s *Service) Parse(r io.Reader) ([]medicine.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var params []medicine.CreateParams

	for i, row := range rows[1:] {
		lineNo := i + 2 // 1-based, after the header

		if isBlank(row) {
			continue
		}

		p, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		params = append(params, p)
	}

	return params, nil
}

func headerIndex(header []string) (colIndex, error) {
	cols := make(colIndex)

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			cols[name] = i
		}
	}

	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	return cols, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func (c colIndex) get(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseRow(cols colIndex, row []string) (medicine.CreateParams, error) {
	var p medicine.CreateParams

	p.Name = cols.get(row, "name")
	if p.Name == "" {
		return p, fmt.Errorf("name is required")
	}

	price, err := decimal.NewFromString(cols.get(row, "price"))
	if err != nil {
		return p, fmt.Errorf("parsing price: %w", err)
	}

	p.Price = price

	stock, err := strconv.Atoi(cols.get(row, "stock"))
	if err != nil {
		return p, fmt.Errorf("parsing stock: %w", err)
	}

	p.Stock = stock

	if raw := cols.get(row, "expiry_date"); raw != "" {
		expiry, err := time.Parse(dateLayout, raw)
		if err != nil {
			return p, fmt.Errorf("parsing expiry_date: %w", err)
		}

		p.ExpiryDate = expiry
	}

	p.Description = cols.get(row, "description")
	p.Category = cols.get(row, "category")
	p.Manufacturer = cols.get(row, "manufacturer")

	return p, nil
}
