// Package receipt renders a committed bill into the printable HTML
// handed to the operator's print dialog.
package receipt

import (
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/bill"
)

const tmplSrc = `<!DOCTYPE html>
<html>
<head>
<title>Bill Receipt</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; padding: 20px; }
.header { text-align: center; margin-bottom: 20px; }
.bill-info { margin-bottom: 20px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
.total { text-align: right; font-weight: bold; margin-top: 20px; }
.footer { margin-top: 40px; text-align: center; font-size: 12px; }
</style>
</head>
<body>
<div class="header"><h1>MediBill Receipt</h1></div>
<div class="bill-info">
<p><strong>Customer:</strong> {{.CustomerName}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
<p><strong>Bill #:</strong> {{.ID}}</p>
</div>
<table>
<thead><tr><th>Item</th><th>Quantity</th><th>Price</th><th>Total</th></tr></thead>
<tbody>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.LineTotal}}</td></tr>
{{end}}</tbody>
</table>
<div class="total">
{{if .HasDiscount}}<p>Subtotal: {{.Subtotal}}</p>
<p>Discount: {{.Discount}}</p>
{{end}}<p>Total Amount: {{.Total}}</p>
<p>Status: {{.Status}}</p>
</div>
<div class="footer"><p>Thank you for your business!</p></div>
</body>
</html>
`

var tmpl = template.Must(template.New("receipt").Parse(tmplSrc))

type lineView struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type receiptView struct {
	ID           string
	CustomerName string
	Date         string
	Items        []lineView
	HasDiscount  bool
	Subtotal     string
	Discount     string
	Total        string
	Status       string
}

func money(d decimal.Decimal) string {
	return fmt.Sprintf("₹%s", d.StringFixed(2))
}

// Render writes the printable receipt for a bill.
func Render(w io.Writer, b *bill.Bill) error {
	view := receiptView{
		ID:           b.ID.String(),
		CustomerName: b.CustomerName,
		Date:         b.Date.Format("02/01/2006"),
		HasDiscount:  b.DiscountAmount.IsPositive(),
		Subtotal:     money(b.Subtotal()),
		Discount:     money(b.DiscountAmount),
		Total:        money(b.TotalAmount),
		Status:       "Unpaid",
	}

	if b.Paid {
		view.Status = "Paid"
	}

	for _, item := range b.Items {
		view.Items = append(view.Items, lineView{
			Name:      item.MedicineName,
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
			LineTotal: money(item.LineTotal()),
		})
	}

	if err := tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("rendering receipt: %w", err)
	}

	return nil
}
