package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

// Renderer produces a single page A4 invoice for a booking and its ledger entries.
type Renderer struct {
	company string
	now     func() time.Time
}

func NewRenderer(company string) *Renderer {
	return &Renderer{company: company, now: time.Now}
}

func (r *Renderer) Render(b *domain.Booking, payments []domain.Payment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.SetAuthor(r.company, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line(pdf, "Invoice No", InvoiceNumber(b))
	line(pdf, "Issued", r.now().Format("2006-01-02 15:04"))
	line(pdf, "Issued by", r.company)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rental")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	if b.Vehicle != nil {
		line(pdf, "Car", fmt.Sprintf("%s %s (%s)", b.Vehicle.Brand, b.Vehicle.Model, b.Vehicle.Name))
	}
	line(pdf, "Period", fmt.Sprintf("%s to %s", b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02")))
	line(pdf, "Pickup", b.PickupLocation)
	line(pdf, "Drop-off", b.DropoffLocation)
	line(pdf, "Status", fmt.Sprintf("%s / %s", b.Status, b.PaymentStatus))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 8, "Transaction", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Method", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Status", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range payments {
		pdf.CellFormat(60, 7, p.TransactionID, "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, p.CreatedAt.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, string(p.Method), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, string(p.Status), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, money(p.Amount), "1", 1, "R", false, 0, "")
	}
	if len(payments) == 0 {
		pdf.CellFormat(190, 7, "No payments recorded", "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	line(pdf, "Total", money(b.TotalAmount))
	line(pdf, "Paid", money(b.PaidAmount))
	line(pdf, "Balance due", money(b.TotalAmount-b.PaidAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return buf.Bytes(), nil
}

func InvoiceNumber(b *domain.Booking) string {
	return "INV-" + b.CreatedAt.Format("20060102") + "-" + b.ID.String()[:8]
}

func line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.Cell(35, 7, label+":")
	pdf.Cell(0, 7, value)
	pdf.Ln(7)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
