// Package pdf renders the printable documents the salon hands out:
// salary receipts and invoices.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/salon/backend/internal/domain/billing"
	"github.com/salon/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

var monthNames = []string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func periodLabel(year, month int) string {
	if month >= 1 && month <= 12 {
		return fmt.Sprintf("%s %d", monthNames[month], year)
	}
	return fmt.Sprintf("%02d/%d", month, year)
}

// SalaryReceipt renders the per-employee payout sheet as a PDF
func SalaryReceipt(record *payroll.SalaryRecord, breakdown payroll.Breakdown) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Recibo de sueldo")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 8, fmt.Sprintf("Empleada: %s", record.EmployeeName))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Puesto: %s", record.Role))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Periodo: %s", periodLabel(record.PeriodYear, record.PeriodMonth)))
	doc.Ln(10)

	line := func(label, value string) {
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(90, 7, label, "", 0, "L", false, 0, "")
		doc.CellFormat(60, 7, value, "", 1, "R", false, 0, "")
	}

	line("Ventas del periodo", record.SalesAmount.StringFixed(2))
	line(fmt.Sprintf("Comision (%s)", breakdown.CommissionRate.Mul(hundred).StringFixed(0)+"%"), breakdown.Commission.StringFixed(2))
	line("SAC", record.SAC.StringFixed(2))
	line("Adelanto", record.Advance.Neg().StringFixed(2))
	line("Recibo", record.Receipt.Neg().StringFixed(2))
	line("Capacitacion", record.Training.StringFixed(2))
	line("Vacaciones", record.Vacation.StringFixed(2))
	line("Recepcion", record.Reception.StringFixed(2))
	for _, extra := range record.Extras {
		line(extra.Concept, extra.Amount.StringFixed(2))
	}
	doc.Ln(3)

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(90, 8, "Total en mano", "T", 0, "L", false, 0, "")
	doc.CellFormat(60, 8, breakdown.CashTotal.StringFixed(2), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render salary receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// Invoice renders an invoice as a PDF. Draft invoices render without
// number and CAE.
func Invoice(invoice *billing.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	title := "Factura"
	if invoice.InvoiceNumber != "" {
		title = fmt.Sprintf("Factura %s", invoice.InvoiceNumber)
	}
	doc.Cell(0, 10, title)
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 8, fmt.Sprintf("Cliente: %s", invoice.CustomerName))
	doc.Ln(7)
	if invoice.CustomerTaxID != "" {
		doc.Cell(0, 8, fmt.Sprintf("CUIT: %s", invoice.CustomerTaxID))
		doc.Ln(7)
	}
	if invoice.IssueDate != nil {
		doc.Cell(0, 8, fmt.Sprintf("Fecha de emision: %s", invoice.IssueDate.Format("02/01/2006")))
		doc.Ln(7)
	}
	doc.Ln(3)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(80, 8, "Concepto", "B", 0, "L", false, 0, "")
	doc.CellFormat(20, 8, "Cant.", "B", 0, "R", false, 0, "")
	doc.CellFormat(40, 8, "Precio unit.", "B", 0, "R", false, 0, "")
	doc.CellFormat(40, 8, "Importe", "B", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	for _, item := range invoice.Lines {
		doc.CellFormat(80, 7, item.Description, "", 0, "L", false, 0, "")
		doc.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		doc.CellFormat(40, 7, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		doc.CellFormat(40, 7, item.Total().StringFixed(2), "", 1, "R", false, 0, "")
	}
	doc.Ln(3)

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(140, 7, "Subtotal", "", 0, "R", false, 0, "")
	doc.CellFormat(40, 7, invoice.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
	doc.CellFormat(140, 7, fmt.Sprintf("IVA (%s%%)", invoice.TaxRate.StringFixed(0)), "", 0, "R", false, 0, "")
	doc.CellFormat(40, 7, invoice.TaxAmount().StringFixed(2), "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(140, 8, "Total", "T", 0, "R", false, 0, "")
	doc.CellFormat(40, 8, invoice.Total().StringFixed(2), "T", 1, "R", false, 0, "")

	if invoice.CAE != "" {
		doc.Ln(8)
		doc.SetFont("Helvetica", "", 10)
		doc.Cell(0, 6, fmt.Sprintf("CAE: %s", invoice.CAE))
		doc.Ln(5)
		if invoice.CAEDueDate != nil {
			doc.Cell(0, 6, fmt.Sprintf("Vencimiento CAE: %s", invoice.CAEDueDate.Format("02/01/2006")))
			doc.Ln(5)
		}
	}

	doc.SetFont("Helvetica", "I", 8)
	doc.Ln(4)
	doc.Cell(0, 5, fmt.Sprintf("Generado el %s", time.Now().Format("02/01/2006 15:04")))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
