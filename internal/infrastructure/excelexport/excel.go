// Package excelexport writes the xlsx workbooks the salon downloads:
// gift card lists, expense lists and the monthly payroll sheet.
package excelexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/salon/backend/internal/domain/expense"
	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const dateFormat = "2006-01-02"

func writeSheet(headers []any, rows [][]any) ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// GiftCards writes gift cards using the same columns the import reads,
// so an exported sheet re-imports cleanly.
func GiftCards(cards []giftcard.GiftCard, now time.Time) ([]byte, error) {
	headers := []any{"code", "amount", "status", "customer_name", "customer_email", "purchase_date", "expiry_date", "redeemed_date", "notes"}
	rows := make([][]any, len(cards))
	for i, card := range cards {
		redeemed := ""
		if card.RedeemedAt != nil {
			redeemed = card.RedeemedAt.Format(dateFormat)
		}
		rows[i] = []any{
			card.Code,
			card.Amount.Amount().StringFixed(2),
			card.StatusAt(now).String(),
			card.CustomerName,
			card.CustomerEmail,
			card.PurchaseDate.Format(dateFormat),
			card.ExpiryDate.Format(dateFormat),
			redeemed,
			card.Notes,
		}
	}
	return writeSheet(headers, rows)
}

// Expenses writes expense records to a workbook
func Expenses(records []expense.ExpenseRecord) ([]byte, error) {
	headers := []any{"category", "description", "amount", "expense_date", "payment_method", "supplier_note"}
	rows := make([][]any, len(records))
	for i, record := range records {
		rows[i] = []any{
			record.Category.String(),
			record.Description,
			record.Amount.Amount().StringFixed(2),
			record.ExpenseDate.Format(dateFormat),
			string(record.PaymentMethod),
			record.SupplierNote,
		}
	}
	return writeSheet(headers, rows)
}

// PayrollSheet writes the whole-salon monthly payroll sheet: one row per
// employee with the global-variant figures.
func PayrollSheet(records []payroll.SalaryRecord, breakdowns []payroll.Breakdown) ([]byte, error) {
	if len(records) != len(breakdowns) {
		return nil, fmt.Errorf("records and breakdowns length mismatch: %d vs %d", len(records), len(breakdowns))
	}

	headers := []any{"employee", "role", "sales", "commission_rate", "commission", "advance", "vacation", "reception", "other", "receipt", "cash_total", "gross_total", "insured_top_up"}
	rows := make([][]any, len(records))
	for i, record := range records {
		b := breakdowns[i]
		rows[i] = []any{
			record.EmployeeName,
			record.Role,
			record.SalesAmount.StringFixed(2),
			b.CommissionRate.String(),
			b.Commission.StringFixed(2),
			record.Advance.StringFixed(2),
			record.Vacation.StringFixed(2),
			record.Reception.StringFixed(2),
			record.Other.StringFixed(2),
			record.Receipt.StringFixed(2),
			b.CashTotal.StringFixed(2),
			b.GrossTotal.StringFixed(2),
			b.InsuredTopUp.StringFixed(2),
		}
	}
	return writeSheet(headers, rows)
}
