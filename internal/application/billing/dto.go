package billing

import (
	"time"

	"github.com/salon/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceLineInput is one billed concept
type InvoiceLineInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest is the input for opening a draft invoice
type CreateInvoiceRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required"`
	CustomerTaxID string             `json:"customer_tax_id"`
	Lines         []InvoiceLineInput `json:"lines"`
}

// AddLineRequest is the input for adding a line to a draft
type AddLineRequest = InvoiceLineInput

// ListInvoicesRequest is the input for listing invoices
type ListInvoicesRequest struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir"`
	Search     string `form:"search"`
	Status     string `form:"status"`
	IssuedFrom string `form:"issued_from"`
	IssuedTo   string `form:"issued_to"`
}

// InvoiceLineResponse is the API shape of an invoice line
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse is the API shape of an invoice
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number,omitempty"`
	CustomerName  string                `json:"customer_name"`
	CustomerTaxID string                `json:"customer_tax_id,omitempty"`
	Status        string                `json:"status"`
	IssueDate     *time.Time            `json:"issue_date,omitempty"`
	Lines         []InvoiceLineResponse `json:"lines"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxRate       decimal.Decimal       `json:"tax_rate"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	Total         decimal.Decimal       `json:"total"`
	CAE           string                `json:"cae,omitempty"`
	CAEDueDate    *time.Time            `json:"cae_due_date,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func toInvoiceResponse(invoice *billing.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(invoice.Lines))
	for i, line := range invoice.Lines {
		lines[i] = InvoiceLineResponse{
			ID:          line.ID.String(),
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total(),
		}
	}
	return InvoiceResponse{
		ID:            invoice.ID.String(),
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerName:  invoice.CustomerName,
		CustomerTaxID: invoice.CustomerTaxID,
		Status:        invoice.Status.String(),
		IssueDate:     invoice.IssueDate,
		Lines:         lines,
		Subtotal:      invoice.Subtotal(),
		TaxRate:       invoice.TaxRate,
		TaxAmount:     invoice.TaxAmount(),
		Total:         invoice.Total(),
		CAE:           invoice.CAE,
		CAEDueDate:    invoice.CAEDueDate,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
}
