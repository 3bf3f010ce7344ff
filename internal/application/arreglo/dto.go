package arreglo

import (
	"time"

	"github.com/salon/backend/internal/domain/arreglo"
	"github.com/shopspring/decimal"
)

// CreateArregloRequest is the input for taking in a fix job
type CreateArregloRequest struct {
	CustomerName  string          `json:"customer_name" binding:"required"`
	CustomerPhone string          `json:"customer_phone"`
	Description   string          `json:"description" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	ReceivedDate  *time.Time      `json:"received_date"`
	PromisedDate  *time.Time      `json:"promised_date"`
}

// UpdateArregloRequest is the input for editing a pending job
type UpdateArregloRequest struct {
	CustomerName  string          `json:"customer_name" binding:"required"`
	CustomerPhone string          `json:"customer_phone"`
	Description   string          `json:"description" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	PromisedDate  *time.Time      `json:"promised_date"`
}

// ListArreglosRequest is the input for listing jobs
type ListArreglosRequest struct {
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir"`
	Search       string `form:"search"`
	Status       string `form:"status"`
	ReceivedFrom string `form:"received_from"`
	ReceivedTo   string `form:"received_to"`
}

// ArregloResponse is the API shape of a fix job
type ArregloResponse struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	ReceivedDate  time.Time       `json:"received_date"`
	PromisedDate  *time.Time      `json:"promised_date,omitempty"`
	DeliveredDate *time.Time      `json:"delivered_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toArregloResponse(job *arreglo.Arreglo) ArregloResponse {
	return ArregloResponse{
		ID:            job.ID.String(),
		CustomerName:  job.CustomerName,
		CustomerPhone: job.CustomerPhone,
		Description:   job.Description,
		Price:         job.Price.Amount(),
		Currency:      string(job.Price.Currency()),
		Status:        job.Status.String(),
		ReceivedDate:  job.ReceivedDate,
		PromisedDate:  job.PromisedDate,
		DeliveredDate: job.DeliveredDate,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
}
