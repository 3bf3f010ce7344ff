package models

import (
	"time"

	"github.com/salon/backend/internal/domain/arreglo"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ArregloModel is the persistence model for the Arreglo domain entity.
type ArregloModel struct {
	AggregateModel
	CustomerName  string          `gorm:"type:varchar(200);not null;index"`
	CustomerPhone string          `gorm:"type:varchar(50)"`
	Description   string          `gorm:"type:text;not null"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'ARS'"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReceivedDate  time.Time       `gorm:"not null;index"`
	PromisedDate  *time.Time      `gorm:""`
	DeliveredDate *time.Time      `gorm:""`
}

// TableName returns the table name for GORM
func (ArregloModel) TableName() string {
	return "arreglos"
}

// ToDomain converts the persistence model to a domain Arreglo entity.
func (m *ArregloModel) ToDomain() *arreglo.Arreglo {
	price, err := valueobject.NewMoney(m.Price, valueobject.Currency(m.Currency))
	if err != nil {
		price = valueobject.NewMoneyARS(m.Price)
	}
	a := &arreglo.Arreglo{
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		Description:   m.Description,
		Price:         price,
		Status:        arreglo.Status(m.Status),
		ReceivedDate:  m.ReceivedDate,
		PromisedDate:  m.PromisedDate,
		DeliveredDate: m.DeliveredDate,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Arreglo entity.
func (m *ArregloModel) FromDomain(a *arreglo.Arreglo) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.CustomerName = a.CustomerName
	m.CustomerPhone = a.CustomerPhone
	m.Description = a.Description
	m.Price = a.Price.Amount()
	m.Currency = string(a.Price.Currency())
	m.Status = a.Status.String()
	m.ReceivedDate = a.ReceivedDate
	m.PromisedDate = a.PromisedDate
	m.DeliveredDate = a.DeliveredDate
}

// ArregloModelFromDomain creates a new persistence model from a domain entity.
func ArregloModelFromDomain(a *arreglo.Arreglo) *ArregloModel {
	m := &ArregloModel{}
	m.FromDomain(a)
	return m
}
