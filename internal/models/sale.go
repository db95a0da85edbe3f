package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleItem struct {
	ID        uuid.UUID       `json:"id"`
	SaleID    uuid.UUID       `json:"saleId"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Product   *Product        `json:"product,omitempty"`
}

type Sale struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customerId"`
	Status        SaleStatus      `json:"status"`
	Total         decimal.Decimal `json:"total"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	TrackingCode  string          `json:"trackingCode,omitempty"`
	Address       string          `json:"address,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Customer      *Customer       `json:"customer,omitempty"`
	Items         []SaleItem      `json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type SaleItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	CustomerID    uuid.UUID         `json:"customerId" validate:"required"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Status        SaleStatus        `json:"status,omitempty" validate:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	PaymentMethod string            `json:"paymentMethod,omitempty" validate:"omitempty,max=100"`
	Address       string            `json:"address,omitempty" validate:"omitempty,max=500"`
}

// UpdateSaleStatusRequest is a partial update: nil pointers mean "not supplied".
type UpdateSaleStatusRequest struct {
	Status       string  `json:"status" validate:"required,max=50"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	TrackingCode *string `json:"trackingCode,omitempty" validate:"omitempty,max=100"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	AdminName    *string `json:"adminName,omitempty" validate:"omitempty,max=255"`
}

// SaleStatusChange is what the store persists for a transition. TrackingCode and
// Address are left untouched when nil.
type SaleStatusChange struct {
	Status       SaleStatus
	Notes        string
	TrackingCode *string
	Address      *string
}

// TopProduct is a product ranked by the quantity sold across all sale items.
type TopProduct struct {
	ProductID    uuid.UUID `json:"productId"`
	QuantitySold int       `json:"quantitySold"`
	Product      *Product  `json:"product,omitempty"`
}
