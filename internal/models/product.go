package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

type ProductOption struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Values    []string  `json:"values"`
}

type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Status      ProductStatus   `json:"status"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	BrandID     *uuid.UUID      `json:"brandId,omitempty"`
	Category    *Category       `json:"category,omitempty"`
	Brand       *Brand          `json:"brand,omitempty"`
	Options     []ProductOption `json:"options"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ProductOptionRequest struct {
	Name   string   `json:"name" validate:"required,max=100"`
	Values []string `json:"values" validate:"required,min=1,dive,required,max=100"`
}

type CreateProductRequest struct {
	Name        string                 `json:"name" validate:"required,min=1,max=200"`
	Description string                 `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       decimal.Decimal        `json:"price"`
	Stock       int                    `json:"stock" validate:"gte=0"`
	Status      ProductStatus          `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	ImageURL    string                 `json:"imageUrl,omitempty" validate:"omitempty,url"`
	CategoryID  *uuid.UUID             `json:"categoryId,omitempty"`
	BrandID     *uuid.UUID             `json:"brandId,omitempty"`
	Options     []ProductOptionRequest `json:"options,omitempty" validate:"omitempty,dive"`
}

// UpdateProductRequest is a pointer patch. A non-nil Options replaces the whole option set.
type UpdateProductRequest struct {
	Name        *string                 `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string                 `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal        `json:"price,omitempty"`
	Stock       *int                    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Status      *ProductStatus          `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	ImageURL    *string                 `json:"imageUrl,omitempty" validate:"omitempty,url"`
	CategoryID  *uuid.UUID              `json:"categoryId,omitempty"`
	BrandID     *uuid.UUID              `json:"brandId,omitempty"`
	Options     *[]ProductOptionRequest `json:"options,omitempty" validate:"omitempty,dive"`
}
