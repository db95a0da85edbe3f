package models

import (
	"time"

	"github.com/google/uuid"
)

type Brand struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ProductCount int       `json:"productCount"`
	Products     []Product `json:"products,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
