package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Position   int        `json:"position"`
	ParentID   *uuid.UUID `json:"parentId,omitempty"`
	Parent     *Category  `json:"parent,omitempty"`
	Children   []Category `json:"children"`
	ChildCount int        `json:"childCount"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CreateCategoryRequest struct {
	Name     string     `json:"name" validate:"required,min=1,max=100"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
	Position *int       `json:"position,omitempty" validate:"omitempty,gte=0"`
}

// UpdateCategoryRequest uses a string pointer for the parent so that "" (disconnect)
// and a missing key (keep) can be told apart.
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ParentID *string `json:"parentId,omitempty" validate:"omitempty,max=36"`
	Position *int    `json:"position,omitempty" validate:"omitempty,gte=0"`
}
