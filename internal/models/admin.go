package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminProfile struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresIn   int64        `json:"expiresIn"`
	Admin       AdminProfile `json:"admin"`
}

// Claims carries the admin identity inside the bearer token. Subject holds the admin id.
type Claims struct {
	AdminID uuid.UUID `json:"adminId"`
	Email   string    `json:"email"`
	jwt.RegisteredClaims
}

func (a *Admin) Profile() AdminProfile {
	return AdminProfile{ID: a.ID, Email: a.Email, Name: a.Name}
}
