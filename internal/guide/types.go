// Package guide manages the local-guide directory: registration with a
// profile photo, listing, and updates to the reported city condition.
package guide

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Guide is a registered local guide.
type Guide struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	YearsExperience int       `json:"years_experience"`
	City            string    `json:"city"`
	CityCondition   string    `json:"city_condition"`
	PhotoPath       string    `json:"photo_path"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Form is the raw registration form. Numbers arrive as text.
type Form struct {
	Name            string `json:"name" validate:"required"`
	Age             string `json:"age" validate:"required,numeric"`
	Gender          string `json:"gender" validate:"required"`
	YearsExperience string `json:"years_experience" validate:"required,numeric"`
	City            string `json:"city" validate:"required"`
	CityCondition   string `json:"city_condition" validate:"required"`
}

// Photo is an uploaded profile picture.
type Photo struct {
	Filename string
	Content  io.Reader
}
