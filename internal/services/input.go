package services

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// RegistrationInput is a snapshot of the form as the user left it.
// Nil date parts and empty selections mean "not chosen".
type RegistrationInput struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	ConfirmEmail    string `json:"confirm_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`

	Year  *int `json:"year" validate:"required"`
	Month *int `json:"month" validate:"required"`
	Day   *int `json:"day" validate:"required"`

	Gender     string `json:"gender" validate:"required,oneof=Male Female"`
	Department string `json:"department" validate:"required,oneof=Civil CSE Electrical E&C Mechanical"`
}

// trimmed returns a copy with surrounding whitespace removed from every text field.
func (in RegistrationInput) trimmed() RegistrationInput {
	out := in
	out.FirstName = strings.TrimSpace(in.FirstName)
	out.LastName = strings.TrimSpace(in.LastName)
	out.Email = strings.TrimSpace(in.Email)
	out.ConfirmEmail = strings.TrimSpace(in.ConfirmEmail)
	out.Password = strings.TrimSpace(in.Password)
	out.ConfirmPassword = strings.TrimSpace(in.ConfirmPassword)
	out.Gender = strings.TrimSpace(in.Gender)
	out.Department = strings.TrimSpace(in.Department)
	return out
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// complete reports whether every field is filled and every selection is
// one of the offered options.
func (in RegistrationInput) complete() bool {
	return formValidator().Struct(in) == nil
}
