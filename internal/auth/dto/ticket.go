package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

func (i ForgotPasswordInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email),
	)
}

type ResetPasswordInput struct {
	Ticket      string `json:"ticket"`
	NewPassword string `json:"new_password"`
}

func (i ResetPasswordInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Ticket, validation.Required),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(8, 72)),
	)
}

type VerifyEmailInput struct {
	Ticket string `json:"ticket"`
}

func (i VerifyEmailInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Ticket, validation.Required),
	)
}

type ResendVerificationInput struct {
	Email string `json:"email"`
}

func (i ResendVerificationInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email),
	)
}
