package dto_test

import (
	"testing"

	"github.com/famcare/auth-service/internal/auth/dto"
	"github.com/stretchr/testify/assert"
)

func TestRegisterInput_Validate(t *testing.T) {
	valid := dto.RegisterInput{Email: "test@example.com", Password: "password123"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		input dto.RegisterInput
	}{
		{"missing email", dto.RegisterInput{Password: "password123"}},
		{"bad email", dto.RegisterInput{Email: "not-an-email", Password: "password123"}},
		{"short password", dto.RegisterInput{Email: "test@example.com", Password: "short"}},
		{"missing password", dto.RegisterInput{Email: "test@example.com"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.input.Validate())
		})
	}
}

func TestLoginInput_Validate(t *testing.T) {
	valid := dto.LoginInput{Email: "test@example.com", Password: "password123"}
	assert.NoError(t, valid.Validate())

	missing := dto.LoginInput{Email: "test@example.com"}
	assert.Error(t, missing.Validate())
}

func TestResetPasswordInput_Validate(t *testing.T) {
	valid := dto.ResetPasswordInput{Ticket: "raw-ticket", NewPassword: "new-password-1"}
	assert.NoError(t, valid.Validate())

	short := dto.ResetPasswordInput{Ticket: "raw-ticket", NewPassword: "short"}
	assert.Error(t, short.Validate())

	noTicket := dto.ResetPasswordInput{NewPassword: "new-password-1"}
	assert.Error(t, noTicket.Validate())
}
