package handler

import (
	"errors"
	"strconv"

	"github.com/famcare/auth-service/internal/auth/dto"
	"github.com/famcare/auth-service/internal/auth/service"
	autherror "github.com/famcare/auth-service/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  *service.AuthService
	tokenService service.TokenGenerator
}

func NewAuthHandler(authService *service.AuthService, tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	input.IPAddress = c.IP()

	resp, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	tokens, err := h.authService.Refresh(c.Context(), input.RefreshToken)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

// Logout acknowledges unconditionally; revoking an unknown token is not an
// observable failure.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.LogoutInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	h.authService.Logout(c.Context(), input.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logged out"})
}

// ForgotPassword responds identically whether or not the email exists.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Context(), input.Email); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "if the email exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.authService.ResetPassword(c.Context(), input.Ticket, input.NewPassword); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "password updated"})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input dto.VerifyEmailInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.authService.VerifyEmail(c.Context(), input.Ticket); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "email verified"})
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var input dto.ResendVerificationInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.authService.ResendVerificationEmail(c.Context(), input.Email); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "verification email sent"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	account, err := h.authService.GetCurrentUser(c.Context(), token)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(account)
}

func (h *AuthHandler) ForceLogout(c *fiber.Ctx) error {
	accountID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	if err := h.authService.ForceLogoutByAccountID(c.Context(), accountID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "all sessions revoked"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, autherror.ErrEmailAlreadyInUse):
		return fiber.StatusConflict
	case errors.Is(err, autherror.ErrTooManyLoginAttempts):
		return fiber.StatusTooManyRequests
	case errors.Is(err, autherror.ErrInvalidCredentials),
		errors.Is(err, autherror.ErrAccountNotActive),
		errors.Is(err, autherror.ErrTokenMalformed),
		errors.Is(err, autherror.ErrTokenSignatureInvalid),
		errors.Is(err, autherror.ErrTokenExpired),
		errors.Is(err, autherror.ErrRefreshTokenNotFound),
		errors.Is(err, autherror.ErrRefreshTokenRevoked),
		errors.Is(err, autherror.ErrRefreshTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, autherror.ErrTicketNotFound),
		errors.Is(err, autherror.ErrTicketExpired),
		errors.Is(err, autherror.ErrTicketPurposeMismatch):
		return fiber.StatusGone
	case errors.Is(err, autherror.ErrEmailNotFound),
		errors.Is(err, autherror.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, autherror.ErrEmailAlreadyVerified):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
