package handler

import (
	"github.com/gofiber/fiber/v2"

	authconstant "github.com/famcare/auth-service/pkg/constant"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	v1 := app.Group("/api/v1")
	v1.Post("/register", h.Register)
	v1.Post("/login", h.Login)
	v1.Post("/refresh", h.Refresh)
	v1.Delete("/session", h.Logout)
	v1.Post("/forgot-password", h.ForgotPassword)
	v1.Post("/reset-password", h.ResetPassword)
	v1.Post("/verify-email", h.VerifyEmail)
	v1.Post("/resend-verification", h.ResendVerification)
	v1.Get("/me", h.RequireAuth(), h.Me)

	// Admin-only endpoints
	admin := v1.Group("/admin", h.RequireRole(authconstant.AdminRole))
	admin.Delete("/user/:id/sessions", h.ForceLogout)
}
