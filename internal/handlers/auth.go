package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/users"
)

type AuthHandler struct {
	Users   *users.Service
	Expires int
	Secure  bool
}

func (h *AuthHandler) setSession(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req users.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Users.RegisterUser(c.UserContext(), req))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req users.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}

	u, token, err := h.Users.Login(c.UserContext(), req)
	if err != nil {
		return respond(c, response.FromError(err))
	}

	h.setSession(c, token)
	return respond(c, response.OK("Login successful", response.Payload{"user": u}))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-time.Hour),
	})
	return respond(c, response.OK("Logged out", nil))
}

func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req users.VerifyRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Users.VerifyUser(c.UserContext(), req))
}

func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req users.EmailRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Users.ResendUserOTP(c.UserContext(), req.Email))
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req users.EmailRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Users.ForgotUserPassword(c.UserContext(), req.Email))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req users.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Users.ResetUserPassword(c.UserContext(), req))
}
