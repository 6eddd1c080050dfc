package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/matching"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/notification"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/profile"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/users"
)

type UserHandler struct {
	Users         *users.Service
	Profiles      *profile.Service
	Matching      *matching.Service
	Notifications *notification.Service
}

func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	var f users.ListFilter
	if err := parseBody(c, &f); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Users.GetAllUsers(c.UserContext(), f, pageFromQuery(c)))
}

func (h *UserHandler) GetUserByEmail(c *fiber.Ctx) error {
	var body idBody
	if err := parseBody(c, &body); err != nil || body.Email == "" {
		return badRequest(c, "email is required")
	}
	return respond(c, h.Users.GetUserByEmail(c.UserContext(), body.Email))
}

func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	var body idBody
	if err := parseBody(c, &body); err != nil || body.UserID == uuid.Nil {
		return badRequest(c, "userId is required")
	}
	return respond(c, h.Users.GetUserByID(c.UserContext(), body.UserID))
}

// UpdateUser only lets a user edit their own profile.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req users.UpdateRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	u, err := h.Users.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return respond(c, response.FromError(err))
	}
	if u.ID != uid {
		return respond(c, response.FromError(apperr.NewForbidden("You can only update your own profile")))
	}
	return respond(c, h.Users.UpdateUser(c.UserContext(), req))
}

// SetReview records a review written by the authenticated user.
func (h *UserHandler) SetReview(c *fiber.Ctx) error {
	var req users.ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	req.ReviewedBy = uid
	return respond(c, h.Users.SetUserReview(c.UserContext(), req))
}

func (h *UserHandler) GetUserReviews(c *fiber.Ctx) error {
	var body idBody
	if err := parseBody(c, &body); err != nil || body.UserID == uuid.Nil {
		return badRequest(c, "userId is required")
	}
	return respond(c, h.Users.GetUserReviews(c.UserContext(), body.UserID))
}

func (h *UserHandler) SetContacted(c *fiber.Ctx) error {
	var req users.ContactRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	req.SenderUserID = uid
	return respond(c, h.Users.SetUserContacted(c.UserContext(), req))
}

func (h *UserHandler) ReadNotification(c *fiber.Ctx) error {
	var body idBody
	if err := parseBody(c, &body); err != nil || body.NotificationID == uuid.Nil {
		return badRequest(c, "notificationId is required")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return respond(c, h.Notifications.ReadNotification(c.UserContext(), body.NotificationID, uid))
}

func (h *UserHandler) UnreadNotifications(c *fiber.Ctx) error {
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return respond(c, h.Notifications.Unread(c.UserContext(), uid))
}

func (h *UserHandler) GetCompaniesInFeed(c *fiber.Ctx) error {
	var body idBody
	if err := parseBody(c, &body); err != nil || body.CompanyID == uuid.Nil {
		return badRequest(c, "companyId is required")
	}
	return respond(c, h.Matching.GetCompaniesInFeed(c.UserContext(), body.CompanyID, pageFromQuery(c)))
}

func (h *UserHandler) ProfileCompletion(c *fiber.Ctx) error {
	var body idBody
	if err := parseBody(c, &body); err != nil || body.UserID == uuid.Nil {
		return badRequest(c, "userId is required")
	}
	return respond(c, h.Profiles.ProfileCompletion(c.UserContext(), body.UserID))
}
