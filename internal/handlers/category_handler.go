package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/categories"
)

type CategoryHandler struct {
	Categories *categories.Service
}

func NewCategoryHandler(svc *categories.Service) *CategoryHandler {
	return &CategoryHandler{Categories: svc}
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req categories.CreateRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Categories.CreateCategory(c.UserContext(), req))
}

type moveBody struct {
	Parent *uuid.UUID `json:"parent"`
}

// MoveCategory re-parents :categoryId; a null parent makes it a root.
func (h *CategoryHandler) MoveCategory(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("categoryId"))
	if !ok {
		return badRequest(c, "invalid categoryId")
	}
	var body moveBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Categories.MoveCategory(c.UserContext(), id, body.Parent))
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	return respond(c, h.Categories.GetCategories(c.UserContext()))
}
