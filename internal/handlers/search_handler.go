package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/search"
)

type SearchHandler struct {
	Searcher *search.Service
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req search.Request
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Searcher.Search(c.UserContext(), req, pageFromQuery(c)))
}
