package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/ranking"
)

type applicationsBody struct {
	ProjectID uuid.UUID `json:"projectId"`
	MinBid    *float64  `json:"minBid"`
	MaxBid    *float64  `json:"maxBid"`
	SortedBy  string    `json:"sortedBy"`
}

type ApplicationHandler struct {
	Ranking *ranking.Service
}

// GetApplicationsByProjectID defaults to bids in [0, 10000] sorted by
// mostReviews.
func (h *ApplicationHandler) GetApplicationsByProjectID(c *fiber.Ctx) error {
	var body applicationsBody
	if err := parseBody(c, &body); err != nil {
		return badRequest(c, "invalid body")
	}

	f := ranking.Filter{ProjectID: body.ProjectID, MinBid: ranking.DefaultMinBid, MaxBid: ranking.DefaultMaxBid}
	if body.MinBid != nil {
		f.MinBid = *body.MinBid
	}
	if body.MaxBid != nil {
		f.MaxBid = *body.MaxBid
	}
	sortedBy := body.SortedBy
	if sortedBy == "" {
		sortedBy = ranking.DefaultStrategy
	}
	return respond(c, h.Ranking.GetApplicationsByProjectID(c.UserContext(), f, sortedBy))
}
