package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/matching"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/projects"
)

type ProjectHandler struct {
	Projects *projects.Service
	Matching *matching.Service
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req projects.CreateRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	req.PostedBy = uid
	return respond(c, h.Projects.CreateProject(c.UserContext(), req))
}

func (h *ProjectHandler) GetAllProjects(c *fiber.Ctx) error {
	var f projects.ListFilter
	if err := parseBody(c, &f); err != nil {
		return badRequest(c, "invalid body")
	}
	return respond(c, h.Projects.GetAllProjects(c.UserContext(), f, pageFromQuery(c)))
}

func (h *ProjectHandler) GetProjectByID(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("projectId"))
	if !ok {
		return badRequest(c, "invalid projectId")
	}
	return respond(c, h.Projects.GetProjectByID(c.UserContext(), id))
}

func (h *ProjectHandler) EditProject(c *fiber.Ctx) error {
	var req projects.EditRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	req.EditorID = uid
	return respond(c, h.Projects.EditProject(c.UserContext(), req))
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("projectId"))
	if !ok {
		return badRequest(c, "invalid projectId")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return respond(c, h.Projects.DeleteProject(c.UserContext(), id, uid))
}

func (h *ProjectHandler) ApplyToProject(c *fiber.Ctx) error {
	var req projects.ApplyRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	req.UserID = uid
	return respond(c, h.Projects.ApplyToProject(c.UserContext(), req))
}

func (h *ProjectHandler) GetValidProjectsForHire(c *fiber.Ctx) error {
	freelancerID, ok := parseID(c.Query("freelancerId"))
	if !ok {
		return badRequest(c, "invalid freelancerId")
	}
	clientID, ok := parseID(c.Query("clientId"))
	if !ok {
		return badRequest(c, "invalid clientId")
	}
	return respond(c, h.Projects.GetValidProjectsForHire(c.UserContext(), clientID, freelancerID))
}

func (h *ProjectHandler) GetMatches(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("projectId"))
	if !ok {
		return badRequest(c, "invalid projectId")
	}
	return respond(c, h.Matching.GetProjectMatches(c.UserContext(), id))
}

func (h *ProjectHandler) SendHireRequest(c *fiber.Ctx) error {
	var req projects.HireRequestInput
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	req.ClientID = uid
	return respond(c, h.Projects.SendHire(c.UserContext(), req))
}

func (h *ProjectHandler) RespondHireRequest(c *fiber.Ctx) error {
	var req projects.RespondRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	req.FreelancerID = uid
	return respond(c, h.Projects.RespondHire(c.UserContext(), req))
}
