package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
)

// respond writes the envelope and copies its status onto the response.
func respond(c *fiber.Ctx, res response.Result) error {
	return c.Status(res.Status).JSON(res)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return respond(c, response.BadRequest(msg))
}

// parseBody decodes the JSON body into dst. An empty body leaves dst as is.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(dst)
}

// pageFromQuery reads ?page=&size=, defaulting to 1 and 10.
func pageFromQuery(c *fiber.Ctx) utils.PageInfo {
	return utils.NewPageInfo(c.QueryInt("page", utils.DefaultPage), c.QueryInt("size", utils.DefaultPageSize))
}

type idBody struct {
	UserID         uuid.UUID `json:"userId"`
	Email          string    `json:"email"`
	CompanyID      uuid.UUID `json:"companyId"`
	NotificationID uuid.UUID `json:"notificationId"`
}

func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	return id, err == nil && id != uuid.Nil
}
