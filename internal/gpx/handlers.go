package gpx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, store *Store, authMiddleware fiber.Handler) {
	r.Post("/preview", authMiddleware, func(c *fiber.Ctx) error {
		data := c.Body()
		if len(data) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "empty body")
		}

		preview, err := Parse(data)
		if err != nil {
			if errors.Is(err, ErrNotGPX) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		key, err := store.SaveTemp(data)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		preview.TempFileKey = key
		return c.JSON(preview)
	})
}
