package photo

import (
	"backend-trailjournal/internal/timeline"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UploadedBy       string   `json:"uploaded_by"`
			OriginalFilename string   `json:"original_filename"`
			ThumbURL         string   `json:"thumb_url"`
			Lat              *float64 `json:"lat"`
			Lng              *float64 `json:"lng"`
			CapturedAt       string   `json:"captured_at"`
			Note             string   `json:"note"`
			NoteTitle        string   `json:"note_title"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if body.UploadedBy == "" || body.OriginalFilename == "" {
			return fiber.NewError(fiber.StatusBadRequest, "uploaded_by and original_filename required")
		}

		img, err := svc.RegisterUpload(c.Context(), Image{
			TripID:           c.Params("tripID"),
			UploadedBy:       body.UploadedBy,
			OriginalFilename: body.OriginalFilename,
			ThumbURL:         body.ThumbURL,
			Lat:              body.Lat,
			Lng:              body.Lng,
			// corrupt capture timestamps degrade to nil, never reject the upload
			CapturedAt: timeline.ParseCaptureTime(body.CapturedAt),
			Note:       body.Note,
			NoteTitle:  body.NoteTitle,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(img)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		photos, err := svc.List(c.Context(), c.Params("tripID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(photos)
	})

	r.Get("/:objectKey", func(c *fiber.Ctx) error {
		img, err := svc.Get(c.Context(), c.Params("objectKey"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "photo not found")
		}
		return c.JSON(img)
	})

	r.Delete("/:objectKey", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("tripID"), c.Params("objectKey")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/:objectKey/note", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Note      string `json:"note"`
			NoteTitle string `json:"note_title"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		img, err := svc.UpdateNote(c.Context(), c.Params("tripID"), c.Params("objectKey"), body.Note, body.NoteTitle)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "photo not found")
		}
		return c.JSON(img)
	})
}
