package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/web"
)

// HandleIndex serves the upload form.
func HandleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(web.IndexHTML)
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}
