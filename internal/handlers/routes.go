package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, uploads *UploadHandler, scores *ScoreHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/jds", uploads.HandleUploadJDs)
	api.Post("/resumes", uploads.HandleUploadResumes)
	api.Post("/score", scores.HandleScore)
	api.Get("/scores", scores.HandleListScores)
	api.Get("/criteria/:jd", scores.HandleCriteria)
	api.Get("/rank", scores.HandleRank)
	api.Post("/export", scores.HandleExport)
}
