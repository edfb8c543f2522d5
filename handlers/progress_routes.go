package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vocab-learn-system/middleware"
	"vocab-learn-system/services"
)

func SetupProgressRoutes(app *fiber.App, progressService *services.ProgressService, secretKey []byte) {
	// 🔐 Secured routes — every learning operation needs a verified identity
	secured := app.Group("/api", middleware.UserContextMiddleware(secretKey))

	secured.Get("/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		overview, err := progressService.GetProgress(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(overview)
	})

	secured.Get("/flashcards", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		cards, err := progressService.Flashcards(userID, c.Query("category"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch flashcards",
				"cause": err.Error(),
			})
		}
		return c.JSON(cards)
	})

	secured.Post("/flashcards/progress", func(c *fiber.Ctx) error {
		type Req struct {
			VocabularyID string `json:"vocabularyId"`
			Status       string `json:"status"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.VocabularyID == "" || req.Status == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
		}

		userID := c.Locals("user_id").(string)
		if err := progressService.RecordReview(userID, req.VocabularyID, req.Status); err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})
}
