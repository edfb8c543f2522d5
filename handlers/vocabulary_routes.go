package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vocab-learn-system/middleware"
	"vocab-learn-system/models"
	"vocab-learn-system/services"
)

func SetupVocabularyRoutes(app *fiber.App, vocabService *services.VocabularyService, secretKey []byte) {
	// 🔓 Public: browsing the bank requires no credential
	app.Get("/api/vocabulary", func(c *fiber.Ctx) error {
		entries, err := vocabService.List(c.Query("category"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch vocabulary",
				"cause": err.Error(),
			})
		}
		return c.JSON(entries)
	})

	app.Get("/api/vocabulary/categories", func(c *fiber.Ctx) error {
		return c.JSON(models.Categories)
	})

	// 🔐 Mutations: valid credential AND admin role
	admin := app.Group("/api", middleware.UserContextMiddleware(secretKey), middleware.AdminOnlyMiddleware())

	admin.Post("/vocabulary", func(c *fiber.Ctx) error {
		type Req struct {
			Word            string `json:"word"`
			Meaning         string `json:"meaning"`
			ExampleSentence string `json:"example_sentence"`
			Category        string `json:"category"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		entry := models.VocabularyEntry{
			Word:            req.Word,
			Meaning:         req.Meaning,
			ExampleSentence: req.ExampleSentence,
			Category:        req.Category,
		}
		if err := vocabService.Create(&entry); err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(entry)
	})

	admin.Put("/vocabulary", func(c *fiber.Ctx) error {
		type Req struct {
			ID              string  `json:"id"`
			Word            *string `json:"word"`
			Meaning         *string `json:"meaning"`
			ExampleSentence *string `json:"example_sentence"`
			Category        *string `json:"category"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.ID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing vocabulary ID"})
		}

		entry, err := vocabService.Update(req.ID, req.Word, req.Meaning, req.ExampleSentence, req.Category)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(entry)
	})

	admin.Delete("/vocabulary", func(c *fiber.Ctx) error {
		type Req struct {
			ID string `json:"id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.ID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing vocabulary ID"})
		}

		if err := vocabService.Delete(req.ID); err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})
}
