package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"vocab-learn-system/middleware"
	"vocab-learn-system/models"
	"vocab-learn-system/services"
)

func SetupImportRoutes(app *fiber.App, importService *services.ImportService, secretKey []byte) {
	admin := app.Group("/api", middleware.UserContextMiddleware(secretKey), middleware.AdminOnlyMiddleware())

	// Pasted text: pipe-delimited by default, CSV when format says so.
	admin.Post("/vocabulary/bulk", func(c *fiber.Ctx) error {
		type Req struct {
			Text   string `json:"text"`
			Format string `json:"format"` // "text" (pipe) or "csv"
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if strings.TrimSpace(req.Text) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing import text"})
		}

		var drafts []models.VocabularyEntry
		var errs []services.LineError
		if req.Format == "csv" {
			drafts, errs = importService.ParseCSV(req.Text)
		} else {
			drafts, errs = importService.ParseBulkText(req.Text)
		}

		return importResponse(c, importService, drafts, errs)
	})

	// Uploaded file: .txt (pipe), .csv or .xlsx decided by extension.
	admin.Post("/vocabulary/import", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to open file", "cause": err.Error()})
		}
		defer file.Close()

		var drafts []models.VocabularyEntry
		var errs []services.LineError

		switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
		case ".xlsx":
			drafts, errs, err = importService.ParseXLSX(file)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to parse workbook", "cause": err.Error()})
			}
		case ".csv":
			raw, err := io.ReadAll(file)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read file", "cause": err.Error()})
			}
			drafts, errs = importService.ParseCSV(string(raw))
		default:
			raw, err := io.ReadAll(file)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read file", "cause": err.Error()})
			}
			drafts, errs = importService.ParseBulkText(string(raw))
		}

		return importResponse(c, importService, drafts, errs)
	})
}

func importResponse(c *fiber.Ctx, importService *services.ImportService, drafts []models.VocabularyEntry, errs []services.LineError) error {
	if len(drafts) == 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.String()
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "no valid entries",
			"errors": messages,
		})
	}

	created, attempted := importService.ImportDrafts(drafts)

	res := fiber.Map{
		"message": fmt.Sprintf("Imported %d of %d entries", created, attempted),
	}
	if len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.String()
		}
		res["errors"] = messages
	}
	return c.JSON(res)
}
