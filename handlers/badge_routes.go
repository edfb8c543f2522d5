package handlers

import (
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vocab-learn-system/middleware"
	"vocab-learn-system/models"
	"vocab-learn-system/services"
	"vocab-learn-system/utils"
)

func SetupBadgeRoutes(app *fiber.App, badgeService *services.BadgeService, secretKey []byte) {
	app.Get("/api/badges", func(c *fiber.Ctx) error {
		catalog, err := badgeService.ListBadges()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch badges",
				"cause": err.Error(),
			})
		}
		return c.JSON(catalog)
	})

	admin := app.Group("/api", middleware.UserContextMiddleware(secretKey), middleware.AdminOnlyMiddleware())

	// Multipart so an icon image can ride along with the badge fields.
	admin.Post("/badges", func(c *fiber.Ctx) error {
		criteriaValue, _ := strconv.ParseInt(c.FormValue("criteria_value"), 10, 64)
		badge := models.Badge{
			Name:          c.FormValue("name"),
			Description:   c.FormValue("description"),
			Icon:          c.FormValue("icon"),
			CriteriaType:  c.FormValue("criteria_type"),
			CriteriaValue: criteriaValue,
		}

		if iconFile, err := c.FormFile("icon_file"); err == nil && iconFile.Size > 0 {
			ext := filepath.Ext(iconFile.Filename)
			if ext == "" {
				ext = ".png"
			}
			key := "badges/" + uuid.NewString() + ext

			if utils.ObjectStoreEnabled() {
				url, err := utils.UploadAsset(iconFile, key)
				if err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"error": "failed to upload badge icon",
						"cause": err.Error(),
					})
				}
				badge.IconURL = url
			} else {
				localPath := utils.GetUploadPath(key)
				if err := utils.SaveFile(iconFile, localPath); err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"error": "failed to save badge icon",
						"cause": err.Error(),
					})
				}
				badge.IconURL = "/" + localPath
			}
		}

		if err := badgeService.CreateBadge(&badge); err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(badge)
	})
}
