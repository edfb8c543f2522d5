package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vocab-learn-system/middleware"
	"vocab-learn-system/services"
)

// The forgot-password response never reveals whether the account exists.
const passwordResetMessage = "If an account exists with this email, you will receive a password reset code."

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	app.Post("/api/auth/signup", func(c *fiber.Ctx) error {
		type Req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		res, err := authService.Signup(req.Email, req.Password, req.Name)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(fiber.Map{
			"token": res.Token,
			"user": fiber.Map{
				"id":      res.User.ID,
				"email":   res.User.Email,
				"name":    res.User.Name,
				"isAdmin": res.User.IsAdmin,
			},
		})
	})

	app.Post("/api/auth/login", func(c *fiber.Ctx) error {
		type Req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		res, err := authService.Login(req.Email, req.Password)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(fiber.Map{
			"token": res.Token,
			"user": fiber.Map{
				"id":      res.User.ID,
				"email":   res.User.Email,
				"name":    res.User.Name,
				"isAdmin": res.User.IsAdmin,
			},
		})
	})

	app.Post("/api/auth/forgot-password", func(c *fiber.Ctx) error {
		type Req struct {
			Email string `json:"email"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.Email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
		}

		if _, err := authService.ForgotPassword(req.Email); err != nil {
			// Same message on store errors; the code simply was not issued.
			return c.JSON(fiber.Map{"message": passwordResetMessage})
		}
		return c.JSON(fiber.Map{"message": passwordResetMessage})
	})

	app.Post("/api/auth/reset-password", func(c *fiber.Ctx) error {
		type Req struct {
			Email       string `json:"email"`
			ResetCode   string `json:"resetToken"`
			NewPassword string `json:"newPassword"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		if err := authService.ResetPassword(req.Email, req.ResetCode, req.NewPassword); err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(fiber.Map{"message": "Password reset successfully"})
	})

	secured := app.Group("/api", middleware.UserContextMiddleware(authService.SecretKey))
	secured.Get("/auth/user", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		user, err := authService.GetUser(userID)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(fiber.Map{
			"id":      user.ID,
			"email":   user.Email,
			"name":    user.Name,
			"isAdmin": user.IsAdmin,
		})
	})
}
