package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "sevasetu_backend/internals/features/users/auth/controller"
	"sevasetu_backend/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}
