package routes

import (
	auth_handlers "uracard.link/handlers/auth"
	"uracard.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, svcs *AppServices) {
	authHandler := auth_handlers.NewAuthHandler(svcs.Auth)
	authGroup := app.Group("/auth")

	guestRoutes := authGroup.Group("")
	guestRoutes.Use(middlewares.GuestMiddleware)
	guestRoutes.Post("/login", authHandler.Login)
	guestRoutes.Post("/register", authHandler.Register)

	userRoutes := authGroup.Group("")
	userRoutes.Use(middlewares.AuthMiddleware)
	userRoutes.Post("/logout", authHandler.Logout)
	userRoutes.Get("/me", authHandler.Me)
}
