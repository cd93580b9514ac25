package routes

import (
	panel_handlers "uracard.link/handlers/panel"
	"uracard.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /api altındaki oturum gerektiren uçları tanımlar.
func registerPanelRoutes(app *fiber.App, svcs *AppServices) {
	cardHandler := panel_handlers.NewCardHandler(svcs.Cards)
	friendHandler := panel_handlers.NewFriendHandler(svcs.Friends)
	analyticsHandler := panel_handlers.NewAnalyticsHandler(svcs.Analytics, svcs.Cards)

	apiGroup := app.Group("/api")
	apiGroup.Use(middlewares.AuthMiddleware)

	// --- Kartlar ---
	apiGroup.Get("/cards", cardHandler.ListCards)          // GET /api/cards
	apiGroup.Post("/cards", cardHandler.CreateCard)        // POST /api/cards
	apiGroup.Get("/cards/:id", cardHandler.GetCard)        // GET /api/cards/{id}
	apiGroup.Put("/cards/:id", cardHandler.UpdateCard)     // PUT /api/cards/{id}
	apiGroup.Delete("/cards/:id", cardHandler.DeleteCard)  // DELETE /api/cards/{id}

	// --- Kart istatistikleri (yalnızca sahibi) ---
	apiGroup.Get("/cards/:id/stats", analyticsHandler.GetCardStats)   // GET /api/cards/{id}/stats
	apiGroup.Get("/cards/:id/events", analyticsHandler.GetCardEvents) // GET /api/cards/{id}/events

	// --- Arkadaşlar (QR/tarama akışı) ---
	apiGroup.Get("/friends", friendHandler.ListFriends)                // GET /api/friends
	apiGroup.Post("/friends", friendHandler.AddFriend)                 // POST /api/friends
	apiGroup.Delete("/friends/:friendId", friendHandler.RemoveFriend)  // DELETE /api/friends/{friendId}
}
