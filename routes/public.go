package routes

import (
	public_handlers "uracard.link/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes oturum gerektirmeyen, slug üzerinden erişilen kart
// uçlarını tanımlar. Catch-all /:slug rotası en sonda kayıtlıdır.
func registerPublicRoutes(app *fiber.App, svcs *AppServices) {
	publicHandler := public_handlers.NewPublicCardHandler(svcs.Cards, svcs.Analytics)

	app.Get("/c/:slug.json", publicHandler.GetCardJSON)  // JSON temsili (mobil istemci)
	app.Post("/c/:slug/scan", publicHandler.TrackScan)   // QR tarama olayı
	app.Post("/c/:slug/click", publicHandler.TrackClick) // Bağlantı tıklama olayı

	app.Get("/:slug", publicHandler.ShowCard) // HTML kart sayfası
}
