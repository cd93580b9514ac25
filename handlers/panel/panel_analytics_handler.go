package handlers

import (
	"github.com/gofiber/fiber/v2"

	"uracard.link/services"
)

// AnalyticsHandler kart istatistik uçları. Yazma tarafı public uçlardadır;
// burada yalnızca sahibin okuyabildiği özetler servis edilir.
type AnalyticsHandler struct {
	analytics services.IAnalyticsService
	cards     services.ICardService
}

// NewAnalyticsHandler yeni bir AnalyticsHandler örneği oluşturur.
func NewAnalyticsHandler(analytics services.IAnalyticsService, cards services.ICardService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, cards: cards}
}

// GetCardStats kartın toplam ve son 7 günlük özetini döndürür.
func (h *AnalyticsHandler) GetCardStats(c *fiber.Ctx) error {
	cardID, ok := h.authorizeCard(c)
	if !ok {
		return nil
	}
	stats := h.analytics.GetCardStats(c.UserContext(), cardID)
	return c.JSON(fiber.Map{"stats": stats})
}

// GetCardEvents kartın ham olay listesini döndürür.
func (h *AnalyticsHandler) GetCardEvents(c *fiber.Ctx) error {
	cardID, ok := h.authorizeCard(c)
	if !ok {
		return nil
	}
	events := h.analytics.GetCardEvents(c.UserContext(), cardID)
	return c.JSON(fiber.Map{"events": events})
}

// authorizeCard path'teki kartın oturum sahibine ait olduğunu doğrular.
// Başarısızsa cevabı kendisi yazar ve false döner.
func (h *AnalyticsHandler) authorizeCard(c *fiber.Ctx) (uint, bool) {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID."})
		return 0, false
	}

	if _, err := h.cards.GetCardByID(c.UserContext(), uint(cardID), userID); err != nil {
		_ = cardErrorResponse(c, err)
		return 0, false
	}
	return uint(cardID), true
}
