package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"uracard.link/models"
	"uracard.link/models/helpers"
	"uracard.link/services"
)

// PublicCardHandler slug üzerinden erişilen public kart uçları. Bu uçlar
// oturum gerektirmez; analitik yazımı elden geldiğince yapılır ve sayfa
// servisini asla engellemez.
type PublicCardHandler struct {
	cards     services.ICardService
	analytics services.IAnalyticsService
}

// NewPublicCardHandler yeni bir PublicCardHandler örneği oluşturur.
func NewPublicCardHandler(cards services.ICardService, analytics services.IAnalyticsService) *PublicCardHandler {
	return &PublicCardHandler{cards: cards, analytics: analytics}
}

// ShowCard public kart sayfasını render eder ve görüntüleme olayı düşer.
func (h *PublicCardHandler) ShowCard(c *fiber.Ctx) error {
	view, err := h.cards.GetCardBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
				"Title": "Kart Bulunamadı",
			}, "layouts/public")
		}
		return c.Status(fiber.StatusInternalServerError).Render("errors/404", fiber.Map{
			"Title": "Bir Hata Oluştu",
		}, "layouts/public")
	}

	h.analytics.TrackEvent(c.UserContext(), view.ID, models.EventView, helpers.JSONBMap{
		"source": sourceFromQuery(c),
	})

	redacted := redactPrivateContact(*view)
	return c.Render("card", fiber.Map{
		"Title": redacted.Name,
		"Card":  redacted,
	}, "layouts/public")
}

// GetCardJSON public kartın JSON temsilini döndürür (mobil istemci).
func (h *PublicCardHandler) GetCardJSON(c *fiber.Ctx) error {
	view, err := h.cards.GetCardBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Kart getirilemedi."})
	}

	h.analytics.TrackEvent(c.UserContext(), view.ID, models.EventView, helpers.JSONBMap{
		"source": sourceFromQuery(c),
	})

	return c.JSON(fiber.Map{"card": redactPrivateContact(*view)})
}

// TrackScan QR taramasını görüntüleme olayı olarak kaydeder. Her zaman
// 202 döner; analitik hiçbir zaman istemciye hata taşımaz.
func (h *PublicCardHandler) TrackScan(c *fiber.Ctx) error {
	view, err := h.cards.GetCardBySlug(c.UserContext(), c.Params("slug"))
	if err == nil {
		h.analytics.TrackEvent(c.UserContext(), view.ID, models.EventView, helpers.JSONBMap{
			"source": "qr",
		})
	}
	return c.SendStatus(fiber.StatusAccepted)
}

type trackClickRequest struct {
	Label string `json:"label"`
}

// TrackClick kart üzerindeki bir bağlantı tıklamasını kaydeder.
func (h *PublicCardHandler) TrackClick(c *fiber.Ctx) error {
	var req trackClickRequest
	_ = c.BodyParser(&req)

	view, err := h.cards.GetCardBySlug(c.UserContext(), c.Params("slug"))
	if err == nil {
		metadata := helpers.JSONBMap{}
		if req.Label != "" {
			metadata["label"] = req.Label
		}
		h.analytics.TrackEvent(c.UserContext(), view.ID, models.EventClick, metadata)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// redactPrivateContact gizli işaretlenmiş iletişim alanlarını public
// görünümden çıkarır.
func redactPrivateContact(view services.CardView) services.CardView {
	if view.IsPhonePrivate {
		view.Phone = ""
	}
	if view.IsEmailPrivate {
		view.Email = ""
	}
	return view
}

func sourceFromQuery(c *fiber.Ctx) string {
	if c.Query("source") == "qr" {
		return "qr"
	}
	return "link"
}
