package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uracard.link/configs/configslog"
	"uracard.link/pkg/queryparams"
	"uracard.link/services"
)

// CardHandler panel tarafındaki kart uçları.
type CardHandler struct {
	service services.ICardService
}

// NewCardHandler yeni bir CardHandler örneği oluşturur.
func NewCardHandler(service services.ICardService) *CardHandler {
	return &CardHandler{service: service}
}

// ListCards oturumdaki kullanıcının kartlarını sayfalayarak döndürür.
func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("ListCards: geçersiz sorgu parametreleri", zap.Error(err))
		params = queryparams.ListParams{}
	}

	result, err := h.service.GetCardsForUserPaginated(c.UserContext(), userID, params)
	if err != nil {
		return cardErrorResponse(c, err)
	}
	return c.JSON(result)
}

// CreateCard yeni kart oluşturur. Hem multipart (payload + dosyalar) hem
// düz JSON gövde kabul edilir.
func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	patch, pending, err := parseCardRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	view, err := h.service.CreateCard(c.UserContext(), userID, patch, pending)
	if err != nil {
		return cardErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"card": view})
}

// GetCard kartı sahibine döndürür.
func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID."})
	}

	view, err := h.service.GetCardByID(c.UserContext(), uint(cardID), userID)
	if err != nil {
		return cardErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"card": view})
}

// UpdateCard kartı seyrek patch ile günceller.
func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID."})
	}

	patch, pending, err := parseCardRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	view, err := h.service.UpdateCard(c.UserContext(), uint(cardID), userID, patch, pending)
	if err != nil {
		return cardErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"card": view})
}

// DeleteCard kartı siler.
func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID."})
	}

	if err := h.service.DeleteCard(c.UserContext(), uint(cardID), userID); err != nil {
		return cardErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// parseCardRequest isteği CardPatch + bekleyen görsellere ayrıştırır.
// Multipart isteklerde "payload" parçası JSON patch'i, "profile_image" ve
// "brand_logo" parçaları dosyaları taşır. Multipart değilse gövde doğrudan
// JSON patch kabul edilir.
func parseCardRequest(c *fiber.Ctx) (services.CardPatch, services.PendingImages, error) {
	var patch services.CardPatch
	var pending services.PendingImages

	contentType := string(c.Request().Header.ContentType())
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&patch); err != nil {
			return patch, pending, errors.New("geçersiz istek gövdesi")
		}
		return patch, pending, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return patch, pending, errors.New("geçersiz form verisi")
	}

	if payloads := form.Value["payload"]; len(payloads) > 0 && payloads[0] != "" {
		if err := json.Unmarshal([]byte(payloads[0]), &patch); err != nil {
			return patch, pending, errors.New("geçersiz payload alanı")
		}
	}

	if upload, err := openFormFile(form, "profile_image"); err != nil {
		return patch, pending, err
	} else if upload != nil {
		pending.Profile = upload
	}
	if upload, err := openFormFile(form, "brand_logo"); err != nil {
		return patch, pending, err
	} else if upload != nil {
		pending.Brand = upload
	}

	return patch, pending, nil
}

func openFormFile(form *multipart.Form, field string) (*services.PendingUpload, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	f, err := files[0].Open()
	if err != nil {
		return nil, errors.New("yüklenen dosya okunamadı")
	}
	return &services.PendingUpload{Filename: files[0].Filename, Content: f}, nil
}

// cardErrorResponse servis hatasını HTTP durum koduna eşler.
func cardErrorResponse(c *fiber.Ctx, err error) error {
	var svcErr services.CardServiceError
	if errors.As(err, &svcErr) {
		status := fiber.StatusInternalServerError
		switch svcErr {
		case services.ErrCardNotFound:
			status = fiber.StatusNotFound
		case services.ErrCardForbidden:
			status = fiber.StatusForbidden
		case services.ErrCardInvalidInput:
			status = fiber.StatusBadRequest
		case services.ErrCardAuthRequired:
			status = fiber.StatusUnauthorized
		case services.ErrCardSlugTaken:
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"error": svcErr.Error()})
	}
	if errors.Is(err, services.ErrAssetUploadFailed) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Görsel yüklenemedi, kart kaydedilmedi."})
	}
	configslog.Log.Error("Kart isteği beklenmeyen hata", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Beklenmeyen bir hata oluştu."})
}
