package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"uracard.link/services"
)

// FriendHandler QR/tarama akışındaki arkadaşlık uçları.
type FriendHandler struct {
	service services.IFriendService
}

// NewFriendHandler yeni bir FriendHandler örneği oluşturur.
func NewFriendHandler(service services.IFriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

type addFriendRequest struct {
	ShareCode string `json:"shareCode"`
}

// AddFriend paylaşım kodu ile arkadaş ekler.
func (h *FriendHandler) AddFriend(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var req addFriendRequest
	if err := c.BodyParser(&req); err != nil || req.ShareCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Paylaşım kodu gerekli."})
	}

	view, err := h.service.AddFriendByShareCode(c.UserContext(), userID, req.ShareCode)
	if err != nil {
		var svcErr services.FriendServiceError
		if errors.As(err, &svcErr) {
			status := fiber.StatusBadRequest
			switch svcErr {
			case services.ErrFriendUserNotFound:
				status = fiber.StatusNotFound
			case services.ErrFriendExists:
				status = fiber.StatusConflict
			case services.ErrFriendAuthRequired:
				status = fiber.StatusUnauthorized
			}
			return c.Status(status).JSON(fiber.Map{"error": svcErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Arkadaş eklenemedi."})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"friend": view})
}

// ListFriends arkadaş listesini döndürür; okuma yolu hatada boş liste verir.
func (h *FriendHandler) ListFriends(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	friends := h.service.GetFriends(c.UserContext(), userID)
	return c.JSON(fiber.Map{
		"friends": friends,
		"count":   h.service.GetFriendCount(c.UserContext(), userID),
	})
}

// RemoveFriend yönlü arkadaşlık kaydını kaldırır.
func (h *FriendHandler) RemoveFriend(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	friendID, err := c.ParamsInt("friendId")
	if err != nil || friendID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz arkadaş ID."})
	}

	if err := h.service.RemoveFriend(c.UserContext(), userID, uint(friendID)); err != nil {
		if errors.Is(err, services.ErrFriendAuthRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Arkadaş kaldırılamadı."})
	}
	return c.JSON(fiber.Map{"ok": true})
}
