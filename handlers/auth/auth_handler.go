package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uracard.link/configs/configslog"
	"uracard.link/services"
	"uracard.link/utils"
)

// AuthHandler kimlik uçları.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register yeni hesap açar ve oturumu başlatır.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}

	user, err := h.service.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, services.ErrAuthEmailTaken) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.startSession(c, user.ID, user.IsSystem, user.Name); err != nil {
		configslog.Log.Error("Register: oturum başlatılamadı", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Oturum başlatılamadı."})
	}

	view, _ := h.service.GetCurrentUser(c.UserContext(), user.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": view})
}

// Login e-posta/şifre ile oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}

	user, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Login hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Giriş yapılamadı."})
	}

	if err := h.startSession(c, user.ID, user.IsSystem, user.Name); err != nil {
		configslog.Log.Error("Login: oturum başlatılamadı", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Oturum başlatılamadı."})
	}

	view, _ := h.service.GetCurrentUser(c.UserContext(), user.ID)
	return c.JSON(fiber.Map{"user": view})
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Me oturumdaki kullanıcıyı döndürür.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	view, err := h.service.GetCurrentUser(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Oturum bulunamadı."})
	}
	return c.JSON(fiber.Map{"user": view})
}

func (h *AuthHandler) startSession(c *fiber.Ctx, userID uint, isSystem bool, name string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set("user_id", userID)
	sess.Set("is_system", isSystem)
	sess.Set("user_name", name)
	return sess.Save()
}
