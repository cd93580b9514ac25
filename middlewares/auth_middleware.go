package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware oturum açmamış istekleri reddeder. userID locals'a
// routes.initializeSessionAndLocals tarafından konur.
func AuthMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Bu işlem için oturum açmanız gerekiyor.",
		})
	}
	return c.Next()
}

// GuestMiddleware yalnızca oturum açmamış kullanıcılara izin verir
// (login/register uçları).
func GuestMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Zaten oturum açmışsınız.",
		})
	}
	return c.Next()
}
