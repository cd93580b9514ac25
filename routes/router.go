package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"uracard.link/configs"
	"uracard.link/repositories"
	"uracard.link/services"
	"uracard.link/utils"
)

// AppServices rotaların kullandığı servis demeti. Tüm bağımlılıklar
// burada bir kez kurulur ve handler'lara constructor üzerinden verilir.
type AppServices struct {
	Auth      services.IAuthService
	Cards     services.ICardService
	Friends   services.IFriendService
	Analytics services.IAnalyticsService
}

// BuildServices repo ve servis katmanını verilen bağlantı üzerinden kurar.
func BuildServices(db *gorm.DB, storage services.IObjectStorage) *AppServices {
	userRepo := repositories.NewUserRepository(db)
	cardRepo := repositories.NewCardRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	assetService := services.NewAssetService(storage)

	return &AppServices{
		Auth:      services.NewAuthService(userRepo),
		Cards:     services.NewCardService(cardRepo, assetService),
		Friends:   services.NewFriendService(friendRepo, userRepo),
		Analytics: services.NewAnalyticsService(analyticsRepo, cardRepo),
	}
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, svcs *AppServices) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(initializeSessionAndLocals())

	registerAuthRoutes(app, svcs)
	registerPanelRoutes(app, svcs)

	app.Get("/", rootRedirector)

	// Public slug rotası tüm özel gruplardan SONRA kaydedilir; aksi halde
	// /:slug, /auth ve /api gibi önekleri de yakalar.
	registerPublicRoutes(app, svcs)

	app.Use(notFoundHandler)
}

// initializeSessionAndLocals session store'u ve oturum bilgilerini her
// istekte locals'a yazar.
func initializeSessionAndLocals() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		sess, err := utils.SessionStart(c)
		if err != nil {
			return c.Next()
		}
		if userID, idErr := utils.GetUserIDFromSession(sess); idErr == nil {
			c.Locals("userID", userID)
		}
		if isSystem, sysErr := utils.GetIsSystemFromSession(sess); sysErr == nil {
			c.Locals("isSystem", isSystem)
		}
		if userName, ok := sess.Get("user_name").(string); ok {
			c.Locals("userName", userName)
		}
		return c.Next()
	}
}

func rootRedirector(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return c.Redirect("/api/cards", fiber.StatusFound)
	}
	return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title": "Sayfa Bulunamadı",
		}, "layouts/public")
	}
}
