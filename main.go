package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"uracard.link/configs"
	"uracard.link/configs/configsdatabase"
	"uracard.link/configs/configslog"
	"uracard.link/routes"
	"uracard.link/services"
)

func main() {
	cfg := configs.LoadConfig()
	configslog.InitLogger(cfg.Env)
	defer configslog.Sync()

	db, err := configsdatabase.Connect()
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}
	defer configsdatabase.Close()

	storage, err := services.NewLocalStorage(cfg.UploadDir, cfg.BaseURL+cfg.UploadPath)
	if err != nil {
		configslog.Log.Fatal("Yükleme dizini hazırlanamadı", zap.Error(err))
	}

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 10 * 1024 * 1024, // Görsel yüklemeleri için
	})

	app.Static(cfg.UploadPath, cfg.UploadDir)

	svcs := routes.BuildServices(db, storage)
	routes.SetupRoutes(app, svcs)

	// Graceful shutdown: SIGINT/SIGTERM geldiğinde dinleyici kapatılır.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		_ = app.Shutdown()
	}()

	configslog.SLog.Infof("Sunucu %s adresinde dinliyor", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
