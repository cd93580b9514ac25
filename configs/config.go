package configs

import (
	"os"

	"github.com/joho/godotenv"

	"uracard.link/configs/configslog"
)

// AppConfig uygulamanın ortamdan okunan ayarlarını taşır.
type AppConfig struct {
	Env        string // development | production
	ListenAddr string // Örn: ":3000"
	BaseURL    string // Public URL üretimi için (örn: https://uracard.link)
	UploadDir  string // Yerel obje deposunun kök dizini
	UploadPath string // Yüklenen dosyaların sunulduğu URL öneki (örn: /uploads)
}

var appConfig *AppConfig

// LoadConfig .env dosyasını (varsa) ve ortam değişkenlerini okur.
// Bir kez çağrılır, sonrasında GetConfig kullanılır.
func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		// .env opsiyonel; production'da değişkenler ortamdan gelir.
		configslog.SLog.Info(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	}

	appConfig = &AppConfig{
		Env:        getEnv("APP_ENV", "development"),
		ListenAddr: getEnv("APP_LISTEN_ADDR", ":3000"),
		BaseURL:    getEnv("APP_BASE_URL", "http://localhost:3000"),
		UploadDir:  getEnv("APP_UPLOAD_DIR", "./uploads"),
		UploadPath: getEnv("APP_UPLOAD_PATH", "/uploads"),
	}
	return appConfig
}

// GetConfig yüklü konfigürasyonu döndürür (yüklenmemişse yükler).
func GetConfig() *AppConfig {
	if appConfig == nil {
		return LoadConfig()
	}
	return appConfig
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
