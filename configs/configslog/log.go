package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) logger.
// SLog ise printf tarzı loglama için sugared logger.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

func init() {
	// Testler de dahil her paket loglayabilsin diye init'te kuruyoruz.
	InitLogger(os.Getenv("APP_ENV"))
}

// InitLogger ortam değişkenine göre logger'ı kurar.
// production: JSON çıktı, Info seviyesi. Diğerleri: console çıktı, Debug seviyesi.
func InitLogger(env string) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulama çalışamaz.
		panic("logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// Sync tamponlanmış logları diske yazar. main'de defer ile çağrılır.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
