package seeders

import (
	"errors"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"uracard.link/configs/configslog"
	"uracard.link/models"
	"uracard.link/utils"
)

// SeedSystemUser sistem kullanıcısını kontrol eder, yoksa oluşturur.
// Tekrar çalıştırmak güvenlidir.
func SeedSystemUser(db *gorm.DB) error {
	email := getSeedEnv("SYSTEM_USER_EMAIL", "system@uracard.link")
	password := getSeedEnv("SYSTEM_USER_PASSWORD", "")

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Info("Sistem kullanıcısı zaten mevcut, oluşturma atlanıyor.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	if password == "" {
		// Parola verilmediyse rastgele üretilir ve bir kez loglanır.
		generated, genErr := utils.GenerateSecureRandomString(24)
		if genErr != nil {
			configslog.Log.Error("Sistem kullanıcısı parolası üretilemedi", zap.Error(genErr))
			return genErr
		}
		password = generated
		configslog.SLog.Warnf("SYSTEM_USER_PASSWORD tanımlı değil; üretilen parola: %s", password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	user := models.User{
		Name:         "Sistem",
		Email:        email,
		PasswordHash: string(hash),
		ShareCode:    uuid.NewString(),
		Role:         "system",
		IsSystem:     true,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu (ID: %d).", user.ID)
	return nil
}

func getSeedEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
