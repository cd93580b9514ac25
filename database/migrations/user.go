package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"uracard.link/configs/configslog"
	"uracard.link/models"
)

func MigrateUsersTable(db *gorm.DB) error {
	configslog.SLog.Info("Users tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.User{}); err != nil {
		configslog.Log.Error("Users tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Users tablosu başarıyla migrate edildi")
	return nil
}
