package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"uracard.link/configs/configslog"
	"uracard.link/models"
)

func MigrateFriendsTable(db *gorm.DB) error {
	configslog.SLog.Info("Friends tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.Friend{}); err != nil {
		configslog.Log.Error("Friends tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Friends tablosu başarıyla migrate edildi")
	return nil
}
