package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"uracard.link/configs/configslog"
	"uracard.link/models"
)

func MigrateCardsTable(db *gorm.DB) error {
	configslog.SLog.Info("Cards tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.Card{}); err != nil {
		configslog.Log.Error("Cards tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Cards tablosu başarıyla migrate edildi")
	return nil
}
