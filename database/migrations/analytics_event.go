package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"uracard.link/configs/configslog"
	"uracard.link/models"
)

func MigrateAnalyticsEventsTable(db *gorm.DB) error {
	configslog.SLog.Info("Analytics events tablosu migrate ediliyor...")
	if err := db.AutoMigrate(&models.AnalyticsEvent{}); err != nil {
		configslog.Log.Error("Analytics events tablosu migrate edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Analytics events tablosu başarıyla migrate edildi")
	return nil
}
