package repositories

import (
	"context"

	"gorm.io/gorm"

	"uracard.link/models"
)

// IAnalyticsRepository append-only analitik olay kayıtları için arayüz.
// Güncelleme/silme metodu bilerek yoktur.
type IAnalyticsRepository interface {
	InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error
	FindByCardID(ctx context.Context, cardID uint) ([]models.AnalyticsEvent, error)
}

// AnalyticsRepository IAnalyticsRepository arayüzünü uygular.
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository verilen bağlantı ile çalışan analitik repository'si oluşturur.
func NewAnalyticsRepository(db *gorm.DB) IAnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *AnalyticsRepository) FindByCardID(ctx context.Context, cardID uint) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at asc").
		Find(&events).Error
	return events, err
}

var _ IAnalyticsRepository = (*AnalyticsRepository)(nil)
