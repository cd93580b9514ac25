package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uracard.link/configs/configslog"
	"uracard.link/models"
	"uracard.link/pkg/queryparams"
)

// ICardRepository kart veritabanı işlemleri için arayüz.
type ICardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	FindByID(ctx context.Context, id uint) (*models.Card, error)
	FindBySlug(ctx context.Context, slug string) (*models.Card, error)
	// FindSlugsByPrefix verilen önekle başlayan tüm slug'ları döndürür
	// (slug tahsisindeki çakışma kontrolü için).
	FindSlugsByPrefix(ctx context.Context, prefix string) ([]string, error)
	UpdateFields(ctx context.Context, id uint, data map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	FindAllByUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Card, int64, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	// IncrementCounter istatistik kolonunu atomik olarak artırır.
	IncrementCounter(ctx context.Context, cardID uint, column string) error
}

// CardRepository ICardRepository arayüzünü uygular.
type CardRepository struct {
	base *BaseRepository[models.Card]
	db   *gorm.DB
}

// NewCardRepository verilen bağlantı ile çalışan kart repository'si oluşturur.
func NewCardRepository(db *gorm.DB) ICardRepository {
	base := NewBaseRepository[models.Card](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "updated_at", "name", "company", "views"})
	return &CardRepository{base: base, db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	return r.base.Create(ctx, card)
}

func (r *CardRepository) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	return r.base.FindByID(ctx, id)
}

// FindBySlug public slug ile kartı bulur. Bulunamazsa ErrNotFound döner.
func (r *CardRepository) FindBySlug(ctx context.Context, slug string) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Where("username_slug = ?", slug).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("CardRepository.FindBySlug: DB hatası", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) FindSlugsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).Model(&models.Card{}).
		Where("username_slug LIKE ?", prefix+"%").
		Pluck("username_slug", &slugs).Error
	if err != nil {
		configslog.Log.Error("CardRepository.FindSlugsByPrefix: DB hatası", zap.String("prefix", prefix), zap.Error(err))
		return nil, err
	}
	return slugs, nil
}

// UpdateFields yalnızca verilen kolonları günceller (seyrek patch).
func (r *CardRepository) UpdateFields(ctx context.Context, id uint, data map[string]interface{}) error {
	return r.base.Update(ctx, id, data, models.UserIDFromContext(ctx))
}

func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// FindAllByUserPaginated kullanıcının kartlarını sayfalayarak listeler.
func (r *CardRepository) FindAllByUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Card, int64, error) {
	var results []models.Card
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Card{}).Where("user_id = ?", userID)
	if params.Name != "" {
		search := "%" + params.Name + "%"
		query = query.Where("name ILIKE ? OR company ILIKE ?", search, search)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	err := query.Order(r.base.OrderClause(params)).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

func (r *CardRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// IncrementCounter sayaç kolonunu atomik artırır. Kolon adı kapalı listeden gelir.
func (r *CardRepository) IncrementCounter(ctx context.Context, cardID uint, column string) error {
	switch column {
	case "views", "clicks", "scans", "followers", "mutuals":
	default:
		return errors.New("geçersiz sayaç kolonu: " + column)
	}
	return r.db.WithContext(ctx).Model(&models.Card{}).
		Where("id = ?", cardID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

var _ ICardRepository = (*CardRepository)(nil)
