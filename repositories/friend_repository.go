package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"uracard.link/models"
)

// IFriendRepository arkadaşlık kayıtları için arayüz.
type IFriendRepository interface {
	Create(ctx context.Context, friend *models.Friend) error
	FindPair(ctx context.Context, userID, friendID uint) (*models.Friend, error)
	FindAllByUser(ctx context.Context, userID uint) ([]models.Friend, error)
	DeletePair(ctx context.Context, userID, friendID uint) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// FriendRepository IFriendRepository arayüzünü uygular.
type FriendRepository struct {
	db *gorm.DB
}

// NewFriendRepository verilen bağlantı ile çalışan arkadaşlık repository'si oluşturur.
func NewFriendRepository(db *gorm.DB) IFriendRepository {
	return &FriendRepository{db: db}
}

func (r *FriendRepository) Create(ctx context.Context, friend *models.Friend) error {
	return r.db.WithContext(ctx).Create(friend).Error
}

// FindPair sıralı (user, friend) çiftini bulur; yoksa ErrNotFound.
func (r *FriendRepository) FindPair(ctx context.Context, userID, friendID uint) (*models.Friend, error) {
	var friend models.Friend
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		First(&friend).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

// FindAllByUser kullanıcının arkadaşlarını (profil izdüşümü ile) listeler.
func (r *FriendRepository) FindAllByUser(ctx context.Context, userID uint) ([]models.Friend, error) {
	var friends []models.Friend
	err := r.db.WithContext(ctx).
		Preload("FriendUser").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&friends).Error
	return friends, err
}

func (r *FriendRepository) DeletePair(ctx context.Context, userID, friendID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.Friend{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FriendRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Friend{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

var _ IFriendRepository = (*FriendRepository)(nil)
