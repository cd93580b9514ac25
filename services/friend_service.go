package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"uracard.link/configs/configslog"
	"uracard.link/models"
	"uracard.link/repositories"
)

// FriendServiceError özel servis hataları.
type FriendServiceError string

func (e FriendServiceError) Error() string { return string(e) }

const (
	ErrFriendUserNotFound FriendServiceError = "bu kod ile bir kullanıcı bulunamadı"
	ErrFriendSelf         FriendServiceError = "kendinizi arkadaş olarak ekleyemezsiniz"
	ErrFriendExists       FriendServiceError = "bu kullanıcı zaten arkadaş listenizde"
	ErrFriendAddFailed    FriendServiceError = "arkadaş eklenemedi"
	ErrFriendAuthRequired FriendServiceError = "bu işlem için oturum açmanız gerekiyor"
)

// FriendView arkadaş kaydının profil izdüşümü ile görünümü.
type FriendView struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"userId"`
	FriendID        uint      `json:"friendId"`
	FriendName      string    `json:"friendName"`
	FriendShareCode string    `json:"friendShareCode"`
	FriendAvatar    string    `json:"friendAvatar"`
	AddedAt         time.Time `json:"addedAt"`
}

// IFriendService QR/tarama akışındaki arkadaşlık işlemleri.
// Okuma yolları sessizdir: hata durumunda boş sonuç döner.
type IFriendService interface {
	AddFriendByShareCode(ctx context.Context, userID uint, shareCode string) (*FriendView, error)
	GetFriends(ctx context.Context, userID uint) []FriendView
	RemoveFriend(ctx context.Context, userID, friendID uint) error
	IsFriend(ctx context.Context, userID, friendID uint) bool
	GetFriendCount(ctx context.Context, userID uint) int64
}

// FriendService IFriendService arayüzünü uygular.
type FriendService struct {
	repo     repositories.IFriendRepository
	userRepo repositories.IUserRepository
}

// NewFriendService yeni bir FriendService örneği oluşturur.
func NewFriendService(repo repositories.IFriendRepository, userRepo repositories.IUserRepository) IFriendService {
	return &FriendService{repo: repo, userRepo: userRepo}
}

// AddFriendByShareCode paylaşım kodu okunduğunda yönlü arkadaşlık kaydı
// oluşturur. Kendini ekleme ve mükerrer çift reddedilir.
func (s *FriendService) AddFriendByShareCode(ctx context.Context, userID uint, shareCode string) (*FriendView, error) {
	if userID == 0 {
		return nil, ErrFriendAuthRequired
	}

	friendUser, err := s.userRepo.FindByShareCode(ctx, shareCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFriendUserNotFound
		}
		configslog.Log.Error("AddFriendByShareCode: kullanıcı sorgusu hatası", zap.Error(err))
		return nil, ErrFriendAddFailed
	}

	if friendUser.ID == userID {
		return nil, ErrFriendSelf
	}

	if _, err := s.repo.FindPair(ctx, userID, friendUser.ID); err == nil {
		return nil, ErrFriendExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		configslog.Log.Error("AddFriendByShareCode: çift sorgusu hatası", zap.Error(err))
		return nil, ErrFriendAddFailed
	}

	friend := &models.Friend{UserID: userID, FriendID: friendUser.ID}
	if err := s.repo.Create(models.ContextWithUserID(ctx, userID), friend); err != nil {
		// Unique (user_id, friend_id) kısıtı yarışta da mükerrer eklemeyi önler.
		if isDuplicateKeyError(err) {
			return nil, ErrFriendExists
		}
		configslog.Log.Error("AddFriendByShareCode: kayıt hatası", zap.Error(err))
		return nil, ErrFriendAddFailed
	}

	configslog.SLog.Infof("Arkadaş eklendi: %d -> %d", userID, friendUser.ID)
	return &FriendView{
		ID:              friend.ID,
		UserID:          userID,
		FriendID:        friendUser.ID,
		FriendName:      friendUser.Name,
		FriendShareCode: friendUser.ShareCode,
		FriendAvatar:    friendUser.AvatarURL,
		AddedAt:         friend.CreatedAt,
	}, nil
}

// GetFriends kullanıcının arkadaşlarını döndürür; hata durumunda boş liste.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) []FriendView {
	if userID == 0 {
		return []FriendView{}
	}
	friends, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		configslog.Log.Warn("Arkadaş listesi okunamadı", zap.Uint("userID", userID), zap.Error(err))
		return []FriendView{}
	}

	views := make([]FriendView, 0, len(friends))
	for _, f := range friends {
		name := f.FriendUser.Name
		if name == "" {
			name = "Bilinmeyen"
		}
		views = append(views, FriendView{
			ID:              f.ID,
			UserID:          f.UserID,
			FriendID:        f.FriendID,
			FriendName:      name,
			FriendShareCode: f.FriendUser.ShareCode,
			FriendAvatar:    f.FriendUser.AvatarURL,
			AddedAt:         f.CreatedAt,
		})
	}
	return views
}

// RemoveFriend yönlü arkadaşlık kaydını siler.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if userID == 0 {
		return ErrFriendAuthRequired
	}
	err := s.repo.DeletePair(models.ContextWithUserID(ctx, userID), userID, friendID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		configslog.Log.Error("RemoveFriend: silme hatası", zap.Uint("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

// IsFriend çiftin var olup olmadığını döndürür; hata "hayır" sayılır.
func (s *FriendService) IsFriend(ctx context.Context, userID, friendID uint) bool {
	if userID == 0 {
		return false
	}
	_, err := s.repo.FindPair(ctx, userID, friendID)
	return err == nil
}

// GetFriendCount arkadaş sayısını döndürür; hata durumunda 0.
func (s *FriendService) GetFriendCount(ctx context.Context, userID uint) int64 {
	if userID == 0 {
		return 0
	}
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		configslog.Log.Warn("Arkadaş sayısı okunamadı", zap.Uint("userID", userID), zap.Error(err))
		return 0
	}
	return count
}

var _ IFriendService = (*FriendService)(nil)
