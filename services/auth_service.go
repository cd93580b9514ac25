package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"uracard.link/configs/configslog"
	"uracard.link/models"
	"uracard.link/repositories"
)

// AuthServiceError özel servis hataları.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrAuthInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrAuthEmailTaken         AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrAuthUserNotFound       AuthServiceError = "kullanıcı bulunamadı"
	ErrAuthRegisterFailed     AuthServiceError = "kayıt oluşturulamadı"
	ErrAuthInvalidInput       AuthServiceError = "geçersiz kayıt bilgisi"
)

// UserView kullanıcının uygulama tarafındaki salt okunur izdüşümü.
type UserView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ShareCode string    `json:"shareCode"`
	AvatarURL string    `json:"avatarUrl"`
	Role      string    `json:"role"`
	IsSystem  bool      `json:"isSystem"`
	CreatedAt time.Time `json:"createdAt"`
}

// IAuthService kimlik işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetCurrentUser(ctx context.Context, userID uint) (*UserView, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo repositories.IUserRepository
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService(userRepo repositories.IUserRepository) IAuthService {
	return &AuthService{userRepo: userRepo}
}

// Register yeni hesap açar. Paylaşım kodu (QR akışı) kayıtta üretilir,
// avatar isme göre tohumlanır.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || len(password) < 8 {
		return nil, ErrAuthInvalidInput
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrAuthEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrAuthRegisterFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Register: şifre hash hatası", zap.Error(err))
		return nil, ErrAuthRegisterFailed
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		ShareCode:    uuid.NewString(),
		AvatarURL:    "https://api.dicebear.com/7.x/avataaars/svg?seed=" + name,
		Role:         "user",
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrAuthEmailTaken
		}
		configslog.Log.Error("Register: kullanıcı kaydı hatası", zap.Error(err))
		return nil, ErrAuthRegisterFailed
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydı: ID %d", user.ID)
	return user, nil
}

// Login e-posta/şifre doğrular. Hangi alanın hatalı olduğu açıklanmaz.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAuthInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrAuthInvalidCredentials
	}
	return user, nil
}

// GetCurrentUser oturumdaki kullanıcının izdüşümünü döndürür.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uint) (*UserView, error) {
	if userID == 0 {
		return nil, ErrAuthUserNotFound
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthUserNotFound
		}
		return nil, err
	}
	return &UserView{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ShareCode: user.ShareCode,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
		IsSystem:  user.IsSystem,
		CreatedAt: user.CreatedAt,
	}, nil
}

var _ IAuthService = (*AuthService)(nil)
