package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uracard.link/configs/configslog"
	"uracard.link/models"
	"uracard.link/pkg/queryparams"
	"uracard.link/pkg/slugify"
	"uracard.link/repositories"
)

// CardServiceError özel servis hataları.
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound       CardServiceError = "kart bulunamadı"
	ErrCardCreationFailed CardServiceError = "kart oluşturulamadı"
	ErrCardUpdateFailed   CardServiceError = "kart güncellenemedi"
	ErrCardDeletionFailed CardServiceError = "kart silinemedi"
	ErrCardForbidden      CardServiceError = "bu işlem için yetkiniz yok"
	ErrCardInvalidInput   CardServiceError = "geçersiz girdi verisi"
	ErrCardAuthRequired   CardServiceError = "bu işlem için oturum açmanız gerekiyor"
	// ErrCardSlugTaken slug tahsisindeki kontrol-sonrası yarışta veritabanı
	// unique kısıtından döner; çağıran slug tahsisini tekrar deneyebilir.
	ErrCardSlugTaken CardServiceError = "bu kullanıcı adı az önce alındı, lütfen tekrar deneyin"
)

// PendingImages kaydetme anında slot başına bekleyen görseller.
type PendingImages struct {
	Profile *PendingUpload
	Brand   *PendingUpload
}

// ICardService kart işlemleri için arayüz.
type ICardService interface {
	EnsureUniqueSlug(ctx context.Context, candidate string) (string, error)
	CreateCard(ctx context.Context, ownerID uint, draft CardPatch, pending PendingImages) (*CardView, error)
	UpdateCard(ctx context.Context, cardID, userID uint, patch CardPatch, pending PendingImages) (*CardView, error)
	GetCardByID(ctx context.Context, id, requestingUserID uint) (*CardView, error)
	GetCardBySlug(ctx context.Context, slug string) (*CardView, error)
	GetCardsForUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	DeleteCard(ctx context.Context, id, userID uint) error
	GetCardCountForUser(ctx context.Context, userID uint) (int64, error)
}

// CardService ICardService arayüzünü uygular. Bağımlılıklar test
// edilebilirlik için constructor'dan verilir; global client yoktur.
type CardService struct {
	repo   repositories.ICardRepository
	assets IAssetService
}

// NewCardService yeni bir CardService örneği oluşturur.
func NewCardService(repo repositories.ICardRepository, assets IAssetService) ICardService {
	return &CardService{repo: repo, assets: assets}
}

// EnsureUniqueSlug adayı normalize eder ve mevcut slug kümesine karşı
// benzersiz hale getirir: aday boşsa slugify.FallbackSlug, çakışıyorsa
// artan sayısal son ek (-1, -2, ...).
//
// Bilinen yarış: kontrol ile insert ayrı adımlardır (check-then-act).
// İki eşzamanlı çağrı aynı slug'ı alabilir; nihai güvence veritabanındaki
// unique index'tir ve ihlali ErrCardSlugTaken olarak yüzeye çıkar.
func (s *CardService) EnsureUniqueSlug(ctx context.Context, candidate string) (string, error) {
	slug := slugify.Normalize(candidate)

	existing, err := s.repo.FindSlugsByPrefix(ctx, slug)
	if err != nil {
		// Kontrol başarısızsa benzersizlik varsayılmaz; hata yukarı taşınır.
		return "", err
	}

	taken := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		taken[e] = struct{}{}
	}

	if _, exists := taken[slug]; !exists {
		return slug, nil
	}

	for counter := 1; ; counter++ {
		attempt := slugify.WithSuffix(slug, counter)
		if _, exists := taken[attempt]; !exists {
			return attempt, nil
		}
	}
}

// CreateCard yeni kart oluşturur. Adımlar sabit sıradadır:
// slug tahsisi -> bekleyen görsel yüklemeleri -> kayıt yazma.
func (s *CardService) CreateCard(ctx context.Context, ownerID uint, draft CardPatch, pending PendingImages) (*CardView, error) {
	if ownerID == 0 {
		return nil, ErrCardAuthRequired
	}

	// 1. Slug tahsisi: istenen slug > görünen ad > fallback.
	candidate := ""
	if draft.UsernameSlug != nil && *draft.UsernameSlug != "" {
		candidate = *draft.UsernameSlug
	} else if draft.Name != nil {
		candidate = *draft.Name
	}
	slug, err := s.EnsureUniqueSlug(ctx, candidate)
	if err != nil {
		configslog.Log.Error("CreateCard: slug tahsisi başarısız", zap.Error(err))
		return nil, ErrCardCreationFailed
	}

	// 2. Bekleyen görseller kayıttan ÖNCE yüklenir; yükleme hatası tüm
	// kaydetmeyi iptal eder.
	profileRef, err := s.assets.ResolvePendingImage(ctx, "profiles", pending.Profile, derefOr(draft.ProfileImage, ""), "")
	if err != nil {
		return nil, err
	}
	brandRef, err := s.assets.ResolvePendingImage(ctx, "brands", pending.Brand, derefOr(draft.BrandLogo, ""), "")
	if err != nil {
		return nil, err
	}

	// 3. Kayıt: taslak eksiksiz satıra dönüştürülür. Telefon/e-posta
	// gizliliği açıkça belirtilmedikçe gizlidir.
	card := models.Card{
		UserID:         ownerID,
		IsPhonePrivate: true,
		IsEmailPrivate: true,
		PrimaryCTA:     models.CTASaveContact,
		SchemaVersion:  models.CardSchemaVersion,
	}
	draft.ApplyToCard(&card)
	card.UsernameSlug = slug
	card.ProfileImage = profileRef
	card.BrandLogo = brandRef
	if !models.ValidPrimaryCTA(card.PrimaryCTA) {
		card.PrimaryCTA = models.CTASaveContact
	}

	if err := s.repo.Create(models.ContextWithUserID(ctx, ownerID), &card); err != nil {
		if isDuplicateKeyError(err) {
			configslog.Log.Warn("CreateCard: slug yarışta kaybetti", zap.String("slug", slug))
			return nil, ErrCardSlugTaken
		}
		configslog.Log.Error("CreateCard: kayıt yazılamadı", zap.Uint("ownerID", ownerID), zap.Error(err))
		return nil, ErrCardCreationFailed
	}

	configslog.SLog.Infof("Kart oluşturuldu: ID %d, slug %s (kullanıcı %d)", card.ID, card.UsernameSlug, ownerID)
	view := ToCardView(&card)
	return &view, nil
}

// UpdateCard mevcut kartı seyrek patch ile günceller. Sıra sabittir:
// slug çözümü -> görsel yüklemeleri -> kayıt yazma -> eski görsel temizliği.
// Başarısız adım önceki kalıcı kaydı olduğu gibi bırakır.
func (s *CardService) UpdateCard(ctx context.Context, cardID, userID uint, patch CardPatch, pending PendingImages) (*CardView, error) {
	if cardID == 0 || userID == 0 {
		return nil, ErrCardInvalidInput
	}

	existing, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		configslog.Log.Warn("Yetkisiz kart güncelleme denemesi",
			zap.Uint("cardID", cardID), zap.Uint("userID", userID), zap.Uint("ownerID", existing.UserID))
		return nil, ErrCardForbidden
	}

	// 1. Slug değişiyorsa yeniden tahsis et; aynı değere normalleşiyorsa
	// patch'ten çıkar.
	if patch.UsernameSlug != nil {
		normalized := slugify.Normalize(*patch.UsernameSlug)
		if normalized == existing.UsernameSlug {
			patch.UsernameSlug = nil
		} else {
			slug, slugErr := s.EnsureUniqueSlug(ctx, normalized)
			if slugErr != nil {
				configslog.Log.Error("UpdateCard: slug tahsisi başarısız", zap.Error(slugErr))
				return nil, ErrCardUpdateFailed
			}
			patch.UsernameSlug = &slug
		}
	}

	// 2. Görseller kayıttan önce çözülür.
	initialProfile := existing.ProfileImage
	initialBrand := existing.BrandLogo

	if pending.Profile != nil || patch.ProfileImage != nil {
		resolved, imgErr := s.assets.ResolvePendingImage(ctx, "profiles", pending.Profile,
			derefOr(patch.ProfileImage, initialProfile), initialProfile)
		if imgErr != nil {
			return nil, imgErr
		}
		patch.ProfileImage = &resolved
	}
	if pending.Brand != nil || patch.BrandLogo != nil {
		resolved, imgErr := s.assets.ResolvePendingImage(ctx, "brands", pending.Brand,
			derefOr(patch.BrandLogo, initialBrand), initialBrand)
		if imgErr != nil {
			return nil, imgErr
		}
		patch.BrandLogo = &resolved
	}

	// 3. Kayıt yazma. Patch boşsa yazma adımı atlanır.
	updates := patch.ToRowUpdates()
	if len(updates) > 0 {
		txCtx := models.ContextWithUserID(ctx, userID)
		if err := s.repo.UpdateFields(txCtx, cardID, updates); err != nil {
			if isDuplicateKeyError(err) {
				return nil, ErrCardSlugTaken
			}
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrCardNotFound
			}
			configslog.Log.Error("UpdateCard: kayıt güncellenemedi", zap.Uint("cardID", cardID), zap.Error(err))
			return nil, ErrCardUpdateFailed
		}
	}

	updated, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		return nil, ErrCardUpdateFailed
	}

	// 4. Kayıt kalıcı olarak güncellendi; eski görseller artık silinebilir.
	// Temizlik hataları kaydetmeyi geri almaz.
	s.assets.CleanupSuperseded(ctx, initialProfile, updated.ProfileImage)
	s.assets.CleanupSuperseded(ctx, initialBrand, updated.BrandLogo)

	configslog.SLog.Infof("Kart güncellendi: ID %d (kullanıcı %d)", cardID, userID)
	view := ToCardView(updated)
	return &view, nil
}

// GetCardByID kartı sahibine döndürür (yetki kontrolü ile).
func (s *CardService) GetCardByID(ctx context.Context, id, requestingUserID uint) (*CardView, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("GetCardByID: repo hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	if card.UserID != requestingUserID {
		return nil, ErrCardForbidden
	}
	view := ToCardView(card)
	return &view, nil
}

// GetCardBySlug public slug ile kartı getirir. Gizli kartlar ve olmayan
// slug'lar aynı şekilde "bulunamadı" döner.
func (s *CardService) GetCardBySlug(ctx context.Context, slug string) (*CardView, error) {
	if slug == "" {
		return nil, ErrCardNotFound
	}
	card, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if card.IsPrivate {
		return nil, ErrCardNotFound
	}
	view := ToCardView(card)
	return &view, nil
}

// GetCardsForUserPaginated kullanıcının kartlarını sayfalayarak getirir.
func (s *CardService) GetCardsForUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if userID == 0 {
		return nil, ErrCardAuthRequired
	}
	params.Validate()
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}

	cards, totalCount, err := s.repo.FindAllByUserPaginated(ctx, userID, params)
	if err != nil {
		configslog.Log.Error("Kullanıcı kartları listelenemedi", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}

	views := make([]CardView, 0, len(cards))
	for i := range cards {
		views = append(views, ToCardView(&cards[i]))
	}

	return &queryparams.PaginatedResult{
		Data: views,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// DeleteCard kartı siler (yalnızca sahibi). Karta ait depolanmış görseller
// kayıt silindikten sonra temizlenir.
func (s *CardService) DeleteCard(ctx context.Context, id, userID uint) error {
	if id == 0 || userID == 0 {
		return ErrCardInvalidInput
	}

	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCardNotFound
		}
		return err
	}
	if card.UserID != userID {
		return ErrCardForbidden
	}

	if err := s.repo.Delete(models.ContextWithUserID(ctx, userID), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCardNotFound
		}
		configslog.Log.Error("DeleteCard: silme hatası", zap.Uint("id", id), zap.Error(err))
		return ErrCardDeletionFailed
	}

	s.assets.CleanupSuperseded(ctx, card.ProfileImage, "")
	s.assets.CleanupSuperseded(ctx, card.BrandLogo, "")

	configslog.SLog.Infof("Kart silindi: ID %d (kullanıcı %d)", id, userID)
	return nil
}

// GetCardCountForUser kullanıcının kart sayısını döndürür.
func (s *CardService) GetCardCountForUser(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountByUserID(ctx, userID)
}

// isDuplicateKeyError unique kısıt ihlalini yakalar (slug yarışının nihai
// güvencesi veritabanıdır).
func isDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

func derefOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

var _ ICardService = (*CardService)(nil)
