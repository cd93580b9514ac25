package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uracard.link/models"
	"uracard.link/pkg/queryparams"
	"uracard.link/repositories"
)

// fakeCardRepo bellek içi ICardRepository. Slug unique kısıtı gerçek
// veritabanındaki gibi "duplicate key" hatasıyla taklit edilir.
type fakeCardRepo struct {
	cards     map[uint]*models.Card
	nextID    uint
	createErr error
	slugsErr  error

	incremented []string
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: map[uint]*models.Card{}, nextID: 1}
}

var errFakeDuplicate = errors.New(`ERROR: duplicate key value violates unique constraint "idx_cards_username_slug"`)

func (r *fakeCardRepo) Create(ctx context.Context, card *models.Card) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.cards {
		if existing.UsernameSlug == card.UsernameSlug {
			return errFakeDuplicate
		}
	}
	card.ID = r.nextID
	r.nextID++
	stored := *card
	r.cards[card.ID] = &stored
	return nil
}

func (r *fakeCardRepo) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	card, ok := r.cards[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *card
	return &copied, nil
}

func (r *fakeCardRepo) FindBySlug(ctx context.Context, slug string) (*models.Card, error) {
	for _, card := range r.cards {
		if card.UsernameSlug == slug {
			copied := *card
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCardRepo) FindSlugsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	if r.slugsErr != nil {
		return nil, r.slugsErr
	}
	var slugs []string
	for _, card := range r.cards {
		if strings.HasPrefix(card.UsernameSlug, prefix) {
			slugs = append(slugs, card.UsernameSlug)
		}
	}
	return slugs, nil
}

func (r *fakeCardRepo) UpdateFields(ctx context.Context, id uint, data map[string]interface{}) error {
	card, ok := r.cards[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if slug, given := data["username_slug"].(string); given {
		for otherID, other := range r.cards {
			if otherID != id && other.UsernameSlug == slug {
				return errFakeDuplicate
			}
		}
		card.UsernameSlug = slug
	}
	if v, ok := data["name"].(string); ok {
		card.Name = v
	}
	if v, ok := data["bio"].(string); ok {
		card.Bio = v
	}
	if v, ok := data["profile_image"].(string); ok {
		card.ProfileImage = v
	}
	if v, ok := data["brand_logo"].(string); ok {
		card.BrandLogo = v
	}
	if v, ok := data["is_private"].(bool); ok {
		card.IsPrivate = v
	}
	return nil
}

func (r *fakeCardRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.cards[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.cards, id)
	return nil
}

func (r *fakeCardRepo) FindAllByUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Card, int64, error) {
	var results []models.Card
	for _, card := range r.cards {
		if card.UserID == userID {
			results = append(results, *card)
		}
	}
	return results, int64(len(results)), nil
}

func (r *fakeCardRepo) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, card := range r.cards {
		if card.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCardRepo) IncrementCounter(ctx context.Context, cardID uint, column string) error {
	r.incremented = append(r.incremented, column)
	return nil
}

var _ repositories.ICardRepository = (*fakeCardRepo)(nil)

// fakeAssets kayıt tutan IAssetService.
type fakeAssets struct {
	uploadErr    error
	uploadedURLs map[string]string // slot -> dönen URL
	cleanups     [][2]string
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{uploadedURLs: map[string]string{}}
}

func (f *fakeAssets) ResolvePendingImage(ctx context.Context, slot string, pending *PendingUpload, currentRef, initialRemoteRef string) (string, error) {
	if pending != nil {
		if f.uploadErr != nil {
			return "", f.uploadErr
		}
		url := "https://cdn.test/" + slot + "/" + pending.Filename
		f.uploadedURLs[slot] = url
		return url, nil
	}
	if IsTransientRef(currentRef) {
		return initialRemoteRef, nil
	}
	return currentRef, nil
}

func (f *fakeAssets) CleanupSuperseded(ctx context.Context, initialRef, finalRef string) {
	f.cleanups = append(f.cleanups, [2]string{initialRef, finalRef})
}

var _ IAssetService = (*fakeAssets)(nil)

func newTestCardService() (ICardService, *fakeCardRepo, *fakeAssets) {
	repo := newFakeCardRepo()
	assets := newFakeAssets()
	return NewCardService(repo, assets), repo, assets
}

func seedCard(repo *fakeCardRepo, userID uint, slug string) *models.Card {
	card := &models.Card{UserID: userID, UsernameSlug: slug, Name: slug}
	_ = repo.Create(context.Background(), card)
	return repo.cards[card.ID]
}

func strPtr(s string) *string { return &s }

func TestEnsureUniqueSlugNoCollision(t *testing.T) {
	svc, _, _ := newTestCardService()

	slug, err := svc.EnsureUniqueSlug(context.Background(), "Ahmet Yılmaz")
	require.NoError(t, err)
	assert.Equal(t, "ahmet-y-lmaz", slug)
}

func TestEnsureUniqueSlugAscendingSuffix(t *testing.T) {
	svc, repo, _ := newTestCardService()
	seedCard(repo, 1, "ahmet")
	seedCard(repo, 2, "ahmet-1")
	seedCard(repo, 3, "ahmet-2")

	slug, err := svc.EnsureUniqueSlug(context.Background(), "ahmet")
	require.NoError(t, err)
	assert.Equal(t, "ahmet-3", slug)
}

func TestEnsureUniqueSlugEmptyCandidateFallsBack(t *testing.T) {
	svc, _, _ := newTestCardService()

	slug, err := svc.EnsureUniqueSlug(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "user", slug)
}

func TestEnsureUniqueSlugLookupFailurePropagates(t *testing.T) {
	svc, repo, _ := newTestCardService()
	repo.slugsErr = errors.New("bağlantı koptu")

	_, err := svc.EnsureUniqueSlug(context.Background(), "ahmet")
	assert.Error(t, err)
}

func TestCreateCardRequiresAuth(t *testing.T) {
	svc, _, _ := newTestCardService()

	_, err := svc.CreateCard(context.Background(), 0, CardPatch{}, PendingImages{})
	assert.ErrorIs(t, err, ErrCardAuthRequired)
}

func TestCreateCardDefaults(t *testing.T) {
	svc, _, _ := newTestCardService()

	view, err := svc.CreateCard(context.Background(), 5, CardPatch{Name: strPtr("Ahmet")}, PendingImages{})
	require.NoError(t, err)

	assert.Equal(t, "ahmet", view.UsernameSlug)
	// İletişim alanları açıkça belirtilmedikçe gizlidir.
	assert.True(t, view.IsPhonePrivate)
	assert.True(t, view.IsEmailPrivate)
	assert.Equal(t, models.CTASaveContact, view.PrimaryCTA)
	assert.Zero(t, view.Views)
}

func TestCreateCardUploadsPendingImages(t *testing.T) {
	svc, repo, assets := newTestCardService()

	view, err := svc.CreateCard(context.Background(), 5,
		CardPatch{Name: strPtr("Ahmet")},
		PendingImages{
			Profile: &PendingUpload{Filename: "me.jpg", Content: strings.NewReader("img")},
			Brand:   &PendingUpload{Filename: "logo.png", Content: strings.NewReader("img")},
		})
	require.NoError(t, err)

	assert.Equal(t, assets.uploadedURLs["profiles"], view.ProfileImage)
	assert.Equal(t, assets.uploadedURLs["brands"], view.BrandLogo)

	stored, err := repo.FindByID(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ProfileImage, stored.ProfileImage)
}

func TestCreateCardUploadFailureAbortsSave(t *testing.T) {
	svc, repo, assets := newTestCardService()
	assets.uploadErr = ErrAssetUploadFailed

	_, err := svc.CreateCard(context.Background(), 5,
		CardPatch{Name: strPtr("Ahmet")},
		PendingImages{Profile: &PendingUpload{Filename: "me.jpg", Content: strings.NewReader("img")}})

	assert.ErrorIs(t, err, ErrAssetUploadFailed)
	// Yükleme hatası tüm kaydetmeyi iptal eder; kayıt yazılmaz.
	assert.Empty(t, repo.cards)
}

func TestCreateCardSlugRaceSurfacesAsSlugTaken(t *testing.T) {
	svc, repo, _ := newTestCardService()
	repo.createErr = errFakeDuplicate

	_, err := svc.CreateCard(context.Background(), 5, CardPatch{Name: strPtr("Ahmet")}, PendingImages{})
	assert.ErrorIs(t, err, ErrCardSlugTaken)
}

func TestUpdateCardOwnershipEnforced(t *testing.T) {
	svc, repo, _ := newTestCardService()
	card := seedCard(repo, 1, "ahmet")

	_, err := svc.UpdateCard(context.Background(), card.ID, 99, CardPatch{Name: strPtr("Saldırgan")}, PendingImages{})
	assert.ErrorIs(t, err, ErrCardForbidden)
	assert.Equal(t, "ahmet", repo.cards[card.ID].Name)
}

func TestUpdateCardSameSlugIsNoop(t *testing.T) {
	svc, repo, _ := newTestCardService()
	card := seedCard(repo, 1, "ahmet")

	// Aynı değere normalleşen slug yeniden tahsis edilmez; "-1" eki üretmez.
	view, err := svc.UpdateCard(context.Background(), card.ID, 1,
		CardPatch{UsernameSlug: strPtr("Ahmet")}, PendingImages{})
	require.NoError(t, err)
	assert.Equal(t, "ahmet", view.UsernameSlug)
}

func TestUpdateCardSlugChangeReallocates(t *testing.T) {
	svc, repo, _ := newTestCardService()
	card := seedCard(repo, 1, "ahmet")
	seedCard(repo, 2, "zeynep")

	view, err := svc.UpdateCard(context.Background(), card.ID, 1,
		CardPatch{UsernameSlug: strPtr("Zeynep")}, PendingImages{})
	require.NoError(t, err)
	assert.Equal(t, "zeynep-1", view.UsernameSlug)
}

func TestUpdateCardCleansUpReplacedImageAfterWrite(t *testing.T) {
	svc, repo, assets := newTestCardService()
	card := seedCard(repo, 1, "ahmet")
	repo.cards[card.ID].ProfileImage = "https://cdn.test/profiles/old.jpg"

	view, err := svc.UpdateCard(context.Background(), card.ID, 1, CardPatch{},
		PendingImages{Profile: &PendingUpload{Filename: "new.jpg", Content: strings.NewReader("img")}})
	require.NoError(t, err)

	assert.Equal(t, assets.uploadedURLs["profiles"], view.ProfileImage)
	// Eski referans yeni referansla birlikte temizliğe gitti.
	require.NotEmpty(t, assets.cleanups)
	assert.Equal(t, [2]string{"https://cdn.test/profiles/old.jpg", view.ProfileImage}, assets.cleanups[0])
}

func TestUpdateCardUploadFailureLeavesRecordIntact(t *testing.T) {
	svc, repo, assets := newTestCardService()
	card := seedCard(repo, 1, "ahmet")
	repo.cards[card.ID].ProfileImage = "https://cdn.test/profiles/old.jpg"
	assets.uploadErr = ErrAssetUploadFailed

	_, err := svc.UpdateCard(context.Background(), card.ID, 1,
		CardPatch{Name: strPtr("Yeni İsim")},
		PendingImages{Profile: &PendingUpload{Filename: "new.jpg", Content: strings.NewReader("img")}})

	assert.ErrorIs(t, err, ErrAssetUploadFailed)
	assert.Equal(t, "ahmet", repo.cards[card.ID].Name)
	assert.Equal(t, "https://cdn.test/profiles/old.jpg", repo.cards[card.ID].ProfileImage)
	assert.Empty(t, assets.cleanups)
}

func TestUpdateCardEmptyPatchSkipsWrite(t *testing.T) {
	svc, repo, _ := newTestCardService()
	card := seedCard(repo, 1, "ahmet")

	view, err := svc.UpdateCard(context.Background(), card.ID, 1, CardPatch{}, PendingImages{})
	require.NoError(t, err)
	assert.Equal(t, "ahmet", view.UsernameSlug)
}

func TestGetCardBySlugHidesPrivateCards(t *testing.T) {
	svc, repo, _ := newTestCardService()
	card := seedCard(repo, 1, "ahmet")
	repo.cards[card.ID].IsPrivate = true

	_, err := svc.GetCardBySlug(context.Background(), "ahmet")
	// Gizli kart ile olmayan kart ayırt edilemez.
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestGetCardBySlugUnknown(t *testing.T) {
	svc, _, _ := newTestCardService()
	_, err := svc.GetCardBySlug(context.Background(), "yok")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestDeleteCardOwnershipAndCleanup(t *testing.T) {
	svc, repo, assets := newTestCardService()
	card := seedCard(repo, 1, "ahmet")
	repo.cards[card.ID].ProfileImage = "https://cdn.test/profiles/a.jpg"

	assert.ErrorIs(t, svc.DeleteCard(context.Background(), card.ID, 99), ErrCardForbidden)

	require.NoError(t, svc.DeleteCard(context.Background(), card.ID, 1))
	assert.Empty(t, repo.cards)
	assert.Contains(t, assets.cleanups, [2]string{"https://cdn.test/profiles/a.jpg", ""})
}

func TestGetCardByIDForbiddenForOtherUsers(t *testing.T) {
	svc, repo, _ := newTestCardService()
	card := seedCard(repo, 1, "ahmet")

	_, err := svc.GetCardByID(context.Background(), card.ID, 2)
	assert.ErrorIs(t, err, ErrCardForbidden)
}
