package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uracard.link/models"
)

func TestToCardViewFillsDefaults(t *testing.T) {
	// Eski şemadan gelmiş gibi: tema, alanlar ve CTA boş.
	card := &models.Card{
		UserID:       7,
		UsernameSlug: "ahmet",
		Name:         "Ahmet",
	}

	view := ToCardView(card)

	assert.Equal(t, models.CTASaveContact, view.PrimaryCTA)
	assert.NotNil(t, view.CustomFields)
	assert.NotNil(t, view.SocialLinks.Custom)
	assert.NotNil(t, view.AnalyticsHistory)
	assert.NotNil(t, view.LinkAnalytics)

	// Tema eksiksiz tamamlanır.
	assert.Equal(t, "Outfit", view.Theme.FontFamily)
	require.NotNil(t, view.Theme.BorderRadius)
	assert.Equal(t, 40, *view.Theme.BorderRadius)
}

func TestToCardViewInvalidCTAFallsBack(t *testing.T) {
	card := &models.Card{PrimaryCTA: models.PrimaryCTA("send_fax")}
	view := ToCardView(card)
	assert.Equal(t, models.CTASaveContact, view.PrimaryCTA)
}

func TestToRowUpdatesOnlyGivenFields(t *testing.T) {
	name := "Yeni İsim"
	isPrivate := false

	patch := CardPatch{
		Name:      &name,
		IsPrivate: &isPrivate,
	}

	updates := patch.ToRowUpdates()

	assert.Len(t, updates, 2)
	assert.Equal(t, "Yeni İsim", updates["name"])
	// Açıkça verilen sıfır değer (false) aynen iletilir.
	assert.Equal(t, false, updates["is_private"])
	// Verilmeyen alanlar haritaya hiç girmez.
	assert.NotContains(t, updates, "email")
	assert.NotContains(t, updates, "theme")
}

func TestToRowUpdatesEmptyPatch(t *testing.T) {
	assert.Empty(t, CardPatch{}.ToRowUpdates())
}

func TestToRowUpdatesExplicitEmptyString(t *testing.T) {
	empty := ""
	patch := CardPatch{Bio: &empty}
	updates := patch.ToRowUpdates()
	assert.Equal(t, "", updates["bio"])
}

func TestPatchFromViewRoundTrip(t *testing.T) {
	original := models.Card{
		UserID:         3,
		UsernameSlug:   "zeynep",
		Name:           "Zeynep",
		Role:           "Tasarımcı",
		Company:        "Atölye",
		Phone:          "+90 555 111 2233",
		IsPhonePrivate: false,
		Email:          "zeynep@atolye.com",
		IsEmailPrivate: true,
		Website:        "https://atolye.com",
		Bio:            "Merhaba",
		PrimaryCTA:     models.CTAVisitWebsite,
		IsPrivate:      false,
		Theme:          models.DefaultTheme(),
		CustomFields:   models.CustomFieldList{{Key: "Konum", Value: "İzmir"}},
		SocialLinks:    models.SocialLinks{LinkedIn: "zeynep", Custom: []models.CustomLink{}},
	}

	view := ToCardView(&original)
	patch := PatchFromView(view)

	var restored models.Card
	patch.ApplyToCard(&restored)

	assert.Equal(t, original.UsernameSlug, restored.UsernameSlug)
	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.Role, restored.Role)
	assert.Equal(t, original.Phone, restored.Phone)
	assert.Equal(t, original.IsPhonePrivate, restored.IsPhonePrivate)
	assert.Equal(t, original.IsEmailPrivate, restored.IsEmailPrivate)
	assert.Equal(t, original.PrimaryCTA, restored.PrimaryCTA)
	assert.Equal(t, original.CustomFields, restored.CustomFields)
	assert.Equal(t, original.SocialLinks.LinkedIn, restored.SocialLinks.LinkedIn)
}

func TestApplyToCardNilFieldsLeaveCardUntouched(t *testing.T) {
	card := models.Card{Name: "Mevcut", Bio: "Eski bio", IsPrivate: true}
	newName := "Güncel"

	CardPatch{Name: &newName}.ApplyToCard(&card)

	assert.Equal(t, "Güncel", card.Name)
	assert.Equal(t, "Eski bio", card.Bio)
	assert.True(t, card.IsPrivate)
}
