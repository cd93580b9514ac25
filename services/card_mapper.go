package services

import (
	"time"

	"uracard.link/models"
)

// CardAnalyticsPoint günlük özet noktası (grafikler için).
type CardAnalyticsPoint struct {
	Date   string `json:"date"`
	Views  int64  `json:"views"`
	Clicks int64  `json:"clicks"`
	Scans  int64  `json:"scans"`
}

// CardView UI'nin kullandığı eksiksiz kart görünümüdür. Her alan
// doldurulmuş gelir; UI "alan yok mu?" diye dallanmak zorunda kalmaz.
// İstatistik alanları salt okunurdur.
type CardView struct {
	ID             uint                 `json:"id"`
	UserID         uint                 `json:"userId"`
	UsernameSlug   string               `json:"usernameSlug"`
	Name           string               `json:"name"`
	Role           string               `json:"role"`
	Company        string               `json:"company"`
	Phone          string               `json:"phone"`
	IsPhonePrivate bool                 `json:"isPhonePrivate"`
	Email          string               `json:"email"`
	IsEmailPrivate bool                 `json:"isEmailPrivate"`
	Website        string               `json:"website"`
	Address        string               `json:"address"`
	Bio            string               `json:"bio"`
	ProfileImage   string               `json:"profileImage"`
	BrandLogo      string               `json:"brandLogo"`
	PrimaryCTA     models.PrimaryCTA    `json:"primaryCTA"`
	CustomFields   []models.CustomField `json:"customFields"`
	SocialLinks    models.SocialLinks   `json:"socialLinks"`
	Theme          models.ThemeSettings `json:"theme"`
	IsPrivate      bool                 `json:"isPrivate"`

	// Salt okunur istatistikler; yalnızca analitik servis tarafından değişir.
	Views     int64 `json:"views"`
	Clicks    int64 `json:"clicks"`
	Scans     int64 `json:"scans"`
	Followers int64 `json:"followers"`
	Mutuals   int64 `json:"mutuals"`

	// Türetilen alanlar; kalıcı kayıtta yoktur, görünümde hep bulunur.
	LinkedinVelocity float64              `json:"linkedinVelocity"`
	RetentionRate    float64              `json:"retentionRate"`
	AnalyticsHistory []CardAnalyticsPoint `json:"analyticsHistory"`
	LinkAnalytics    map[string]int64     `json:"linkAnalytics"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCardView kalıcı kaydı eksiksiz görünüme çevirir. Eski şema
// sürümlerinden gelen eksik/boş alanlar burada varsayılanlara tamamlanır.
func ToCardView(card *models.Card) CardView {
	primaryCTA := card.PrimaryCTA
	if !models.ValidPrimaryCTA(primaryCTA) {
		primaryCTA = models.CTASaveContact
	}

	customFields := []models.CustomField(card.CustomFields)
	if customFields == nil {
		customFields = []models.CustomField{}
	}

	socialLinks := card.SocialLinks
	if socialLinks.Custom == nil {
		socialLinks.Custom = []models.CustomLink{}
	}

	return CardView{
		ID:             card.ID,
		UserID:         card.UserID,
		UsernameSlug:   card.UsernameSlug,
		Name:           card.Name,
		Role:           card.Role,
		Company:        card.Company,
		Phone:          card.Phone,
		IsPhonePrivate: card.IsPhonePrivate,
		Email:          card.Email,
		IsEmailPrivate: card.IsEmailPrivate,
		Website:        card.Website,
		Address:        card.Address,
		Bio:            card.Bio,
		ProfileImage:   card.ProfileImage,
		BrandLogo:      card.BrandLogo,
		PrimaryCTA:     primaryCTA,
		CustomFields:   customFields,
		SocialLinks:    socialLinks,
		Theme:          models.MergedTheme(card.Theme),
		IsPrivate:      card.IsPrivate,

		Views:     card.Views,
		Clicks:    card.Clicks,
		Scans:     card.Scans,
		Followers: card.Followers,
		Mutuals:   card.Mutuals,

		LinkedinVelocity: 0,
		RetentionRate:    0,
		AnalyticsHistory: []CardAnalyticsPoint{},
		LinkAnalytics:    map[string]int64{},

		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

// CardPatch seyrek güncelleme yüküdür. nil alan "verilmedi" demektir ve
// kalıcı güncellemeye hiç girmez; açıkça sıfır değer verilen alan
// ("" / false) aynen iletilir. İstatistik alanları bu tipte bilerek yoktur.
type CardPatch struct {
	UsernameSlug   *string                 `json:"usernameSlug"`
	Name           *string                 `json:"name"`
	Role           *string                 `json:"role"`
	Company        *string                 `json:"company"`
	Phone          *string                 `json:"phone"`
	IsPhonePrivate *bool                   `json:"isPhonePrivate"`
	Email          *string                 `json:"email"`
	IsEmailPrivate *bool                   `json:"isEmailPrivate"`
	Website        *string                 `json:"website"`
	Address        *string                 `json:"address"`
	Bio            *string                 `json:"bio"`
	ProfileImage   *string                 `json:"profileImage"`
	BrandLogo      *string                 `json:"brandLogo"`
	PrimaryCTA     *models.PrimaryCTA      `json:"primaryCTA"`
	IsPrivate      *bool                   `json:"isPrivate"`
	Theme          *models.ThemeSettings   `json:"theme"`
	CustomFields   *models.CustomFieldList `json:"customFields"`
	SocialLinks    *models.SocialLinks     `json:"socialLinks"`
}

// ToRowUpdates patch'i kolon->değer haritasına çevirir. Yalnızca verilen
// alanlar girer; böylece bir güncelleme ilgisiz kolonları ezmez.
func (p CardPatch) ToRowUpdates() map[string]interface{} {
	updates := map[string]interface{}{}

	setStr := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setBool := func(col string, v *bool) {
		if v != nil {
			updates[col] = *v
		}
	}

	setStr("username_slug", p.UsernameSlug)
	setStr("name", p.Name)
	setStr("role", p.Role)
	setStr("company", p.Company)
	setStr("phone", p.Phone)
	setBool("is_phone_private", p.IsPhonePrivate)
	setStr("email", p.Email)
	setBool("is_email_private", p.IsEmailPrivate)
	setStr("website", p.Website)
	setStr("address", p.Address)
	setStr("bio", p.Bio)
	setStr("profile_image", p.ProfileImage)
	setStr("brand_logo", p.BrandLogo)
	setBool("is_private", p.IsPrivate)

	if p.PrimaryCTA != nil {
		updates["primary_cta"] = *p.PrimaryCTA
	}
	if p.Theme != nil {
		updates["theme"] = *p.Theme
	}
	if p.CustomFields != nil {
		updates["custom_fields"] = *p.CustomFields
	}
	if p.SocialLinks != nil {
		updates["social_links"] = *p.SocialLinks
	}

	return updates
}

// ApplyToCard patch'i yeni bir kart kaydına uygular (oluşturma akışı).
func (p CardPatch) ApplyToCard(card *models.Card) {
	if p.UsernameSlug != nil {
		card.UsernameSlug = *p.UsernameSlug
	}
	if p.Name != nil {
		card.Name = *p.Name
	}
	if p.Role != nil {
		card.Role = *p.Role
	}
	if p.Company != nil {
		card.Company = *p.Company
	}
	if p.Phone != nil {
		card.Phone = *p.Phone
	}
	if p.IsPhonePrivate != nil {
		card.IsPhonePrivate = *p.IsPhonePrivate
	}
	if p.Email != nil {
		card.Email = *p.Email
	}
	if p.IsEmailPrivate != nil {
		card.IsEmailPrivate = *p.IsEmailPrivate
	}
	if p.Website != nil {
		card.Website = *p.Website
	}
	if p.Address != nil {
		card.Address = *p.Address
	}
	if p.Bio != nil {
		card.Bio = *p.Bio
	}
	if p.ProfileImage != nil {
		card.ProfileImage = *p.ProfileImage
	}
	if p.BrandLogo != nil {
		card.BrandLogo = *p.BrandLogo
	}
	if p.PrimaryCTA != nil {
		card.PrimaryCTA = *p.PrimaryCTA
	}
	if p.IsPrivate != nil {
		card.IsPrivate = *p.IsPrivate
	}
	if p.Theme != nil {
		card.Theme = *p.Theme
	}
	if p.CustomFields != nil {
		card.CustomFields = *p.CustomFields
	}
	if p.SocialLinks != nil {
		card.SocialLinks = *p.SocialLinks
	}
}

// PatchFromView görünümdeki düzenlenebilir alanların tamamını patch'e
// çevirir. Editör "tümünü kaydet" akışında kullanılır.
func PatchFromView(v CardView) CardPatch {
	slug := v.UsernameSlug
	name := v.Name
	role := v.Role
	company := v.Company
	phone := v.Phone
	phonePriv := v.IsPhonePrivate
	email := v.Email
	emailPriv := v.IsEmailPrivate
	website := v.Website
	address := v.Address
	bio := v.Bio
	profileImage := v.ProfileImage
	brandLogo := v.BrandLogo
	cta := v.PrimaryCTA
	isPrivate := v.IsPrivate
	theme := v.Theme
	customFields := models.CustomFieldList(v.CustomFields)
	socialLinks := v.SocialLinks

	return CardPatch{
		UsernameSlug:   &slug,
		Name:           &name,
		Role:           &role,
		Company:        &company,
		Phone:          &phone,
		IsPhonePrivate: &phonePriv,
		Email:          &email,
		IsEmailPrivate: &emailPriv,
		Website:        &website,
		Address:        &address,
		Bio:            &bio,
		ProfileImage:   &profileImage,
		BrandLogo:      &brandLogo,
		PrimaryCTA:     &cta,
		IsPrivate:      &isPrivate,
		Theme:          &theme,
		CustomFields:   &customFields,
		SocialLinks:    &socialLinks,
	}
}
