package models

// PrimaryCTA kartın ana aksiyon butonunu belirleyen kapalı küme.
type PrimaryCTA string

const (
	CTASaveContact      PrimaryCTA = "save_contact"
	CTAVisitWebsite     PrimaryCTA = "visit_website"
	CTABookCall         PrimaryCTA = "book_call"
	CTAViewPortfolio    PrimaryCTA = "view_portfolio"
	CTADownloadBrochure PrimaryCTA = "download_brochure"
)

// ValidPrimaryCTA değerin kapalı kümede olup olmadığını kontrol eder.
func ValidPrimaryCTA(v PrimaryCTA) bool {
	switch v {
	case CTASaveContact, CTAVisitWebsite, CTABookCall, CTAViewPortfolio, CTADownloadBrochure:
		return true
	}
	return false
}

// CardSchemaVersion kalıcı kayıt şeklinin sürümü. Şema v2: skaler alanlar
// düz kolon, tema/özel alanlar/sosyal linkler jsonb, slug kolonu
// username_slug. Şekli yalnızca mapper ve migrasyon bilir.
const CardSchemaVersion = 2

// Card dijital kartvizitin ana kaydıdır.
type Card struct {
	BaseModel
	UserID       uint   `gorm:"index;not null"`
	UsernameSlug string `gorm:"type:varchar(120);uniqueIndex;not null"`

	// Kimlik ve iletişim alanları
	Name           string `gorm:"type:varchar(150)"`
	Role           string `gorm:"type:varchar(150)"`
	Company        string `gorm:"type:varchar(150)"`
	Phone          string `gorm:"type:varchar(30)"`
	IsPhonePrivate bool   `gorm:"default:true"`
	Email          string `gorm:"type:varchar(150)"`
	IsEmailPrivate bool   `gorm:"default:true"`
	Website        string `gorm:"type:varchar(255)"`
	Address        string `gorm:"type:text"`
	Bio            string `gorm:"type:text"`

	// Görseller (her zaman kalıcı URL; geçici blob referansı asla yazılmaz)
	ProfileImage string `gorm:"type:varchar(500)"`
	BrandLogo    string `gorm:"type:varchar(500)"`

	PrimaryCTA PrimaryCTA `gorm:"type:varchar(30);default:'save_contact'"`
	IsPrivate  bool       `gorm:"default:false;index"`

	// Yapılı içerik (jsonb)
	Theme        ThemeSettings   `gorm:"type:jsonb"`
	CustomFields CustomFieldList `gorm:"type:jsonb"`
	SocialLinks  SocialLinks     `gorm:"type:jsonb"`

	// İstatistik sayaçları: yalnızca analitik servis artırır,
	// istemci yazmalarında asla kabul edilmez.
	Views     int64 `gorm:"default:0"`
	Clicks    int64 `gorm:"default:0"`
	Scans     int64 `gorm:"default:0"`
	Followers int64 `gorm:"default:0"`
	Mutuals   int64 `gorm:"default:0"`

	SchemaVersion int `gorm:"default:2"`
}
