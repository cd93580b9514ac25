package models

// User kimlik sağlayıcıdan gelen hesabın uygulama tarafındaki izdüşümü.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(150);not null"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(100);not null"`

	// ShareCode QR ile arkadaş ekleme akışında paylaşılan benzersiz kod.
	ShareCode string `gorm:"type:varchar(36);uniqueIndex;not null"`

	AvatarURL string `gorm:"type:varchar(500)"`
	Role      string `gorm:"type:varchar(50);default:'user'"`
	IsSystem  bool   `gorm:"default:false"`
	IsActive  bool   `gorm:"default:true"`
}
