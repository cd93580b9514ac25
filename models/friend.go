package models

// Friend yönlü arkadaşlık kaydı (user -> friend). Sıralı çift başına tekdir,
// kendini eklemek servis katmanında reddedilir.
type Friend struct {
	BaseModel
	UserID   uint `gorm:"not null;index;uniqueIndex:idx_friend_pair"`
	FriendID uint `gorm:"not null;index;uniqueIndex:idx_friend_pair"`

	FriendUser User `gorm:"foreignKey:FriendID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
