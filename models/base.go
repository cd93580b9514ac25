package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// model hook'larına taşır (CreatedBy/UpdatedBy alanları için).
const ContextUserIDKey contextKey = "user_id"

// ContextWithUserID context'e işlemi yapan kullanıcıyı ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür; yoksa 0.
func UserIDFromContext(ctx context.Context) uint {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(ContextUserIDKey).(uint); ok {
		return id
	}
	return 0
}

// BaseModel tüm kalıcı kayıtların ortak alanları.
type BaseModel struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedBy uint
	UpdatedBy uint
	DeletedBy uint
}

// BeforeCreate kaydı oluşturan kullanıcıyı context'ten alır.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		b.CreatedBy = userID
		b.UpdatedBy = userID
	}
	return nil
}

// BeforeUpdate son güncelleyen kullanıcıyı context'ten alır.
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		tx.Statement.SetColumn("updated_by", userID)
	}
	return nil
}
