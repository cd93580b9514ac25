package models

import (
	"time"

	"uracard.link/models/helpers"
)

// EventType analitik olay türleri.
type EventType string

const (
	EventView  EventType = "view"
	EventClick EventType = "click"
	EventSave  EventType = "save"
)

// ValidEventType değerin bilinen olay türlerinden olup olmadığını döndürür.
func ValidEventType(v EventType) bool {
	return v == EventView || v == EventClick || v == EventSave
}

// AnalyticsEvent append-only etkileşim kaydı. Uygulama tarafından asla
// güncellenmez veya silinmez; saklama/özetleme backend'in işidir.
type AnalyticsEvent struct {
	ID        uint             `gorm:"primarykey"`
	CardID    uint             `gorm:"index;not null"`
	EventType EventType        `gorm:"type:varchar(20);index;not null"`
	Metadata  helpers.JSONBMap `gorm:"type:jsonb"`
	CreatedAt time.Time        `gorm:"index"`
}
