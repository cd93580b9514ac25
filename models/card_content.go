package models

import (
	"database/sql/driver"
	"encoding/json"

	"uracard.link/models/helpers"
)

// CustomField kart üzerindeki serbest anahtar/değer alanı.
type CustomField struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CustomFieldList jsonb olarak saklanır.
type CustomFieldList []CustomField

func (l CustomFieldList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *CustomFieldList) Scan(value interface{}) error {
	if value == nil {
		*l = CustomFieldList{}
		return nil
	}
	b, err := helpers.JSONBBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, l)
}

// CustomLink kullanıcı tanımlı sosyal/harici link.
type CustomLink struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	URL       string `json:"url"`
	Icon      string `json:"icon,omitempty"`
	IsPrivate bool   `json:"isPrivate"`
	Clicks    int64  `json:"clicks"`
}

// SocialLinks bilinen platform linkleri + serbest custom listesi (jsonb).
type SocialLinks struct {
	LinkedIn  string       `json:"linkedin,omitempty"`
	GitHub    string       `json:"github,omitempty"`
	Twitter   string       `json:"twitter,omitempty"`
	Instagram string       `json:"instagram,omitempty"`
	TikTok    string       `json:"tiktok,omitempty"`
	YouTube   string       `json:"youtube,omitempty"`
	WhatsApp  string       `json:"whatsapp,omitempty"`
	Custom    []CustomLink `json:"custom"`
}

func (s SocialLinks) Value() (driver.Value, error) {
	if s.Custom == nil {
		s.Custom = []CustomLink{}
	}
	return json.Marshal(s)
}

func (s *SocialLinks) Scan(value interface{}) error {
	if value == nil {
		*s = SocialLinks{Custom: []CustomLink{}}
		return nil
	}
	b, err := helpers.JSONBBytes(value)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, s); err != nil {
		return err
	}
	if s.Custom == nil {
		s.Custom = []CustomLink{}
	}
	return nil
}
