package models

import (
	"database/sql/driver"
	"encoding/json"

	"uracard.link/models/helpers"
)

// ThemeSettings kartın görsel temasını taşıyan değer nesnesidir (jsonb).
// Eski şema sürümlerinden gelen eksik alanlar MergedTheme ile varsayılanlara
// tamamlanır; sayısal ve bool alanlar "hiç verilmedi" ile "açıkça sıfır/false"
// ayrımı için pointer tutar.
type ThemeSettings struct {
	PrimaryColor    string `json:"primaryColor,omitempty"`
	GradientFrom    string `json:"gradientFrom,omitempty"`
	GradientTo      string `json:"gradientTo,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`      // Inter | Outfit
	Style           string `json:"style,omitempty"`           // glass | solid | minimal
	ButtonStyle     string `json:"buttonStyle,omitempty"`     // rounded | pill | square
	QRStyle         string `json:"qrStyle,omitempty"`         // dots | squares | rounded
	QRColor         string `json:"qrColor,omitempty"`
	QRLogoEnabled   *bool  `json:"qrLogoEnabled,omitempty"`
	BorderRadius    *int   `json:"borderRadius,omitempty"`
	Alignment       string `json:"alignment,omitempty"`       // center | left
	Spacing         string `json:"spacing,omitempty"`         // compact | relaxed
	GlassIntensity  *int   `json:"glassIntensity,omitempty"`  // 0-100
	ShadowDepth     *int   `json:"shadowDepth,omitempty"`     // 0-100
	BackgroundType  string `json:"backgroundType,omitempty"`  // gradient | image | solid
	BackgroundImage string `json:"backgroundImage,omitempty"`
	BentoDensity    string `json:"bentoDensity,omitempty"`    // low | high
}

func (t ThemeSettings) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *ThemeSettings) Scan(value interface{}) error {
	if value == nil {
		*t = ThemeSettings{}
		return nil
	}
	b, err := helpers.JSONBBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, t)
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

// DefaultTheme kurumsal varsayılan tema (altın/zümrüt/lacivert/krem paleti).
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		PrimaryColor:   "#020617",
		GradientFrom:   "#ffffff",
		GradientTo:     "#fdfcf0",
		FontFamily:     "Outfit",
		Style:          "glass",
		ButtonStyle:    "pill",
		QRStyle:        "rounded",
		QRColor:        "#020617",
		QRLogoEnabled:  boolPtr(true),
		BorderRadius:   intPtr(40),
		Alignment:      "center",
		Spacing:        "relaxed",
		GlassIntensity: intPtr(40),
		ShadowDepth:    intPtr(20),
		BackgroundType: "gradient",
		BentoDensity:   "high",
	}
}

// MergedTheme kısmi bir temayı varsayılanların üzerine bindirir.
// Dönen tema her zaman eksiksizdir; pointer alanlar nil olmaz.
func MergedTheme(t ThemeSettings) ThemeSettings {
	def := DefaultTheme()

	pick := func(v, fallback string) string {
		if v != "" {
			return v
		}
		return fallback
	}

	merged := ThemeSettings{
		PrimaryColor:    pick(t.PrimaryColor, def.PrimaryColor),
		GradientFrom:    pick(t.GradientFrom, def.GradientFrom),
		GradientTo:      pick(t.GradientTo, def.GradientTo),
		FontFamily:      pick(t.FontFamily, def.FontFamily),
		Style:           pick(t.Style, def.Style),
		ButtonStyle:     pick(t.ButtonStyle, def.ButtonStyle),
		QRStyle:         pick(t.QRStyle, def.QRStyle),
		QRColor:         pick(t.QRColor, def.QRColor),
		Alignment:       pick(t.Alignment, def.Alignment),
		Spacing:         pick(t.Spacing, def.Spacing),
		BackgroundType:  pick(t.BackgroundType, def.BackgroundType),
		BackgroundImage: t.BackgroundImage, // Varsayılanı yok
		BentoDensity:    pick(t.BentoDensity, def.BentoDensity),
		QRLogoEnabled:   t.QRLogoEnabled,
		BorderRadius:    t.BorderRadius,
		GlassIntensity:  t.GlassIntensity,
		ShadowDepth:     t.ShadowDepth,
	}
	if merged.QRLogoEnabled == nil {
		merged.QRLogoEnabled = def.QRLogoEnabled
	}
	if merged.BorderRadius == nil {
		merged.BorderRadius = def.BorderRadius
	}
	if merged.GlassIntensity == nil {
		merged.GlassIntensity = def.GlassIntensity
	}
	if merged.ShadowDepth == nil {
		merged.ShadowDepth = def.ShadowDepth
	}
	return merged
}
