package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"uracard.link/configs/configslog"
	"uracard.link/models"
	"uracard.link/models/helpers"
	"uracard.link/repositories"
)

// CardStats okunan tarafta üretilen özet istatistikler.
type CardStats struct {
	Views      int64                `json:"views"`
	Clicks     int64                `json:"clicks"`
	History    []CardAnalyticsPoint `json:"history"`
	LinkClicks map[string]int64     `json:"linkClicks"`
}

// IAnalyticsService etkileşim olaylarını kaydeder ve özetler.
//
// TrackEvent en-fazla-bir-kez, elden-geldiğince (best effort) çalışır:
// hata döndürmez, yeniden denemez, tamponlamaz. Public kart görüntüleme
// ve tıklama akışı analitik yazımının sonucundan asla etkilenmez.
type IAnalyticsService interface {
	TrackEvent(ctx context.Context, cardID uint, eventType models.EventType, metadata helpers.JSONBMap)
	GetCardEvents(ctx context.Context, cardID uint) []models.AnalyticsEvent
	GetCardStats(ctx context.Context, cardID uint) CardStats
}

// AnalyticsService IAnalyticsService arayüzünü uygular.
type AnalyticsService struct {
	repo     repositories.IAnalyticsRepository
	cardRepo repositories.ICardRepository
}

// NewAnalyticsService yeni bir AnalyticsService örneği oluşturur.
func NewAnalyticsService(repo repositories.IAnalyticsRepository, cardRepo repositories.ICardRepository) IAnalyticsService {
	return &AnalyticsService{repo: repo, cardRepo: cardRepo}
}

// TrackEvent olayı ekler ve ilgili kart sayacını artırır. Her hata
// loglanır ve yutulur; çağırana asla taşmaz.
func (s *AnalyticsService) TrackEvent(ctx context.Context, cardID uint, eventType models.EventType, metadata helpers.JSONBMap) {
	if cardID == 0 || !models.ValidEventType(eventType) {
		configslog.Log.Warn("Geçersiz analitik olay, atlanıyor",
			zap.Uint("cardID", cardID), zap.String("type", string(eventType)))
		return
	}
	if metadata == nil {
		metadata = helpers.JSONBMap{}
	}

	event := &models.AnalyticsEvent{
		CardID:    cardID,
		EventType: eventType,
		Metadata:  metadata,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		configslog.Log.Warn("Analitik olay yazılamadı",
			zap.Uint("cardID", cardID), zap.String("type", string(eventType)), zap.Error(err))
		// Yeniden deneme yok; kaybedilen olay kabul edilir.
		return
	}

	if column := counterColumn(eventType, metadata); column != "" {
		if err := s.cardRepo.IncrementCounter(ctx, cardID, column); err != nil {
			configslog.Log.Warn("Kart sayacı artırılamadı",
				zap.Uint("cardID", cardID), zap.String("column", column), zap.Error(err))
		}
	}
}

// counterColumn olay türünü kart sayaç kolonuna eşler. QR kaynaklı
// görüntülemeler scans sayacına yazılır.
func counterColumn(eventType models.EventType, metadata helpers.JSONBMap) string {
	switch eventType {
	case models.EventView:
		if src, ok := metadata["source"].(string); ok && src == "qr" {
			return "scans"
		}
		return "views"
	case models.EventClick:
		return "clicks"
	default:
		return ""
	}
}

// GetCardEvents kartın olaylarını döndürür. Okuma hataları sessizce boş
// listeye iner; kullanıcıya hiçbir zaman hata gösterilmez.
func (s *AnalyticsService) GetCardEvents(ctx context.Context, cardID uint) []models.AnalyticsEvent {
	events, err := s.repo.FindByCardID(ctx, cardID)
	if err != nil {
		configslog.Log.Warn("Analitik olaylar okunamadı", zap.Uint("cardID", cardID), zap.Error(err))
		return []models.AnalyticsEvent{}
	}
	return events
}

// GetCardStats olaylardan toplam ve son 7 günlük özet üretir. Hata
// durumunda sıfır değerlere iner.
func (s *AnalyticsService) GetCardStats(ctx context.Context, cardID uint) CardStats {
	stats := CardStats{
		History:    []CardAnalyticsPoint{},
		LinkClicks: map[string]int64{},
	}

	events, err := s.repo.FindByCardID(ctx, cardID)
	if err != nil {
		configslog.Log.Warn("Kart istatistikleri okunamadı", zap.Uint("cardID", cardID), zap.Error(err))
		return stats
	}

	// Son 7 gün için gün bazlı kovalar.
	now := time.Now()
	cutoff := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)
	buckets := map[string]*CardAnalyticsPoint{}
	for i := 0; i < 7; i++ {
		day := cutoff.AddDate(0, 0, i).Format("2006-01-02")
		point := &CardAnalyticsPoint{Date: day}
		buckets[day] = point
		stats.History = append(stats.History, *point)
	}

	for _, e := range events {
		switch e.EventType {
		case models.EventView:
			stats.Views++
		case models.EventClick:
			stats.Clicks++
			if label, ok := e.Metadata["label"].(string); ok && label != "" {
				stats.LinkClicks[label]++
			}
		}

		if e.CreatedAt.Before(cutoff) {
			continue
		}
		day := e.CreatedAt.Format("2006-01-02")
		point, ok := buckets[day]
		if !ok {
			continue
		}
		switch e.EventType {
		case models.EventView:
			if src, isStr := e.Metadata["source"].(string); isStr && src == "qr" {
				point.Scans++
			} else {
				point.Views++
			}
		case models.EventClick:
			point.Clicks++
		}
	}

	// Kovalardaki güncel değerleri history'e geri yaz.
	for i := range stats.History {
		if point, ok := buckets[stats.History[i].Date]; ok {
			stats.History[i] = *point
		}
	}

	return stats
}

var _ IAnalyticsService = (*AnalyticsService)(nil)
