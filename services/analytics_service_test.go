package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uracard.link/models"
	"uracard.link/models/helpers"
	"uracard.link/repositories"
)

// fakeAnalyticsRepo bellek içi IAnalyticsRepository.
type fakeAnalyticsRepo struct {
	insertErr error
	findErr   error
	events    []models.AnalyticsEvent
}

func (r *fakeAnalyticsRepo) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	event.ID = uint(len(r.events) + 1)
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeAnalyticsRepo) FindByCardID(ctx context.Context, cardID uint) ([]models.AnalyticsEvent, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []models.AnalyticsEvent
	for _, e := range r.events {
		if e.CardID == cardID {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repositories.IAnalyticsRepository = (*fakeAnalyticsRepo)(nil)

func newTestAnalyticsService() (IAnalyticsService, *fakeAnalyticsRepo, *fakeCardRepo) {
	repo := &fakeAnalyticsRepo{}
	cardRepo := newFakeCardRepo()
	return NewAnalyticsService(repo, cardRepo), repo, cardRepo
}

func TestTrackEventRecordsAndBumpsCounter(t *testing.T) {
	svc, repo, cardRepo := newTestAnalyticsService()

	svc.TrackEvent(context.Background(), 1, models.EventView, nil)
	svc.TrackEvent(context.Background(), 1, models.EventView, helpers.JSONBMap{"source": "qr"})
	svc.TrackEvent(context.Background(), 1, models.EventClick, helpers.JSONBMap{"label": "website"})
	svc.TrackEvent(context.Background(), 1, models.EventSave, nil)

	require.Len(t, repo.events, 4)
	// view->views, qr view->scans, click->clicks; save sayaç artırmaz.
	assert.Equal(t, []string{"views", "scans", "clicks"}, cardRepo.incremented)
}

func TestTrackEventInvalidInputIsSkipped(t *testing.T) {
	svc, repo, cardRepo := newTestAnalyticsService()

	svc.TrackEvent(context.Background(), 0, models.EventView, nil)
	svc.TrackEvent(context.Background(), 1, models.EventType("purchase"), nil)

	assert.Empty(t, repo.events)
	assert.Empty(t, cardRepo.incremented)
}

func TestTrackEventSwallowsInsertFailure(t *testing.T) {
	svc, repo, cardRepo := newTestAnalyticsService()
	repo.insertErr = errors.New("bağlantı koptu")

	// Hata dönmez, panic olmaz; olay kaybedilir ve sayaç artmaz.
	svc.TrackEvent(context.Background(), 1, models.EventView, nil)

	assert.Empty(t, repo.events)
	assert.Empty(t, cardRepo.incremented)
}

func TestGetCardEventsDegradesToEmpty(t *testing.T) {
	svc, repo, _ := newTestAnalyticsService()
	repo.findErr = errors.New("bağlantı koptu")

	events := svc.GetCardEvents(context.Background(), 1)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestGetCardStatsAggregates(t *testing.T) {
	svc, repo, _ := newTestAnalyticsService()
	now := time.Now()

	repo.events = []models.AnalyticsEvent{
		{CardID: 1, EventType: models.EventView, Metadata: helpers.JSONBMap{}, CreatedAt: now},
		{CardID: 1, EventType: models.EventView, Metadata: helpers.JSONBMap{"source": "qr"}, CreatedAt: now},
		{CardID: 1, EventType: models.EventClick, Metadata: helpers.JSONBMap{"label": "website"}, CreatedAt: now},
		{CardID: 1, EventType: models.EventClick, Metadata: helpers.JSONBMap{"label": "website"}, CreatedAt: now},
		{CardID: 1, EventType: models.EventClick, Metadata: helpers.JSONBMap{"label": "phone"}, CreatedAt: now},
		// Pencere dışı: toplamlara girer, güne girmez.
		{CardID: 1, EventType: models.EventView, Metadata: helpers.JSONBMap{}, CreatedAt: now.AddDate(0, 0, -30)},
		// Başka kart: hiç girmez.
		{CardID: 2, EventType: models.EventView, Metadata: helpers.JSONBMap{}, CreatedAt: now},
	}

	stats := svc.GetCardStats(context.Background(), 1)

	assert.Equal(t, int64(3), stats.Views)
	assert.Equal(t, int64(3), stats.Clicks)
	assert.Equal(t, int64(2), stats.LinkClicks["website"])
	assert.Equal(t, int64(1), stats.LinkClicks["phone"])

	require.Len(t, stats.History, 7)
	today := stats.History[len(stats.History)-1]
	assert.Equal(t, now.Format("2006-01-02"), today.Date)
	assert.Equal(t, int64(1), today.Views)
	assert.Equal(t, int64(1), today.Scans)
	assert.Equal(t, int64(3), today.Clicks)
}

func TestGetCardStatsDegradesToZeros(t *testing.T) {
	svc, repo, _ := newTestAnalyticsService()
	repo.findErr = errors.New("bağlantı koptu")

	stats := svc.GetCardStats(context.Background(), 1)

	assert.Zero(t, stats.Views)
	assert.Zero(t, stats.Clicks)
	assert.NotNil(t, stats.History)
	assert.NotNil(t, stats.LinkClicks)
}
