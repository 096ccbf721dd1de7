package services

import (
	"context"
	"testing"
	"time"

	"github.com/moviegoers/moviegoers-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(titles ...string) *fakeCatalog {
	catalog := &fakeCatalog{}
	for i, title := range titles {
		catalog.movies = append(catalog.movies, &models.Movie{
			ID:         title,
			Title:      title,
			Screenshot: "https://example.com/" + title + ".jpg",
			Position:   i + 1,
		})
	}
	return catalog
}

func TestDailyMovieDeterministic(t *testing.T) {
	svc := NewGameService(testCatalog("Alien", "Brazil", "Casablanca"), time.UTC)
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	first, err := svc.DailyMovie(context.Background(), now)
	require.NoError(t, err)
	second, err := svc.DailyMovie(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Screenshot, second.Screenshot)
	assert.Equal(t, first.TimeInfo, second.TimeInfo)
}

func TestDailyMovieCyclesThroughCatalog(t *testing.T) {
	svc := NewGameService(testCatalog("Alien", "Brazil", "Casablanca"), time.UTC)

	seen := make(map[string]int)
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for day := 0; day < 3; day++ {
		daily, err := svc.DailyMovie(context.Background(), start.AddDate(0, 0, day))
		require.NoError(t, err)
		seen[daily.Title]++
	}

	// Three consecutive days visit each of the three movies exactly once.
	require.Len(t, seen, 3)
	for title, count := range seen {
		assert.Equal(t, 1, count, "movie %s selected %d times", title, count)
	}

	// The fourth day wraps around to the first day's movie.
	first, err := svc.DailyMovie(context.Background(), start)
	require.NoError(t, err)
	fourth, err := svc.DailyMovie(context.Background(), start.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, first.Title, fourth.Title)
}

func TestDailyMovieSameDayStable(t *testing.T) {
	svc := NewGameService(testCatalog("Alien", "Brazil"), time.UTC)

	morning := time.Date(2025, 6, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC)

	a, err := svc.DailyMovie(context.Background(), morning)
	require.NoError(t, err)
	b, err := svc.DailyMovie(context.Background(), night)
	require.NoError(t, err)
	assert.Equal(t, a.Title, b.Title)
}

func TestDailyMovieEmptyCatalog(t *testing.T) {
	svc := NewGameService(testCatalog(), time.UTC)

	_, err := svc.DailyMovie(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestDailyMovieTimeInfo(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	svc := NewGameService(testCatalog("Alien"), zone)

	// 23:30 local on June 10th; rotation is local midnight, not UTC midnight.
	now := time.Date(2025, 6, 10, 21, 30, 0, 0, time.UTC)
	daily, err := svc.DailyMovie(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-10", daily.TimeInfo.Date)
	assert.Equal(t, "UTC+2", daily.TimeInfo.Timezone)

	wantRotation := time.Date(2025, 6, 11, 0, 0, 0, 0, zone)
	assert.True(t, daily.TimeInfo.NextRotation.Equal(wantRotation),
		"next rotation %s, want %s", daily.TimeInfo.NextRotation, wantRotation)
	assert.Equal(t, 30*time.Minute, daily.TimeInfo.NextRotation.Sub(now))
}

func TestSameDay(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	svc := NewGameService(testCatalog("Alien"), zone)

	// 23:30 UTC June 10th is already June 11th in UTC+2.
	lateUTC := time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC)
	nextLocal := time.Date(2025, 6, 11, 8, 0, 0, 0, zone)
	assert.True(t, svc.SameDay(lateUTC, nextLocal))

	sameUTCDay := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	assert.False(t, svc.SameDay(lateUTC, sameUTCDay))
}
