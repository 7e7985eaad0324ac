package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mappin-app/mappin/pkg/domain"
)

func testConflict(link string, published time.Time) *domain.Conflict {
	return &domain.Conflict{
		Title:        "Clashes reported in Khartoum",
		Description:  "Fighting broke out",
		SourceURL:    link,
		URLKey:       link,
		PublishedAt:  published,
		Latitude:     15.5,
		Longitude:    32.56,
		LocationName: "Khartoum, Sudan",
		Category:     domain.CategoryArmedConflict,
		Severity:     3,
	}
}

func TestConflictRepository_CreateGetExists(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	published := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	c := testConflict("http://ex.com/a", published)
	require.NoError(t, repos.Conflict.Create(ctx, c))
	assert.NotZero(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := repos.Conflict.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clashes reported in Khartoum", got.Title)
	assert.Equal(t, "http://ex.com/a", got.SourceURL)
	assert.Equal(t, domain.CategoryArmedConflict, got.Category)
	assert.Equal(t, 3, got.Severity)
	assert.InDelta(t, 15.5, got.Latitude, 0.0001)
	assert.True(t, published.Equal(got.PublishedAt), "published %v", got.PublishedAt)
	assert.Nil(t, got.AIAnalysis)
	assert.Nil(t, got.Narrative)

	exists, err := repos.Conflict.Exists(ctx, "http://ex.com/a")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Conflict.Exists(ctx, "http://ex.com/other")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repos.Conflict.Get(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestConflictRepository_CreateDuplicate(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Conflict.Create(ctx, testConflict("http://ex.com/a", time.Now())))

	dup := testConflict("http://ex.com/a", time.Now())
	dup.Title = "changed"
	err := repos.Conflict.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Zero(t, dup.ID)

	n, err := repos.Conflict.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := repos.Conflict.List(ctx, domain.ConflictFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Clashes reported in Khartoum", list[0].Title)
}

func TestConflictRepository_CreateInvalid(t *testing.T) {
	repos := setupTestDB(t)
	c := testConflict("http://ex.com/bad", time.Now())
	c.Severity = 9
	err := repos.Conflict.Create(context.Background(), c)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicate))
}

func TestConflictRepository_List(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	old := testConflict("http://ex.com/old", now.Add(-72*time.Hour))
	require.NoError(t, repos.Conflict.Create(ctx, old))

	protest := testConflict("http://ex.com/protest", now.Add(-time.Hour))
	protest.Category = domain.CategoryProtest
	require.NoError(t, repos.Conflict.Create(ctx, protest))

	recent := testConflict("http://ex.com/recent", now.Add(-2*time.Hour))
	require.NoError(t, repos.Conflict.Create(ctx, recent))

	t.Run("all newest published first", func(t *testing.T) {
		list, err := repos.Conflict.List(ctx, domain.ConflictFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, protest.ID, list[0].ID)
		assert.Equal(t, recent.ID, list[1].ID)
		assert.Equal(t, old.ID, list[2].ID)
	})

	t.Run("since published", func(t *testing.T) {
		list, err := repos.Conflict.List(ctx, domain.ConflictFilter{Since: now.Add(-24 * time.Hour)})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("since created includes old article", func(t *testing.T) {
		list, err := repos.Conflict.List(ctx, domain.ConflictFilter{Since: now.Add(-24 * time.Hour), Field: domain.TimeCreated})
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("category", func(t *testing.T) {
		list, err := repos.Conflict.List(ctx, domain.ConflictFilter{Category: domain.CategoryProtest})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, protest.ID, list[0].ID)
	})

	t.Run("after id ascending", func(t *testing.T) {
		list, err := repos.Conflict.List(ctx, domain.ConflictFilter{AfterID: old.ID})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, protest.ID, list[0].ID)
		assert.Equal(t, recent.ID, list[1].ID)
	})

	t.Run("limit", func(t *testing.T) {
		list, err := repos.Conflict.List(ctx, domain.ConflictFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestConflictRepository_SaveEnrichment(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	c := testConflict("http://ex.com/a", time.Now())
	require.NoError(t, repos.Conflict.Create(ctx, c))

	generated := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	analysis := &domain.AIAnalysis{Summary: "summary", Background: "bg", Implications: []string{"one", "two"},
		RiskLevel: "high", Model: "gemini-2.0-flash", GeneratedAt: generated}
	require.NoError(t, repos.Conflict.SaveEnrichment(ctx, c.ID, domain.NewAnalysisEnrichment(analysis)))

	narrative := &domain.Narrative{Narrative: "two sources agree", Model: "gemini-2.0-flash", GeneratedAt: generated,
		RelatedReports: []domain.RelatedReport{{ID: 42, Title: "other", DistanceKm: 1.5}}}
	require.NoError(t, repos.Conflict.SaveEnrichment(ctx, c.ID, domain.NewNarrativeEnrichment(narrative)))

	got, err := repos.Conflict.Get(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AIAnalysis)
	assert.Equal(t, "summary", got.AIAnalysis.Summary)
	assert.Equal(t, []string{"one", "two"}, got.AIAnalysis.Implications)
	assert.True(t, generated.Equal(got.AIAnalysis.GeneratedAt))
	require.NotNil(t, got.Narrative)
	assert.Equal(t, "two sources agree", got.Narrative.Narrative)
	require.Len(t, got.Narrative.RelatedReports, 1)
	assert.Equal(t, int64(42), got.Narrative.RelatedReports[0].ID)

	err = repos.Conflict.SaveEnrichment(ctx, 9999, domain.NewAnalysisEnrichment(analysis))
	assert.True(t, errors.Is(err, ErrNotFound))

	err = repos.Conflict.SaveEnrichment(ctx, c.ID, domain.Enrichment{Kind: "sentiment"})
	assert.True(t, errors.Is(err, domain.ErrUnknownEnrichment))
}

func TestConflictRepository_BrokenEnrichmentIgnored(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	c := testConflict("http://ex.com/a", time.Now())
	require.NoError(t, repos.Conflict.Create(ctx, c))
	_, err := repos.DB.ExecContext(ctx, "UPDATE conflicts SET ai_analysis = ? WHERE id = ?", `{"kind":"mystery","data":{}}`, c.ID)
	require.NoError(t, err)

	got, err := repos.Conflict.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AIAnalysis)
}

func TestConflictRepository_Related(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	base := testConflict("http://ex.com/base", now)
	require.NoError(t, repos.Conflict.Create(ctx, base))

	near := testConflict("http://ex.com/near", now.Add(-time.Hour))
	near.Latitude, near.Longitude = 15.6, 32.5 // omdurman side
	require.NoError(t, repos.Conflict.Create(ctx, near))

	far := testConflict("http://ex.com/far", now)
	far.Latitude, far.Longitude, far.LocationName = 33.89, 35.5, "Beirut, Lebanon"
	require.NoError(t, repos.Conflict.Create(ctx, far))

	stale := testConflict("http://ex.com/stale", now.Add(-30*24*time.Hour))
	require.NoError(t, repos.Conflict.Create(ctx, stale))

	related, err := repos.Conflict.Related(ctx, *base, 50, 72*time.Hour, 10)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, near.ID, related[0].ID)
	assert.Greater(t, related[0].DistanceKm, 0.0)
	assert.Less(t, related[0].DistanceKm, 50.0)

	global := *base
	global.LocationName = domain.GlobalEvent
	related, err = repos.Conflict.Related(ctx, global, 50, 72*time.Hour, 10)
	require.NoError(t, err)
	assert.Empty(t, related)
}

func TestConflictRepository_ListURLsAndDelete(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	a := testConflict("http://ex.com/a", time.Now())
	b := testConflict("http://ex.com/b", time.Now())
	require.NoError(t, repos.Conflict.Create(ctx, a))
	require.NoError(t, repos.Conflict.Create(ctx, b))

	urls, err := repos.Conflict.ListURLs(ctx)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "http://ex.com/a", urls[0].SourceURL)
	assert.False(t, urls[0].CreatedAt.IsZero())

	n, err := repos.Conflict.DeleteConflicts(ctx, []int64{a.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repos.Conflict.DeleteConflicts(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := repos.Conflict.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
