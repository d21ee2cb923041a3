package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipflow/flipflow/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close storage: %v", err)
		}
	})

	return store
}

func testRecord(title string, confidence float64) *model.LearningRecord {
	return &model.LearningRecord{
		Hash:         model.TitleHash(title),
		Title:        model.NormalizeTitle(title),
		CategoryID:   9355,
		CategoryName: "Cell Phones & Smartphones",
		Confidence:   confidence,
	}
}

func TestSQLiteStorage_LearningUpsert(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	rec := testRecord("iPhone 14 Pro 128GB", 85)
	require.NoError(t, store.SaveLearningRecord(ctx, rec))

	got, err := store.GetLearningRecord(ctx, rec.Hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.UseCount)
	assert.Equal(t, 1, got.SuccessCount)
	assert.Equal(t, 85.0, got.Confidence)

	// Second save of the same hash increments usage, nothing else.
	require.NoError(t, store.SaveLearningRecord(ctx, rec))

	got, err = store.GetLearningRecord(ctx, rec.Hash)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UseCount)
	assert.Equal(t, 85.0, got.Confidence)

	stats, err := store.GetLearningStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalRecords, "upsert must never create duplicate rows")
}

func TestSQLiteStorage_LearningConcurrentUpsert(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	rec := testRecord("Nintendo Switch OLED Console", 90)

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.SaveLearningRecord(ctx, testRecord("Nintendo Switch OLED Console", 90))
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := store.GetLearningRecord(ctx, rec.Hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, writers, got.UseCount)

	stats, err := store.GetLearningStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalRecords, "concurrent writers must not duplicate the row")
	assert.Equal(t, writers, stats.TotalUses)
}

func TestSQLiteStorage_GetLearningRecordMissing(t *testing.T) {
	store := createTestStorage(t)

	got, err := store.GetLearningRecord(context.Background(), model.TitleHash("never seen"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStorage_SearchLearningRecords(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// "vintage seiko diver" used 5 times at confidence 90 (rank 4.5)
	// should outrank "vintage seiko box" used once at 95 (rank 0.95).
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveLearningRecord(ctx, testRecord("Vintage Seiko Diver", 90)))
	}
	require.NoError(t, store.SaveLearningRecord(ctx, testRecord("Vintage Seiko Box", 95)))

	results, err := store.SearchLearningRecords(ctx, "vintage seiko", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "vintage seiko diver", results[0].Title)
	assert.Equal(t, 5, results[0].UseCount)

	// The SQL ordering matches the in-memory ranking formula.
	assert.InDelta(t, 4.5, results[0].Rank(), 0.001)
	assert.InDelta(t, 0.95, results[1].Rank(), 0.001)
	assert.Greater(t, results[0].Rank(), results[1].Rank())

	t.Run("bounded", func(t *testing.T) {
		results, err := store.SearchLearningRecords(ctx, "vintage seiko", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("no match", func(t *testing.T) {
		results, err := store.SearchLearningRecords(ctx, "commodore 64", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSQLiteStorage_SaveLearningRecordValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		rec  *model.LearningRecord
		name string
	}{
		{name: "nil record", rec: nil},
		{name: "missing hash", rec: &model.LearningRecord{Title: "x", CategoryID: 1}},
		{name: "missing title", rec: &model.LearningRecord{Hash: "abc", CategoryID: 1}},
		{name: "missing category", rec: &model.LearningRecord{Hash: "abc", Title: "x"}},
		{name: "confidence out of range", rec: &model.LearningRecord{Hash: "abc", Title: "x", CategoryID: 1, Confidence: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.SaveLearningRecord(ctx, tt.rec))
		})
	}
}

func TestSQLiteStorage_GetTopLearningRecords(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveLearningRecord(ctx, testRecord("Popular Item", 80)))
	}
	require.NoError(t, store.SaveLearningRecord(ctx, testRecord("Rare Item", 80)))

	records, err := store.GetTopLearningRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "popular item", records[0].Title)
}
