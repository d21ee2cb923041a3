package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipflow/flipflow/internal/common"
	"github.com/flipflow/flipflow/internal/fees"
	"github.com/flipflow/flipflow/internal/keyword"
	"github.com/flipflow/flipflow/internal/model"
	"github.com/flipflow/flipflow/internal/service"
	"github.com/flipflow/flipflow/internal/storage"
	"github.com/flipflow/flipflow/internal/taxonomy"
)

// newTestEngine wires a real in-memory storage, a loaded taxonomy
// snapshot and the default keyword set.
func newTestEngine(t *testing.T) (*Engine, *storage.SQLiteStorage, *taxonomy.Store) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close storage: %v", err)
		}
	})

	tier1, tier1Max, tier2 := 15.0, 5000.0, 9.0
	categories := []model.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 9355, Name: "Cell Phones & Smartphones", ParentID: 1, Level: 1},
		{ID: 177, Name: "PC Laptops & Netbooks", ParentID: 1, Level: 1},
		{ID: 281, Name: "Jewelry & Watches"},
		{ID: 220, Name: "Toys & Hobbies"},
		{ID: 99, Name: "Everything Else"},
	}
	// 9355 deliberately has no fee rule: it must fall back to the
	// standard flat rate.
	rules := []model.FeeRule{
		{CategoryID: 281, BasePercent: 15, Tier1Percent: &tier1, Tier1Max: &tier1Max, Tier2Percent: &tier2},
	}
	require.NoError(t, db.ReplaceTaxonomy(ctx, categories, rules))

	tax := taxonomy.NewStore()
	require.NoError(t, tax.Load(ctx, db))

	idx := keyword.NewIndex(keyword.DefaultAssociations(), keyword.DefaultConfig())
	return New(db, tax, idx), db, tax
}

func TestEngine_RuleBasedScenario(t *testing.T) {
	eng, db, tax := newTestEngine(t)
	ctx := context.Background()

	// Empty cache: "iPhone 14 Pro 128GB" resolves via the rule table.
	cls, err := eng.Classify(ctx, model.ProductInfo{Title: "iPhone 14 Pro 128GB"})
	require.NoError(t, err)
	assert.Equal(t, int64(9355), cls.CategoryID)
	assert.Equal(t, "Cell Phones & Smartphones", cls.CategoryName)
	assert.Equal(t, 85.0, cls.Confidence)
	assert.Equal(t, model.MethodRule, cls.Method)

	// The category has no fee rule, so the fee is the flat standard rate.
	calc := fees.NewCalculator(tax)
	fee, err := calc.Compute(cls.CategoryID, 100)
	require.NoError(t, err)
	assert.InDelta(t, 13.60, fee.FeeAmount, 0.001)
	assert.False(t, fee.Breakdown.Tiered)

	// A second identical call resolves from the learning cache.
	second, err := eng.Classify(ctx, model.ProductInfo{Title: "iPhone 14 Pro 128GB"})
	require.NoError(t, err)
	assert.Equal(t, cls.CategoryID, second.CategoryID)
	assert.Equal(t, model.MethodLearned, second.Method)
	assert.Equal(t, 85.0, second.Confidence, "cache-hit confidence is the stored value, unmodified")

	rec, err := db.GetLearningRecord(ctx, model.TitleHash("iPhone 14 Pro 128GB"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 2, rec.UseCount, "usage count increments by exactly one per call")
}

func TestEngine_KeywordPath(t *testing.T) {
	eng, db, _ := newTestEngine(t)
	ctx := context.Background()

	cls, err := eng.Classify(ctx, model.ProductInfo{
		Title: "Lenovo ThinkPad X1 Carbon laptop",
		Brand: "Lenovo",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(177), cls.CategoryID)
	assert.Equal(t, "PC Laptops & Netbooks", cls.CategoryName)
	assert.Equal(t, model.MethodKeyword, cls.Method)
	assert.GreaterOrEqual(t, cls.Confidence, 70.0)
	assert.LessOrEqual(t, cls.Confidence, 95.0)

	// Keyword resolutions are learned before the result is returned.
	rec, err := db.GetLearningRecord(ctx, model.TitleHash("Lenovo ThinkPad X1 Carbon laptop"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, int64(177), rec.CategoryID)
	assert.Equal(t, 1, rec.UseCount)
}

func TestEngine_TerminalFallback(t *testing.T) {
	eng, db, _ := newTestEngine(t)
	ctx := context.Background()

	cls, err := eng.Classify(ctx, model.ProductInfo{Title: "mystery bundle wholesale lot"})
	require.NoError(t, err)
	assert.Equal(t, int64(OtherCategoryID), cls.CategoryID)
	assert.Equal(t, OtherCategoryName, cls.CategoryName)
	assert.Equal(t, model.MethodFallback, cls.Method)
	assert.GreaterOrEqual(t, cls.Confidence, 30.0)
	assert.LessOrEqual(t, cls.Confidence, 40.0)

	// Even the terminal fallback is persisted.
	rec, err := db.GetLearningRecord(ctx, model.TitleHash("mystery bundle wholesale lot"))
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestEngine_InvalidInput(t *testing.T) {
	eng, db, _ := newTestEngine(t)
	ctx := context.Background()

	for _, title := range []string{"", "   "} {
		_, err := eng.Classify(ctx, model.ProductInfo{Title: title})
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	}

	// A validation failure must not write to the cache.
	stats, err := db.GetLearningStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRecords)
}

func TestEngine_IdempotentClassification(t *testing.T) {
	eng, db, _ := newTestEngine(t)
	ctx := context.Background()

	product := model.ProductInfo{Title: "Seiko 5 Automatic Wristwatch", Brand: "Seiko"}

	first, err := eng.Classify(ctx, product)
	require.NoError(t, err)

	for i := 2; i <= 4; i++ {
		cls, err := eng.Classify(ctx, product)
		require.NoError(t, err)
		assert.Equal(t, first.CategoryID, cls.CategoryID)
		assert.Equal(t, model.MethodLearned, cls.Method)

		rec, err := db.GetLearningRecord(ctx, model.TitleHash(product.Title))
		require.NoError(t, err)
		assert.Equal(t, i, rec.UseCount)
	}
}

func TestEngine_FuzzyCacheHit(t *testing.T) {
	eng, db, _ := newTestEngine(t)
	ctx := context.Background()

	// A remembered longer listing whose text contains the query title.
	remembered := &model.LearningRecord{
		Hash:         model.TitleHash("Sony WH-1000XM5 Wireless Headphones Black"),
		Title:        model.NormalizeTitle("Sony WH-1000XM5 Wireless Headphones Black"),
		CategoryID:   293,
		CategoryName: "Consumer Electronics",
		Confidence:   90,
	}
	require.NoError(t, db.SaveLearningRecord(ctx, remembered))

	cls, err := eng.Classify(ctx, model.ProductInfo{Title: "Sony WH-1000XM5"})
	require.NoError(t, err)
	assert.Equal(t, model.MethodLearned, cls.Method)
	assert.Equal(t, int64(293), cls.CategoryID)
	assert.Equal(t, 90.0, cls.Confidence, "a fuzzy hit reports the stored confidence")

	// The hit bumps the remembered record; the shorter title gets no
	// record of its own.
	rec, err := db.GetLearningRecord(ctx, remembered.Hash)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 2, rec.UseCount)

	short, err := db.GetLearningRecord(ctx, model.TitleHash("Sony WH-1000XM5"))
	require.NoError(t, err)
	assert.Nil(t, short)
}

func TestEngine_FuzzyCandidateBelowHitBar(t *testing.T) {
	eng, db, _ := newTestEngine(t)
	ctx := context.Background()

	// Below the cache-hit bar the candidate must never decide on its
	// own; its remembered category name only feeds keyword scoring.
	remembered := &model.LearningRecord{
		Hash:         model.TitleHash("Vintage Omega Seamaster Wristwatch Mens"),
		Title:        model.NormalizeTitle("Vintage Omega Seamaster Wristwatch Mens"),
		CategoryID:   31387,
		CategoryName: "Wristwatches",
		Confidence:   60,
	}
	require.NoError(t, db.SaveLearningRecord(ctx, remembered))

	cls, err := eng.Classify(ctx, model.ProductInfo{Title: "Vintage Omega"})
	require.NoError(t, err)
	assert.NotEqual(t, model.MethodLearned, cls.Method)
	assert.Equal(t, model.MethodKeyword, cls.Method)
	assert.Equal(t, int64(31387), cls.CategoryID)

	// Not a hit, so the remembered record's usage is untouched.
	rec, err := db.GetLearningRecord(ctx, remembered.Hash)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 1, rec.UseCount)

	// Without a remembered neighbor the same kind of title has no
	// keyword signal and lands in the terminal fallback.
	control, err := eng.Classify(ctx, model.ProductInfo{Title: "Vintage Rolex"})
	require.NoError(t, err)
	assert.Equal(t, model.MethodFallback, control.Method)
}

// failingStore simulates a learning cache whose writes always conflict.
type failingStore struct{}

func (f *failingStore) GetLearningRecord(_ context.Context, _ string) (*model.LearningRecord, error) {
	return nil, nil
}

func (f *failingStore) SearchLearningRecords(_ context.Context, _ string, _ int) ([]model.LearningRecord, error) {
	return nil, nil
}

func (f *failingStore) SaveLearningRecord(_ context.Context, _ *model.LearningRecord) error {
	return errors.New("disk full")
}

func (f *failingStore) GetLearningStats(_ context.Context) (*service.LearningStats, error) {
	return &service.LearningStats{}, nil
}

func TestEngine_CacheWriteFailureNeverFailsClassification(t *testing.T) {
	_, _, tax := newTestEngine(t)

	idx := keyword.NewIndex(keyword.DefaultAssociations(), keyword.DefaultConfig())
	eng := New(&failingStore{}, tax, idx)

	cls, err := eng.Classify(context.Background(), model.ProductInfo{Title: "iPhone 14 Pro 128GB"})
	require.NoError(t, err, "a cache-write failure must never fail the classification")
	assert.Equal(t, int64(9355), cls.CategoryID)
}

func TestEngine_RuleConfidenceBounds(t *testing.T) {
	for _, rule := range DefaultRules() {
		assert.GreaterOrEqual(t, rule.Confidence, 30.0, "rule %q", rule.Name)
		assert.LessOrEqual(t, rule.Confidence, 85.0, "rule %q", rule.Name)
	}
}

func TestEngine_ClassifyBatch(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	products := []model.ProductInfo{
		{Title: "iPhone 14 Pro 128GB"},
		{Title: ""},
		{Title: "LEGO Star Wars Millennium Falcon"},
		{Title: "14k gold necklace with pendant"},
	}

	var seen int
	result, err := eng.ClassifyBatch(ctx, products, BatchOptions{
		OnItem: func(_ BatchItem) { seen++ },
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 4, result.TotalItems)
	assert.Equal(t, 3, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 4, seen)

	require.Len(t, result.Items, 4)
	assert.True(t, result.Items[0].Ok)
	assert.False(t, result.Items[1].Ok, "empty title fails its own item only")
	assert.Contains(t, result.Items[1].Error, "invalid input")
	assert.True(t, result.Items[2].Ok)
	assert.True(t, result.Items[3].Ok)
}

func TestEngine_BatchCancellation(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	products := []model.ProductInfo{{Title: "iPhone 14 Pro"}}
	_, err := eng.ClassifyBatch(ctx, products, BatchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
