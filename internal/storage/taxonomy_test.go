package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipflow/flipflow/internal/model"
)

func TestSQLiteStorage_ReplaceTaxonomy(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tier1, tier1Max, tier2 := 15.0, 5000.0, 9.0
	categories := []model.Category{
		{ID: 1, Name: "Electronics", Path: "Electronics", Level: 0},
		{ID: 9355, Name: "Cell Phones & Smartphones", Path: "Electronics > Cell Phones & Smartphones", ParentID: 1, Level: 1, IsLeaf: true},
		{ID: 281, Name: "Jewelry & Watches", Path: "Jewelry & Watches", Level: 0, IsLeaf: true},
	}
	rules := []model.FeeRule{
		{CategoryID: 9355, BasePercent: 12.35},
		{CategoryID: 281, BasePercent: 15, Tier1Percent: &tier1, Tier1Max: &tier1Max, Tier2Percent: &tier2},
	}

	require.NoError(t, store.ReplaceTaxonomy(ctx, categories, rules))

	gotCats, err := store.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, gotCats, 3)
	assert.Equal(t, "Cell Phones & Smartphones", gotCats[1].Name)
	assert.Equal(t, int64(1), gotCats[1].ParentID)

	gotRules, err := store.GetFeeRules(ctx)
	require.NoError(t, err)
	require.Len(t, gotRules, 2)
	assert.True(t, gotRules[0].Tiered())
	assert.Equal(t, 5000.0, *gotRules[0].Tier1Max)
	assert.False(t, gotRules[1].Tiered())
}

func TestSQLiteStorage_ReplaceTaxonomySwapsSnapshot(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := []model.Category{{ID: 1, Name: "Electronics"}}
	require.NoError(t, store.ReplaceTaxonomy(ctx, first, []model.FeeRule{{CategoryID: 1, BasePercent: 10}}))

	second := []model.Category{{ID: 2, Name: "Collectibles"}}
	require.NoError(t, store.ReplaceTaxonomy(ctx, second, nil))

	cats, err := store.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(2), cats[0].ID)

	rules, err := store.GetFeeRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules, "old fee rules must not survive a reload")
}

func TestSQLiteStorage_ReplaceTaxonomyTierInvariant(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tier1 := 15.0
	categories := []model.Category{{ID: 281, Name: "Jewelry & Watches"}}
	// Only one of three tier fields set: must be rejected.
	rules := []model.FeeRule{{CategoryID: 281, BasePercent: 15, Tier1Percent: &tier1}}

	err := store.ReplaceTaxonomy(ctx, categories, rules)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFeeRule)
}

func TestSQLiteStorage_KeywordAssociations(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assoc := &model.KeywordAssociation{
		Keyword:    "Laptop",
		CategoryID: 177,
		Class:      model.WeightPrimary,
		Weight:     10,
	}
	require.NoError(t, store.SaveKeywordAssociation(ctx, assoc))

	got, err := store.GetKeywordAssociations(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "laptop", got[0].Keyword, "keywords are stored lowercased")
	assert.Equal(t, model.WeightPrimary, got[0].Class)

	// Same keyword and category updates in place.
	assoc.Class = model.WeightSecondary
	require.NoError(t, store.SaveKeywordAssociation(ctx, assoc))

	got, err = store.GetKeywordAssociations(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.WeightSecondary, got[0].Class)

	// Same keyword, different category is a separate association.
	require.NoError(t, store.SaveKeywordAssociation(ctx, &model.KeywordAssociation{
		Keyword:    "laptop",
		CategoryID: 171485,
		Class:      model.WeightTertiary,
		Weight:     10,
	}))

	got, err = store.GetKeywordAssociations(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteKeywordAssociation(ctx, "laptop", 171485))

		got, err := store.GetKeywordAssociations(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		assert.Error(t, store.DeleteKeywordAssociation(ctx, "laptop", 171485))
	})
}
