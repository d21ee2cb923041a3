package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipflow/flipflow/internal/common"
	"github.com/flipflow/flipflow/internal/model"
)

// stubSchedule resolves fee rules from a map, falling back to the
// standard flat rate like the real taxonomy store.
type stubSchedule map[int64]model.FeeRule

func (s stubSchedule) FeeRule(categoryID int64) model.FeeRule {
	if rule, ok := s[categoryID]; ok {
		return rule
	}
	return model.StandardFeeRule(categoryID)
}

func tieredRule(categoryID int64, tier1Percent, tier1Max, tier2Percent float64) model.FeeRule {
	return model.FeeRule{
		CategoryID:   categoryID,
		BasePercent:  tier1Percent,
		Tier1Percent: &tier1Percent,
		Tier1Max:     &tier1Max,
		Tier2Percent: &tier2Percent,
	}
}

func TestCalculator_FlatFee(t *testing.T) {
	calc := NewCalculator(stubSchedule{
		100: {CategoryID: 100, BasePercent: 10},
	})

	tests := []struct {
		name       string
		categoryID int64
		salePrice  float64
		wantFee    float64
	}{
		{name: "flat 10 percent", categoryID: 100, salePrice: 250, wantFee: 25.00},
		{name: "rounding applied once", categoryID: 100, salePrice: 33.33, wantFee: 3.33},
		{name: "zero price", categoryID: 100, salePrice: 0, wantFee: 0},
		{name: "missing rule uses standard rate", categoryID: 999, salePrice: 100, wantFee: 13.60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Compute(tt.categoryID, tt.salePrice)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantFee, result.FeeAmount, 0.001)
			assert.False(t, result.Breakdown.Tiered)
		})
	}
}

func TestCalculator_TieredFee(t *testing.T) {
	// Jewelry & Watches: 15% up to $5,000, 9% beyond.
	calc := NewCalculator(stubSchedule{
		281: tieredRule(281, 15, 5000, 9),
	})

	tests := []struct {
		name      string
		salePrice float64
		wantFee   float64
	}{
		{name: "below threshold is tier1 only", salePrice: 1000, wantFee: 150.00},
		{name: "at threshold no tier2 leakage", salePrice: 5000, wantFee: 750.00},
		{name: "above threshold splits tiers", salePrice: 7000, wantFee: 930.00},
		{name: "just above threshold", salePrice: 5000.01, wantFee: 750.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Compute(281, tt.salePrice)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantFee, result.FeeAmount, 0.001)
			assert.True(t, result.Breakdown.Tiered)
		})
	}
}

func TestCalculator_TierBoundary(t *testing.T) {
	calc := NewCalculator(stubSchedule{
		281: tieredRule(281, 15, 5000, 9),
	})

	result, err := calc.Compute(281, 5000)
	require.NoError(t, err)

	assert.InDelta(t, 5000.0, result.Breakdown.Tier1Amount, 0.001)
	assert.InDelta(t, 0.0, result.Breakdown.Tier2Amount, 0.001)
	assert.InDelta(t, 0.0, result.Breakdown.Tier2Fee, 0.001)
	assert.InDelta(t, 750.00, result.FeeAmount, 0.001)
}

func TestCalculator_TieredMatchesFlatBelowThreshold(t *testing.T) {
	// For all prices below tier1Max the tiered fee must equal the plain
	// tier1 percentage.
	calc := NewCalculator(stubSchedule{
		281: tieredRule(281, 15, 5000, 9),
	})

	for _, price := range []float64{0.01, 1, 49.99, 500, 1234.56, 4999.99} {
		result, err := calc.Compute(281, price)
		require.NoError(t, err)

		flat := NewCalculator(stubSchedule{281: {CategoryID: 281, BasePercent: 15}})
		want, err := flat.Compute(281, price)
		require.NoError(t, err)

		assert.InDelta(t, want.FeeAmount, result.FeeAmount, 0.001, "price %v", price)
	}
}

func TestCalculator_EffectivePercent(t *testing.T) {
	calc := NewCalculator(stubSchedule{
		281: tieredRule(281, 15, 5000, 9),
	})

	result, err := calc.Compute(281, 7000)
	require.NoError(t, err)

	// 930 / 7000 = 13.2857...
	assert.InDelta(t, 13.29, result.EffectivePercent, 0.001)
}

func TestCalculator_NegativePrice(t *testing.T) {
	calc := NewCalculator(stubSchedule{})

	_, err := calc.Compute(100, -5)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCalculator_StandardRateNeverTiered(t *testing.T) {
	calc := NewCalculator(stubSchedule{})

	result, err := calc.Compute(424242, 1000)
	require.NoError(t, err)
	assert.False(t, result.Breakdown.Tiered)
	assert.InDelta(t, 136.00, result.FeeAmount, 0.001)
	assert.InDelta(t, model.StandardFeePercent, result.EffectivePercent, 0.001)
}
