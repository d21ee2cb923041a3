package model

// StandardFeePercent is the marketplace's flat final-value fee applied when
// a category has no rule of its own. The standard rate is never tiered.
const StandardFeePercent = 13.60

// FeeRule describes how the marketplace's take is computed for a category.
// Either all three tier fields are set, or none of them are.
type FeeRule struct {
	Tier1Percent *float64
	Tier1Max     *float64
	Tier2Percent *float64
	CategoryID   int64
	BasePercent  float64
}

// Tiered reports whether the rule uses two-tier percentage arithmetic.
func (r *FeeRule) Tiered() bool {
	return r.Tier1Percent != nil && r.Tier1Max != nil && r.Tier2Percent != nil
}

// StandardFeeRule returns the global default rule for a category that has
// no entry in the fee schedule.
func StandardFeeRule(categoryID int64) FeeRule {
	return FeeRule{
		CategoryID:  categoryID,
		BasePercent: StandardFeePercent,
	}
}
