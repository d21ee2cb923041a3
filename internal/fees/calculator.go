// Package fees computes the marketplace's take for a sale, including
// tiered-threshold arithmetic.
package fees

import (
	"fmt"
	"math"

	"github.com/flipflow/flipflow/internal/common"
	"github.com/flipflow/flipflow/internal/model"
)

// Schedule resolves a category to its fee rule. A missing rule must
// resolve to the global standard flat rate, never an error.
type Schedule interface {
	FeeRule(categoryID int64) model.FeeRule
}

// Breakdown itemizes the tier contributions of a fee. The per-tier fee
// fields are unrounded; rounding happens once on the final amount so two
// equivalent computations can never drift apart.
type Breakdown struct {
	Tier1Amount float64
	Tier1Fee    float64
	Tier2Amount float64
	Tier2Fee    float64
	Tiered      bool
}

// Result is the outcome of a fee computation.
type Result struct {
	Breakdown        Breakdown
	CategoryID       int64
	SalePrice        float64
	FeeAmount        float64
	EffectivePercent float64
}

// Calculator computes fees against a fee schedule. It only reads the
// schedule and never mutates any entity.
type Calculator struct {
	schedule Schedule
}

// NewCalculator creates a calculator over the given schedule.
func NewCalculator(schedule Schedule) *Calculator {
	return &Calculator{schedule: schedule}
}

// Compute returns the fee for selling at salePrice in the given category.
// At salePrice == tier1Max the fee is exactly the tier1 contribution.
func (c *Calculator) Compute(categoryID int64, salePrice float64) (*Result, error) {
	if salePrice < 0 {
		return nil, fmt.Errorf("%w: sale price cannot be negative", common.ErrInvalidInput)
	}

	rule := c.schedule.FeeRule(categoryID)

	result := &Result{
		CategoryID: categoryID,
		SalePrice:  salePrice,
	}

	var raw float64
	if rule.Tiered() {
		tier1Max := *rule.Tier1Max
		tier1Amount := math.Min(salePrice, tier1Max)
		tier2Amount := math.Max(0, salePrice-tier1Max)

		tier1Fee := tier1Amount * *rule.Tier1Percent / 100
		tier2Fee := tier2Amount * *rule.Tier2Percent / 100
		raw = tier1Fee + tier2Fee

		result.Breakdown = Breakdown{
			Tier1Amount: tier1Amount,
			Tier1Fee:    tier1Fee,
			Tier2Amount: tier2Amount,
			Tier2Fee:    tier2Fee,
			Tiered:      true,
		}
	} else {
		raw = salePrice * rule.BasePercent / 100
		result.Breakdown = Breakdown{
			Tier1Amount: salePrice,
			Tier1Fee:    raw,
		}
	}

	result.FeeAmount = round2(raw)
	if salePrice > 0 {
		result.EffectivePercent = round2(result.FeeAmount / salePrice * 100)
	} else {
		result.EffectivePercent = rule.BasePercent
	}

	return result, nil
}

// round2 rounds to fixed 2-decimal-place precision, applied exactly once
// at the end of a computation.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
