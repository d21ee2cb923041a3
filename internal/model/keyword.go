package model

import "time"

// WeightClass controls how strongly a keyword match contributes to a
// category's aggregate score.
type WeightClass string

const (
	// WeightPrimary marks a keyword that identifies the category on its own.
	WeightPrimary WeightClass = "primary"
	// WeightSecondary marks a supporting keyword.
	WeightSecondary WeightClass = "secondary"
	// WeightTertiary marks a weak contextual hint.
	WeightTertiary WeightClass = "tertiary"
)

// Multiplier returns the score multiplier for the weight class. Unknown
// classes are treated as secondary.
func (w WeightClass) Multiplier() float64 {
	switch w {
	case WeightPrimary:
		return 2.0
	case WeightTertiary:
		return 0.5
	default:
		return 1.0
	}
}

// Valid reports whether the weight class is one of the known values.
func (w WeightClass) Valid() bool {
	switch w {
	case WeightPrimary, WeightSecondary, WeightTertiary:
		return true
	}
	return false
}

// KeywordAssociation links a keyword to a category with a weighted vote.
// Keywords and categories are many-to-many.
type KeywordAssociation struct {
	CreatedAt  time.Time
	Keyword    string
	Class      WeightClass
	CategoryID int64
	Weight     float64
}
