package model

import "time"

// LearningRecord is a cached prior classification decision, unique per
// normalized-title hash. Records accumulate usage counts and are never
// deleted automatically.
type LearningRecord struct {
	CreatedAt    time.Time
	LastUsedAt   time.Time
	Hash         string
	Title        string
	Brand        string
	CategoryName string
	CategoryID   int64
	Confidence   float64
	UseCount     int
	SuccessCount int
}

// Rank orders fuzzy lookup candidates: heavily used, high-confidence
// records sort first.
func (r *LearningRecord) Rank() float64 {
	return float64(r.UseCount) * r.Confidence / 100.0
}
