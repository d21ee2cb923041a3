package model

import "time"

// Method indicates which pipeline stage resolved a classification.
type Method string

// Classification method constants, reported on every result.
const (
	MethodLearned  Method = "learned_database"
	MethodKeyword  Method = "keyword_matched"
	MethodRule     Method = "rule_based"
	MethodFallback Method = "fallback"
)

// Classification is the outcome of resolving a product to a category.
type Classification struct {
	ClassifiedAt time.Time
	CategoryName string
	Method       Method
	CategoryID   int64
	Confidence   float64
}
