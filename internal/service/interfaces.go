// Package service defines the interfaces for the engine's collaborators.
package service

import (
	"context"
	"time"

	"github.com/flipflow/flipflow/internal/model"
)

// LearningStore is the persistence contract for prior classification
// decisions. The classification engine is its sole writer; implementations
// must make SaveLearningRecord an atomic upsert so concurrent writers for
// the same hash never produce duplicate rows.
type LearningStore interface {
	GetLearningRecord(ctx context.Context, hash string) (*model.LearningRecord, error)
	SearchLearningRecords(ctx context.Context, titleSubstring string, limit int) ([]model.LearningRecord, error)
	SaveLearningRecord(ctx context.Context, record *model.LearningRecord) error
	GetLearningStats(ctx context.Context) (*LearningStats, error)
}

// TaxonomyReader supplies the category tree and fee schedule snapshot.
type TaxonomyReader interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetFeeRules(ctx context.Context) ([]model.FeeRule, error)
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	LearningStore
	TaxonomyReader

	// Taxonomy bulk load, owned by the external importer.
	ReplaceTaxonomy(ctx context.Context, categories []model.Category, rules []model.FeeRule) error

	// Keyword association operations.
	GetKeywordAssociations(ctx context.Context) ([]model.KeywordAssociation, error)
	SaveKeywordAssociation(ctx context.Context, assoc *model.KeywordAssociation) error
	DeleteKeywordAssociation(ctx context.Context, keyword string, categoryID int64) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// LearningStats summarizes the learning cache for observability.
type LearningStats struct {
	TotalRecords  int
	TotalUses     int
	AvgConfidence float64
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
