// Package engine implements the classification pipeline for resolving
// product descriptions to marketplace categories.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/flipflow/flipflow/internal/common"
	"github.com/flipflow/flipflow/internal/keyword"
	"github.com/flipflow/flipflow/internal/model"
	"github.com/flipflow/flipflow/internal/service"
	"github.com/flipflow/flipflow/internal/taxonomy"
)

// Config holds tunables for the classification pipeline.
type Config struct {
	// CacheHitConfidence is the minimum stored confidence for a learning
	// record to short-circuit classification.
	CacheHitConfidence float64
	// FuzzyLimit bounds the fuzzy cache search.
	FuzzyLimit int
	// FuzzyPrefixRunes is how much of the normalized title feeds the
	// fuzzy substring search.
	FuzzyPrefixRunes int
	// ChunkSize bounds how many items a batch processes between
	// cancellation checks.
	ChunkSize int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		CacheHitConfidence: 80,
		FuzzyLimit:         25,
		FuzzyPrefixRunes:   40,
		ChunkSize:          100,
	}
}

// Engine orchestrates learning cache, keyword index and rule-based
// fallback. It is the sole writer of learning records and never mutates
// taxonomy or fee data.
type Engine struct {
	learning service.LearningStore
	taxonomy *taxonomy.Store
	keywords *keyword.Index
	rules    []FallbackRule
	cfg      Config
}

// New creates a classification engine with the default configuration and
// fallback rule table.
func New(learning service.LearningStore, tax *taxonomy.Store, keywords *keyword.Index) *Engine {
	return NewWithConfig(learning, tax, keywords, DefaultRules(), DefaultConfig())
}

// NewWithConfig creates a classification engine with custom rules and
// configuration. Rules are evaluated highest priority first.
func NewWithConfig(learning service.LearningStore, tax *taxonomy.Store, keywords *keyword.Index, rules []FallbackRule, cfg Config) *Engine {
	sorted := make([]FallbackRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority > sorted[j].Priority })

	if cfg.CacheHitConfidence <= 0 {
		cfg = DefaultConfig()
	}

	return &Engine{
		learning: learning,
		taxonomy: tax,
		keywords: keywords,
		rules:    sorted,
		cfg:      cfg,
	}
}

// Classify resolves a product to a category. It always terminates with a
// category assignment; there is no unclassifiable outcome.
func (e *Engine) Classify(ctx context.Context, product model.ProductInfo) (*model.Classification, error) {
	if strings.TrimSpace(product.Title) == "" {
		return nil, fmt.Errorf("%w: product title is required", common.ErrInvalidInput)
	}

	hash := model.TitleHash(product.Title)
	normalized := model.NormalizeTitle(product.Title)

	// Exact cache lookup first.
	rec, err := e.learning.GetLearningRecord(ctx, hash)
	if err != nil {
		slog.Warn("Learning cache lookup failed", "error", err)
	}
	if rec != nil && rec.Confidence >= e.cfg.CacheHitConfidence {
		e.recordUsage(ctx, rec, product)
		return e.result(rec.CategoryID, rec.CategoryName, rec.Confidence, model.MethodLearned), nil
	}

	// Fuzzy lookup only on an exact miss. A high-confidence candidate is
	// a cache hit; weaker candidates only bias keyword scoring.
	var fuzzyCandidate *model.LearningRecord
	if rec == nil {
		fuzzyCandidate = e.lookupFuzzy(ctx, normalized)
		if fuzzyCandidate != nil && fuzzyCandidate.Confidence >= e.cfg.CacheHitConfidence {
			e.recordUsage(ctx, fuzzyCandidate, product)
			return e.result(fuzzyCandidate.CategoryID, fuzzyCandidate.CategoryName, fuzzyCandidate.Confidence, model.MethodLearned), nil
		}
	}

	// Keyword scoring.
	if match, ok := e.keywords.Score(e.searchText(product, fuzzyCandidate)); ok {
		name := e.categoryName(match.CategoryID)
		cls := e.result(match.CategoryID, name, match.Confidence, model.MethodKeyword)
		e.learn(ctx, hash, product, cls)
		return cls, nil
	}

	// Rule-based fallback.
	cls := e.applyRules(product)
	e.learn(ctx, hash, product, cls)
	return cls, nil
}

// searchText builds the scoring input. A below-threshold fuzzy candidate
// stays visible to scoring by appending its remembered category name.
func (e *Engine) searchText(product model.ProductInfo, fuzzyCandidate *model.LearningRecord) string {
	text := product.SearchText()
	if fuzzyCandidate != nil {
		text += " " + strings.ToLower(fuzzyCandidate.CategoryName)
	}
	return text
}

// lookupFuzzy runs the bounded substring search and returns the best
// ranked candidate, if any.
func (e *Engine) lookupFuzzy(ctx context.Context, normalized string) *model.LearningRecord {
	prefix := normalized
	if runes := []rune(prefix); len(runes) > e.cfg.FuzzyPrefixRunes {
		prefix = string(runes[:e.cfg.FuzzyPrefixRunes])
	}
	if strings.TrimSpace(prefix) == "" {
		return nil
	}

	candidates, err := e.learning.SearchLearningRecords(ctx, prefix, e.cfg.FuzzyLimit)
	if err != nil {
		slog.Warn("Fuzzy cache lookup failed", "error", err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// applyRules evaluates the ordered fallback rule table, ending at the
// catch-all category so classification always terminates.
func (e *Engine) applyRules(product model.ProductInfo) *model.Classification {
	text := product.SearchText()
	for _, rule := range e.rules {
		if strings.Contains(text, rule.Pattern) {
			slog.Debug("Fallback rule matched",
				"rule", rule.Name,
				"category", rule.CategoryName)
			return e.result(rule.CategoryID, rule.CategoryName, rule.Confidence, model.MethodRule)
		}
	}

	return e.result(OtherCategoryID, OtherCategoryName, fallbackConfidence, model.MethodFallback)
}

// learn persists a keyword or rule resolution back to the learning cache
// before the result is returned. The write is retried once; a failure is
// logged but never fails the classification, since the cache is an
// optimization and not a correctness dependency.
func (e *Engine) learn(ctx context.Context, hash string, product model.ProductInfo, cls *model.Classification) {
	record := &model.LearningRecord{
		Hash:         hash,
		Title:        model.NormalizeTitle(product.Title),
		Brand:        product.Brand,
		CategoryID:   cls.CategoryID,
		CategoryName: cls.CategoryName,
		Confidence:   cls.Confidence,
	}

	err := common.WithRetry(ctx, func() error {
		return e.learning.SaveLearningRecord(ctx, record)
	}, service.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: 50 * time.Millisecond,
	})
	if err != nil {
		slog.Warn("Failed to persist learning record",
			"hash", hash,
			"category", cls.CategoryName,
			"error", err)
	}
}

// recordUsage bumps the use count for a cache hit via the same upsert.
func (e *Engine) recordUsage(ctx context.Context, rec *model.LearningRecord, product model.ProductInfo) {
	record := &model.LearningRecord{
		Hash:         rec.Hash,
		Title:        rec.Title,
		Brand:        rec.Brand,
		CategoryID:   rec.CategoryID,
		CategoryName: rec.CategoryName,
		Confidence:   rec.Confidence,
	}
	if record.Brand == "" {
		record.Brand = product.Brand
	}
	if err := e.learning.SaveLearningRecord(ctx, record); err != nil {
		slog.Warn("Failed to bump learning record usage", "hash", rec.Hash, "error", err)
	}
}

// categoryName resolves a category id against the taxonomy snapshot.
func (e *Engine) categoryName(id int64) string {
	if cat, ok := e.taxonomy.Category(id); ok {
		return cat.Name
	}
	return fmt.Sprintf("Category %d", id)
}

func (e *Engine) result(id int64, name string, confidence float64, method model.Method) *model.Classification {
	return &model.Classification{
		ClassifiedAt: time.Now(),
		CategoryID:   id,
		CategoryName: name,
		Confidence:   confidence,
		Method:       method,
	}
}
