package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flipflow/flipflow/internal/model"
)

// ReplaceTaxonomy atomically swaps the stored category tree and fee
// schedule for the supplied snapshot. Only the external importer calls
// this; the engine never mutates taxonomy data at request time.
func (s *SQLiteStorage) ReplaceTaxonomy(ctx context.Context, categories []model.Category, rules []model.FeeRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range categories {
		if err := validateCategory(&categories[i]); err != nil {
			return fmt.Errorf("category at index %d: %w", i, err)
		}
	}
	for i := range rules {
		if err := validateFeeRule(&rules[i]); err != nil {
			return fmt.Errorf("fee rule at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM fee_rules`); err != nil {
		return fmt.Errorf("failed to clear fee rules: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	now := time.Now()
	for i := range categories {
		cat := &categories[i]
		createdAt := cat.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, path, parent_id, level, is_leaf, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, cat.ID, cat.Name, cat.Path, cat.ParentID, cat.Level, cat.IsLeaf, createdAt)
		if err != nil {
			return fmt.Errorf("failed to insert category %d: %w", cat.ID, err)
		}
	}

	for i := range rules {
		rule := &rules[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO fee_rules (category_id, base_percent, tier1_percent, tier1_max, tier2_percent)
			VALUES (?, ?, ?, ?, ?)
		`, rule.CategoryID, rule.BasePercent, rule.Tier1Percent, rule.Tier1Max, rule.Tier2Percent)
		if err != nil {
			return fmt.Errorf("failed to insert fee rule for category %d: %w", rule.CategoryID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit taxonomy load: %w", err)
	}

	slog.Info("Replaced taxonomy snapshot",
		"categories", len(categories),
		"fee_rules", len(rules))

	return nil
}

// GetCategories returns every category in the loaded snapshot.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, path, parent_id, level, is_leaf, created_at
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Path, &cat.ParentID, &cat.Level, &cat.IsLeaf, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

// GetFeeRules returns every fee rule in the loaded snapshot.
func (s *SQLiteStorage) GetFeeRules(ctx context.Context) ([]model.FeeRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, base_percent, tier1_percent, tier1_max, tier2_percent
		FROM fee_rules
		ORDER BY category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.FeeRule
	for rows.Next() {
		var rule model.FeeRule
		if err := rows.Scan(&rule.CategoryID, &rule.BasePercent, &rule.Tier1Percent, &rule.Tier1Max, &rule.Tier2Percent); err != nil {
			return nil, fmt.Errorf("failed to scan fee rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}
