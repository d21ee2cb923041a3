package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flipflow/flipflow/internal/common"
	"github.com/flipflow/flipflow/internal/model"
)

// GetKeywordAssociations returns all keyword associations, ordered
// deterministically by keyword then category id.
func (s *SQLiteStorage) GetKeywordAssociations(ctx context.Context) ([]model.KeywordAssociation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT keyword, category_id, weight_class, weight, created_at
		FROM keyword_associations
		ORDER BY keyword, category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword associations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var assocs []model.KeywordAssociation
	for rows.Next() {
		var assoc model.KeywordAssociation
		if err := rows.Scan(&assoc.Keyword, &assoc.CategoryID, &assoc.Class, &assoc.Weight, &assoc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan keyword association: %w", err)
		}
		assocs = append(assocs, assoc)
	}

	return assocs, rows.Err()
}

// SaveKeywordAssociation inserts or updates a keyword association. The
// keyword is stored lowercased so index matching stays case-insensitive.
func (s *SQLiteStorage) SaveKeywordAssociation(ctx context.Context, assoc *model.KeywordAssociation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAssociation(assoc); err != nil {
		return err
	}

	createdAt := assoc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO keyword_associations (keyword, category_id, weight_class, weight, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(keyword, category_id) DO UPDATE SET
			weight_class = excluded.weight_class,
			weight = excluded.weight
	`, strings.ToLower(strings.TrimSpace(assoc.Keyword)), assoc.CategoryID, assoc.Class, assoc.Weight, createdAt)

	if err != nil {
		return fmt.Errorf("failed to save keyword association: %w", err)
	}

	return nil
}

// DeleteKeywordAssociation removes a keyword to category link.
func (s *SQLiteStorage) DeleteKeywordAssociation(ctx context.Context, keyword string, categoryID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(keyword, "keyword"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM keyword_associations WHERE keyword = ? AND category_id = ?
	`, strings.ToLower(strings.TrimSpace(keyword)), categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete keyword association: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}
