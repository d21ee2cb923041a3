package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flipflow/flipflow/internal/model"
	"github.com/flipflow/flipflow/internal/service"
)

// GetLearningRecord retrieves a learning record by its normalized-title
// hash. Returns (nil, nil) when no record exists.
func (s *SQLiteStorage) GetLearningRecord(ctx context.Context, hash string) (*model.LearningRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(hash, "hash"); err != nil {
		return nil, err
	}

	var rec model.LearningRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT hash, title, brand, category_id, category_name, confidence,
		       use_count, success_count, created_at, last_used_at
		FROM learning_records
		WHERE hash = ?
	`, hash).Scan(
		&rec.Hash,
		&rec.Title,
		&rec.Brand,
		&rec.CategoryID,
		&rec.CategoryName,
		&rec.Confidence,
		&rec.UseCount,
		&rec.SuccessCount,
		&rec.CreatedAt,
		&rec.LastUsedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learning record: %w", err)
	}

	return &rec, nil
}

// SearchLearningRecords performs a bounded substring search over stored
// titles, best candidates first by use_count * confidence / 100.
func (s *SQLiteStorage) SearchLearningRecords(ctx context.Context, titleSubstring string, limit int) ([]model.LearningRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(titleSubstring, "titleSubstring"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 25
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, title, brand, category_id, category_name, confidence,
		       use_count, success_count, created_at, last_used_at
		FROM learning_records
		WHERE instr(title, ?) > 0
		ORDER BY use_count * confidence / 100.0 DESC, hash
		LIMIT ?
	`, titleSubstring, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search learning records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.LearningRecord
	for rows.Next() {
		var rec model.LearningRecord
		if err := rows.Scan(
			&rec.Hash,
			&rec.Title,
			&rec.Brand,
			&rec.CategoryID,
			&rec.CategoryName,
			&rec.Confidence,
			&rec.UseCount,
			&rec.SuccessCount,
			&rec.CreatedAt,
			&rec.LastUsedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan learning record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SaveLearningRecord upserts a learning record. A new hash inserts with
// use_count 1; an existing hash increments use_count and refreshes
// last_used_at. The single INSERT .. ON CONFLICT keeps the row unique
// under concurrent writers for the same hash.
func (s *SQLiteStorage) SaveLearningRecord(ctx context.Context, rec *model.LearningRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLearningRecord(rec); err != nil {
		return err
	}

	now := time.Now()
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO learning_records
			(hash, title, brand, category_id, category_name, confidence,
			 use_count, success_count, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, 1, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			use_count = use_count + 1,
			last_used_at = excluded.last_used_at
	`, rec.Hash, rec.Title, rec.Brand, rec.CategoryID, rec.CategoryName,
		rec.Confidence, createdAt, now)

	if err != nil {
		return fmt.Errorf("failed to save learning record: %w", err)
	}

	return nil
}

// GetLearningStats returns aggregate cache bookkeeping.
func (s *SQLiteStorage) GetLearningStats(ctx context.Context) (*service.LearningStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var stats service.LearningStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(use_count), 0),
		       COALESCE(AVG(confidence), 0)
		FROM learning_records
	`).Scan(&stats.TotalRecords, &stats.TotalUses, &stats.AvgConfidence)
	if err != nil {
		return nil, fmt.Errorf("failed to get learning stats: %w", err)
	}

	return &stats, nil
}

// GetTopLearningRecords returns the most used records for inspection.
func (s *SQLiteStorage) GetTopLearningRecords(ctx context.Context, limit int) ([]model.LearningRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, title, brand, category_id, category_name, confidence,
		       use_count, success_count, created_at, last_used_at
		FROM learning_records
		ORDER BY use_count DESC, last_used_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top learning records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.LearningRecord
	for rows.Next() {
		var rec model.LearningRecord
		if err := rows.Scan(
			&rec.Hash,
			&rec.Title,
			&rec.Brand,
			&rec.CategoryID,
			&rec.CategoryName,
			&rec.Confidence,
			&rec.UseCount,
			&rec.SuccessCount,
			&rec.CreatedAt,
			&rec.LastUsedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan learning record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
