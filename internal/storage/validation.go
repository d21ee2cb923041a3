// Package storage provides the data persistence layer for the flipflow engine.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flipflow/flipflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext           = errors.New("context cannot be nil")
	ErrEmptyString          = errors.New("string parameter cannot be empty")
	ErrNilParameter         = errors.New("parameter cannot be nil")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidFeeRule       = errors.New("invalid fee rule")
	ErrInvalidAssociation   = errors.New("invalid keyword association")
	ErrInvalidLearningEntry = errors.New("invalid learning record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCategory validates a single taxonomy node.
func validateCategory(cat *model.Category) error {
	if cat == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if cat.ID <= 0 {
		return fmt.Errorf("%w: missing ID", ErrInvalidCategory)
	}
	if cat.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	return nil
}

// validateFeeRule enforces the all-or-none tier field invariant.
func validateFeeRule(rule *model.FeeRule) error {
	if rule == nil {
		return fmt.Errorf("%w: fee rule", ErrNilParameter)
	}
	if rule.CategoryID <= 0 {
		return fmt.Errorf("%w: missing category ID", ErrInvalidFeeRule)
	}
	if rule.BasePercent < 0 || rule.BasePercent > 100 {
		return fmt.Errorf("%w: base percent out of range", ErrInvalidFeeRule)
	}

	set := 0
	for _, p := range []*float64{rule.Tier1Percent, rule.Tier1Max, rule.Tier2Percent} {
		if p != nil {
			set++
		}
	}
	if set != 0 && set != 3 {
		return fmt.Errorf("%w: tier fields must be set together", ErrInvalidFeeRule)
	}
	if rule.Tiered() && *rule.Tier1Max <= 0 {
		return fmt.Errorf("%w: tier1 max must be positive", ErrInvalidFeeRule)
	}
	return nil
}

// validateAssociation validates a keyword association.
func validateAssociation(assoc *model.KeywordAssociation) error {
	if assoc == nil {
		return fmt.Errorf("%w: association", ErrNilParameter)
	}
	if strings.TrimSpace(assoc.Keyword) == "" {
		return fmt.Errorf("%w: missing keyword", ErrInvalidAssociation)
	}
	if assoc.CategoryID <= 0 {
		return fmt.Errorf("%w: missing category ID", ErrInvalidAssociation)
	}
	if !assoc.Class.Valid() {
		return fmt.Errorf("%w: unknown weight class %q", ErrInvalidAssociation, assoc.Class)
	}
	if assoc.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidAssociation)
	}
	return nil
}

// validateLearningRecord validates a learning record before persistence.
func validateLearningRecord(rec *model.LearningRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if rec.Hash == "" {
		return fmt.Errorf("%w: missing hash", ErrInvalidLearningEntry)
	}
	if rec.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidLearningEntry)
	}
	if rec.CategoryID <= 0 {
		return fmt.Errorf("%w: missing category ID", ErrInvalidLearningEntry)
	}
	if rec.Confidence < 0 || rec.Confidence > 100 {
		return fmt.Errorf("%w: confidence out of range", ErrInvalidLearningEntry)
	}
	return nil
}
