// Package taxonomy holds an immutable in-memory snapshot of the
// marketplace category tree and its fee schedule. The snapshot is
// bulk-loaded out of band and read-only on the request path.
package taxonomy

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/flipflow/flipflow/internal/common"
	"github.com/flipflow/flipflow/internal/model"
	"github.com/flipflow/flipflow/internal/service"
)

// Store provides O(1) category and fee rule lookups over the currently
// loaded snapshot. Load swaps the whole snapshot atomically; individual
// lookups never observe a partially loaded tree.
type Store struct {
	byID     map[int64]*model.Category
	byName   map[string]*model.Category
	children map[int64][]*model.Category
	rules    map[int64]*model.FeeRule
	mu       sync.RWMutex
}

// NewStore creates an empty taxonomy store.
func NewStore() *Store {
	return &Store{
		byID:     make(map[int64]*model.Category),
		byName:   make(map[string]*model.Category),
		children: make(map[int64][]*model.Category),
		rules:    make(map[int64]*model.FeeRule),
	}
}

// Load builds a fresh snapshot from the reader and swaps it in. The leaf
// flag is recomputed from the loaded tree: a category is a leaf iff no
// children are present in the snapshot.
func (s *Store) Load(ctx context.Context, src service.TaxonomyReader) error {
	categories, err := src.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		return common.ErrEmptyTaxonomy
	}

	rules, err := src.GetFeeRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fee rules: %w", err)
	}

	byID := make(map[int64]*model.Category, len(categories))
	byName := make(map[string]*model.Category, len(categories))
	children := make(map[int64][]*model.Category)
	for i := range categories {
		cat := &categories[i]
		byID[cat.ID] = cat
		byName[cat.Name] = cat
		if cat.ParentID != 0 {
			children[cat.ParentID] = append(children[cat.ParentID], cat)
		}
	}
	for _, siblings := range children {
		sort.Slice(siblings, func(i, j int) bool { return siblings[i].ID < siblings[j].ID })
	}
	for _, cat := range byID {
		cat.IsLeaf = len(children[cat.ID]) == 0
	}

	ruleMap := make(map[int64]*model.FeeRule, len(rules))
	for i := range rules {
		ruleMap[rules[i].CategoryID] = &rules[i]
	}

	s.mu.Lock()
	s.byID = byID
	s.byName = byName
	s.children = children
	s.rules = ruleMap
	s.mu.Unlock()

	return nil
}

// Category returns the category with the given id.
func (s *Store) Category(id int64) (*model.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat, ok := s.byID[id]
	return cat, ok
}

// CategoryByName returns the category with the given name.
func (s *Store) CategoryByName(name string) (*model.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat, ok := s.byName[name]
	return cat, ok
}

// Children returns the direct children of the given category, ordered by id.
func (s *Store) Children(id int64) []*model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.children[id]
}

// FeeRule returns the fee rule for the category, or the global standard
// flat rule when the category has no entry in the schedule. The standard
// rule is never tiered.
func (s *Store) FeeRule(id int64) model.FeeRule {
	s.mu.RLock()
	rule, ok := s.rules[id]
	s.mu.RUnlock()
	if !ok {
		return model.StandardFeeRule(id)
	}
	return *rule
}

// Size returns the number of categories in the snapshot.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
