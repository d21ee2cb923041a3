// Package keyword implements weighted keyword scoring of free-text
// product descriptions against the category tree.
package keyword

import (
	"sort"
	"strings"

	"github.com/flipflow/flipflow/internal/model"
)

// Config holds the scoring thresholds. The acceptance threshold of 15 and
// the [70,95] confidence clamp are canonical; earlier threshold-10
// variants are deliberately not reproduced.
type Config struct {
	Threshold            float64
	ConfidenceMultiplier float64
	MinConfidence        float64
	MaxConfidence        float64
}

// DefaultConfig returns the canonical scoring configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:            15,
		ConfidenceMultiplier: 5,
		MinConfidence:        70,
		MaxConfidence:        95,
	}
}

// Match is an accepted keyword-scoring result.
type Match struct {
	CategoryID int64
	Score      float64
	Distinct   int
	Confidence float64
}

// Index evaluates keyword associations against normalized text. It is
// immutable after construction and safe for concurrent use.
type Index struct {
	assocs []model.KeywordAssociation
	cfg    Config
}

// NewIndex builds an index over the given associations. Keywords are
// matched case-insensitively as substrings.
func NewIndex(assocs []model.KeywordAssociation, cfg Config) *Index {
	if cfg.Threshold <= 0 {
		cfg = DefaultConfig()
	}

	normalized := make([]model.KeywordAssociation, 0, len(assocs))
	for _, a := range assocs {
		a.Keyword = strings.ToLower(strings.TrimSpace(a.Keyword))
		if a.Keyword == "" {
			continue
		}
		if a.Weight <= 0 {
			a.Weight = 10
		}
		normalized = append(normalized, a)
	}

	return &Index{assocs: normalized, cfg: cfg}
}

// Len returns the number of indexed associations.
func (i *Index) Len() int {
	return len(i.assocs)
}

// candidate accumulates per-category scoring state.
type candidate struct {
	categoryID int64
	score      float64
	distinct   int
}

// Score evaluates the text against every association and returns the
// winning category, if any aggregate clears the acceptance threshold.
// Ties break on more distinct keyword matches, then on the lower
// category id, so results are deterministic.
func (i *Index) Score(text string) (*Match, bool) {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	scores := make(map[int64]*candidate)
	for _, a := range i.assocs {
		if !strings.Contains(text, a.Keyword) {
			continue
		}
		c, ok := scores[a.CategoryID]
		if !ok {
			c = &candidate{categoryID: a.CategoryID}
			scores[a.CategoryID] = c
		}
		c.score += a.Weight * a.Class.Multiplier()
		c.distinct++
	}

	if len(scores) == 0 {
		return nil, false
	}

	candidates := make([]*candidate, 0, len(scores))
	for _, c := range scores {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(x, y int) bool {
		a, b := candidates[x], candidates[y]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.distinct != b.distinct {
			return a.distinct > b.distinct
		}
		return a.categoryID < b.categoryID
	})

	best := candidates[0]
	if best.score < i.cfg.Threshold {
		return nil, false
	}

	return &Match{
		CategoryID: best.categoryID,
		Score:      best.score,
		Distinct:   best.distinct,
		Confidence: i.confidence(best.score),
	}, true
}

// confidence maps an aggregate score into the mandated [70,95] band.
func (i *Index) confidence(score float64) float64 {
	conf := score * i.cfg.ConfidenceMultiplier
	if conf < i.cfg.MinConfidence {
		conf = i.cfg.MinConfidence
	}
	if conf > i.cfg.MaxConfidence {
		conf = i.cfg.MaxConfidence
	}
	return conf
}
