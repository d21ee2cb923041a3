package engine

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flipflow/flipflow/internal/model"
)

// BatchItem is the per-item outcome of a batch run. One item's failure
// never aborts its siblings.
type BatchItem struct {
	Result *model.Classification
	Error  string
	Index  int
	Ok     bool
}

// BatchResult aggregates a batch classification run.
type BatchResult struct {
	RunID        string
	Items        []BatchItem
	TotalItems   int
	SuccessCount int
	ErrorCount   int
}

// BatchOptions customizes a batch run.
type BatchOptions struct {
	// OnItem is invoked after each item completes, for progress reporting.
	OnItem func(item BatchItem)
	// ChunkSize overrides the engine's configured chunk size.
	ChunkSize int
}

// ClassifyBatch classifies products in chunks, recording each item's
// outcome independently so failed items can be retried without
// reprocessing the whole set. Only context cancellation stops the run.
func (e *Engine) ClassifyBatch(ctx context.Context, products []model.ProductInfo, opts BatchOptions) (*BatchResult, error) {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = e.cfg.ChunkSize
	}

	result := &BatchResult{
		RunID:      uuid.NewString(),
		Items:      make([]BatchItem, 0, len(products)),
		TotalItems: len(products),
	}

	slog.Info("Starting batch classification",
		"run_id", result.RunID,
		"items", len(products),
		"chunk_size", chunkSize)

	for start := 0; start < len(products); start += chunkSize {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		end := start + chunkSize
		if end > len(products) {
			end = len(products)
		}

		for i := start; i < end; i++ {
			item := BatchItem{Index: i}

			cls, err := e.Classify(ctx, products[i])
			if err != nil {
				item.Error = err.Error()
				result.ErrorCount++
			} else {
				item.Result = cls
				item.Ok = true
				result.SuccessCount++
			}

			result.Items = append(result.Items, item)
			if opts.OnItem != nil {
				opts.OnItem(item)
			}
		}
	}

	slog.Info("Batch classification complete",
		"run_id", result.RunID,
		"success", result.SuccessCount,
		"errors", result.ErrorCount)

	return result, nil
}
