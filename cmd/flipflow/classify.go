package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flipflow/flipflow/internal/engine"
	"github.com/flipflow/flipflow/internal/model"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [title]",
		Short: "Resolve a product to a marketplace category",
		Long: `Resolve a free-text product description to a destination category.

A single title is classified directly; --file classifies a JSON array of
products in one batch, recording each item's outcome independently.

Examples:
  flipflow classify "iPhone 14 Pro 128GB"
  flipflow classify "Seiko 5 Automatic" --brand Seiko
  flipflow classify --file scraped.json`,
		RunE: runClassify,
	}

	cmd.Flags().StringP("brand", "b", "", "Product brand")
	cmd.Flags().StringP("description", "d", "", "Product description")
	cmd.Flags().StringP("file", "f", "", "JSON file with an array of products to classify")

	_ = viper.BindPFlag("classify.brand", cmd.Flags().Lookup("brand"))
	_ = viper.BindPFlag("classify.description", cmd.Flags().Lookup("description"))
	_ = viper.BindPFlag("classify.file", cmd.Flags().Lookup("file"))

	return cmd
}

// batchProduct is the wire shape of one entry in a --file input.
type batchProduct struct {
	Title          string  `json:"title"`
	Brand          string  `json:"brand,omitempty"`
	Description    string  `json:"description,omitempty"`
	SourceCategory string  `json:"source_category,omitempty"`
	SourcePrice    float64 `json:"source_price,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	file := viper.GetString("classify.file")

	if file == "" && len(args) == 0 {
		return fmt.Errorf("provide a product title or --file")
	}

	db, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	eng, _, err := buildEngine(ctx, db)
	if err != nil {
		return err
	}

	if file != "" {
		return runClassifyBatch(cmd, eng, file)
	}

	product := model.ProductInfo{
		Title:       args[0],
		Brand:       viper.GetString("classify.brand"),
		Description: viper.GetString("classify.description"),
	}

	cls, err := eng.Classify(ctx, product)
	if err != nil {
		return err
	}

	cmd.Println(titleStyle.Render("Classification"))
	cmd.Printf("  Category:   %s (%d)\n", cls.CategoryName, cls.CategoryID)
	cmd.Printf("  Confidence: %.0f\n", cls.Confidence)
	cmd.Printf("  Method:     %s\n", subtleStyle.Render(string(cls.Method)))
	return nil
}

func runClassifyBatch(cmd *cobra.Command, eng *engine.Engine, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var entries []batchProduct
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}

	products := make([]model.ProductInfo, len(entries))
	for i, entry := range entries {
		products[i] = model.ProductInfo{
			Title:          entry.Title,
			Brand:          entry.Brand,
			Description:    entry.Description,
			SourceCategory: entry.SourceCategory,
			SourcePrice:    entry.SourcePrice,
		}
	}

	bar := progressbar.Default(int64(len(products)), "classifying")
	result, err := eng.ClassifyBatch(cmd.Context(), products, engine.BatchOptions{
		OnItem: func(_ engine.BatchItem) {
			_ = bar.Add(1)
		},
	})
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Println(titleStyle.Render(fmt.Sprintf("Batch %s", result.RunID)))
	for _, item := range result.Items {
		if item.Ok {
			cmd.Printf("  %s %-50s -> %s (%.0f, %s)\n",
				successStyle.Render("ok"), truncate(products[item.Index].Title, 50),
				item.Result.CategoryName, item.Result.Confidence, item.Result.Method)
		} else {
			cmd.Printf("  %s %-50s %s\n",
				errorStyle.Render("err"), truncate(products[item.Index].Title, 50), item.Error)
		}
	}
	cmd.Printf("\n%d items: %s, %s\n",
		result.TotalItems,
		successStyle.Render(fmt.Sprintf("%d ok", result.SuccessCount)),
		errorStyle.Render(fmt.Sprintf("%d failed", result.ErrorCount)))
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
