package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flipflow/flipflow/internal/model"
)

func taxonomyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Manage the category tree and fee schedule",
	}

	cmd.AddCommand(taxonomyImportCmd())
	cmd.AddCommand(taxonomyShowCmd())

	return cmd
}

// taxonomyRecord is the wire shape the external importer supplies:
// category fields plus optional fee fields, one record per category.
type taxonomyRecord struct {
	Tier1Percent *float64 `json:"tier1_percent,omitempty"`
	Tier1Max     *float64 `json:"tier1_max,omitempty"`
	Tier2Percent *float64 `json:"tier2_percent,omitempty"`
	FeePercent   *float64 `json:"fee_percent,omitempty"`
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	ID           int64    `json:"id"`
	ParentID     int64    `json:"parent_id"`
	Level        int      `json:"level"`
	IsLeaf       bool     `json:"is_leaf"`
}

func taxonomyImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Bulk-load a taxonomy snapshot",
		Long: `Replace the stored category tree and fee schedule with the snapshot in
the given JSON file. This is the importer side of the collaborator
contract: category ids are trusted to be unique within the snapshot, and
categories without a fee_percent use the standard flat rate.`,
		Args: cobra.ExactArgs(1),
		RunE: runTaxonomyImport,
	}
}

func runTaxonomyImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var records []taxonomyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse taxonomy file: %w", err)
	}

	categories := make([]model.Category, 0, len(records))
	var rules []model.FeeRule
	for _, rec := range records {
		categories = append(categories, model.Category{
			ID:       rec.ID,
			Name:     rec.Name,
			Path:     rec.Path,
			ParentID: rec.ParentID,
			Level:    rec.Level,
			IsLeaf:   rec.IsLeaf,
		})
		if rec.FeePercent != nil {
			rules = append(rules, model.FeeRule{
				CategoryID:   rec.ID,
				BasePercent:  *rec.FeePercent,
				Tier1Percent: rec.Tier1Percent,
				Tier1Max:     rec.Tier1Max,
				Tier2Percent: rec.Tier2Percent,
			})
		}
	}

	db, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	if err := db.ReplaceTaxonomy(ctx, categories, rules); err != nil {
		return err
	}

	cmd.Println(successStyle.Render(fmt.Sprintf("Imported %d categories, %d fee rules", len(categories), len(rules))))
	return nil
}

func taxonomyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the loaded taxonomy snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			categories, err := db.GetCategories(ctx)
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				cmd.Println(warningStyle.Render("No taxonomy loaded"))
				return nil
			}

			cmd.Println(titleStyle.Render(fmt.Sprintf("Taxonomy (%d categories)", len(categories))))
			for _, cat := range categories {
				leaf := " "
				if cat.IsLeaf {
					leaf = "*"
				}
				name := cat.Name
				if !cat.IsRoot() {
					name = subtleStyle.Render("└ ") + name
				}
				cmd.Printf("  %s %7d  %s\n", leaf, cat.ID, name)
			}
			return nil
		},
	}
}
