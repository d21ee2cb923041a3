package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flipflow/flipflow/internal/keyword"
	"github.com/flipflow/flipflow/internal/model"
)

func keywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Manage keyword-to-category associations",
	}

	cmd.AddCommand(keywordsListCmd())
	cmd.AddCommand(keywordsAddCmd())
	cmd.AddCommand(keywordsSeedCmd())

	return cmd
}

func keywordsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List keyword associations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			assocs, err := db.GetKeywordAssociations(ctx)
			if err != nil {
				return err
			}
			if len(assocs) == 0 {
				cmd.Println(warningStyle.Render("No keyword associations (defaults are used at classify time)"))
				return nil
			}

			cmd.Println(titleStyle.Render(fmt.Sprintf("Keyword associations (%d)", len(assocs))))
			for _, a := range assocs {
				cmd.Printf("  %-25s -> %7d  %s (%.0f)\n", a.Keyword, a.CategoryID, a.Class, a.Weight)
			}
			return nil
		},
	}
}

func keywordsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <keyword> <category-id>",
		Short: "Add or update a keyword association",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			categoryID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", args[1], err)
			}

			class, _ := cmd.Flags().GetString("class")
			weight, _ := cmd.Flags().GetFloat64("weight")

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			assoc := &model.KeywordAssociation{
				Keyword:    args[0],
				CategoryID: categoryID,
				Class:      model.WeightClass(class),
				Weight:     weight,
			}
			if err := db.SaveKeywordAssociation(ctx, assoc); err != nil {
				return err
			}

			cmd.Println(successStyle.Render(fmt.Sprintf("Saved %q -> %d (%s)", args[0], categoryID, class)))
			return nil
		},
	}

	cmd.Flags().String("class", string(model.WeightSecondary), "weight class (primary, secondary, tertiary)")
	cmd.Flags().Float64("weight", 10, "base weight")

	return cmd
}

func keywordsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default keyword association set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			defaults := keyword.DefaultAssociations()
			for i := range defaults {
				if err := db.SaveKeywordAssociation(ctx, &defaults[i]); err != nil {
					return fmt.Errorf("failed to seed %q: %w", defaults[i].Keyword, err)
				}
			}

			cmd.Println(successStyle.Render(fmt.Sprintf("Seeded %d keyword associations", len(defaults))))
			return nil
		},
	}
}
