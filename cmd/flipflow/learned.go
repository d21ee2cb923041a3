package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func learnedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learned",
		Short: "Inspect the learning cache",
	}

	cmd.AddCommand(learnedListCmd())
	cmd.AddCommand(learnedStatsCmd())

	return cmd
}

func learnedListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most used learning records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			records, err := db.GetTopLearningRecords(ctx, limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				cmd.Println(warningStyle.Render("Learning cache is empty"))
				return nil
			}

			cmd.Println(titleStyle.Render("Learning records"))
			for _, rec := range records {
				cmd.Printf("  %-50s -> %s (conf %.0f, used %d)\n",
					truncate(rec.Title, 50), rec.CategoryName, rec.Confidence, rec.UseCount)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum records to show")
	return cmd
}

func learnedStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate learning cache statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			stats, err := db.GetLearningStats(ctx)
			if err != nil {
				return err
			}

			cmd.Println(titleStyle.Render("Learning cache"))
			cmd.Printf("  Records:        %d\n", stats.TotalRecords)
			cmd.Printf("  Total uses:     %d\n", stats.TotalUses)
			cmd.Printf("  Avg confidence: %s\n", fmt.Sprintf("%.1f", stats.AvgConfidence))
			return nil
		},
	}
}
