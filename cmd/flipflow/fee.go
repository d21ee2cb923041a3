package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flipflow/flipflow/internal/fees"
)

func feeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fee <category-id> <sale-price>",
		Short: "Compute the marketplace fee for a sale",
		Long: `Compute the marketplace's take for selling at a price in a category.

Categories without a fee rule use the standard flat rate. Tiered rules
apply the tier1 percentage up to the threshold and the tier2 percentage
beyond it.

Examples:
  flipflow fee 9355 499.99
  flipflow fee 281 7000`,
		Args: cobra.ExactArgs(2),
		RunE: runFee,
	}
}

func runFee(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	categoryID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid category id %q: %w", args[0], err)
	}
	salePrice, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid sale price %q: %w", args[1], err)
	}

	db, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	_, tax, err := buildEngine(ctx, db)
	if err != nil {
		return err
	}

	calc := fees.NewCalculator(tax)
	result, err := calc.Compute(categoryID, salePrice)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("category %d", categoryID)
	if cat, ok := tax.Category(categoryID); ok {
		name = cat.Name
	}

	cmd.Println(titleStyle.Render("Fee"))
	cmd.Printf("  Category:  %s\n", name)
	cmd.Printf("  Price:     $%.2f\n", salePrice)
	cmd.Printf("  Fee:       %s\n", successStyle.Render(fmt.Sprintf("$%.2f", result.FeeAmount)))
	cmd.Printf("  Effective: %.2f%%\n", result.EffectivePercent)
	if result.Breakdown.Tiered {
		cmd.Println(subtleStyle.Render(fmt.Sprintf("  tier1 $%.2f on $%.2f, tier2 $%.2f on $%.2f",
			result.Breakdown.Tier1Fee, result.Breakdown.Tier1Amount,
			result.Breakdown.Tier2Fee, result.Breakdown.Tier2Amount)))
	}
	return nil
}
