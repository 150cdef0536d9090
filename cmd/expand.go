package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tlc-leads/dealerseed/internal/coverage"
	"github.com/tlc-leads/dealerseed/internal/geonames"
	"github.com/tlc-leads/dealerseed/internal/model"
	"github.com/tlc-leads/dealerseed/internal/store"
)

const progressEvery = 20

var expandCmd = &cobra.Command{
	Use:   "expand [radius_miles] [input.json] [output.json]",
	Short: "Expand dealer coverage to all ZIP codes within a radius",
	Long: `Reads a dealer JSON array, looks up each dealer's ZIP in the geonames
postal-code table (downloaded and cached on first run), and replaces
coverage_zips with every ZIP within the given great-circle radius.`,
	Args: cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		radiusMiles, inputPath, outputPath, err := expandArgs(args)
		if err != nil {
			return err
		}

		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("Dealer Coverage Expansion")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("Radius: %d miles\n", radiusMiles)
		fmt.Printf("Input:  %s\n", inputPath)
		fmt.Printf("Output: %s\n", outputPath)

		fmt.Println("\nLoading US ZIP code table...")
		src, err := geonames.Load(ctx, cfg.Geonames.URL, cfg.Geonames.CacheDir)
		if err != nil {
			return eris.Wrap(err, "expand: load reference table")
		}
		fmt.Printf("   Loaded %d ZIP codes with coordinates\n", src.Len())

		dealers, err := store.ReadDealers(inputPath)
		if err != nil {
			return eris.Wrap(err, "expand")
		}
		fmt.Printf("\nLoaded %d dealers from %s\n", len(dealers), inputPath)

		fmt.Printf("\nExpanding coverage to %d mile radius...\n", radiusMiles)
		stats := coverage.Expand(dealers, radiusMiles, src, func(done, total int) {
			if done%progressEvery == 0 || done == total {
				fmt.Printf("   Processed %d/%d dealers...\n", done, total)
			}
		})

		if err := store.WriteDealers(outputPath, dealers); err != nil {
			return eris.Wrap(err, "expand")
		}
		fmt.Printf("\nSaved to %s\n", outputPath)

		printExpandSummary(stats, dealers)

		zap.L().Info("expand complete",
			zap.Int("radius_miles", radiusMiles),
			zap.Int("expanded", stats.Expanded),
			zap.Int("skipped_no_zip", stats.SkippedNoZip),
			zap.Int("skipped_not_found", stats.SkippedNotFound),
			zap.String("output", outputPath),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

// expandArgs resolves the three optional positionals against config
// defaults: radius, input path, output path.
func expandArgs(args []string) (int, string, string, error) {
	radius := cfg.Expand.DefaultRadiusMiles
	input := cfg.Expand.DefaultInput
	output := cfg.Expand.DefaultOutput

	if len(args) > 0 {
		r, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, "", "", eris.Errorf("expand: radius must be an integer, got %q", args[0])
		}
		radius = r
	}
	if len(args) > 1 {
		input = args[1]
	}
	if len(args) > 2 {
		output = args[2]
	}
	return radius, input, output, nil
}

func printExpandSummary(stats coverage.Stats, dealers []model.Dealer) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("   Dealers expanded:     %d\n", stats.Expanded)
	fmt.Printf("   Skipped (no ZIP):     %d\n", stats.SkippedNoZip)
	fmt.Printf("   Skipped (not found):  %d\n", stats.SkippedNotFound)
	fmt.Printf("   Total coverage ZIPs:  %d\n", stats.TotalZips)
	if stats.Expanded > 0 {
		fmt.Printf("   Avg ZIPs per dealer:  %d\n", stats.Avg())
		fmt.Printf("   Min coverage:         %d ZIPs\n", stats.MinCoverage)
		fmt.Printf("   Max coverage:         %d ZIPs\n", stats.MaxCoverage)
	}

	// Show a few dealers with substantial coverage for spot checking.
	shown := 0
	for _, d := range dealers {
		if len(d.CoverageZips) <= 10 {
			continue
		}
		fmt.Printf("\n   %s\n", d.DealerName)
		if d.Address.City != nil && d.Address.State != nil && d.Address.Zip != nil {
			fmt.Printf("   - %s, %s %s\n", *d.Address.City, *d.Address.State, *d.Address.Zip)
		}
		preview := d.CoverageZips
		if len(preview) > 8 {
			preview = preview[:8]
		}
		fmt.Printf("   - Covers %d ZIPs: %s...\n", len(d.CoverageZips), strings.Join(preview, ", "))
		shown++
		if shown == 3 {
			break
		}
	}

	fmt.Println("\nNOTE: when dealers have overlapping coverage, leads route to")
	fmt.Println("the dealer with the highest priority_weight (Top 50 = 100).")
}
