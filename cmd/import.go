package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tlc-leads/dealerseed/internal/importer"
	"github.com/tlc-leads/dealerseed/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <spreadsheet.xlsx> [output.json]",
	Short: "Convert the dealer roster spreadsheet into normalized JSON",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		excelPath := args[0]
		outputPath := cfg.Import.DefaultOutput
		if len(args) > 1 {
			outputPath = args[1]
		}

		if _, err := os.Stat(excelPath); err != nil {
			return eris.Wrapf(err, "import: file not found: %s", excelPath)
		}

		fmt.Printf("Reading: %s\n", excelPath)

		dealers, summary, err := importer.Import(excelPath, importer.Options{
			RosterSheet:   cfg.Import.RosterSheet,
			PrioritySheet: cfg.Import.PrioritySheet,
		})
		if err != nil {
			return eris.Wrap(err, "import")
		}

		fmt.Printf("   %s sheet: %d rows\n", cfg.Import.RosterSheet, summary.RosterRows)
		fmt.Printf("   %s sheet: %d rows\n", cfg.Import.PrioritySheet, summary.PriorityRows)

		if len(summary.DuplicateIDs) > 0 {
			fmt.Printf("Handling %d duplicate IDs: %s\n",
				len(summary.DuplicateIDs), strings.Join(summary.DuplicateIDs, ", "))
		}

		fmt.Printf("\nProcessed %d dealers\n", summary.Total)
		fmt.Printf("   Top 50 flagged: %d\n", summary.Top50)
		fmt.Printf("   Missing email:  %d\n", summary.MissingEmail)
		fmt.Printf("   Missing ZIP:    %d\n", summary.MissingZip)
		fmt.Printf("   States (%d): %s\n", len(summary.States), strings.Join(summary.States, ", "))

		if err := store.WriteDealers(outputPath, dealers); err != nil {
			return eris.Wrap(err, "import")
		}
		fmt.Printf("\nSaved to: %s\n", outputPath)

		// Echo the first record for manual verification.
		if len(dealers) > 0 {
			sample, err := json.MarshalIndent(dealers[0], "", "  ")
			if err != nil {
				return eris.Wrap(err, "import: marshal sample")
			}
			fmt.Printf("\nSample dealer:\n%s\n", sample)
		}

		zap.L().Info("import complete",
			zap.Int("dealers", summary.Total),
			zap.String("output", outputPath),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
