package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listing-cli/internal/csvio"
)

var (
	fixInput     string
	fixOutputDir string
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair enriched CSVs produced before the output format settled",
	Long: `Normalizes phone columns to +1 form, drops Additional Phones entries that
duplicate the main Phone, and splits combined Email columns. Accepts a single
CSV or a directory of CSVs.

Examples:
  listing-cli fix --input old-output.csv
  listing-cli fix --input exports/ --output-dir exports/fixed`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		info, err := os.Stat(fixInput)
		if err != nil {
			return eris.Wrapf(err, "fix: stat %s", fixInput)
		}

		if info.IsDir() {
			fixed, err := csvio.FixDir(fixInput, fixOutputDir)
			if err != nil {
				return err
			}
			zap.L().Info("fix complete", zap.Int("files", len(fixed)), zap.String("output_dir", fixOutputDir))
			return nil
		}

		out, err := csvio.FixFile(fixInput, fixOutputDir)
		if err != nil {
			return err
		}
		zap.L().Info("fix complete", zap.String("output", out))
		return nil
	},
}

func init() {
	fixCmd.Flags().StringVar(&fixInput, "input", "", "CSV file or directory to repair (required)")
	fixCmd.Flags().StringVar(&fixOutputDir, "output-dir", "fixed", "directory for repaired files")
	_ = fixCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(fixCmd)
}
