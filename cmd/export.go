package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/export"
	"github.com/theirongolddev/roombudget/internal/model"
	"github.com/theirongolddev/roombudget/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOutput string
	flagExportQuote  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an estimate as an Excel workbook or PDF",
	Example: `  roombudget export -r bedroom -o bedroom.xlsx
  roombudget export --quote 3f2a --format pdf -o quote.pdf`,
	RunE: runExport,
}

func init() {
	addEstimateFlags(exportCmd)
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "xlsx or pdf (default from the output extension)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (required)")
	exportCmd.Flags().StringVar(&flagExportQuote, "quote", "", "Export a saved quote by ID prefix instead of a new estimate")
	_ = exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := exportFormat(flagExportFormat, flagExportOutput)
	if err != nil {
		return err
	}

	rc, err := loadRunContext()
	if err != nil {
		return err
	}

	var est model.Estimate
	if flagExportQuote != "" {
		hist, err := store.Open(config.HistoryPath())
		if err != nil {
			return err
		}
		defer func() { _ = hist.Close() }()
		q, err := hist.GetQuote(flagExportQuote)
		if err != nil {
			return fmt.Errorf("loading quote %s: %w", flagExportQuote, err)
		}
		est = q.Estimate
	} else {
		est, err = buildEstimate(cmd, rc)
		if err != nil {
			return err
		}
	}

	data := export.BuildData(rc.cat, est)
	var out []byte
	switch format {
	case "xlsx":
		out, err = export.GenerateExcel(data)
	case "pdf":
		out, err = export.GeneratePDF(data)
	}
	if err != nil {
		return fmt.Errorf("generating %s: %w", format, err)
	}

	if err := os.WriteFile(flagExportOutput, out, 0o644); err != nil { //nolint:gosec // user-requested output file
		return fmt.Errorf("writing %s: %w", flagExportOutput, err)
	}
	notef("  Wrote %s (%d bytes)\n", flagExportOutput, len(out))
	return nil
}

// exportFormat resolves the format from the flag or the output extension.
func exportFormat(flag, output string) (string, error) {
	f := strings.ToLower(flag)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch f {
	case "xlsx", "excel":
		return "xlsx", nil
	case "pdf":
		return "pdf", nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want xlsx or pdf)", f)
	}
}
