package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/roombudget/internal/cli"
	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagHistoryYes   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved quotes",
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved quotes, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a saved quote by ID or unique ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved quotes",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.PersistentFlags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Max quotes to list (0 for all)")
	historyShowCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the quote as JSON")
	historyClearCmd.Flags().BoolVarP(&flagHistoryYes, "yes", "y", false, "Skip the confirmation")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*store.History, error) {
	return store.Open(config.HistoryPath())
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	hist, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	quotes, err := hist.ListQuotes(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(quotes) == 0 {
		fmt.Println("\n  No saved quotes yet. Run `roombudget estimate --save` to record one.")
		return nil
	}

	cat, err := currentCatalog()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		s := q.Estimate.Session
		room := s.Room
		if r, ok := cat.Room(s.Room); ok {
			room = r.Label
		}
		rows = append(rows, []string{
			q.ID[:8],
			humanize.Time(q.CreatedAt),
			room,
			cat.BrandLabel(s.Brand),
			s.Tier.Label(),
			cli.FormatCurrency(q.Estimate.Totals.Total),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Saved quotes",
		Headers: []string{"ID", "Saved", "Room", "Brand", "Tier", "Total"},
		Rows:    rows,
	}))
	return nil
}

func runHistoryShow(_ *cobra.Command, args []string) error {
	hist, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	q, err := hist.GetQuote(args[0])
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("no quote matches %q", args[0])
	case errors.Is(err, store.ErrAmbiguous):
		return fmt.Errorf("%q matches more than one quote; use a longer prefix", args[0])
	case err != nil:
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	}

	cat, err := currentCatalog()
	if err != nil {
		return err
	}
	printEstimate(cat, q.Estimate)
	fmt.Printf("\n  Quote %s saved %s\n", q.ID, q.CreatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	hist, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	if !flagHistoryYes {
		n, err := hist.Count()
		if err != nil {
			return err
		}
		fmt.Printf("  Delete %d saved quotes? [y/N] ", n)
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	n, err := hist.DeleteAll()
	if err != nil {
		return err
	}
	fmt.Printf("  Deleted %d quotes.\n", n)
	return nil
}
