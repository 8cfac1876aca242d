package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/cli"
	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/export"
	"github.com/theirongolddev/roombudget/internal/model"
	"github.com/theirongolddev/roombudget/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagQty     []string
	flagEnable  []string
	flagDisable []string
	flagPrice   []string

	flagDelivery    float64
	flagWhiteGlove  bool
	flagAssembly    float64
	flagProtection  float64
	flagTax         float64
	flagContingency float64
	flagPromo       float64

	flagSave bool
	flagJSON bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the budget for one room",
	Example: `  roombudget estimate -r living -t better
  roombudget estimate --enable sectional --qty accentChair=1 --tax 8.875
  roombudget estimate -t custom --price sofa=1800 --json`,
	RunE: runEstimate,
}

func init() {
	addEstimateFlags(estimateCmd)
	estimateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the estimate in quote history")
	estimateCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the estimate as JSON")
	rootCmd.AddCommand(estimateCmd)
}

// addEstimateFlags registers the selection and add-on flags shared by every
// command that builds a room estimate.
func addEstimateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVar(&flagQty, "qty", nil, "Set item quantity, key=n (repeatable; n>0 also includes the item)")
	f.StringArrayVar(&flagEnable, "enable", nil, "Include an item (repeatable)")
	f.StringArrayVar(&flagDisable, "disable", nil, "Exclude an item (repeatable)")
	f.StringArrayVar(&flagPrice, "price", nil, "Custom unit price, key=n (repeatable; used with --tier custom)")

	f.Float64Var(&flagDelivery, "delivery", 0, "Delivery rate in percent")
	f.BoolVar(&flagWhiteGlove, "white-glove", false, "White-glove delivery (at least 6%)")
	f.Float64Var(&flagAssembly, "assembly", 0, "Assembly rate in percent")
	f.Float64Var(&flagProtection, "protection", 0, "Protection plan rate in percent")
	f.Float64Var(&flagTax, "tax", 0, "Sales tax rate in percent")
	f.Float64Var(&flagContingency, "contingency", 0, "Contingency rate in percent")
	f.Float64Var(&flagPromo, "promo", 0, "Flat promo discount in currency units")
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	rc, err := loadRunContext()
	if err != nil {
		return err
	}

	est, err := buildEstimate(cmd, rc)
	if err != nil {
		return err
	}

	var quote *store.Quote
	if flagSave {
		q, err := saveQuote(rc.cfg, est)
		if err != nil {
			return err
		}
		quote = &q
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if quote != nil {
			return enc.Encode(quote)
		}
		return enc.Encode(est)
	}

	printEstimate(rc.cat, est)
	if quote != nil {
		fmt.Printf("\n  Saved quote %s\n", quote.ID)
	}
	return nil
}

// buildEstimate builds a session from config defaults and flags, then
// evaluates it.
func buildEstimate(cmd *cobra.Command, rc runContext) (model.Estimate, error) {
	s := estimate.NewSession(rc.cat, rc.brand, rc.room)
	s = estimate.SetTier(s, rc.tier)
	addOns, err := addOnsFromFlags(cmd, rc.cfg.AddOns)
	if err != nil {
		return model.Estimate{}, err
	}
	s.AddOns = addOns

	room, _ := rc.cat.Room(rc.room)
	s, err = applySelectionFlags(s, room, selectionFlags{
		qty:     flagQty,
		enable:  flagEnable,
		disable: flagDisable,
		price:   flagPrice,
	})
	if err != nil {
		return model.Estimate{}, err
	}
	if len(flagPrice) > 0 && s.Tier != model.TierCustom {
		notef("  Note: --price only applies with --tier custom\n")
	}

	return estimate.Evaluate(rc.cat, s)
}

// addOnsFromFlags starts from configured defaults and overrides each rate
// whose flag was set. Negatives clamp to 0; NaN and infinities are rejected.
func addOnsFromFlags(cmd *cobra.Command, defaults config.AddOnsConfig) (model.AddOns, error) {
	a := defaults.ToModel()
	f := cmd.Flags()
	rates := []struct {
		name string
		dst  *float64
		v    float64
	}{
		{"delivery", &a.DeliveryPct, flagDelivery},
		{"assembly", &a.AssemblyPct, flagAssembly},
		{"protection", &a.ProtectionPct, flagProtection},
		{"tax", &a.TaxPct, flagTax},
		{"contingency", &a.ContingencyPct, flagContingency},
		{"promo", &a.Promo, flagPromo},
	}
	for _, r := range rates {
		if !f.Changed(r.name) {
			continue
		}
		if !isFinite(r.v) {
			return a, fmt.Errorf("--%s: must be a finite number", r.name)
		}
		*r.dst = max(r.v, 0)
	}
	if f.Changed("white-glove") {
		a.WhiteGlove = flagWhiteGlove
	}
	return a, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type selectionFlags struct {
	qty     []string
	enable  []string
	disable []string
	price   []string
}

// applySelectionFlags applies item flags in order: enable, qty, price, then
// disable, so an explicit --disable always wins.
func applySelectionFlags(s model.Session, room catalog.RoomDef, sf selectionFlags) (model.Session, error) {
	checkItem := func(key string) error {
		if _, ok := room.Item(key); !ok {
			return fmt.Errorf("unknown item %q in room %q", key, room.Key)
		}
		return nil
	}
	setEnabled := func(key string, on bool) {
		if s.Selection[key].Enabled != on {
			s = estimate.ToggleItem(s, key)
		}
	}

	for _, key := range sf.enable {
		if err := checkItem(key); err != nil {
			return s, err
		}
		setEnabled(key, true)
	}

	qtys, err := parseKeyValues("qty", sf.qty)
	if err != nil {
		return s, err
	}
	for _, kv := range qtys {
		if err := checkItem(kv.key); err != nil {
			return s, err
		}
		if kv.value != float64(int(kv.value)) {
			return s, fmt.Errorf("--qty %s: quantity must be a whole number", kv.key)
		}
		s = estimate.SetQuantity(s, kv.key, int(kv.value))
		if kv.value > 0 {
			setEnabled(kv.key, true)
		}
	}

	prices, err := parseKeyValues("price", sf.price)
	if err != nil {
		return s, err
	}
	for _, kv := range prices {
		if err := checkItem(kv.key); err != nil {
			return s, err
		}
		p := kv.value
		s = estimate.SetCustomPrice(s, kv.key, &p)
	}

	for _, key := range sf.disable {
		if err := checkItem(key); err != nil {
			return s, err
		}
		setEnabled(key, false)
	}
	return s, nil
}

type keyValue struct {
	key   string
	value float64
}

// parseKeyValues parses key=n pairs. Each flag value may also hold a
// comma-separated list.
func parseKeyValues(flag string, vals []string) ([]keyValue, error) {
	var out []keyValue
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			key, raw, ok := strings.Cut(part, "=")
			if !ok || key == "" {
				return nil, fmt.Errorf("--%s %q: want key=number", flag, part)
			}
			n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("--%s %q: %w", flag, part, err)
			}
			if !isFinite(n) {
				return nil, fmt.Errorf("--%s %q: must be a finite number", flag, part)
			}
			out = append(out, keyValue{key: strings.TrimSpace(key), value: n})
		}
	}
	return out, nil
}

func saveQuote(cfg config.Config, est model.Estimate) (store.Quote, error) {
	if !cfg.History.Enabled {
		return store.Quote{}, fmt.Errorf("quote history is disabled in %s", config.ConfigPath())
	}
	hist, err := store.Open(config.HistoryPath())
	if err != nil {
		return store.Quote{}, err
	}
	defer func() { _ = hist.Close() }()
	return hist.SaveQuote(est)
}

func printEstimate(cat catalog.Catalog, est model.Estimate) {
	data := export.BuildData(cat, est)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s · %s", strings.ToUpper(data.Room), data.Brand, data.Tier)))
	fmt.Println()

	if len(data.Rows) == 0 {
		fmt.Println("  No items included. Use --enable or --qty to add some.")
	} else {
		rows := make([][]string, 0, len(data.Rows))
		for _, r := range data.Rows {
			rows = append(rows, []string{
				r.Item,
				strconv.Itoa(r.Qty),
				r.Range,
				cli.FormatCurrency(r.UnitPrice),
				cli.FormatCurrency(r.Subtotal),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Item", "Qty", "Range", "Unit", "Subtotal"},
			Rows:    rows,
		}))
	}
	fmt.Println()

	rows := make([][]string, 0, len(data.Summary))
	for _, r := range data.Summary {
		rows = append(rows, []string{r.Label, cli.FormatCurrency(r.Amount)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Totals", "Amount"},
		Rows:    rows,
		Footer:  []string{"Total", cli.FormatCurrency(data.Total)},
	}))

	printExcluded(cat, est)
}

// printExcluded lists catalog items left out of the estimate.
func printExcluded(cat catalog.Catalog, est model.Estimate) {
	room, ok := cat.Room(est.Session.Room)
	if !ok {
		return
	}
	included := make(map[string]bool, len(est.Lines))
	for _, l := range est.Lines {
		included[l.Key] = true
	}
	var keys []string
	for _, it := range room.Items {
		if !included[it.Key] {
			keys = append(keys, it.Key)
		}
	}
	if len(keys) == 0 {
		return
	}
	notef("\n  Not included: %s\n", strings.Join(keys, ", "))
}
