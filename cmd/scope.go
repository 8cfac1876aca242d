package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/roombudget/internal/cli"
	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/model"

	"github.com/spf13/cobra"
)

var flagScopeRooms string

var scopeCmd = &cobra.Command{
	Use:     "scope",
	Short:   "Project a whole-home budget from room counts",
	Example: "  roombudget scope --rooms living=1,bedroom=3,dining=1 -b birchLane",
	RunE:    runScope,
}

func init() {
	scopeCmd.Flags().StringVar(&flagScopeRooms, "rooms", "", "Room counts, room=n[,room=n...] (default: the configured room once)")
	scopeCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the projection as JSON")
	rootCmd.AddCommand(scopeCmd)
}

func runScope(_ *cobra.Command, _ []string) error {
	rc, err := loadRunContext()
	if err != nil {
		return err
	}

	counts := []model.RoomCount{{Room: rc.room, Count: 1}}
	if flagScopeRooms != "" {
		counts, err = parseRoomCounts(flagScopeRooms)
		if err != nil {
			return err
		}
	}

	scope, err := estimate.ComputeWholeScope(rc.cat, counts, rc.brand)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scope)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("WHOLE HOME  " + rc.cat.BrandLabel(rc.brand)))
	fmt.Println()

	rows := make([][]string, 0, len(scope.Rooms))
	for _, r := range scope.Rooms {
		rows = append(rows, []string{
			r.Label,
			strconv.Itoa(r.Count),
			cli.FormatCurrency(r.Lowest),
			cli.FormatCurrency(r.Blended),
			cli.FormatCurrency(r.Highest),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Room", "Count", "Good", "Better", "Best"},
		Rows:    rows,
		Footer: []string{
			"Total", "",
			cli.FormatCurrency(scope.Lowest),
			cli.FormatCurrency(scope.Blended),
			cli.FormatCurrency(scope.Highest),
		},
	}))

	if scope.Highest > 0 {
		fmt.Println()
		for _, r := range scope.Rooms {
			fmt.Println(cli.RenderHorizontalBar(r.Label, r.Blended, scope.Blended, 30))
		}
	}
	notef("\n  Catalog defaults only; merchandise before delivery, tax and contingency.\n")
	return nil
}

// parseRoomCounts parses "living=1,bedroom=3". Negative counts are rejected.
func parseRoomCounts(s string) ([]model.RoomCount, error) {
	var counts []model.RoomCount
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		room, raw, ok := strings.Cut(part, "=")
		if !ok {
			// A bare room key counts once.
			room, raw = part, "1"
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("--rooms %q: count must be a whole number", part)
		}
		if n < 0 {
			return nil, fmt.Errorf("--rooms %q: count must not be negative", part)
		}
		counts = append(counts, model.RoomCount{Room: strings.TrimSpace(room), Count: n})
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("--rooms: no rooms given")
	}
	return counts, nil
}
