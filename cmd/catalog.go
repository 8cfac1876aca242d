package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/cli"

	"github.com/spf13/cobra"
)

var flagCatalogFormat string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the brand and room catalog",
	RunE:  runCatalogRooms,
}

var catalogRoomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List room presets",
	RunE:  runCatalogRooms,
}

var catalogBrandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List brands",
	RunE:  runCatalogBrands,
}

var catalogItemsCmd = &cobra.Command{
	Use:   "items [ROOM]",
	Short: "List a room's items with price ranges for the selected brand",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogItems,
}

var catalogDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the active catalog as TOML or YAML (a starting point for --catalog)",
	RunE:  runCatalogDump,
}

func init() {
	catalogDumpCmd.Flags().StringVarP(&flagCatalogFormat, "format", "f", "toml", "Output format: toml|yaml")

	catalogCmd.AddCommand(catalogRoomsCmd, catalogBrandsCmd, catalogItemsCmd, catalogDumpCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogRooms(_ *cobra.Command, _ []string) error {
	rc, err := loadRunContext()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(rc.cat.Rooms))
	for _, r := range rc.cat.Rooms {
		enabled := 0
		for _, it := range r.Items {
			if it.DefaultEnabled() {
				enabled++
			}
		}
		rows = append(rows, []string{r.Key, r.Label, strconv.Itoa(len(r.Items)), strconv.Itoa(enabled)})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Rooms",
		Headers: []string{"Key", "Room", "Items", "Default"},
		Rows:    rows,
	}))
	return nil
}

func runCatalogBrands(_ *cobra.Command, _ []string) error {
	rc, err := loadRunContext()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(rc.cat.Brands))
	for _, b := range rc.cat.Brands {
		rows = append(rows, []string{b.Key, b.Label, b.Note})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Brands",
		Headers: []string{"Key", "Brand", "Note"},
		Rows:    rows,
	}))
	return nil
}

func runCatalogItems(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		flagRoom = args[0]
	}
	rc, err := loadRunContext()
	if err != nil {
		return err
	}
	room, _ := rc.cat.Room(rc.room)

	rows := make([][]string, 0, len(room.Items))
	for _, it := range room.Items {
		r, _ := it.RangeFor(rc.brand)
		def := ""
		switch {
		case it.Required:
			def = "required"
		case it.DefaultEnabled():
			def = "on"
		}
		rows = append(rows, []string{
			it.Key, it.Label,
			strconv.Itoa(it.DefaultQuantity()),
			def,
			cli.FormatRange(r),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s · %s", room.Label, rc.cat.BrandLabel(rc.brand)),
		Headers: []string{"Key", "Item", "Qty", "Default", "Range"},
		Rows:    rows,
	}))
	return nil
}

func runCatalogDump(_ *cobra.Command, _ []string) error {
	rc, err := loadRunContext()
	if err != nil {
		return err
	}

	var format catalog.Format
	switch flagCatalogFormat {
	case "toml":
		format = catalog.FormatTOML
	case "yaml", "yml":
		format = catalog.FormatYAML
	default:
		return fmt.Errorf("unknown format %q (want toml or yaml)", flagCatalogFormat)
	}
	return catalog.Encode(os.Stdout, rc.cat, format)
}
