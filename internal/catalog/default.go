package catalog

// Brand keys of the built-in catalog.
const (
	BrandJossMain  = "jossMain"
	BrandAllModern = "allModern"
	BrandBirchLane = "birchLane"
)

func r(lo, hi float64) Range { return Range{Min: lo, Max: hi} }

func qty(n int) *int { return &n }

func ranges(jossMain, allModern, birchLane Range) map[string]Range {
	return map[string]Range{
		BrandJossMain:  jossMain,
		BrandAllModern: allModern,
		BrandBirchLane: birchLane,
	}
}

// Default returns the built-in catalog. Ranges are placeholders, not live prices.
// Each call returns a fresh copy so callers cannot alias the shared table.
func Default() Catalog {
	return Catalog{
		Currency: "USD",
		Brands: []Brand{
			{Key: BrandJossMain, Label: "Joss & Main"},
			{Key: BrandAllModern, Label: "AllModern"},
			{Key: BrandBirchLane, Label: "Birch Lane"},
		},
		Rooms: []RoomDef{
			{
				Key:   "living",
				Label: "Living Room",
				Items: []ItemDef{
					{Key: "sofa", Label: "Sofa", Required: true, QuantityDefault: qty(1),
						Ranges: ranges(r(700, 2500), r(600, 3000), r(1200, 4500))},
					{Key: "sectional", Label: "Sectional (optional)",
						Ranges: ranges(r(900, 3500), r(1000, 4500), r(1800, 6500))},
					{Key: "accentChair", Label: "Accent Chair", QuantityDefault: qty(2),
						Ranges: ranges(r(160, 800), r(150, 1200), r(300, 1600))},
					{Key: "coffeeTable", Label: "Coffee Table", Required: true,
						Ranges: ranges(r(120, 700), r(100, 900), r(250, 1200))},
					{Key: "sideTable", Label: "Side Table", QuantityDefault: qty(2),
						Ranges: ranges(r(80, 450), r(70, 500), r(150, 700))},
					{Key: "mediaConsole", Label: "Media Console",
						Ranges: ranges(r(250, 1400), r(200, 1600), r(500, 2200))},
					{Key: "rug", Label: "Area Rug (8×10)", Required: true,
						Ranges: ranges(r(180, 900), r(160, 1100), r(250, 1600))},
					{Key: "lighting", Label: "Floor/Table Lamp", QuantityDefault: qty(2),
						Ranges: ranges(r(70, 350), r(60, 450), r(120, 600))},
					{Key: "decor", Label: "Pillows/Throws/Decor (bundle)",
						Ranges: ranges(r(150, 600), r(150, 700), r(250, 900))},
				},
			},
			{
				Key:   "bedroom",
				Label: "Bedroom",
				Items: []ItemDef{
					{Key: "bed", Label: "Bed Frame", Required: true,
						Ranges: ranges(r(300, 1500), r(280, 1700), r(600, 2500))},
					{Key: "mattress", Label: "Mattress (Queen)", Required: true,
						Ranges: ranges(r(350, 1400), r(350, 1600), r(600, 2200))},
					{Key: "nightstand", Label: "Nightstand", QuantityDefault: qty(2),
						Ranges: ranges(r(120, 600), r(110, 700), r(220, 900))},
					{Key: "dresser", Label: "Dresser",
						Ranges: ranges(r(250, 1400), r(240, 1600), r(500, 2300))},
					{Key: "bench", Label: "Bed Bench",
						Ranges: ranges(r(140, 700), r(120, 800), r(250, 1100))},
					{Key: "rugBR", Label: "Area Rug (8×10)",
						Ranges: ranges(r(180, 900), r(160, 1100), r(250, 1600))},
					{Key: "bedding", Label: "Bedding Set (duvet/insert/sheets)",
						Ranges: ranges(r(180, 550), r(170, 700), r(250, 900))},
					{Key: "lightingBR", Label: "Table Lamps (pair)",
						Ranges: ranges(r(120, 500), r(120, 600), r(220, 900))},
				},
			},
			{
				Key:   "dining",
				Label: "Dining Room",
				Items: []ItemDef{
					{Key: "table", Label: "Dining Table", Required: true,
						Ranges: ranges(r(300, 1900), r(280, 2300), r(700, 3200))},
					{Key: "chairs", Label: "Dining Chairs (per chair)", Required: true, QuantityDefault: qty(6),
						Ranges: ranges(r(80, 350), r(75, 450), r(150, 600))},
					{Key: "sideboard", Label: "Sideboard/Buffet",
						Ranges: ranges(r(300, 1600), r(280, 1800), r(600, 2600))},
					{Key: "rugDR", Label: "Area Rug (8×10)",
						Ranges: ranges(r(180, 900), r(160, 1100), r(250, 1600))},
					{Key: "lightingDR", Label: "Chandelier/Pendant",
						Ranges: ranges(r(150, 700), r(140, 900), r(250, 1300))},
				},
			},
			{
				Key:   "office",
				Label: "Home Office",
				Items: []ItemDef{
					{Key: "desk", Label: "Desk", Required: true,
						Ranges: ranges(r(150, 900), r(140, 1100), r(300, 1600))},
					{Key: "officeChair", Label: "Office Chair", Required: true,
						Ranges: ranges(r(120, 600), r(110, 800), r(220, 1100))},
					{Key: "storage", Label: "Bookcase/Storage",
						Ranges: ranges(r(120, 700), r(110, 900), r(220, 1300))},
					{Key: "rugOF", Label: "Area Rug (5×8)",
						Ranges: ranges(r(120, 600), r(110, 700), r(200, 900))},
					{Key: "lampOF", Label: "Task/Desk Lamp",
						Ranges: ranges(r(60, 250), r(55, 300), r(100, 450))},
				},
			},
		},
	}
}
