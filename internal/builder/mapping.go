// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import "strings"

// ColumnMapping binds semantic fields to zero-based column positions in a
// workbook sheet. The availability spreadsheets carry no reliable header
// row, so the parser reads fixed positions; keeping the positions in a
// mapping decouples the extraction rules from one specific file layout.
type ColumnMapping struct {
	CommonName     int `mapstructure:"common_name" json:"commonName"`
	BotanicalName  int `mapstructure:"botanical_name" json:"botanicalName"`
	PrimaryPrice   int `mapstructure:"primary_price" json:"primaryPrice"`
	PrimaryQty     int `mapstructure:"primary_qty" json:"primaryQty"`
	SecondaryPrice int `mapstructure:"secondary_price" json:"secondaryPrice"`
	SecondaryQty   int `mapstructure:"secondary_qty" json:"secondaryQty"`
	Notes          int `mapstructure:"notes" json:"notes"`
}

// DefaultMapping matches the layout of the GTC availability workbook:
// names in the first two columns, 1 gallon price/quantity in columns 8/10,
// 3-5 gallon price/quantity in columns 11/13, free-text notes in column 14.
func DefaultMapping() ColumnMapping {
	return ColumnMapping{
		CommonName:     0,
		BotanicalName:  1,
		PrimaryPrice:   7,
		PrimaryQty:     9,
		SecondaryPrice: 10,
		SecondaryQty:   12,
		Notes:          13,
	}
}

// bannerRows are name-column values that mark header or section banner rows
// interleaved with the data. A row whose name cell equals one of these is
// rejected outright.
var bannerRows = map[string]bool{
	"SMALL TREES":             true,
	"LARGE TREES":             true,
	"COMMON NAME":             true,
	"Commonly referred to as": true,
}

// Sheet-hint values derived from the workbook sheet name.
const (
	HintSmall = "Small"
	HintLarge = "Large"
)

// SheetHint classifies a sheet by name: anything containing "Small"
// (case-sensitive) is the small-tree sheet, everything else is treated as
// large stock.
func SheetHint(sheetName string) string {
	if strings.Contains(sheetName, HintSmall) {
		return HintSmall
	}
	return HintLarge
}
