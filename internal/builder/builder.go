// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package builder turns a raw availability workbook into the normalized,
// sorted tree catalog. It is a one-shot batch transform: rows are validated
// and extracted per sheet, ids are assigned monotonically across the whole
// workbook, and the accepted records are sorted by (category, commonName)
// before persisting.
//
// Per-row defects are deliberately non-fatal: rows without both name fields
// are skipped, unparseable prices and quantities become zero. Only a
// workbook that cannot be opened at all fails the build.
package builder

import (
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"greentree/internal/models"
)

// Sheet is one worksheet: its name and the raw cell grid, rows of
// positional string cells exactly as read from the workbook.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is the builder's input: sheets in workbook order.
type Workbook struct {
	Sheets []Sheet
}

// RejectedRow records a row the builder skipped, for the post-build report.
type RejectedRow struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"` // 1-based position within the sheet
	Reason string `json:"reason"`
}

// Result holds the outcome of a build: the sorted catalog plus the
// rejected-row report.
type Result struct {
	Trees    []models.Tree
	Rejected []RejectedRow
}

// Fixed text templates interpolated into every record.
const (
	descriptionTemplate = "%s (%s) - A native tree perfect for landscaping projects."
	careInfoText        = "Plant in appropriate soil conditions. Water regularly during establishment period. Follow proper planting depth guidelines."
	iNaturalistBaseURL  = "https://www.inaturalist.org/search?q="
	imageBaseURL        = "https://placehold.co/300x200/228B22/FFFFFF?text="
)

// Size labels assigned by the pricing priority rule.
const (
	sizePrimary   = "1 Gallon"
	sizeSecondary = "3-5 Gallon"
)

// notesSizePattern extracts a container/caliper fragment like "15G/1.5" or
// "30G/8-10'" from the free-text notes column.
var notesSizePattern = regexp.MustCompile(`\d+G?/[\d\-"']+`)

// nonSKUChars strips everything that is not a letter, digit, or space
// before the common name is tokenized into a SKU prefix.
var nonSKUChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// nameCollator orders names the way the storefront displays them.
var nameCollator = collate.New(language.AmericanEnglish)

// Build processes every sheet of the workbook in order and returns the
// sorted catalog. Ids are assigned sequentially starting at 1 and are only
// consumed by accepted rows, so the assignment is a pure function of the
// workbook's row order.
func Build(wb *Workbook, mapping ColumnMapping) *Result {
	res := &Result{}
	id := 1

	for _, sheet := range wb.Sheets {
		hint := SheetHint(sheet.Name)
		accepted := 0
		for i, row := range sheet.Rows {
			tree, reason := parseRow(row, mapping, hint, id)
			if tree == nil {
				if reason != "" {
					res.Rejected = append(res.Rejected, RejectedRow{Sheet: sheet.Name, Row: i + 1, Reason: reason})
				}
				continue
			}
			res.Trees = append(res.Trees, *tree)
			accepted++
			id++
		}
		slog.Info("sheet processed", "sheet", sheet.Name, "hint", hint, "rows", len(sheet.Rows), "accepted", accepted)
	}

	// SKUs are unique via the id suffix, but overlapping name prefixes are
	// worth surfacing so the operator can spot near-identical entries.
	prefixes := make(map[string]int)
	for _, t := range res.Trees {
		if cut := strings.LastIndex(t.SKU, "-"); cut > 0 {
			prefixes[t.SKU[:cut]]++
		}
	}
	for prefix, n := range prefixes {
		if n > 1 {
			slog.Debug("shared SKU prefix", "prefix", prefix, "count", n)
		}
	}

	// Build-time ordering invariant: category, then common name.
	sort.SliceStable(res.Trees, func(i, j int) bool {
		a, b := res.Trees[i], res.Trees[j]
		if c := nameCollator.CompareString(a.Category, b.Category); c != 0 {
			return c < 0
		}
		return nameCollator.CompareString(a.CommonName, b.CommonName) < 0
	})

	return res
}

// parseRow validates and extracts a single row. It returns (nil, reason)
// for rejected rows; banner rows and fully empty rows reject with an empty
// reason so they stay out of the report.
func parseRow(row []string, m ColumnMapping, sizeHint string, id int) (*models.Tree, string) {
	name := strings.TrimSpace(cell(row, m.CommonName))
	if name == "" {
		return nil, ""
	}
	if bannerRows[name] {
		return nil, ""
	}

	botanical := strings.TrimSpace(cell(row, m.BotanicalName))
	if botanical == "" {
		return nil, fmt.Sprintf("missing botanical name for %q", name)
	}

	price, quantity, size := resolvePricing(row, m, sizeHint)

	// Append a container/caliper fragment from the notes column if present.
	if notes := strings.TrimSpace(cell(row, m.Notes)); notes != "" {
		if frag := notesSizePattern.FindString(notes); frag != "" {
			size = size + " - " + frag
		}
	}

	tree := &models.Tree{
		ID:                 strconv.Itoa(id),
		CommonName:         name,
		BotanicalName:      botanical,
		INaturalistURL:     iNaturalistBaseURL + url.QueryEscape(botanical),
		Category:           categoryFor(sizeHint),
		Description:        fmt.Sprintf(descriptionTemplate, name, botanical),
		PlantingCareInfo:   careInfoText,
		CompanionPlants:    []string{},
		ComplementaryTrees: []string{},
		SKU:                skuFor(name, id),
		Size:               size,
		Price:              price,
		QuantityInStock:    quantity,
		Image:              imageBaseURL + url.QueryEscape(name),
	}
	return tree, ""
}

// resolvePricing applies the column priority rule: a complete primary
// (1 gallon) pair wins, then a complete secondary (3-5 gallon) pair, then
// whichever price column is present alone with the sheet hint as the size
// label, and finally zeros with the sheet hint.
func resolvePricing(row []string, m ColumnMapping, sizeHint string) (price float64, quantity int, size string) {
	pPrim := strings.TrimSpace(cell(row, m.PrimaryPrice))
	qPrim := strings.TrimSpace(cell(row, m.PrimaryQty))
	pSec := strings.TrimSpace(cell(row, m.SecondaryPrice))
	qSec := strings.TrimSpace(cell(row, m.SecondaryQty))

	switch {
	case pPrim != "" && qPrim != "":
		return parsePrice(pPrim), parseQuantity(qPrim), sizePrimary
	case pSec != "" && qSec != "":
		return parsePrice(pSec), parseQuantity(qSec), sizeSecondary
	case pPrim != "" || pSec != "":
		return parsePrice(firstNonEmpty(pPrim, pSec)), parseQuantity(firstNonEmpty(qPrim, qSec)), sizeHint
	default:
		return 0, 0, sizeHint
	}
}

// categoryFor maps the sheet hint to a catalog category.
func categoryFor(sizeHint string) string {
	switch sizeHint {
	case HintSmall:
		return "Small Trees"
	case HintLarge:
		return "Large Trees"
	default:
		return "Trees"
	}
}

// skuFor derives the business SKU: the first three letters of each name
// token uppercased and hyphen-joined, suffixed with the zero-padded id.
// Uniqueness rests on the id suffix; two names truncating to the same
// tokens only share a prefix.
func skuFor(commonName string, id int) string {
	cleaned := nonSKUChars.ReplaceAllString(commonName, "")
	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) > 3 {
			word = word[:3]
		}
		tokens = append(tokens, strings.ToUpper(word))
	}
	return strings.Join(tokens, "-") + fmt.Sprintf("-%03d", id)
}

// parsePrice coerces a cell to a non-negative price. Unparseable,
// negative, or non-finite values become zero; garbage never fails the row.
func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// parseQuantity coerces a cell to a non-negative integer count. Quantities
// exported as "12.0" still parse; anything else becomes zero.
func parseQuantity(s string) int {
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0 {
		return int(f)
	}
	return 0
}

// cell returns the raw cell at idx, or "" past the row's end. Sheets trim
// trailing empty cells, so short rows are normal.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
