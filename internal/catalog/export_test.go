// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"bytes"
	"encoding/csv"
	"testing"

	"greentree/internal/models"
)

func TestWriteCSVColumnsAndLabels(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTrees()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("got %d records, want header + 6 rows", len(records))
	}

	wantHeader := []string{"Common Name", "Botanical Name", "Category", "Size", "Price", "Quantity in Stock", "SKU", "Availability"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	// Bur Oak: in stock, whole-number price renders without decimals.
	row := records[1]
	if row[0] != "Bur Oak" || row[4] != "65" || row[7] != "In Stock" {
		t.Fatalf("row 1 = %v", row)
	}

	// Cedar Elm: quantity 0 renders Out of Stock.
	row = records[3]
	if row[0] != "Cedar Elm" || row[5] != "0" || row[7] != "Out of Stock" {
		t.Fatalf("row 3 = %v", row)
	}
}

func TestWriteCSVFractionalPrice(t *testing.T) {
	trees := []models.Tree{
		{CommonName: "Possumhaw", BotanicalName: "Ilex decidua", Category: "Small Trees", Size: "1 Gallon", Price: 24.5, QuantityInStock: 4, SKU: "POS-001"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, trees); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if records[1][4] != "24.5" {
		t.Fatalf("price = %q, want 24.5", records[1][4])
	}
}
