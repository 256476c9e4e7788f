// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"greentree/internal/models"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"Common Name",
	"Botanical Name",
	"Category",
	"Size",
	"Price",
	"Quantity in Stock",
	"SKU",
	"Availability",
}

// WriteCSV writes the trees as CSV in the fixed column order. Callers
// should short-circuit on an empty slice instead of producing a
// header-only file.
func WriteCSV(w io.Writer, trees []models.Tree) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range trees {
		availability := "Out of Stock"
		if t.InStock() {
			availability = "In Stock"
		}
		record := []string{
			t.CommonName,
			t.BotanicalName,
			t.Category,
			t.Size,
			strconv.FormatFloat(t.Price, 'f', -1, 64),
			strconv.Itoa(t.QuantityInStock),
			t.SKU,
			availability,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record %s: %w", t.SKU, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
