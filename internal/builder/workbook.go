// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook opens an xlsx availability file and loads every sheet's
// cell grid in workbook order. A file that cannot be opened or read is a
// fatal build error; the caller must not write any output in that case.
func ReadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	return wb, nil
}
