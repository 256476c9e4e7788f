// Config loading for the treebuild CLI. The workbook's column layout is
// stable, so the defaults match the nursery's spreadsheet; a yaml config
// can remap columns when the spreadsheet format drifts.
package main

import (
	"fmt"

	"github.com/spf13/viper"

	"greentree/internal/builder"
)

// loadMapping returns the column mapping to use: the built-in defaults,
// overridden by the --config file when one is given.
func loadMapping(path string) (builder.ColumnMapping, error) {
	mapping := builder.DefaultMapping()
	if path == "" {
		return mapping, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("common_name", mapping.CommonName)
	v.SetDefault("botanical_name", mapping.BotanicalName)
	v.SetDefault("primary_price", mapping.PrimaryPrice)
	v.SetDefault("primary_qty", mapping.PrimaryQty)
	v.SetDefault("secondary_price", mapping.SecondaryPrice)
	v.SetDefault("secondary_qty", mapping.SecondaryQty)
	v.SetDefault("notes", mapping.Notes)

	if err := v.ReadInConfig(); err != nil {
		return mapping, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&mapping); err != nil {
		return mapping, fmt.Errorf("parse config %s: %w", path, err)
	}

	return mapping, nil
}
