// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"math"
	"sort"

	"greentree/internal/models"
)

// CategoryStat aggregates inventory units and value for one category.
type CategoryStat struct {
	Category string  `json:"category"`
	Units    int     `json:"units"`
	Value    float64 `json:"value"`
}

// PriceBand is one bucket of the price distribution.
type PriceBand struct {
	Range      string  `json:"range"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TreeValue pairs a tree with its total inventory value.
type TreeValue struct {
	Tree           models.Tree `json:"tree"`
	InventoryValue float64     `json:"inventoryValue"`
}

// CategoryStock counts in-stock varieties per category.
type CategoryStock struct {
	Category string `json:"category"`
	InStock  int    `json:"inStock"`
	Total    int    `json:"total"`
}

// Metrics is the admin dashboard payload, computed over the full catalog.
type Metrics struct {
	Varieties           int             `json:"varieties"`
	TotalUnits          int             `json:"totalUnits"`
	TotalInventoryValue float64         `json:"totalInventoryValue"`
	AveragePrice        float64         `json:"averagePrice"`
	LowStockItems       []models.Tree   `json:"lowStockItems"`
	OutOfStockItems     []models.Tree   `json:"outOfStockItems"`
	CategoryBreakdown   []CategoryStat  `json:"categoryBreakdown"`
	PriceDistribution   []PriceBand     `json:"priceDistribution"`
	TopValueTrees       []TreeValue     `json:"topValueTrees"`
	StockByCategory     []CategoryStock `json:"stockByCategory"`
}

var priceBands = []struct {
	label string
	min   float64
	max   float64
}{
	{"$10-20", 10, 20},
	{"$21-40", 21, 40},
	{"$41-60", 41, 60},
	{"$61-100", 61, 100},
	{"$100+", 100, math.Inf(1)},
}

// ComputeMetrics derives the dashboard metrics from the catalog. Category
// groupings keep first-appearance order so the payload is stable across
// runs.
func ComputeMetrics(trees []models.Tree) Metrics {
	m := Metrics{
		LowStockItems:     []models.Tree{},
		OutOfStockItems:   []models.Tree{},
		CategoryBreakdown: []CategoryStat{},
		StockByCategory:   []CategoryStock{},
	}
	m.Varieties = len(trees)

	catIndex := map[string]int{}
	var priceSum float64

	for _, t := range trees {
		value := t.Price * float64(t.QuantityInStock)
		m.TotalInventoryValue += value
		m.TotalUnits += t.QuantityInStock
		priceSum += t.Price

		switch t.Availability() {
		case models.AvailabilityLowStock:
			m.LowStockItems = append(m.LowStockItems, t)
		case models.AvailabilityOutOfStock:
			m.OutOfStockItems = append(m.OutOfStockItems, t)
		}

		i, ok := catIndex[t.Category]
		if !ok {
			i = len(m.CategoryBreakdown)
			catIndex[t.Category] = i
			m.CategoryBreakdown = append(m.CategoryBreakdown, CategoryStat{Category: t.Category})
			m.StockByCategory = append(m.StockByCategory, CategoryStock{Category: t.Category})
		}
		m.CategoryBreakdown[i].Units += t.QuantityInStock
		m.CategoryBreakdown[i].Value += value
		m.StockByCategory[i].Total++
		if t.InStock() {
			m.StockByCategory[i].InStock++
		}
	}

	if len(trees) > 0 {
		m.AveragePrice = priceSum / float64(len(trees))
	}

	m.PriceDistribution = priceDistribution(trees)
	m.TopValueTrees = topValueTrees(trees, 5)
	return m
}

func priceDistribution(trees []models.Tree) []PriceBand {
	bands := make([]PriceBand, len(priceBands))
	for i, b := range priceBands {
		bands[i].Range = b.label
		for _, t := range trees {
			if t.Price >= b.min && t.Price <= b.max {
				bands[i].Count++
			}
		}
		if len(trees) > 0 {
			bands[i].Percentage = float64(bands[i].Count) / float64(len(trees)) * 100
		}
	}
	return bands
}

func topValueTrees(trees []models.Tree, n int) []TreeValue {
	values := make([]TreeValue, 0, len(trees))
	for _, t := range trees {
		values = append(values, TreeValue{
			Tree:           t,
			InventoryValue: t.Price * float64(t.QuantityInStock),
		})
	}
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].InventoryValue > values[j].InventoryValue
	})
	if len(values) > n {
		values = values[:n]
	}
	return values
}
