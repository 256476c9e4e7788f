// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain records shared by the catalog builder,
// the query engine, and the HTTP handlers.
package models

import "strings"

// Tree is one catalog entry: a purchasable tree variety/size combination.
// Records are produced once by the catalog builder and treated as read-only
// everywhere else.
//
// JSON field names match the persisted catalog file format.
type Tree struct {
	ID                 string   `json:"id"`
	CommonName         string   `json:"commonName"`
	BotanicalName      string   `json:"botanicalName"`
	INaturalistURL     string   `json:"iNaturalistUrl"`
	Category           string   `json:"category"`
	Description        string   `json:"description"`
	PlantingCareInfo   string   `json:"plantingCareInfo"`
	CompanionPlants    []string `json:"companionPlants"`
	ComplementaryTrees []string `json:"complementaryTrees"`
	SKU                string   `json:"sku"`
	Size               string   `json:"size"`
	Price              float64  `json:"price"`
	QuantityInStock    int      `json:"quantityInStock"`
	Image              string   `json:"image,omitempty"`
}

// LowStockMax is the inclusive upper bound of the "low stock" availability
// bucket. Quantities above it count as in stock, zero as out of stock.
const LowStockMax = 5

// Availability buckets partition QuantityInStock three ways.
type Availability string

const (
	AvailabilityAll        Availability = "all"
	AvailabilityInStock    Availability = "inStock"
	AvailabilityLowStock   Availability = "lowStock"
	AvailabilityOutOfStock Availability = "outOfStock"
)

// AvailabilityOf classifies a stock quantity into its bucket.
func AvailabilityOf(quantity int) Availability {
	switch {
	case quantity == 0:
		return AvailabilityOutOfStock
	case quantity <= LowStockMax:
		return AvailabilityLowStock
	default:
		return AvailabilityInStock
	}
}

// Availability returns the tree's stock bucket.
func (t *Tree) Availability() Availability {
	return AvailabilityOf(t.QuantityInStock)
}

// InStock reports whether any units remain.
func (t *Tree) InStock() bool {
	return t.QuantityInStock > 0
}

// Size buckets are coarse groupings derived from the free-text Size field.
const (
	SizeBucketSmall  = "Small (1 Gallon)"
	SizeBucketMedium = "Medium (3-5 Gallon)"
	SizeBucketLarge  = "Large"
)

// SizeBucket classifies the tree's free-text size description into one of
// the three filter buckets. Anything that is neither a 1 gallon nor a
// 3-5/5 gallon container counts as large.
func (t *Tree) SizeBucket() string {
	switch {
	case strings.Contains(t.Size, "1 Gallon"):
		return SizeBucketSmall
	case strings.Contains(t.Size, "3-5 Gallon"), strings.Contains(t.Size, "5 Gallon"):
		return SizeBucketMedium
	default:
		return SizeBucketLarge
	}
}

// SizeRank returns the numeric ordering used by the size sort key:
// 1 Gallon first, 3-5 Gallon second, everything else last.
func (t *Tree) SizeRank() int {
	switch {
	case strings.Contains(t.Size, "1 Gallon"):
		return 1
	case strings.Contains(t.Size, "3-5 Gallon"):
		return 2
	default:
		return 3
	}
}
