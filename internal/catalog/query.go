// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"greentree/internal/models"
)

// PageSize is the fixed number of trees per result page.
const PageSize = 12

// Sort keys accepted by Filter.SortBy. Anything else falls back to name.
const (
	SortByName         = "name"
	SortByPrice        = "price"
	SortByAvailability = "availability"
	SortBySize         = "size"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Collators carry per-comparison scratch state and must not be shared
// across goroutines, so each Search call checks one out for its sort.
var collators = sync.Pool{
	New: func() any { return collate.New(language.AmericanEnglish) },
}

// Filter is one fully specified catalog query. All criteria are combined
// with AND. Zero values mean "no constraint" except Page, which callers
// should leave at 0 to get the first page.
type Filter struct {
	SearchTerm   string
	Category     string
	SizeFilter   string
	PriceMin     *float64
	PriceMax     *float64
	Availability models.Availability
	SortBy       string
	SortOrder    string
	Page         int
}

// Result is one page of a catalog query plus the pagination envelope.
type Result struct {
	Trees     []models.Tree `json:"trees"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	PageCount int           `json:"pageCount"`
	PageSize  int           `json:"pageSize"`
}

// normalized returns a copy with every out-of-domain value replaced by
// its default, so that matching and sorting never branch on bad input.
func (f Filter) normalized() Filter {
	switch f.SortBy {
	case SortByName, SortByPrice, SortByAvailability, SortBySize:
	default:
		f.SortBy = SortByName
	}
	if f.SortOrder != OrderDesc {
		f.SortOrder = OrderAsc
	}
	switch f.Availability {
	case models.AvailabilityInStock, models.AvailabilityLowStock, models.AvailabilityOutOfStock:
	default:
		f.Availability = models.AvailabilityAll
	}
	// An inverted range is treated as no price constraint at all.
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		f.PriceMin = nil
		f.PriceMax = nil
	}
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

func (f Filter) matches(t models.Tree) bool {
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(t.CommonName), term) &&
			!strings.Contains(strings.ToLower(t.BotanicalName), term) &&
			!strings.Contains(strings.ToLower(t.Category), term) &&
			!strings.Contains(strings.ToLower(t.SKU), term) {
			return false
		}
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.SizeFilter != "" && t.SizeBucket() != f.SizeFilter {
		return false
	}
	if f.PriceMin != nil && t.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && t.Price > *f.PriceMax {
		return false
	}
	if f.Availability != models.AvailabilityAll && t.Availability() != f.Availability {
		return false
	}
	return true
}

// less compares two trees under the filter's sort key, ascending.
// Direction is applied by the caller.
func (f Filter) less(col *collate.Collator, a, b models.Tree) bool {
	switch f.SortBy {
	case SortByPrice:
		return a.Price < b.Price
	case SortByAvailability:
		return a.QuantityInStock < b.QuantityInStock
	case SortBySize:
		return a.SizeRank() < b.SizeRank()
	default:
		return col.CompareString(a.CommonName, b.CommonName) < 0
	}
}

// Search returns every tree matching the filter in sorted order, without
// pagination. The sort is stable, so equal keys keep catalog order.
func Search(trees []models.Tree, f Filter) []models.Tree {
	f = f.normalized()

	matched := make([]models.Tree, 0, len(trees))
	for _, t := range trees {
		if f.matches(t) {
			matched = append(matched, t)
		}
	}

	col := collators.Get().(*collate.Collator)
	defer collators.Put(col)

	sort.SliceStable(matched, func(i, j int) bool {
		if f.SortOrder == OrderDesc {
			return f.less(col, matched[j], matched[i])
		}
		return f.less(col, matched[i], matched[j])
	})
	return matched
}

// Query runs the filter over the catalog and returns the requested page.
// The page number is clamped into the valid range, so a stale page index
// after a narrowing filter change still yields results.
func Query(trees []models.Tree, f Filter) Result {
	f = f.normalized()
	matched := Search(trees, f)

	total := len(matched)
	pageCount := (total + PageSize - 1) / PageSize
	page := f.Page
	if pageCount == 0 {
		page = 1
	} else if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Trees:     matched[start:end],
		Total:     total,
		Page:      page,
		PageCount: pageCount,
		PageSize:  PageSize,
	}
}

// CacheKey returns a canonical string for the normalized filter, suitable
// as a cache key: two filters that produce identical results produce the
// same key.
func (f Filter) CacheKey() string {
	f = f.normalized()
	min, max := "", ""
	if f.PriceMin != nil {
		min = fmt.Sprintf("%g", *f.PriceMin)
	}
	if f.PriceMax != nil {
		max = fmt.Sprintf("%g", *f.PriceMax)
	}
	return fmt.Sprintf("q=%s|c=%s|s=%s|min=%s|max=%s|a=%s|sb=%s|so=%s|p=%d",
		strings.ToLower(f.SearchTerm), f.Category, f.SizeFilter,
		min, max, f.Availability, f.SortBy, f.SortOrder, f.Page)
}
