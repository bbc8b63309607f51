// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a row in one of the per-type category tables
// (article_categories, tutorial_categories, news_categories).
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaxonomyType names one of the five taxonomy sources as the public API
// exposes them. Three are category tables, two are derived from tag arrays.
type TaxonomyType string

const (
	TaxonomyArticles  TaxonomyType = "articles"
	TaxonomyTutorials TaxonomyType = "tutorials"
	TaxonomyNews      TaxonomyType = "news"
	TaxonomyCommands  TaxonomyType = "commands"
	TaxonomyProducts  TaxonomyType = "products"
)

// TaxonomyTypes lists all sources in aggregation order.
var TaxonomyTypes = []TaxonomyType{
	TaxonomyTutorials, TaxonomyNews, TaxonomyArticles, TaxonomyCommands, TaxonomyProducts,
}

// IsValidTaxonomyType reports whether t names a known taxonomy source.
func IsValidTaxonomyType(t TaxonomyType) bool {
	for _, v := range TaxonomyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// TaxonomyCategory is one entry in the aggregated taxonomy listing.
// Table-backed categories carry their row UUID as a string; categories
// derived from command/product tag arrays get synthetic IDs ("cmd-1",
// "prod-2") because no table row backs them.
type TaxonomyCategory struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	ContentType TaxonomyType `json:"content_type"`
	ItemCount   int          `json:"item_count"`
	ParentID    *uuid.UUID   `json:"parent_id,omitempty"`
	CreatedAt   *time.Time   `json:"created_at,omitempty"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

// TaxonomySource reports whether a single category source contributed to
// an aggregated listing. A failed source is surfaced to the caller instead
// of silently producing an incomplete list.
type TaxonomySource struct {
	Source string `json:"source"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// TaxonomyResult is the full aggregator output: the merged category list
// plus the per-source status report.
type TaxonomyResult struct {
	Categories []TaxonomyCategory `json:"categories"`
	Sources    []TaxonomySource   `json:"sources"`
}

// Partial returns true if at least one source failed.
func (r *TaxonomyResult) Partial() bool {
	for _, s := range r.Sources {
		if !s.OK {
			return true
		}
	}
	return false
}
