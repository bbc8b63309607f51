// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"hackerthink/internal/models"
	"hackerthink/internal/slug"
)

// Taxonomy aggregates categories from all five sources: the three
// category tables plus the tag arrays of commands and products. A failing
// source degrades to zero rows for that source, but the failure is
// reported in the result rather than swallowed.
type Taxonomy struct {
	tutorials *CategoryStore
	news      *CategoryStore
	articles  *CategoryStore
	commands  *CommandStore
	products  *ProductStore
}

// NewTaxonomy creates the aggregator over the given stores.
func NewTaxonomy(tutorials, news, articles *CategoryStore, commands *CommandStore, products *ProductStore) *Taxonomy {
	return &Taxonomy{
		tutorials: tutorials,
		news:      news,
		articles:  articles,
		commands:  commands,
		products:  products,
	}
}

// Aggregate merges all sources into one flat list. With filter set, only
// the matching source is queried. Category IDs from tables are their row
// UUIDs as strings; derived commands/products entries get synthetic
// "cmd-N" / "prod-N" IDs, N being the 1-based position in the sorted
// DISTINCT value list.
func (t *Taxonomy) Aggregate(filter models.TaxonomyType) (*models.TaxonomyResult, error) {
	result := &models.TaxonomyResult{
		Categories: []models.TaxonomyCategory{},
	}

	want := func(tt models.TaxonomyType) bool {
		return filter == "" || filter == tt
	}

	for _, cs := range []*CategoryStore{t.tutorials, t.news, t.articles} {
		if !want(cs.TaxonomyType()) {
			continue
		}
		items, err := cs.ListWithCounts()
		result.Sources = append(result.Sources, sourceStatus(cs.TaxonomyType(), err))
		if err != nil {
			slog.Error("taxonomy source failed", "source", cs.TaxonomyType(), "error", err)
			continue
		}
		result.Categories = append(result.Categories, items...)
	}

	if want(models.TaxonomyCommands) {
		derived, err := t.commands.CategoryCounts()
		result.Sources = append(result.Sources, sourceStatus(models.TaxonomyCommands, err))
		if err != nil {
			slog.Error("taxonomy source failed", "source", models.TaxonomyCommands, "error", err)
		} else {
			result.Categories = append(result.Categories, syntheticCategories("cmd", models.TaxonomyCommands, derived)...)
		}
	}

	if want(models.TaxonomyProducts) {
		derived, err := t.products.CategoryCounts()
		result.Sources = append(result.Sources, sourceStatus(models.TaxonomyProducts, err))
		if err != nil {
			slog.Error("taxonomy source failed", "source", models.TaxonomyProducts, "error", err)
		} else {
			result.Categories = append(result.Categories, syntheticCategories("prod", models.TaxonomyProducts, derived)...)
		}
	}

	return result, nil
}

// sourceStatus builds the per-source report entry.
func sourceStatus(source models.TaxonomyType, err error) models.TaxonomySource {
	s := models.TaxonomySource{Source: string(source), OK: err == nil}
	if err != nil {
		s.Error = "source unavailable"
	}
	return s
}

// syntheticCategories turns derived tag values into taxonomy entries with
// synthetic positional IDs.
func syntheticCategories(prefix string, tt models.TaxonomyType, derived []DerivedCategory) []models.TaxonomyCategory {
	items := make([]models.TaxonomyCategory, 0, len(derived))
	for i, d := range derived {
		items = append(items, models.TaxonomyCategory{
			ID:          fmt.Sprintf("%s-%d", prefix, i+1),
			Name:        d.Name,
			Slug:        slug.Generate(d.Name),
			ContentType: tt,
			ItemCount:   d.Count,
		})
	}
	return items
}

// StoreFor returns the category store serving one table-backed taxonomy
// type, or nil for derived types.
func (t *Taxonomy) StoreFor(tt models.TaxonomyType) *CategoryStore {
	switch tt {
	case models.TaxonomyTutorials:
		return t.tutorials
	case models.TaxonomyNews:
		return t.news
	case models.TaxonomyArticles:
		return t.articles
	}
	return nil
}

// FindOwner discovers which category table owns an ID. Category IDs are
// not namespaced by source, so the tables are probed in a fixed order:
// tutorials, then news, then articles. Returns (nil, nil, nil) when no
// table has the row.
func (t *Taxonomy) FindOwner(id uuid.UUID) (*CategoryStore, *models.Category, error) {
	for _, cs := range []*CategoryStore{t.tutorials, t.news, t.articles} {
		c, err := cs.FindByID(id)
		if err != nil {
			return nil, nil, err
		}
		if c != nil {
			return cs, c, nil
		}
	}
	return nil, nil, nil
}
