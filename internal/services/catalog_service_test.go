package services

import (
	"context"
	"errors"
	"testing"
)

func TestCatalog_Tags(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	dinner := seedTag(t, db, "Dinner", "#111111", "dinner")
	seedTag(t, db, "Breakfast", "#222222", "breakfast")

	tags, err := svc.Tags(ctx)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "Breakfast" || tags[1].Name != "Dinner" {
		t.Fatalf("expected name-ordered tags, got %+v", tags)
	}

	got, err := svc.Tag(ctx, dinner.ID)
	if err != nil || got.Slug != "dinner" {
		t.Fatalf("tag fetch: %+v err=%v", got, err)
	}
	if _, err := svc.Tag(ctx, 9999); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestCatalog_IngredientPrefixSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	sugar := seedIngredient(t, db, "sugar", "g")
	seedIngredient(t, db, "sugar", "cup")
	seedIngredient(t, db, "salt", "g")
	seedIngredient(t, db, "brown sugar", "g")

	// Prefix match, not substring: "brown sugar" stays out.
	ings, err := svc.Ingredients(ctx, "sug")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(ings) != 2 {
		t.Fatalf("expected 2 sugar rows, got %d: %+v", len(ings), ings)
	}
	for _, ing := range ings {
		if ing.Name != "sugar" {
			t.Fatalf("unexpected row %+v", ing)
		}
	}

	// Empty prefix returns the whole catalog, name-ordered.
	all, err := svc.Ingredients(ctx, "")
	if err != nil || len(all) != 4 {
		t.Fatalf("full catalog: len=%d err=%v", len(all), err)
	}
	if all[0].Name != "brown sugar" {
		t.Fatalf("expected name ordering, got %+v", all)
	}

	// No matches is an empty slice, not an error.
	none, err := svc.Ingredients(ctx, "zzz")
	if err != nil || len(none) != 0 {
		t.Fatalf("no-match search: len=%d err=%v", len(none), err)
	}

	got, err := svc.Ingredient(ctx, sugar.ID)
	if err != nil || got.MeasurementUnit != "g" {
		t.Fatalf("ingredient fetch: %+v err=%v", got, err)
	}
	if _, err := svc.Ingredient(ctx, 9999); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}
