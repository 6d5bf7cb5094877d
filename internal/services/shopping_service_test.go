package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestShoppingReport_AggregatesAcrossRecipes(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	cart := NewCartService(db)
	shop := NewShoppingService(db)
	author := seedUser(t, db, "author")
	buyer := seedUser(t, db, "buyer")
	tag := seedTag(t, db, "Dinner", "#111111", "dinner")
	salt := seedIngredient(t, db, "salt", "g")
	apple := seedIngredient(t, db, "apple", "pcs")
	ctx := context.Background()

	// Two carted recipes share salt; one also needs apples. A third recipe
	// stays out of the cart and must not leak into the report.
	r1 := seedRecipe(t, recipes, author.ID, "Soup", []uint{tag.ID}, []IngredientLine{
		{IngredientID: salt.ID, Amount: 3},
		{IngredientID: apple.ID, Amount: 2},
	}, 10)
	r2 := seedRecipe(t, recipes, author.ID, "Stew", []uint{tag.ID}, []IngredientLine{
		{IngredientID: salt.ID, Amount: 5},
	}, 10)
	_ = seedRecipe(t, recipes, author.ID, "Cake", []uint{tag.ID}, []IngredientLine{
		{IngredientID: salt.ID, Amount: 100},
	}, 10)

	if err := cart.Add(ctx, buyer.ID, r1.Recipe.ID); err != nil {
		t.Fatalf("cart r1: %v", err)
	}
	if err := cart.Add(ctx, buyer.ID, r2.Recipe.ID); err != nil {
		t.Fatalf("cart r2: %v", err)
	}

	items, err := shop.List(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 consolidated items, got %d: %+v", len(items), items)
	}
	// Sorted by ingredient name ascending.
	if items[0].Name != "apple" || items[0].Amount != 2 {
		t.Fatalf("first item wrong: %+v", items[0])
	}
	if items[1].Name != "salt" || items[1].Amount != 8 || items[1].MeasurementUnit != "g" {
		t.Fatalf("salt not summed across recipes: %+v", items[1])
	}

	filename, body, err := shop.Report(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if filename != "buyer_shopping_list.txt" {
		t.Fatalf("filename wrong: %q", filename)
	}
	want := "apple pcs --> 2\nsalt g --> 8\n"
	if string(body) != want {
		t.Fatalf("body wrong:\n got %q\nwant %q", string(body), want)
	}
}

func TestShoppingReport_SameNameDifferentUnit(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	cart := NewCartService(db)
	shop := NewShoppingService(db)
	author := seedUser(t, db, "author")
	tag := seedTag(t, db, "Dinner", "#111111", "dinner")
	sugarG := seedIngredient(t, db, "sugar", "g")
	sugarCup := seedIngredient(t, db, "sugar", "cup")
	ctx := context.Background()

	r := seedRecipe(t, recipes, author.ID, "Cake", []uint{tag.ID}, []IngredientLine{
		{IngredientID: sugarG.ID, Amount: 200},
		{IngredientID: sugarCup.ID, Amount: 1},
	}, 10)
	if err := cart.Add(ctx, author.ID, r.Recipe.ID); err != nil {
		t.Fatalf("cart: %v", err)
	}

	items, err := shop.List(ctx, author.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// (name, unit) is the aggregation key: two lines, never merged.
	if len(items) != 2 {
		t.Fatalf("expected 2 lines for sugar g and sugar cup, got %d", len(items))
	}
}

func TestShoppingReport_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	shop := NewShoppingService(db)
	u := seedUser(t, db, "lonely")

	filename, body, err := shop.Report(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("empty cart should not error: %v", err)
	}
	if filename != "lonely_shopping_list.txt" || len(body) != 0 {
		t.Fatalf("expected empty body, got filename=%q body=%q", filename, body)
	}
}

func TestShoppingReport_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	shop := NewShoppingService(db)

	_, _, err := shop.Report(context.Background(), 9999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestShoppingReport_RemovedFromCartDropsOut(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	cart := NewCartService(db)
	shop := NewShoppingService(db)
	author := seedUser(t, db, "author")
	tag := seedTag(t, db, "Dinner", "#111111", "dinner")
	salt := seedIngredient(t, db, "salt", "g")
	ctx := context.Background()

	r := seedRecipe(t, recipes, author.ID, "Soup", []uint{tag.ID}, []IngredientLine{
		{IngredientID: salt.ID, Amount: 3},
	}, 10)
	if err := cart.Add(ctx, author.ID, r.Recipe.ID); err != nil {
		t.Fatalf("cart add: %v", err)
	}
	if err := cart.Remove(ctx, author.ID, r.Recipe.ID); err != nil {
		t.Fatalf("cart remove: %v", err)
	}

	_, body, err := shop.Report(ctx, author.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if strings.Contains(string(body), "salt") {
		t.Fatalf("removed recipe must not contribute: %q", body)
	}
}
