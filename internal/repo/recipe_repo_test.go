package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

func mustTag(t *testing.T, db *gorm.DB, name, color, slug string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: name, Color: color, Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return tag
}

func mustIngredient(t *testing.T, db *gorm.DB, name, unit string) *domain.Ingredient {
	t.Helper()
	ing := &domain.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ing).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	return ing
}

func TestRecipeCRUD_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mustUser(t, db, "author")
	tag := mustTag(t, db, "Dinner", "#111111", "dinner")
	salt := mustIngredient(t, db, "salt", "g")

	r := mustRecipe(t, db, author.ID, "Soup")
	if err := ReplaceTags(ctx, db, r, []domain.Tag{*tag}); err != nil {
		t.Fatalf("tags: %v", err)
	}
	if err := AddIngredients(ctx, db, []domain.RecipeIngredient{
		{RecipeID: r.ID, IngredientID: salt.ID, Amount: 3},
	}); err != nil {
		t.Fatalf("ingredients: %v", err)
	}

	got, err := GetRecipe(ctx, db, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Author.Username != "author" {
		t.Fatalf("author not preloaded: %+v", got.Author)
	}
	if len(got.Tags) != 1 || got.Tags[0].Slug != "dinner" {
		t.Fatalf("tags not preloaded: %+v", got.Tags)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Ingredient.Name != "salt" {
		t.Fatalf("ingredient amounts not preloaded: %+v", got.Ingredients)
	}

	if _, err := GetRecipe(ctx, db, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRecipeFields_RowsAffected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mustUser(t, db, "author")
	r := mustRecipe(t, db, author.ID, "Soup")

	if err := UpdateRecipeFields(ctx, db, r.ID, "Stew", "img", "text", 45); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := GetRecipe(ctx, db, r.ID)
	if err != nil || got.Name != "Stew" || got.CookingTime != 45 {
		t.Fatalf("update not applied: %+v err=%v", got, err)
	}
	if got.AuthorID != author.ID {
		t.Fatalf("author changed on update")
	}

	if err := UpdateRecipeFields(ctx, db, 9999, "x", "y", "z", 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing row should map to ErrNotFound, got %v", err)
	}
}

func TestDeleteRecipe_CascadesCompositionRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mustUser(t, db, "author")
	tag := mustTag(t, db, "Dinner", "#111111", "dinner")
	salt := mustIngredient(t, db, "salt", "g")
	r := mustRecipe(t, db, author.ID, "Soup")

	if err := ReplaceTags(ctx, db, r, []domain.Tag{*tag}); err != nil {
		t.Fatalf("tags: %v", err)
	}
	if err := AddIngredients(ctx, db, []domain.RecipeIngredient{
		{RecipeID: r.ID, IngredientID: salt.ID, Amount: 3},
	}); err != nil {
		t.Fatalf("ingredients: %v", err)
	}

	if err := DeleteRecipe(ctx, db, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := DeleteRecipe(ctx, db, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}

	var nTags, nIngs int64
	db.Model(&domain.RecipeTag{}).Where("recipe_id = ?", r.ID).Count(&nTags)
	db.Model(&domain.RecipeIngredient{}).Where("recipe_id = ?", r.ID).Count(&nIngs)
	if nTags != 0 || nIngs != 0 {
		t.Fatalf("composition rows survived: tags=%d ingredients=%d", nTags, nIngs)
	}

	// Catalog rows are shared and must outlive the recipe.
	if _, err := GetTag(ctx, db, tag.ID); err != nil {
		t.Fatalf("tag deleted with recipe: %v", err)
	}
	if _, err := GetIngredient(ctx, db, salt.ID); err != nil {
		t.Fatalf("ingredient deleted with recipe: %v", err)
	}
}

func TestReplaceIngredients_SwapsWholeSet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mustUser(t, db, "author")
	salt := mustIngredient(t, db, "salt", "g")
	sugar := mustIngredient(t, db, "sugar", "g")
	r := mustRecipe(t, db, author.ID, "Soup")

	if err := AddIngredients(ctx, db, []domain.RecipeIngredient{
		{RecipeID: r.ID, IngredientID: salt.ID, Amount: 3},
	}); err != nil {
		t.Fatalf("seed amounts: %v", err)
	}
	if err := ReplaceIngredients(ctx, db, r.ID, []domain.RecipeIngredient{
		{RecipeID: r.ID, IngredientID: sugar.ID, Amount: 7},
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := GetRecipe(ctx, db, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].IngredientID != sugar.ID || got.Ingredients[0].Amount != 7 {
		t.Fatalf("old amounts still present: %+v", got.Ingredients)
	}

	// Replacing with an empty set clears every amount row.
	if err := ReplaceIngredients(ctx, db, r.ID, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	var n int64
	db.Model(&domain.RecipeIngredient{}).Where("recipe_id = ?", r.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected no amount rows, got %d", n)
	}
}

func TestListRecipes_FilterAndDistinct(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")
	dinner := mustTag(t, db, "Dinner", "#111111", "dinner")
	lunch := mustTag(t, db, "Lunch", "#222222", "lunch")

	soup := mustRecipe(t, db, alice.ID, "Soup")
	stew := mustRecipe(t, db, alice.ID, "Stew")
	cake := mustRecipe(t, db, bob.ID, "Cake")
	if err := ReplaceTags(ctx, db, soup, []domain.Tag{*dinner, *lunch}); err != nil {
		t.Fatalf("soup tags: %v", err)
	}
	if err := ReplaceTags(ctx, db, stew, []domain.Tag{*dinner}); err != nil {
		t.Fatalf("stew tags: %v", err)
	}
	if err := ReplaceTags(ctx, db, cake, []domain.Tag{*lunch}); err != nil {
		t.Fatalf("cake tags: %v", err)
	}

	// No filter: everything, newest first.
	all, err := ListRecipes(ctx, db, RecipeFilter{}, 0, 10)
	if err != nil || len(all) != 3 {
		t.Fatalf("unfiltered: len=%d err=%v", len(all), err)
	}
	if all[0].ID != cake.ID {
		t.Fatalf("expected newest first, got %q", all[0].Name)
	}

	// Author filter.
	byAlice, err := ListRecipes(ctx, db, RecipeFilter{AuthorID: &alice.ID}, 0, 10)
	if err != nil || len(byAlice) != 2 {
		t.Fatalf("author filter: len=%d err=%v", len(byAlice), err)
	}

	// Multiple tag slugs OR together, and a recipe carrying both slugs
	// appears once.
	tagged, err := ListRecipes(ctx, db, RecipeFilter{TagSlugs: []string{"dinner", "lunch"}}, 0, 10)
	if err != nil || len(tagged) != 3 {
		t.Fatalf("tag OR filter: len=%d err=%v", len(tagged), err)
	}
	total, err := CountRecipes(ctx, db, RecipeFilter{TagSlugs: []string{"dinner", "lunch"}})
	if err != nil || total != 3 {
		t.Fatalf("distinct count: total=%d err=%v", total, err)
	}

	// Membership filters join against the viewer's rows.
	if err := CreatePair(ctx, db, &domain.FavoriteRecipe{UserID: bob.ID, RecipeID: soup.ID}); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	favs, err := ListRecipes(ctx, db, RecipeFilter{FavoritedBy: &bob.ID}, 0, 10)
	if err != nil || len(favs) != 1 || favs[0].ID != soup.ID {
		t.Fatalf("favorited filter: %+v err=%v", favs, err)
	}

	// Combined filters intersect.
	both, err := ListRecipes(ctx, db, RecipeFilter{AuthorID: &alice.ID, TagSlugs: []string{"lunch"}, FavoritedBy: &bob.ID}, 0, 10)
	if err != nil || len(both) != 1 || both[0].ID != soup.ID {
		t.Fatalf("combined filter: %+v err=%v", both, err)
	}

	// Pagination.
	page, err := ListRecipes(ctx, db, RecipeFilter{}, 2, 1)
	if err != nil || len(page) != 1 || page[0].ID != soup.ID {
		t.Fatalf("offset page: %+v err=%v", page, err)
	}
}

func TestShoppingList_GroupsByNameAndUnit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mustUser(t, db, "author")
	buyer := mustUser(t, db, "buyer")
	salt := mustIngredient(t, db, "salt", "g")
	sugarG := mustIngredient(t, db, "sugar", "g")
	sugarCup := mustIngredient(t, db, "sugar", "cup")

	soup := mustRecipe(t, db, author.ID, "Soup")
	cake := mustRecipe(t, db, author.ID, "Cake")
	if err := AddIngredients(ctx, db, []domain.RecipeIngredient{
		{RecipeID: soup.ID, IngredientID: salt.ID, Amount: 3},
		{RecipeID: soup.ID, IngredientID: sugarG.ID, Amount: 10},
	}); err != nil {
		t.Fatalf("soup amounts: %v", err)
	}
	if err := AddIngredients(ctx, db, []domain.RecipeIngredient{
		{RecipeID: cake.ID, IngredientID: salt.ID, Amount: 2},
		{RecipeID: cake.ID, IngredientID: sugarCup.ID, Amount: 1},
	}); err != nil {
		t.Fatalf("cake amounts: %v", err)
	}
	for _, rid := range []uint{soup.ID, cake.ID} {
		if err := CreatePair(ctx, db, &domain.CartEntry{UserID: buyer.ID, RecipeID: rid}); err != nil {
			t.Fatalf("cart %d: %v", rid, err)
		}
	}

	items, err := ShoppingList(ctx, db, buyer.ID)
	if err != nil {
		t.Fatalf("shopping list: %v", err)
	}
	// salt summed across recipes; the two sugar units stay separate lines.
	want := []ShoppingItem{
		{Name: "salt", MeasurementUnit: "g", Amount: 5},
		{Name: "sugar", MeasurementUnit: "cup", Amount: 1},
		{Name: "sugar", MeasurementUnit: "g", Amount: 10},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d lines, got %d: %+v", len(want), len(items), items)
	}
	if items[0] != want[0] {
		t.Fatalf("line 0: got %+v want %+v", items[0], want[0])
	}
	gotSugar := map[string]int64{items[1].MeasurementUnit: items[1].Amount, items[2].MeasurementUnit: items[2].Amount}
	if gotSugar["cup"] != 1 || gotSugar["g"] != 10 {
		t.Fatalf("sugar lines wrong: %+v", items[1:])
	}

	// Another user's cart is empty.
	none, err := ShoppingList(ctx, db, author.ID)
	if err != nil || len(none) != 0 {
		t.Fatalf("empty cart: len=%d err=%v", len(none), err)
	}
}

func TestListFollowees_OrderAndPreload(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	viewer := mustUser(t, db, "viewer")
	first := mustUser(t, db, "first")
	second := mustUser(t, db, "second")
	mustRecipe(t, db, second.ID, "Cake")

	if err := CreatePair(ctx, db, &domain.Follow{UserID: viewer.ID, FollowingID: first.ID}); err != nil {
		t.Fatalf("follow first: %v", err)
	}
	if err := CreatePair(ctx, db, &domain.Follow{UserID: viewer.ID, FollowingID: second.ID}); err != nil {
		t.Fatalf("follow second: %v", err)
	}

	total, err := CountFollowees(ctx, db, viewer.ID)
	if err != nil || total != 2 {
		t.Fatalf("count: total=%d err=%v", total, err)
	}

	users, err := ListFollowees(ctx, db, viewer.ID, 0, 10)
	if err != nil || len(users) != 2 {
		t.Fatalf("list: len=%d err=%v", len(users), err)
	}
	if users[0].ID != second.ID || users[1].ID != first.ID {
		t.Fatalf("most recent follow should come first: %d then %d", users[0].ID, users[1].ID)
	}
	if len(users[0].Recipes) != 1 || len(users[1].Recipes) != 0 {
		t.Fatalf("recipes not preloaded: %d and %d", len(users[0].Recipes), len(users[1].Recipes))
	}
}
