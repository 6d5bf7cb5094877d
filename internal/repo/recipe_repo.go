// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Recipe
// model and its composition rows.
//
// Error semantics:
//   - When a recipe is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.RecipeService) which enforces the validation rules and
// transactional boundaries for recipe composition.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// RecipeFilter narrows ListRecipes/CountRecipes. Nil/empty fields are
// ignored. TagSlugs uses OR semantics: a recipe matches when it carries any
// of the given slugs (results deduplicated). FavoritedBy and InCartOf filter
// to recipes the given viewer has favorited / put in their cart.
type RecipeFilter struct {
	AuthorID    *uint
	TagSlugs    []string
	FavoritedBy *uint
	InCartOf    *uint
}

// apply composes the filter onto q. Joins are aliased so the membership
// filters can coexist on one query.
func (f RecipeFilter) apply(q *gorm.DB) *gorm.DB {
	if f.AuthorID != nil {
		q = q.Where("recipes.author_id = ?", *f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		q = q.
			Joins("JOIN recipe_tags rt ON rt.recipe_id = recipes.id").
			Joins("JOIN tags t ON t.id = rt.tag_id").
			Where("t.slug IN ?", f.TagSlugs)
	}
	if f.FavoritedBy != nil {
		q = q.Joins("JOIN favorite_recipes fav ON fav.recipe_id = recipes.id AND fav.user_id = ?", *f.FavoritedBy)
	}
	if f.InCartOf != nil {
		q = q.Joins("JOIN cart_entries cart ON cart.recipe_id = recipes.id AND cart.user_id = ?", *f.InCartOf)
	}
	return q
}

// CreateRecipe inserts a new Recipe row. Association rows are written
// separately by the caller (inside the same transaction).
func CreateRecipe(ctx context.Context, db *gorm.DB, r *domain.Recipe) error {
	return db.WithContext(ctx).Omit("Tags", "Ingredients", "Author").Create(r).Error
}

// GetRecipe fetches a single recipe by ID with author, tags, and ingredient
// amounts (with their ingredient rows) preloaded. Returns ErrNotFound when
// the recipe does not exist.
func GetRecipe(ctx context.Context, db *gorm.DB, id uint) (*domain.Recipe, error) {
	var r domain.Recipe
	err := db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Preload("Ingredients.Ingredient").
		First(&r, id).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CountRecipes returns the number of distinct recipes matching the filter.
func CountRecipes(ctx context.Context, db *gorm.DB, f RecipeFilter) (int64, error) {
	var total int64
	q := f.apply(db.WithContext(ctx).Model(&domain.Recipe{}))
	err := q.Distinct("recipes.id").Count(&total).Error
	return total, err
}

// ListRecipes returns a page of distinct recipes matching the filter,
// ordered by creation time descending, with the same preloads as GetRecipe.
func ListRecipes(ctx context.Context, db *gorm.DB, f RecipeFilter, offset, limit int) ([]domain.Recipe, error) {
	var out []domain.Recipe
	q := f.apply(db.WithContext(ctx).Model(&domain.Recipe{})).
		Distinct("recipes.*").
		Order("recipes.created_at DESC, recipes.id DESC").
		Offset(offset).
		Limit(limit).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Preload("Ingredients.Ingredient")
	err := q.Find(&out).Error
	return out, err
}

// UpdateRecipeFields updates the scalar columns of a recipe in place.
// Author and ID are immutable and never touched here. Returns ErrNotFound
// when no row was affected.
func UpdateRecipeFields(ctx context.Context, db *gorm.DB, id uint, name, image, text string, cookingTime int) error {
	res := db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":         name,
			"image":        image,
			"text":         text,
			"cooking_time": cookingTime,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe row. The FK constraints cascade the delete
// to recipe_tags, recipe_ingredients, favorite_recipes, and cart_entries.
// Returns ErrNotFound when the recipe does not exist.
func DeleteRecipe(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Recipe{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddIngredients bulk-inserts the given amount rows. Callers build the rows
// with RecipeID already set and run this inside the composing transaction.
func AddIngredients(ctx context.Context, db *gorm.DB, rows []domain.RecipeIngredient) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).Omit("Recipe", "Ingredient").Create(&rows).Error
}

// ReplaceIngredients deletes every amount row of a recipe and inserts the
// replacement set. Intended to run inside a transaction so a failure never
// leaves the recipe with a partial ingredient list.
func ReplaceIngredients(ctx context.Context, db *gorm.DB, recipeID uint, rows []domain.RecipeIngredient) error {
	if err := db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&domain.RecipeIngredient{}).Error; err != nil {
		return err
	}
	return AddIngredients(ctx, db, rows)
}

// ReplaceTags swaps the recipe's tag set for the given one using the
// association API, which rewrites the recipe_tags join rows.
func ReplaceTags(ctx context.Context, db *gorm.DB, r *domain.Recipe, tags []domain.Tag) error {
	return db.WithContext(ctx).Model(r).Association("Tags").Replace(&tags)
}
