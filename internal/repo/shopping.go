// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the shopping list aggregation query:
// the single derived view in the system that is more than row CRUD.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// ShoppingItem is one consolidated line of a user's shopping list: an
// ingredient identity (name + unit) with the amount summed across every
// recipe currently in the cart.
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// ShoppingList joins the viewer's cart entries to the ingredient amounts of
// the carted recipes, groups by ingredient identity, and sums the amounts.
// Results are ordered by ingredient name ascending. An empty cart yields an
// empty slice, not an error.
//
// This is a point-in-time read: no locks are taken, and concurrent cart
// mutation may or may not be reflected.
func ShoppingList(ctx context.Context, db *gorm.DB, userID uint) ([]ShoppingItem, error) {
	var out []ShoppingItem
	err := db.WithContext(ctx).
		Model(&domain.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN cart_entries ON cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&out).Error
	return out, err
}
