// Package domain defines the persistence models for users, tags, ingredients,
// recipes, and the membership rows that connect them (favorites, shopping
// cart entries, follows). These types are mapped with GORM and form the core
// data layer of the recipe catalog.
package domain

import "time"

// Role values stored on User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Password holds the hash only and is never
// serialized. Username and email are each unique across the table.
type User struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Username  string    `json:"username"   gorm:"size:150;not null;uniqueIndex"`
	Email     string    `json:"email"      gorm:"size:254;not null;uniqueIndex"`
	FirstName string    `json:"first_name" gorm:"size:150;not null"`
	LastName  string    `json:"last_name"  gorm:"size:150;not null"`
	Password  string    `json:"-"          gorm:"size:128;not null"`
	Role      string    `json:"-"          gorm:"size:13;not null;default:'user';check:role IN ('user','admin')"`
	CreatedAt time.Time `json:"-"`

	// Recipes authored by this user. Cascade-deleted with the account.
	Recipes []Recipe `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// IsAdmin reports whether the account carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Tag labels recipes for filtering. Name, color, and slug are all unique;
// the slug is the URL-safe identity used in list filters.
type Tag struct {
	ID    uint   `json:"id"    gorm:"primaryKey"`
	Name  string `json:"name"  gorm:"size:30;not null;uniqueIndex"`
	Color string `json:"color" gorm:"size:7;not null;uniqueIndex"`
	Slug  string `json:"slug"  gorm:"size:50;not null;uniqueIndex"`
}

// TableName returns the database table name for Tag.
func (Tag) TableName() string { return "tags" }

// Ingredient is a catalog entry identified by (name, measurement unit).
// The name alone is not unique: "sugar"/"g" and "sugar"/"cup" are distinct
// rows, but the pair is deduplicated on import.
type Ingredient struct {
	ID              uint   `json:"id"               gorm:"primaryKey"`
	Name            string `json:"name"             gorm:"size:200;not null;uniqueIndex:ux_ingredients_name_unit,priority:1"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:10;not null;uniqueIndex:ux_ingredients_name_unit,priority:2"`
}

// TableName returns the database table name for Ingredient.
func (Ingredient) TableName() string { return "ingredients" }

// Recipe is a published recipe owned by its author. Tag and ingredient
// associations are replaced wholesale on update; all association rows
// (tags, ingredient amounts, favorites, cart entries) are cascade-deleted
// with the recipe.
//
// CookingTime is minutes and must stay within [1, 360]; the service layer
// rejects values outside that range before they reach the store, and the
// check constraint backstops it.
type Recipe struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	AuthorID    uint      `json:"-"            gorm:"not null;index"`
	Name        string    `json:"name"         gorm:"size:30;not null"`
	Image       string    `json:"image"        gorm:"size:255;not null"`
	Text        string    `json:"text"         gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null;check:cooking_time BETWEEN 1 AND 360"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`

	// Author is the owning account. Recipes are cascade-deleted when the
	// author is removed.
	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Tags uses the recipe_tags join table (see RecipeTag, registered via
	// SetupJoinTable so the pair constraint and cascades apply).
	Tags []Tag `json:"-" gorm:"many2many:recipe_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Ingredients are the per-recipe amount rows, one per distinct ingredient.
	Ingredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Recipe.
func (Recipe) TableName() string { return "recipes" }

// RecipeTag is the join row between a recipe and a tag. The composite primary
// key enforces the unique (recipe, tag) pair.
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey"`
	TagID    uint `gorm:"primaryKey"`
}

// TableName returns the database table name for RecipeTag.
func (RecipeTag) TableName() string { return "recipe_tags" }

// RecipeIngredient holds the amount of one ingredient within one recipe.
// A recipe may reference an ingredient at most once.
type RecipeIngredient struct {
	ID           uint `json:"-"      gorm:"primaryKey"`
	RecipeID     uint `json:"-"      gorm:"not null;uniqueIndex:ux_recipe_ingredients_pair,priority:1"`
	IngredientID uint `json:"id"     gorm:"not null;uniqueIndex:ux_recipe_ingredients_pair,priority:2"`
	Amount       int  `json:"amount" gorm:"not null;check:amount >= 1"`

	Recipe     Recipe     `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Ingredient Ingredient `json:"-" gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for RecipeIngredient.
func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

// FavoriteRecipe marks a recipe as a favorite of a user. One row per
// (user, recipe) pair; the unique index doubles as the concurrency guard
// against double inserts.
type FavoriteRecipe struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:ux_favorites_pair,priority:1"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:ux_favorites_pair,priority:2"`
	CreatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for FavoriteRecipe.
func (FavoriteRecipe) TableName() string { return "favorite_recipes" }

// CartEntry places a recipe in a user's shopping cart. Same pair semantics
// as FavoriteRecipe; the shopping list aggregation reads these rows.
type CartEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:ux_cart_entries_pair,priority:1"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:ux_cart_entries_pair,priority:2"`
	CreatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for CartEntry.
func (CartEntry) TableName() string { return "cart_entries" }

// Follow records that UserID subscribes to FollowingID's recipes. A user
// cannot follow themselves; the service layer rejects that before insert.
type Follow struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:ux_follows_pair,priority:1"`
	FollowingID uint      `gorm:"not null;uniqueIndex:ux_follows_pair,priority:2"`
	CreatedAt   time.Time

	User      User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Following User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Follow.
func (Follow) TableName() string { return "follows" }
