// Transport DTOs and their mapping from domain/service read models.
//
// The wire shapes are built explicitly, field by field, so the JSON contract
// is visible in one place and never drifts with persistence-model changes.
package handlers

import (
	"time"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/services"
)

//
// Write DTOs
//

// RecipeIngredientRequest is one ingredient line of a recipe write: a catalog
// ingredient ID and the amount used.
type RecipeIngredientRequest struct {
	ID     uint `json:"id" example:"12"`
	Amount int  `json:"amount" example:"50"`
}

// RecipeRequest is the JSON payload for creating or updating a recipe.
type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required,min=1,max=30" example:"Borscht"`
	Image       string                    `json:"image" example:"data:image/png;base64,iVBOR..."`
	Text        string                    `json:"text" binding:"required" example:"Chop the beets..."`
	CookingTime int                       `json:"cooking_time" example:"45"`
	Tags        []uint                    `json:"tags"`
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
}

// input converts the payload into the service-layer write model.
func (r RecipeRequest) input() services.RecipeInput {
	lines := make([]services.IngredientLine, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		lines = append(lines, services.IngredientLine{IngredientID: ing.ID, Amount: ing.Amount})
	}
	return services.RecipeInput{
		Name:        r.Name,
		Image:       r.Image,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		TagIDs:      r.Tags,
		Ingredients: lines,
	}
}

//
// Read DTOs
//

// UserInfo is the public representation of an account, including whether the
// viewer subscribes to it.
type UserInfo struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeIngredientResponse is one consolidated ingredient line of a recipe
// read: the catalog entry joined with the per-recipe amount.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full recipe read model: the recipe row joined with
// its author, tags, and ingredient lines, plus the viewer-relative fields.
type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Author           UserInfo                   `json:"author"`
	Tags             []domain.Tag               `json:"tags"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	FavoritesCount   int64                      `json:"favorites_count"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// ShortRecipe is the abbreviated recipe shape used in membership responses
// and subscription entries.
type ShortRecipe struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubscriptionEntry is one followed author in the subscriptions listing:
// the account plus a capped, newest-first sample of their recipes.
type SubscriptionEntry struct {
	UserInfo
	Recipes      []ShortRecipe `json:"recipes"`
	RecipesCount int           `json:"recipes_count"`
}

// newUserInfo maps an account row; isSubscribed is viewer-relative.
func newUserInfo(u *domain.User, isSubscribed bool) UserInfo {
	return UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

// newShortRecipe maps a recipe row to its abbreviated shape.
func newShortRecipe(r *domain.Recipe) ShortRecipe {
	return ShortRecipe{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
		CreatedAt:   r.CreatedAt,
	}
}

// newRecipeResponse maps a service read model to the wire shape. Tag order
// and ingredient order come from the store (both preloaded sorted).
func newRecipeResponse(v *services.RecipeView) RecipeResponse {
	r := v.Recipe
	ings := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for i := range r.Ingredients {
		line := &r.Ingredients[i]
		ings = append(ings, RecipeIngredientResponse{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}
	tags := r.Tags
	if tags == nil {
		tags = []domain.Tag{}
	}
	return RecipeResponse{
		ID:               r.ID,
		Author:           newUserInfo(&r.Author, v.AuthorSubscribed),
		Tags:             tags,
		Ingredients:      ings,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		IsFavorited:      v.IsFavorited,
		IsInShoppingCart: v.IsInShoppingCart,
		FavoritesCount:   v.FavoritesCount,
		CreatedAt:        r.CreatedAt,
	}
}

// newSubscriptionEntry maps one followed author. recipesLimit > 0 caps the
// recipe sample; RecipesCount always reports the full number of preloaded
// recipes. The entry only appears in the viewer's own subscriptions, so
// IsSubscribed is unconditionally true.
func newSubscriptionEntry(u *domain.User, recipesLimit int) SubscriptionEntry {
	recipes := u.Recipes
	if recipesLimit > 0 && len(recipes) > recipesLimit {
		recipes = recipes[:recipesLimit]
	}
	short := make([]ShortRecipe, 0, len(recipes))
	for i := range recipes {
		short = append(short, newShortRecipe(&recipes[i]))
	}
	return SubscriptionEntry{
		UserInfo:     newUserInfo(u, true),
		Recipes:      short,
		RecipesCount: len(u.Recipes),
	}
}
