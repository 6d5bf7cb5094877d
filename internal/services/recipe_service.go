// Package services – RecipeService
//
// This file implements RecipeService, the application-level component that
// owns the lifecycle of recipes and their composition rows (tag set and
// ingredient amounts). It validates write requests in a fixed order, resolves
// referenced catalog entries, and persists the recipe together with its
// association rows atomically: a failure partway through never leaves a
// recipe with a mismatched tag or ingredient set.
//
// Reads return a RecipeView, which pairs the joined recipe with the
// viewer-relative derived fields (is_favorited, is_in_shopping_cart,
// favorites count, author subscription state). Anonymous viewers get the
// derived booleans as false.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// recipe/viewer identifiers and pagination parameters where applicable.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Cooking time bounds in minutes, inclusive.
const (
	minCookingTime = 1
	maxCookingTime = 360
)

// IngredientLine is one requested ingredient of a recipe write: a catalog
// ingredient ID plus the amount used.
type IngredientLine struct {
	IngredientID uint
	Amount       int
}

// RecipeInput is the decoded write request for creating or updating a recipe.
// The author is passed separately and is immutable on update.
type RecipeInput struct {
	Name        string
	Image       string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientLine
}

// RecipeView is the read model of a recipe: the joined row plus the fields
// that only exist relative to a viewer.
type RecipeView struct {
	Recipe           *domain.Recipe
	IsFavorited      bool
	IsInShoppingCart bool
	FavoritesCount   int64
	// AuthorSubscribed reports whether the viewer follows the recipe author.
	AuthorSubscribed bool
}

// RecipeService coordinates recipe persistence and read-model assembly.
type RecipeService struct {
	DB *gorm.DB
}

// NewRecipeService constructs a RecipeService on the given handle.
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{DB: db}
}

// Create validates the input and persists a new recipe owned by authorID with
// its tag and ingredient rows in one transaction. It returns the joined view
// as seen by the author.
//
// Validation order (first failure wins):
//  1. empty tag list            -> ErrEmptyTags
//  2. empty ingredient list     -> ErrEmptyIngredients
//  3. cooking time out of range -> ErrCookingTime
//  4. per ingredient line: unknown ID -> ErrIngredientNotFound,
//     duplicate ID -> ErrDuplicateIngredient, amount < 1 -> ErrBadAmount
//  5. unknown tag ID            -> ErrTagNotFound
func (s *RecipeService) Create(ctx context.Context, authorID uint, in RecipeInput) (*RecipeView, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.Int("author.id", int(authorID))),
	)
	defer span.End()

	tags, lines, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	if _, err := repo.GetUser(ctx, s.DB, authorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	r := &domain.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       in.Image,
		Text:        in.Text,
		CookingTime: in.CookingTime,
		CreatedAt:   time.Now().UTC(),
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateRecipe(ctx, tx, r); err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = r.ID
		}
		if err := repo.AddIngredients(ctx, tx, lines); err != nil {
			return err
		}
		return repo.ReplaceTags(ctx, tx, r, tags)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID, &authorID)
}

// Update applies the same validation as Create, updates the scalar fields in
// place, and replaces the full tag and ingredient sets inside one
// transaction. ID and author are immutable. Unknown recipe -> ErrRecipeNotFound.
func (s *RecipeService) Update(ctx context.Context, recipeID uint, in RecipeInput) (*RecipeView, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(attribute.Int("recipe.id", int(recipeID))),
	)
	defer span.End()

	r, err := repo.GetRecipe(ctx, s.DB, recipeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	tags, lines, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.UpdateRecipeFields(ctx, tx, recipeID, in.Name, in.Image, in.Text, in.CookingTime); err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipeID
		}
		if err := repo.ReplaceIngredients(ctx, tx, recipeID, lines); err != nil {
			return err
		}
		return repo.ReplaceTags(ctx, tx, r, tags)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, recipeID, &r.AuthorID)
}

// Get returns the joined recipe plus viewer-relative derived fields. A nil
// viewer is an anonymous read: both membership booleans come back false and
// the author subscription state is false.
func (s *RecipeService) Get(ctx context.Context, recipeID uint, viewer *uint) (*RecipeView, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.Int("recipe.id", int(recipeID))),
	)
	defer span.End()

	r, err := repo.GetRecipe(ctx, s.DB, recipeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return s.view(ctx, r, viewer)
}

// List returns a page of recipe views matching the filter, ordered by
// creation time descending, together with the total (pre-pagination) count.
//
// The favorited/in-cart filters apply only when the viewer is authenticated;
// for an anonymous viewer they silently yield the unfiltered set. That
// matches the long-standing behavior clients depend on.
func (s *RecipeService) List(ctx context.Context, f repo.RecipeFilter, viewer *uint, page, pageSize int) ([]RecipeView, int64, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if viewer == nil {
		f.FavoritedBy = nil
		f.InCartOf = nil
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountRecipes(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []RecipeView{}, 0, nil
	}

	recipes, err := repo.ListRecipes(ctx, s.DB, f, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}
	views := make([]RecipeView, 0, len(recipes))
	for i := range recipes {
		v, err := s.view(ctx, &recipes[i], viewer)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *v)
	}
	return views, total, nil
}

// Delete removes a recipe. The store cascades the delete to the recipe's
// tag, ingredient, favorite, and cart rows. Unknown recipe -> ErrRecipeNotFound.
func (s *RecipeService) Delete(ctx context.Context, recipeID uint) error {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int("recipe.id", int(recipeID))),
	)
	defer span.End()

	if err := repo.DeleteRecipe(ctx, s.DB, recipeID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return nil
}

// view assembles the derived fields for one recipe relative to viewer.
func (s *RecipeService) view(ctx context.Context, r *domain.Recipe, viewer *uint) (*RecipeView, error) {
	v := &RecipeView{Recipe: r}

	count, err := repo.CountPairsByTarget[domain.FavoriteRecipe](ctx, s.DB, repo.FavoritePairSpec, r.ID)
	if err != nil {
		return nil, err
	}
	v.FavoritesCount = count

	if viewer == nil {
		return v, nil
	}
	if v.IsFavorited, err = repo.PairExists[domain.FavoriteRecipe](ctx, s.DB, repo.FavoritePairSpec, *viewer, r.ID); err != nil {
		return nil, err
	}
	if v.IsInShoppingCart, err = repo.PairExists[domain.CartEntry](ctx, s.DB, repo.CartPairSpec, *viewer, r.ID); err != nil {
		return nil, err
	}
	if v.AuthorSubscribed, err = repo.PairExists[domain.Follow](ctx, s.DB, repo.FollowPairSpec, *viewer, r.AuthorID); err != nil {
		return nil, err
	}
	return v, nil
}

// validate runs the ordered write checks and resolves catalog references.
// It returns the resolved tag rows and unsaved ingredient amount rows
// (RecipeID still zero; the caller fills it inside the transaction).
func (s *RecipeService) validate(ctx context.Context, in RecipeInput) ([]domain.Tag, []domain.RecipeIngredient, error) {
	if len(in.TagIDs) == 0 {
		return nil, nil, ErrEmptyTags
	}
	if len(in.Ingredients) == 0 {
		return nil, nil, ErrEmptyIngredients
	}
	if in.CookingTime < minCookingTime || in.CookingTime > maxCookingTime {
		return nil, nil, ErrCookingTime
	}

	seen := make(map[uint]struct{}, len(in.Ingredients))
	lines := make([]domain.RecipeIngredient, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if _, err := repo.GetIngredient(ctx, s.DB, line.IngredientID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, nil, ErrIngredientNotFound
			}
			return nil, nil, err
		}
		if _, dup := seen[line.IngredientID]; dup {
			return nil, nil, ErrDuplicateIngredient
		}
		seen[line.IngredientID] = struct{}{}
		if line.Amount < 1 {
			return nil, nil, ErrBadAmount
		}
		lines = append(lines, domain.RecipeIngredient{
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}

	tags, err := repo.GetTagsByIDs(ctx, s.DB, dedupe(in.TagIDs))
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(dedupe(in.TagIDs)) {
		return nil, nil, ErrTagNotFound
	}
	return tags, lines, nil
}

// dedupe returns ids with duplicates removed, order preserved.
func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
