// Package services – CatalogService
//
// Read-only access to the tag and ingredient catalogs. Both are maintained
// out of band (seeding/admin); the public API only lists and fetches them,
// with a name-prefix search on ingredients.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/repo"
)

// CatalogService serves tags and ingredients.
type CatalogService struct {
	DB *gorm.DB
}

// NewCatalogService constructs a CatalogService on the given handle.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// Tags returns every tag ordered by name.
func (s *CatalogService) Tags(ctx context.Context) ([]domain.Tag, error) {
	return repo.ListTags(ctx, s.DB)
}

// Tag fetches one tag, or ErrTagNotFound.
func (s *CatalogService) Tag(ctx context.Context, id uint) (*domain.Tag, error) {
	t, err := repo.GetTag(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return t, nil
}

// Ingredients returns ingredients whose name starts with prefix (all of them
// when prefix is empty), ordered by name.
func (s *CatalogService) Ingredients(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	return repo.ListIngredients(ctx, s.DB, prefix)
}

// Ingredient fetches one ingredient, or ErrIngredientNotFound.
func (s *CatalogService) Ingredient(ctx context.Context, id uint) (*domain.Ingredient, error) {
	ing, err := repo.GetIngredient(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ing, nil
}
