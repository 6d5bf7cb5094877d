// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the read-mostly
// catalog models: Tag and Ingredient.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// ListTags returns every tag ordered by name ascending.
func ListTags(ctx context.Context, db *gorm.DB) ([]domain.Tag, error) {
	var out []domain.Tag
	err := db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

// GetTag fetches a tag by ID, or ErrNotFound if missing.
func GetTag(ctx context.Context, db *gorm.DB, id uint) (*domain.Tag, error) {
	var t domain.Tag
	if err := db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTagsByIDs resolves tag rows for the given IDs. The result may be shorter
// than ids when some IDs do not exist; callers decide whether that is an error.
func GetTagsByIDs(ctx context.Context, db *gorm.DB, ids []uint) ([]domain.Tag, error) {
	var out []domain.Tag
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// ListIngredients returns ingredients ordered by name, optionally restricted
// to names starting with prefix (case-sensitive LIKE, matching the source
// behavior of a startswith search).
func ListIngredients(ctx context.Context, db *gorm.DB, prefix string) ([]domain.Ingredient, error) {
	q := db.WithContext(ctx).Order("name ASC")
	if prefix != "" {
		q = q.Where("name LIKE ?", prefix+"%")
	}
	var out []domain.Ingredient
	err := q.Find(&out).Error
	return out, err
}

// GetIngredient fetches an ingredient by ID, or ErrNotFound if missing.
func GetIngredient(ctx context.Context, db *gorm.DB, id uint) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	if err := db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}
