// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model
// and the follow relation.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// GetUser fetches a single user by ID, or ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user row. Username and email uniqueness is
// enforced by the store; callers see the raw constraint error on conflict.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return db.WithContext(ctx).Create(u).Error
}

// GetUserWithRecipes fetches a user with their authored recipes preloaded
// newest first, or ErrNotFound if missing.
func GetUserWithRecipes(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipes.created_at DESC, recipes.id DESC")
		}).
		First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CountFollowees returns the number of users the given user follows.
func CountFollowees(ctx context.Context, db *gorm.DB, userID uint) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListFollowees returns a page of users followed by userID, most recent
// subscription first, with each followee's authored recipes preloaded
// (newest first) for the subscription representation.
func ListFollowees(ctx context.Context, db *gorm.DB, userID uint, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.id DESC").
		Offset(offset).
		Limit(limit).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipes.created_at DESC, recipes.id DESC")
		}).
		Find(&out).Error
	return out, err
}
