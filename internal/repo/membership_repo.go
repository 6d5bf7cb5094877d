// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the generic pair store shared by the
// three membership relations (favorites, cart entries, follows).
//
// Each membership is a join row identified by an (actor, target) column pair
// with a unique index on the pair. The functions here are parameterized over
// the row type so the same persistence code backs all three relations; the
// column names are supplied by a PairSpec since they differ per table
// (e.g. follows uses following_id as its target column).
package repo

import (
	"context"

	"gorm.io/gorm"
)

// PairSpec names the actor and target columns of a membership table.
type PairSpec struct {
	ActorCol  string
	TargetCol string
}

// Favorite, cart, and follow pair specs used by the membership services.
var (
	FavoritePairSpec = PairSpec{ActorCol: "user_id", TargetCol: "recipe_id"}
	CartPairSpec     = PairSpec{ActorCol: "user_id", TargetCol: "recipe_id"}
	FollowPairSpec   = PairSpec{ActorCol: "user_id", TargetCol: "following_id"}
)

// PairExists reports whether an (actor, target) row exists for T.
func PairExists[T any](ctx context.Context, db *gorm.DB, spec PairSpec, actor, target uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(new(T)).
		Where(spec.ActorCol+" = ? AND "+spec.TargetCol+" = ?", actor, target).
		Count(&n).Error
	return n > 0, err
}

// CreatePair inserts a membership row. A concurrent duplicate surfaces as
// the store's unique-constraint error; callers map it to their domain error.
func CreatePair[T any](ctx context.Context, db *gorm.DB, row *T) error {
	return db.WithContext(ctx).Create(row).Error
}

// DeletePair removes the (actor, target) row for T and returns how many rows
// were affected (0 when the membership did not exist).
func DeletePair[T any](ctx context.Context, db *gorm.DB, spec PairSpec, actor, target uint) (int64, error) {
	res := db.WithContext(ctx).
		Where(spec.ActorCol+" = ? AND "+spec.TargetCol+" = ?", actor, target).
		Delete(new(T))
	return res.RowsAffected, res.Error
}

// CountPairsByTarget returns the number of membership rows pointing at
// target, e.g. a recipe's favorites count.
func CountPairsByTarget[T any](ctx context.Context, db *gorm.DB, spec PairSpec, target uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(new(T)).
		Where(spec.TargetCol+" = ?", target).
		Count(&n).Error
	return n, err
}
