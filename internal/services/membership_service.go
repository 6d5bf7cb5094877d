// Package services – Membership
//
// This file implements the single generic membership service behind
// favorites, shopping cart entries, and follows. All three relations share
// the same contract: Add fails when the (actor, target) pair already exists,
// Remove fails when it does not — repeating either operation is an error,
// never a silent no-op. The unique pair index in the store is the
// concurrency guard: when two concurrent Adds race past the application
// check, exactly one insert succeeds and the loser's constraint violation is
// mapped onto the same already-exists error the check would have produced.
//
// The relations differ only in their row type, pair columns, target
// existence check, and error vocabulary, so those are the parameters; see
// NewFavoriteService, NewCartService, and NewFollowService.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/repo"
)

// Membership implements Add/Remove for one association row type T.
type Membership[T any] struct {
	// DB is the database handle used for all membership operations.
	DB *gorm.DB
	// Spec names the actor/target columns of T's table.
	Spec repo.PairSpec
	// NewRow builds an unsaved row for (actor, target).
	NewRow func(actor, target uint) T
	// CheckTarget verifies the target entity exists, returning the relation's
	// not-found error otherwise.
	CheckTarget func(ctx context.Context, db *gorm.DB, target uint) error
	// ErrExists and ErrMissing are the relation's duplicate-add and
	// absent-remove errors.
	ErrExists  error
	ErrMissing error
	// ForbidSelf rejects actor == target before any other check (follows).
	ForbidSelf bool
}

// Add inserts the (actor, target) membership row.
//
// Semantics and validation:
//   - For self-forbidding relations, actor == target -> ErrSelfFollow.
//   - The target must exist; otherwise the relation's not-found error.
//   - The pair must not already exist; otherwise ErrExists. A concurrent
//     duplicate insert that slips past the check is mapped to ErrExists too.
func (m *Membership[T]) Add(ctx context.Context, actor, target uint) error {
	if m.ForbidSelf && actor == target {
		return ErrSelfFollow
	}
	if err := m.CheckTarget(ctx, m.DB, target); err != nil {
		return err
	}
	exists, err := repo.PairExists[T](ctx, m.DB, m.Spec, actor, target)
	if err != nil {
		return err
	}
	if exists {
		return m.ErrExists
	}
	row := m.NewRow(actor, target)
	if err := repo.CreatePair(ctx, m.DB, &row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return m.ErrExists
		}
		return err
	}
	return nil
}

// Remove deletes the (actor, target) membership row. The target must exist;
// a missing pair yields ErrMissing.
func (m *Membership[T]) Remove(ctx context.Context, actor, target uint) error {
	if err := m.CheckTarget(ctx, m.DB, target); err != nil {
		return err
	}
	n, err := repo.DeletePair[T](ctx, m.DB, m.Spec, actor, target)
	if err != nil {
		return err
	}
	if n == 0 {
		return m.ErrMissing
	}
	return nil
}

// Exists reports whether the (actor, target) membership row is present.
func (m *Membership[T]) Exists(ctx context.Context, actor, target uint) (bool, error) {
	return repo.PairExists[T](ctx, m.DB, m.Spec, actor, target)
}

// checkRecipe and checkUser are the shared target existence checks.

func checkRecipe(ctx context.Context, db *gorm.DB, id uint) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Recipe{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func checkUser(ctx context.Context, db *gorm.DB, id uint) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// NewFavoriteService builds the membership service for favorite recipes.
func NewFavoriteService(db *gorm.DB) *Membership[domain.FavoriteRecipe] {
	return &Membership[domain.FavoriteRecipe]{
		DB:   db,
		Spec: repo.FavoritePairSpec,
		NewRow: func(actor, target uint) domain.FavoriteRecipe {
			return domain.FavoriteRecipe{UserID: actor, RecipeID: target}
		},
		CheckTarget: checkRecipe,
		ErrExists:   ErrAlreadyFavorited,
		ErrMissing:  ErrNotFavorited,
	}
}

// NewCartService builds the membership service for shopping cart entries.
func NewCartService(db *gorm.DB) *Membership[domain.CartEntry] {
	return &Membership[domain.CartEntry]{
		DB:   db,
		Spec: repo.CartPairSpec,
		NewRow: func(actor, target uint) domain.CartEntry {
			return domain.CartEntry{UserID: actor, RecipeID: target}
		},
		CheckTarget: checkRecipe,
		ErrExists:   ErrAlreadyInCart,
		ErrMissing:  ErrNotInCart,
	}
}

// NewFollowService builds the membership service for user subscriptions.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		Membership: Membership[domain.Follow]{
			DB:   db,
			Spec: repo.FollowPairSpec,
			NewRow: func(actor, target uint) domain.Follow {
				return domain.Follow{UserID: actor, FollowingID: target}
			},
			CheckTarget: checkUser,
			ErrExists:   ErrAlreadyFollowing,
			ErrMissing:  ErrNotFollowing,
			ForbidSelf:  true,
		},
	}
}

// FollowService is the follow membership plus the subscriptions listing.
type FollowService struct {
	Membership[domain.Follow]
}

// Subscriptions returns a page of the users that userID follows (most recent
// subscription first, recipes preloaded newest-first) and the total count.
func (s *FollowService) Subscriptions(ctx context.Context, userID uint, page, pageSize int) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountFollowees(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.User{}, 0, nil
	}
	users, err := repo.ListFollowees(ctx, s.DB, userID, offset, pageSize)
	return users, total, err
}

// Followee fetches one followed user with their recipes preloaded newest
// first, for rendering right after a subscribe. Unknown user -> ErrUserNotFound.
func (s *FollowService) Followee(ctx context.Context, targetID uint) (*domain.User, error) {
	u, err := repo.GetUserWithRecipes(ctx, s.DB, targetID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
