// Package services defines the business logic for recipe composition,
// memberships (favorites, cart, follows), and shopping list aggregation.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer. Two families exist: not-found errors (missing
// referenced entities) and validation errors (user-correctable input,
// including duplicate membership adds and removes of absent memberships).
package services

import "errors"

// Not-found errors: a referenced entity does not exist.
var (
	// ErrRecipeNotFound indicates that the requested recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrUserNotFound indicates that the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrIngredientNotFound is returned when a recipe references an
	// ingredient ID that is not in the catalog.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrTagNotFound is returned when a recipe references a tag ID that is
	// not in the catalog.
	ErrTagNotFound = errors.New("tag not found")
)

// Recipe composition validation errors.
var (
	// ErrEmptyTags is returned when a recipe write carries no tags.
	ErrEmptyTags = errors.New("at least one tag is required")

	// ErrEmptyIngredients is returned when a recipe write carries no
	// ingredient lines.
	ErrEmptyIngredients = errors.New("at least one ingredient is required")

	// ErrDuplicateIngredient is returned when the same ingredient ID appears
	// more than once in a single recipe write.
	ErrDuplicateIngredient = errors.New("ingredient already added to this recipe")

	// ErrBadAmount is returned when an ingredient amount is below 1.
	ErrBadAmount = errors.New("ingredient amount must be at least 1")

	// ErrCookingTime is returned when cooking time falls outside [1, 360]
	// minutes. Both boundaries are valid values.
	ErrCookingTime = errors.New("cooking time must be between 1 and 360 minutes")
)

// Membership validation errors. Add and Remove are deliberately not
// idempotent: repeating either operation is an error, not a no-op.
var (
	// ErrAlreadyFavorited is returned on a second favorite of the same recipe.
	ErrAlreadyFavorited = errors.New("recipe already in favorites")

	// ErrNotFavorited is returned when removing a favorite that does not exist.
	ErrNotFavorited = errors.New("recipe already removed from favorites")

	// ErrAlreadyInCart is returned on a second cart add of the same recipe.
	ErrAlreadyInCart = errors.New("recipe already in shopping cart")

	// ErrNotInCart is returned when removing a cart entry that does not exist.
	ErrNotInCart = errors.New("recipe already removed from shopping cart")

	// ErrAlreadyFollowing is returned on a second subscribe to the same user.
	ErrAlreadyFollowing = errors.New("already subscribed to this user")

	// ErrNotFollowing is returned when unsubscribing from a user without a
	// subscription.
	ErrNotFollowing = errors.New("already unsubscribed from this user")

	// ErrSelfFollow is returned for any attempt of a user to follow
	// themselves, regardless of prior state.
	ErrSelfFollow = errors.New("cannot subscribe to yourself")
)
