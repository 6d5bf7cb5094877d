// Package services – ShoppingService
//
// This file implements the shopping list aggregator: the derived view over a
// user's cart that consolidates ingredient amounts across every carted
// recipe and renders them as a downloadable plain-text report.
//
// The aggregation is a point-in-time read. No locks are taken; a cart
// mutated concurrently with report generation may be reflected partially.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ShoppingService computes consolidated shopping lists.
type ShoppingService struct {
	DB *gorm.DB
}

// NewShoppingService constructs a ShoppingService on the given handle.
func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{DB: db}
}

// List returns the consolidated shopping list for userID: one item per
// (ingredient name, measurement unit) with amounts summed over the carted
// recipes, ordered by name ascending. An empty cart yields an empty slice.
func (s *ShoppingService) List(ctx context.Context, userID uint) ([]repo.ShoppingItem, error) {
	tr := otel.Tracer("services/ShoppingService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.Int("user.id", int(userID))),
	)
	defer span.End()

	return repo.ShoppingList(ctx, s.DB, userID)
}

// Report builds the downloadable report for userID. It returns the
// attachment filename ("{username}_shopping_list.txt") and the rendered
// body: one "{name} {unit} --> {total}" line per consolidated item. An empty
// cart produces a valid zero-line body, not an error. Unknown user ->
// ErrUserNotFound.
func (s *ShoppingService) Report(ctx context.Context, userID uint) (filename string, body []byte, err error) {
	tr := otel.Tracer("services/ShoppingService")
	ctx, span := tr.Start(ctx, "Report",
		trace.WithAttributes(attribute.Int("user.id", int(userID))),
	)
	defer span.End()

	user, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	items, err := repo.ShoppingList(ctx, s.DB, userID)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	for _, it := range items {
		fmt.Fprintf(&buf, "%s %s --> %d\n", it.Name, it.MeasurementUnit, it.Amount)
	}
	return user.Username + "_shopping_list.txt", buf.Bytes(), nil
}
