// Recipe HTTP handlers.
//
// This file exposes REST endpoints for recipe resources:
//   - GET    /recipes          (list, paginated, filterable)
//   - POST   /recipes          (create)
//   - GET    /recipes/{id}     (detail)
//   - PATCH  /recipes/{id}     (update)
//   - DELETE /recipes/{id}     (delete)
//
// List filters: author, tags (repeatable slug), is_favorited, is_in_shopping_cart.
// The viewer-relative filters silently no-op for anonymous requests.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/repo"
	"github.com/tbourn/go-recipe-backend/internal/services"
)

// failRecipeWrite translates a recipe write error into an HTTP response.
// Validation failures map to 400, unresolved references to 400 as well
// (they are payload errors, not resource lookups), and anything else to 500.
func failRecipeWrite(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyTags):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "at least one tag is required")
	case errors.Is(err, services.ErrEmptyIngredients):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "at least one ingredient is required")
	case errors.Is(err, services.ErrCookingTime):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cooking time must be between 1 and 360 minutes")
	case errors.Is(err, services.ErrIngredientNotFound):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown ingredient id")
	case errors.Is(err, services.ErrDuplicateIngredient):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "duplicate ingredient id")
	case errors.Is(err, services.ErrBadAmount):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "ingredient amount must be at least 1")
	case errors.Is(err, services.ErrTagNotFound):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown tag id")
	case errors.Is(err, services.ErrRecipeNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "recipe not found")
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// recipeFilter decodes the list filter query parameters relative to viewer.
func recipeFilter(c *gin.Context, viewer *uint) repo.RecipeFilter {
	var f repo.RecipeFilter
	if raw := c.Query("author"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(n)
			f.AuthorID = &id
		}
	}
	if slugs := c.QueryArray("tags"); len(slugs) > 0 {
		f.TagSlugs = slugs
	}
	if viewer != nil {
		if c.Query("is_favorited") == "1" {
			f.FavoritedBy = viewer
		}
		if c.Query("is_in_shopping_cart") == "1" {
			f.InCartOf = viewer
		}
	}
	return f
}

// ListRecipes godoc
// @ID          listRecipes
// @Summary     List recipes (paginated)
// @Description Returns a page of recipes, newest first. Supports author, tag slug, favorited, and shopping cart filters.
// @Tags        Recipes
// @Produce     json
//
// @Param       X-User-ID            header  string  false "User ID (demo header)"  example(42)
// @Param       page                 query   int     false "Page number"            minimum(1) default(1)
// @Param       page_size            query   int     false "Items per page"         minimum(1) maximum(1000) default(6)
// @Param       author               query   int     false "Filter by author ID"
// @Param       tags                 query   []string false "Filter by tag slug (repeatable)" collectionFormat(multi)
// @Param       is_favorited         query   int     false "1 = only the viewer's favorites"
// @Param       is_in_shopping_cart  query   int     false "1 = only the viewer's cart"
//
// @Success     200  {object} handlers.PageResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes [get]
func (h *Handlers) ListRecipes(c *gin.Context) {
	viewer := userID(c)
	page, pageSize := h.clampPagination(c)
	f := recipeFilter(c, viewer)

	views, total, err := h.recipeSvc.List(c.Request.Context(), f, viewer, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	results := make([]RecipeResponse, 0, len(views))
	for i := range views {
		results = append(results, newRecipeResponse(&views[i]))
	}
	ok(c, http.StatusOK, PageResponse{Count: total, Results: results})
}

// CreateRecipe godoc
// @ID          createRecipe
// @Summary     Publish a recipe
// @Description Creates a recipe owned by the current user with its tag and ingredient sets.
// @Tags        Recipes
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
// @Param       body       body    handlers.RecipeRequest  true  "Recipe payload"
//
// @Success     201  {object} handlers.RecipeResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation failure"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes [post]
func (h *Handlers) CreateRecipe(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	v, err := h.recipeSvc.Create(c.Request.Context(), uid, req.input())
	if err != nil {
		failRecipeWrite(c, err)
		return
	}
	ok(c, http.StatusCreated, newRecipeResponse(v))
}

// GetRecipe godoc
// @ID          getRecipe
// @Summary     Get one recipe
// @Description Returns the full recipe with author, tags, ingredient amounts, and viewer-relative fields.
// @Tags        Recipes
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(42)
// @Param       id         path    int     true  "Recipe ID"
//
// @Success     200  {object} handlers.RecipeResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id} [get]
func (h *Handlers) GetRecipe(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}

	v, err := h.recipeSvc.Get(c.Request.Context(), id, userID(c))
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "recipe not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, newRecipeResponse(v))
}

// UpdateRecipe godoc
// @ID          updateRecipe
// @Summary     Update a recipe
// @Description Replaces the recipe's scalar fields and its full tag and ingredient sets.
// @Tags        Recipes
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
// @Param       id         path    int     true  "Recipe ID"
// @Param       body       body    handlers.RecipeRequest  true  "Recipe payload"
//
// @Success     200  {object} handlers.RecipeResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation failure"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id} [patch]
func (h *Handlers) UpdateRecipe(c *gin.Context) {
	if _, okUser := requireUser(c); !okUser {
		return
	}
	id, okID := pathID(c)
	if !okID {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	v, err := h.recipeSvc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		failRecipeWrite(c, err)
		return
	}
	ok(c, http.StatusOK, newRecipeResponse(v))
}

// DeleteRecipe godoc
// @ID          deleteRecipe
// @Summary     Delete a recipe
// @Description Removes the recipe and cascades to its tag, ingredient, favorite, and cart rows.
// @Tags        Recipes
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
// @Param       id         path    int     true  "Recipe ID"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id} [delete]
func (h *Handlers) DeleteRecipe(c *gin.Context) {
	if _, okUser := requireUser(c); !okUser {
		return
	}
	id, okID := pathID(c)
	if !okID {
		return
	}

	if err := h.recipeSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "recipe not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
