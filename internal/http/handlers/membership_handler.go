// Favorite and shopping cart membership handlers.
//
//   - POST   /recipes/{id}/favorite
//   - DELETE /recipes/{id}/favorite
//   - POST   /recipes/{id}/shopping_cart
//   - DELETE /recipes/{id}/shopping_cart
//
// Both relations share the non-idempotent membership contract: adding an
// existing pair or removing a missing one is a 400, never a silent no-op.
// A successful add answers 201 with the abbreviated recipe; a successful
// remove answers 204.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/services"
)

// failMembership translates membership errors into HTTP responses. The
// duplicate-add and absent-remove sentinels of both relations map to 400.
func failMembership(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRecipeNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "recipe not found")
	case errors.Is(err, services.ErrAlreadyFavorited):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe is already in favorites")
	case errors.Is(err, services.ErrNotFavorited):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe is not in favorites")
	case errors.Is(err, services.ErrAlreadyInCart):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe is already in the shopping cart")
	case errors.Is(err, services.ErrNotInCart):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe is not in the shopping cart")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// addMembership runs the shared add flow and answers with the short recipe.
func (h *Handlers) addMembership(c *gin.Context, svc MembershipService) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := pathID(c)
	if !okID {
		return
	}

	if err := svc.Add(c.Request.Context(), uid, id); err != nil {
		failMembership(c, err)
		return
	}
	v, err := h.recipeSvc.Get(c.Request.Context(), id, nil)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, newShortRecipe(v.Recipe))
}

// removeMembership runs the shared remove flow.
func (h *Handlers) removeMembership(c *gin.Context, svc MembershipService) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := pathID(c)
	if !okID {
		return
	}

	if err := svc.Remove(c.Request.Context(), uid, id); err != nil {
		failMembership(c, err)
		return
	}
	noContent(c)
}

// AddFavorite godoc
// @ID          addFavorite
// @Summary     Favorite a recipe
// @Description Adds the recipe to the current user's favorites. Favoriting twice is an error.
// @Tags        Favorites
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
// @Param       id         path    int     true  "Recipe ID"
//
// @Success     201  {object} handlers.ShortRecipe
// @Failure     400  {object} handlers.ErrorResponse "Already favorited"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id}/favorite [post]
func (h *Handlers) AddFavorite(c *gin.Context) { h.addMembership(c, h.favSvc) }

// RemoveFavorite godoc
// @ID          removeFavorite
// @Summary     Unfavorite a recipe
// @Description Removes the recipe from the current user's favorites. Removing a non-favorite is an error.
// @Tags        Favorites
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
// @Param       id         path    int     true  "Recipe ID"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Not favorited"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id}/favorite [delete]
func (h *Handlers) RemoveFavorite(c *gin.Context) { h.removeMembership(c, h.favSvc) }

// AddToCart godoc
// @ID          addToCart
// @Summary     Add a recipe to the shopping cart
// @Description Adds the recipe to the current user's cart. Adding twice is an error.
// @Tags        ShoppingCart
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
// @Param       id         path    int     true  "Recipe ID"
//
// @Success     201  {object} handlers.ShortRecipe
// @Failure     400  {object} handlers.ErrorResponse "Already in cart"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id}/shopping_cart [post]
func (h *Handlers) AddToCart(c *gin.Context) { h.addMembership(c, h.cartSvc) }

// RemoveFromCart godoc
// @ID          removeFromCart
// @Summary     Remove a recipe from the shopping cart
// @Description Removes the recipe from the current user's cart. Removing an absent entry is an error.
// @Tags        ShoppingCart
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
// @Param       id         path    int     true  "Recipe ID"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Not in cart"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id}/shopping_cart [delete]
func (h *Handlers) RemoveFromCart(c *gin.Context) { h.removeMembership(c, h.cartSvc) }
