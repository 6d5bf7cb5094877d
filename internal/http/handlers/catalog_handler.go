// Tag and ingredient catalog handlers.
//
//   - GET /tags                 (all tags)
//   - GET /tags/{id}            (one tag)
//   - GET /ingredients?name=..  (prefix search)
//   - GET /ingredients/{id}     (one ingredient)
//
// Both catalogs are read-only over HTTP; rows are maintained by seeding.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/services"
)

// ListTags godoc
// @ID          listTags
// @Summary     List tags
// @Description Returns every tag ordered by name. Not paginated; the tag set is small.
// @Tags        Catalog
// @Produce     json
//
// @Success     200  {array}  domain.Tag
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tags [get]
func (h *Handlers) ListTags(c *gin.Context) {
	tags, err := h.catalogSvc.Tags(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, tags)
}

// GetTag godoc
// @ID          getTag
// @Summary     Get one tag
// @Tags        Catalog
// @Produce     json
//
// @Param       id  path  int  true  "Tag ID"
//
// @Success     200  {object} domain.Tag
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Tag not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tags/{id} [get]
func (h *Handlers) GetTag(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	t, err := h.catalogSvc.Tag(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "tag not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, t)
}

// ListIngredients godoc
// @ID          listIngredients
// @Summary     Search ingredients
// @Description Returns ingredients whose name starts with the given prefix (all when empty), ordered by name.
// @Tags        Catalog
// @Produce     json
//
// @Param       name  query  string  false "Name prefix"  example(sug)
//
// @Success     200  {array}  domain.Ingredient
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ingredients [get]
func (h *Handlers) ListIngredients(c *gin.Context) {
	ings, err := h.catalogSvc.Ingredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ings)
}

// GetIngredient godoc
// @ID          getIngredient
// @Summary     Get one ingredient
// @Tags        Catalog
// @Produce     json
//
// @Param       id  path  int  true  "Ingredient ID"
//
// @Success     200  {object} domain.Ingredient
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Ingredient not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ingredients/{id} [get]
func (h *Handlers) GetIngredient(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	ing, err := h.catalogSvc.Ingredient(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrIngredientNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ingredient not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ing)
}
