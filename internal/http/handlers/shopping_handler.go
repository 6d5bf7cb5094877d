// Shopping list download handler.
//
//   - GET /recipes/download_shopping_cart
//
// The report consolidates ingredient amounts across every recipe in the
// current user's cart and is served as a plain-text attachment.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/services"
)

// DownloadShoppingCart godoc
// @ID          downloadShoppingCart
// @Summary     Download the consolidated shopping list
// @Description Sums ingredient amounts across the user's carted recipes and returns one "{name} {unit} --> {total}" line per ingredient, as a text attachment. An empty cart yields an empty file.
// @Tags        ShoppingCart
// @Produce     plain
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
//
// @Success     200  {string} string "Plain-text shopping list"
// @Header      200  {string} Content-Disposition "attachment; filename={username}_shopping_list.txt"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/download_shopping_cart [get]
func (h *Handlers) DownloadShoppingCart(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}

	filename, body, err := h.shopSvc.Report(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
