// Subscription (follow) handlers.
//
//   - POST   /users/{id}/subscribe
//   - DELETE /users/{id}/subscribe
//   - GET    /users/subscriptions
//
// Follows use the same non-idempotent membership contract as favorites and
// the cart, plus a self-follow rejection. The subscriptions listing returns
// followed authors newest-subscription-first, each with a capped sample of
// their recipes (recipes_limit query parameter).
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/services"
)

// failSubscription translates follow errors into HTTP responses.
func failSubscription(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case errors.Is(err, services.ErrSelfFollow):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cannot subscribe to yourself")
	case errors.Is(err, services.ErrAlreadyFollowing):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "already subscribed to this user")
	case errors.Is(err, services.ErrNotFollowing):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "not subscribed to this user")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// Subscribe godoc
// @ID          subscribe
// @Summary     Subscribe to an author
// @Description Follows the given user. Self-follows and duplicate follows are errors.
// @Tags        Subscriptions
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
// @Param       id         path    int     true  "Author ID"
// @Param       recipes_limit  query  int  false "Cap on recipes in the response"
//
// @Success     201  {object} handlers.SubscriptionEntry
// @Failure     400  {object} handlers.ErrorResponse "Self or duplicate follow"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/subscribe [post]
func (h *Handlers) Subscribe(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := pathID(c)
	if !okID {
		return
	}

	if err := h.followSvc.Add(c.Request.Context(), uid, id); err != nil {
		failSubscription(c, err)
		return
	}

	u, err := h.followSvc.Followee(c.Request.Context(), id)
	if err != nil {
		failSubscription(c, err)
		return
	}
	ok(c, http.StatusCreated, newSubscriptionEntry(u, recipesLimit(c)))
}

// Unsubscribe godoc
// @ID          unsubscribe
// @Summary     Unsubscribe from an author
// @Description Unfollows the given user. Removing a non-existent follow is an error.
// @Tags        Subscriptions
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (demo header)"  example(42)
// @Param       id         path    int     true  "Author ID"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Not subscribed"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/subscribe [delete]
func (h *Handlers) Unsubscribe(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := pathID(c)
	if !okID {
		return
	}

	if err := h.followSvc.Remove(c.Request.Context(), uid, id); err != nil {
		failSubscription(c, err)
		return
	}
	noContent(c)
}

// ListSubscriptions godoc
// @ID          listSubscriptions
// @Summary     List subscriptions (paginated)
// @Description Returns a page of the authors the current user follows, most recent first, each with a recipe sample.
// @Tags        Subscriptions
// @Produce     json
//
// @Param       X-User-ID      header  string  true  "User ID (demo header)"  example(42)
// @Param       page           query   int     false "Page number"            minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"         minimum(1) maximum(1000) default(6)
// @Param       recipes_limit  query   int     false "Cap on recipes per author"
//
// @Success     200  {object} handlers.PageResponse
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/subscriptions [get]
func (h *Handlers) ListSubscriptions(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	page, pageSize := h.clampPagination(c)
	limit := recipesLimit(c)

	users, total, err := h.followSvc.Subscriptions(c.Request.Context(), uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	results := make([]SubscriptionEntry, 0, len(users))
	for i := range users {
		results = append(results, newSubscriptionEntry(&users[i], limit))
	}
	ok(c, http.StatusOK, PageResponse{Count: total, Results: results})
}

// recipesLimit parses the recipes_limit query param; 0 means no cap.
func recipesLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
