// Handler wiring and service contracts.
//
// Handlers are transport-thin: they decode input, resolve the acting user,
// call application services, and translate service errors into HTTP
// responses. All business rules live behind the interfaces below.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/repo"
	"github.com/tbourn/go-recipe-backend/internal/services"
	"github.com/tbourn/go-recipe-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// RecipeService defines recipe lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RecipeService interface {
	// Create validates and persists a new recipe owned by authorID.
	Create(ctx context.Context, authorID uint, in services.RecipeInput) (*services.RecipeView, error)
	// Update replaces the scalar fields and full tag/ingredient sets.
	Update(ctx context.Context, recipeID uint, in services.RecipeInput) (*services.RecipeView, error)
	// Get returns one recipe with viewer-relative derived fields.
	Get(ctx context.Context, recipeID uint, viewer *uint) (*services.RecipeView, error)
	// List returns a page of recipe views and the total matching count.
	List(ctx context.Context, f repo.RecipeFilter, viewer *uint, page, pageSize int) ([]services.RecipeView, int64, error)
	// Delete removes a recipe and its association rows.
	Delete(ctx context.Context, recipeID uint) error
}

// MembershipService defines the shared add/remove contract behind favorites
// and shopping cart entries. Repeating an add or a remove is an error.
type MembershipService interface {
	Add(ctx context.Context, actor, target uint) error
	Remove(ctx context.Context, actor, target uint) error
}

// SubscriptionService extends the membership contract with the follower's
// subscription listing.
type SubscriptionService interface {
	MembershipService
	// Subscriptions returns a page of followed users and the total count.
	Subscriptions(ctx context.Context, userID uint, page, pageSize int) ([]domain.User, int64, error)
	// Followee fetches one followed user with their recipes preloaded.
	Followee(ctx context.Context, targetID uint) (*domain.User, error)
}

// CatalogService defines read-only access to the tag and ingredient catalogs.
type CatalogService interface {
	Tags(ctx context.Context) ([]domain.Tag, error)
	Tag(ctx context.Context, id uint) (*domain.Tag, error)
	Ingredients(ctx context.Context, prefix string) ([]domain.Ingredient, error)
	Ingredient(ctx context.Context, id uint) (*domain.Ingredient, error)
}

// ShoppingService defines the consolidated shopping list report.
type ShoppingService interface {
	// Report returns the attachment filename and the rendered body.
	Report(ctx context.Context, userID uint) (filename string, body []byte, err error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for recipes, catalogs, memberships,
// subscriptions, and the shopping list download. It depends on abstract
// service interfaces to keep transport concerns separate from business logic.
type Handlers struct {
	recipeSvc  RecipeService
	catalogSvc CatalogService
	favSvc     MembershipService
	cartSvc    MembershipService
	followSvc  SubscriptionService
	shopSvc    ShoppingService

	pageSize    int
	maxPageSize int
}

// New constructs a Handlers instance bound to the given services. pageSize
// and maxPageSize bound the page_size query parameter on list endpoints.
func New(
	recipeSvc RecipeService,
	catalogSvc CatalogService,
	favSvc, cartSvc MembershipService,
	followSvc SubscriptionService,
	shopSvc ShoppingService,
	pageSize, maxPageSize int,
) *Handlers {
	if pageSize < 1 {
		pageSize = 6
	}
	if maxPageSize < pageSize {
		maxPageSize = pageSize
	}
	return &Handlers{
		recipeSvc:   recipeSvc,
		catalogSvc:  catalogSvc,
		favSvc:      favSvc,
		cartSvc:     cartSvc,
		followSvc:   followSvc,
		shopSvc:     shopSvc,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// userID extracts the acting user id from Gin context (set by upstream
// middleware). If absent, it falls back to the "X-User-ID" header (tests use
// it). A nil return means the request is anonymous. It never touches
// c.Request if it's nil.
func userID(c *gin.Context) *uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok && id != 0 {
			return &id
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			if n, err := strconv.ParseUint(h, 10, 32); err == nil && n != 0 {
				id := uint(n)
				return &id
			}
		}
	}
	return nil
}

// requireUser resolves the acting user or writes a 401 and reports failure.
func requireUser(c *gin.Context) (uint, bool) {
	if id := userID(c); id != nil {
		return *id, true
	}
	fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
	return 0, false
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || n == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(n), true
}

// clampPagination parses and bounds page and page_size query params,
// returning (page, pageSize).
func (h *Handlers) clampPagination(c *gin.Context) (page, pageSize int) {
	page = utils.AtoiDefault(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), h.pageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}
	return
}
