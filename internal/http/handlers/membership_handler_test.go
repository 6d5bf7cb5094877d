package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
)

// membershipFixture builds an engine with one published recipe and returns
// the engine, the recipe ID, and a header value for the acting fan.
func membershipFixture(t *testing.T) (*gin.Engine, uint, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	h := newAPI(t, db)
	author := seedHandlerUser(t, db, "author")
	fan := seedHandlerUser(t, db, "fan")
	tag, ing := seedHandlerCatalog(t, db)

	r := gin.New()
	r.POST("/recipes", h.CreateRecipe)
	r.POST("/recipes/:id/favorite", h.AddFavorite)
	r.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
	r.POST("/recipes/:id/shopping_cart", h.AddToCart)
	r.DELETE("/recipes/:id/shopping_cart", h.RemoveFromCart)

	rid := postRecipe(t, r, author.ID, recipeBody(tag.ID, ing.ID))
	return r, rid, strconv.FormatUint(uint64(fan.ID), 10)
}

func doMembership(r *gin.Engine, method, path, asUser string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if asUser != "" {
		req.Header.Set("X-User-ID", asUser)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestFavoriteEndpoints_Lifecycle(t *testing.T) {
	r, rid, fan := membershipFixture(t)
	path := fmt.Sprintf("/recipes/%d/favorite", rid)

	// Anonymous -> 401
	if w := doMembership(r, http.MethodPost, path, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous add -> %d", w.Code)
	}

	// Add -> 201 with the short recipe
	w := doMembership(r, http.MethodPost, path, fan)
	if w.Code != http.StatusCreated {
		t.Fatalf("add -> %d body=%s", w.Code, w.Body.String())
	}
	var short ShortRecipe
	if err := json.Unmarshal(w.Body.Bytes(), &short); err != nil {
		t.Fatalf("json: %v", err)
	}
	if short.ID != rid || short.Name != "Soup" || short.CookingTime != 30 {
		t.Fatalf("short recipe wrong: %#v", short)
	}

	// Duplicate add -> 400, not 409 and not a no-op
	w = doMembership(r, http.MethodPost, path, fan)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate add -> %d", w.Code)
	}
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil || e.Code != ErrCodeBadRequest {
		t.Fatalf("duplicate envelope: %s err=%v", w.Body.String(), err)
	}

	// Remove -> 204, repeat -> 400
	if w := doMembership(r, http.MethodDelete, path, fan); w.Code != http.StatusNoContent {
		t.Fatalf("remove -> %d", w.Code)
	}
	if w := doMembership(r, http.MethodDelete, path, fan); w.Code != http.StatusBadRequest {
		t.Fatalf("absent remove -> %d", w.Code)
	}

	// Unknown recipe -> 404
	if w := doMembership(r, http.MethodPost, "/recipes/9999/favorite", fan); w.Code != http.StatusNotFound {
		t.Fatalf("unknown recipe -> %d", w.Code)
	}
}

func TestCartEndpoints_Lifecycle(t *testing.T) {
	r, rid, fan := membershipFixture(t)
	path := fmt.Sprintf("/recipes/%d/shopping_cart", rid)

	if w := doMembership(r, http.MethodPost, path, fan); w.Code != http.StatusCreated {
		t.Fatalf("add -> %d", w.Code)
	}
	if w := doMembership(r, http.MethodPost, path, fan); w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate add -> %d", w.Code)
	}

	// The favorite relation is untouched by cart churn.
	favPath := fmt.Sprintf("/recipes/%d/favorite", rid)
	if w := doMembership(r, http.MethodPost, favPath, fan); w.Code != http.StatusCreated {
		t.Fatalf("favorite alongside cart -> %d", w.Code)
	}

	if w := doMembership(r, http.MethodDelete, path, fan); w.Code != http.StatusNoContent {
		t.Fatalf("remove -> %d", w.Code)
	}
	if w := doMembership(r, http.MethodDelete, path, fan); w.Code != http.StatusBadRequest {
		t.Fatalf("absent remove -> %d", w.Code)
	}
}
