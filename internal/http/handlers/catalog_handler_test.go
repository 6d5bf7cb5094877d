package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

func TestTagEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	h := newAPI(t, db)
	tag, _ := seedHandlerCatalog(t, db)
	if err := db.Create(&domain.Tag{Name: "Breakfast", Color: "#222222", Slug: "breakfast"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := gin.New()
	r.GET("/tags", h.ListTags)
	r.GET("/tags/:id", h.GetTag)

	// List is public and name-ordered.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tags", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	var tags []domain.Tag
	if err := json.Unmarshal(w.Body.Bytes(), &tags); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(tags) != 2 || tags[0].Slug != "breakfast" || tags[1].Slug != "dinner" {
		t.Fatalf("tags wrong: %#v", tags)
	}

	// Detail.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/tags/%d", tag.ID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get -> %d", w.Code)
	}
	var got domain.Tag
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || got.Slug != "dinner" {
		t.Fatalf("tag wrong: %#v err=%v", got, err)
	}

	// Missing -> 404, malformed -> 400.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tags/9999", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing tag -> %d", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tags/zero", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id -> %d", w.Code)
	}
}

func TestIngredientEndpoints_PrefixSearch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	h := newAPI(t, db)
	for _, ing := range []domain.Ingredient{
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "brown sugar", MeasurementUnit: "g"},
	} {
		row := ing
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	r := gin.New()
	r.GET("/ingredients", h.ListIngredients)
	r.GET("/ingredients/:id", h.GetIngredient)

	// name= is a prefix search, so "brown sugar" stays out.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingredients?name=su", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("search -> %d", w.Code)
	}
	var ings []domain.Ingredient
	if err := json.Unmarshal(w.Body.Bytes(), &ings); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(ings) != 1 || ings[0].Name != "sugar" {
		t.Fatalf("prefix search wrong: %#v", ings)
	}

	// No query returns the full catalog.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingredients", nil))
	ings = nil
	if err := json.Unmarshal(w.Body.Bytes(), &ings); err != nil || len(ings) != 3 {
		t.Fatalf("full catalog: len=%d err=%v", len(ings), err)
	}

	// Detail + missing.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/ingredients/%d", ings[0].ID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get -> %d", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingredients/9999", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing ingredient -> %d", w.Code)
	}
}
