package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func mustUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username: username, Email: username + "@x.com",
		FirstName: "F", LastName: "L", Password: "p",
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustRecipe(t *testing.T, db *gorm.DB, authorID uint, name string) *domain.Recipe {
	t.Helper()
	r := &domain.Recipe{
		AuthorID: authorID, Name: name, Image: "i", Text: "t",
		CookingTime: 10, CreatedAt: time.Now().UTC(),
	}
	if err := CreateRecipe(context.Background(), db, r); err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return r
}

func TestAutoMigrate_CreatesAllTables(t *testing.T) {
	db := newTestDB(t)
	tables := []string{
		"users", "tags", "ingredients", "recipes", "recipe_tags",
		"recipe_ingredients", "favorite_recipes", "cart_entries", "follows",
	}
	for _, name := range tables {
		if !db.Migrator().HasTable(name) {
			t.Fatalf("expected table %q to exist", name)
		}
	}
}
