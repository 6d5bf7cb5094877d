// Command seed populates a fresh database with demo accounts, the tag
// catalog, and the ingredient catalog.
//
// Ingredients come from a CSV file with "name,measurement_unit" rows;
// duplicate (name, unit) pairs in the file are skipped. Re-running against a
// seeded database reports conflicts and keeps the existing rows.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-recipe-backend/internal/config"
	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/repo"
	"github.com/tbourn/go-recipe-backend/internal/services"
	"github.com/tbourn/go-recipe-backend/internal/sysutil"
)

// seedTags is the default tag catalog. Slugs are derived from the names.
var seedTags = []struct {
	Name  string
	Color string
}{
	{"Breakfast", "#E26C2D"},
	{"Lunch", "#49B64E"},
	{"Dinner", "#8775D2"},
}

// seedUsers are demo accounts; the password below is hashed per user.
var seedUsers = []domain.User{
	{Username: "admin", Email: "admin@example.com", FirstName: "Ada", LastName: "Admin", Role: domain.RoleAdmin},
	{Username: "chef", Email: "chef@example.com", FirstName: "Carl", LastName: "Chef", Role: domain.RoleUser},
	{Username: "taster", Email: "taster@example.com", FirstName: "Tina", LastName: "Taster", Role: domain.RoleUser},
}

func main() {
	_ = godotenv.Load()

	ingredientsPath := flag.String("ingredients", "data/ingredients.csv", "path to the ingredient CSV (name,measurement_unit)")
	password := flag.String("password", "changeme123", "password assigned to the demo accounts")
	flag.Parse()

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	ctx := context.Background()
	seedAccounts(ctx, db, *password)
	seedTagCatalog(ctx, db)
	if n, err := seedIngredients(ctx, db, *ingredientsPath); err != nil {
		log.Fatal().Err(err).Str("path", *ingredientsPath).Msg("ingredient import failed")
	} else {
		log.Info().Int("ingredients", n).Msg("seed complete")
	}
}

func seedAccounts(ctx context.Context, db *gorm.DB, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hash failed")
	}
	for i := range seedUsers {
		u := seedUsers[i]
		u.Password = string(hash)
		u.CreatedAt = time.Now().UTC()
		if err := repo.CreateUser(ctx, db, &u); err != nil {
			log.Warn().Err(err).Str("username", u.Username).Msg("user skipped")
			continue
		}
		log.Info().Str("username", u.Username).Uint("id", u.ID).Msg("user created")
	}
}

func seedTagCatalog(ctx context.Context, db *gorm.DB) {
	for _, t := range seedTags {
		tag := domain.Tag{Name: t.Name, Color: t.Color, Slug: services.Slugify(t.Name)}
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&tag).Error
		if err != nil {
			log.Warn().Err(err).Str("tag", t.Name).Msg("tag skipped")
			continue
		}
		log.Info().Str("tag", tag.Name).Str("slug", tag.Slug).Msg("tag created")
	}
}

// seedIngredients streams the CSV and inserts each unseen (name, unit) pair.
// It returns the number of rows inserted.
func seedIngredients(ctx context.Context, db *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	seen := make(map[string]struct{})
	inserted := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, err
		}
		name := strings.TrimSpace(rec[0])
		unit := strings.TrimSpace(rec[1])
		if name == "" || unit == "" {
			continue
		}
		key := name + "\x00" + unit
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		ing := domain.Ingredient{Name: name, MeasurementUnit: unit}
		err = db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&ing).Error
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
