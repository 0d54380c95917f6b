package regions

import (
	"reflect"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "freight-rates-api/database/models_pkg"
)

// newTestDB opens an in-memory database seeded with a two-level hierarchy:
//
//	northern_europe ── scandinavia ── stockholm_area
//	               └── baltic
//	china_main
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("accessing connection pool: %v", err)
	}
	// A fresh connection would see a fresh empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Region{}); err != nil {
		t.Fatalf("migrating test schema: %v", err)
	}

	fixtures := []models.Region{
		{Slug: "northern_europe", Name: "Northern Europe"},
		{Slug: "scandinavia", Name: "Scandinavia", ParentSlug: strPtr("northern_europe")},
		{Slug: "baltic", Name: "Baltic", ParentSlug: strPtr("northern_europe")},
		{Slug: "stockholm_area", Name: "Stockholm Area", ParentSlug: strPtr("scandinavia")},
		{Slug: "china_main", Name: "China Main"},
	}
	for _, region := range fixtures {
		if err := db.Create(&region).Error; err != nil {
			t.Fatalf("seeding region %s: %v", region.Slug, err)
		}
	}

	return db
}

func strPtr(s string) *string {
	return &s
}

func TestResolveDescendants(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	tests := []struct {
		name        string
		slug        string
		wantSlugs   []string
		wantExisted bool
	}{
		{
			name:        "nested hierarchy in discovery order",
			slug:        "northern_europe",
			wantSlugs:   []string{"northern_europe", "scandinavia", "baltic", "stockholm_area"},
			wantExisted: true,
		},
		{
			name:        "mid-level region",
			slug:        "scandinavia",
			wantSlugs:   []string{"scandinavia", "stockholm_area"},
			wantExisted: true,
		},
		{
			name:        "leaf region resolves to itself",
			slug:        "baltic",
			wantSlugs:   []string{"baltic"},
			wantExisted: true,
		},
		{
			name:        "nonexistent slug",
			slug:        "atlantis",
			wantSlugs:   nil,
			wantExisted: false,
		},
		{
			name:        "port code is not a region",
			slug:        "CNSGH",
			wantSlugs:   nil,
			wantExisted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slugs, existed, err := repo.ResolveDescendants(tt.slug)
			if err != nil {
				t.Fatalf("ResolveDescendants(%q) error: %v", tt.slug, err)
			}
			if existed != tt.wantExisted {
				t.Errorf("existed = %v, want %v", existed, tt.wantExisted)
			}
			if !reflect.DeepEqual(slugs, tt.wantSlugs) {
				t.Errorf("slugs = %v, want %v", slugs, tt.wantSlugs)
			}
		})
	}
}

func TestResolveDescendantsIsIdempotent(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	first, _, err := repo.ResolveDescendants("northern_europe")
	if err != nil {
		t.Fatalf("first resolution error: %v", err)
	}
	second, _, err := repo.ResolveDescendants("northern_europe")
	if err != nil {
		t.Fatalf("second resolution error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolution not idempotent: first %v, second %v", first, second)
	}
}

func TestSlugExists(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	exists, err := repo.SlugExists("china_main")
	if err != nil {
		t.Fatalf("SlugExists error: %v", err)
	}
	if !exists {
		t.Error("expected china_main to exist")
	}

	exists, err = repo.SlugExists("invalid_slug")
	if err != nil {
		t.Fatalf("SlugExists error: %v", err)
	}
	if exists {
		t.Error("expected invalid_slug to not exist")
	}
}

func TestRegionsReturnFaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("accessing connection pool: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("closing connection pool: %v", err)
	}

	slugs, existed, err := repo.ResolveDescendants("northern_europe")
	if err == nil {
		t.Error("ResolveDescendants: expected error on closed database")
	}
	if slugs != nil || existed {
		t.Errorf("ResolveDescendants fault result = (%v, %v), want (nil, false)", slugs, existed)
	}

	exists, err := repo.SlugExists("china_main")
	if err == nil {
		t.Error("SlugExists: expected error on closed database")
	}
	if exists {
		t.Error("SlugExists fault result = true, want false")
	}
}
