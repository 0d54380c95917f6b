// Package regions resolves the geographic region hierarchy.
package regions

import (
	"gorm.io/gorm"

	"freight-rates-api/database"
	models "freight-rates-api/database/models_pkg"
)

// Repository handles database operations for regions
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new regions repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ResolveDescendants expands a region slug into the slug plus all of its
// transitive descendants, in discovery order. The input slug is always the
// first element of the result.
//
// Existence is checked lazily: a slug that produced at least one child must
// exist as a parent reference, so only childless slugs get a direct lookup.
// A slug that does not exist as a region at all resolves to (nil, false).
//
// Expansion uses a worklist with a visited set, so a slug reachable by two
// paths is expanded once and the walk terminates even on a cyclic hierarchy.
// Data-access faults are returned to the caller, which decides whether to
// degrade or propagate.
func (r *Repository) ResolveDescendants(slug string) ([]string, bool, error) {
	resolved := []string{slug}
	visited := map[string]bool{slug: true}
	queue := []string{slug}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var children []string
		err := r.db.Model(&models.Region{}).
			Where("parent_slug = ?", current).
			Pluck("slug", &children).Error
		if err != nil {
			return nil, false, database.WrapDBError("ResolveDescendants", err)
		}

		for _, child := range children {
			if visited[child] {
				continue
			}
			visited[child] = true
			resolved = append(resolved, child)
			queue = append(queue, child)
		}
	}

	// No children anywhere: the slug may not be a region at all.
	if len(resolved) == 1 {
		exists, err := r.SlugExists(slug)
		if err != nil {
			return nil, false, err
		}
		if !exists {
			return nil, false, nil
		}
	}

	return resolved, true, nil
}

// SlugExists reports whether a region row with the exact slug exists.
func (r *Repository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Region{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, database.WrapDBError("SlugExists", err)
	}
	return count > 0, nil
}
