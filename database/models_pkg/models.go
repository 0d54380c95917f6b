// Package models defines the data models for the freight rates service.
//
// Models live in their own package to avoid circular import dependencies
// between the database package and the per-domain repositories.
package models

import "time"

// Region is a node in the geographic region hierarchy. Regions form a
// forest: each region has at most one parent, roots have a NULL parent.
// Reference data, never written by this service.
type Region struct {
	Slug       string  `gorm:"primaryKey;size:255" json:"slug"`
	Name       string  `gorm:"size:255" json:"name"`
	ParentSlug *string `gorm:"index;size:255" json:"parent_slug"`
}

// TableName overrides the GORM table name
func (Region) TableName() string {
	return "regions"
}

// Port is a terminal location identified by a short uppercase code.
// A port belongs to exactly one region (its immediate parent).
type Port struct {
	Code       string `gorm:"primaryKey;size:5" json:"code"`
	Name       string `gorm:"size:255" json:"name"`
	ParentSlug string `gorm:"index;size:255" json:"parent_slug"`
}

// TableName overrides the GORM table name
func (Port) TableName() string {
	return "ports"
}

// Price is a single observed freight price between two ports on a given
// day. Append-only fact rows; several samples may share a day and route.
type Price struct {
	Day      time.Time `gorm:"type:date" json:"day"`
	OrigCode string    `gorm:"size:5" json:"orig_code"`
	DestCode string    `gorm:"size:5" json:"dest_code"`
	Price    float64   `json:"price"`
}

// TableName overrides the GORM table name
func (Price) TableName() string {
	return "prices"
}
