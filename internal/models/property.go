package models

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryCommercial  Category = "commercial"
	CategoryResidential Category = "residential"
	CategoryDevelopment Category = "development"
	CategoryHospitality Category = "hospitality"
)

// CategoryAll is the listing filter that matches every category. It is never
// stored on a Property.
const CategoryAll Category = "all"

// Categories lists the closed set of property categories in display order.
var Categories = []Category{
	CategoryCommercial,
	CategoryResidential,
	CategoryDevelopment,
	CategoryHospitality,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the filter tab label for a category
func (c Category) Label() string {
	switch c {
	case CategoryAll:
		return "All Properties"
	case CategoryCommercial:
		return "Commercial"
	case CategoryResidential:
		return "Residential"
	case CategoryDevelopment:
		return "Development"
	case CategoryHospitality:
		return "Hospitality"
	default:
		return string(c)
	}
}

// ParseCategory accepts a category or the "all" filter, case-insensitively.
// An empty string is treated as "all".
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" || c == CategoryAll {
		return CategoryAll, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusLeased    Status = "leased"
	StatusSold      Status = "sold"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusLeased, StatusSold:
		return true
	}
	return false
}

// Vec3 is a scene-space offset as written in the catalog
type Vec3 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// Building3D describes how a property is placed and coloured in the city scene
type Building3D struct {
	Height        float32 `json:"height" yaml:"height"`
	Width         float32 `json:"width" yaml:"width"`
	Depth         float32 `json:"depth" yaml:"depth"`
	Color         string  `json:"color" yaml:"color"`
	EmissiveColor string  `json:"emissive_color" yaml:"emissive_color"`
	Position      Vec3    `json:"position" yaml:"position"`
}

// Coordinates is the street location used by the portfolio map feed
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

type Property struct {
	ID           string       `json:"id" yaml:"id"`
	Slug         string       `json:"slug" yaml:"slug"`
	Name         string       `json:"name" yaml:"name"`
	Location     string       `json:"location" yaml:"location"`
	Address      string       `json:"address" yaml:"address"`
	Category     Category     `json:"category" yaml:"category"`
	Status       Status       `json:"status" yaml:"status"`
	Image        string       `json:"image" yaml:"image"`
	Description  string       `json:"description" yaml:"description"`
	Features     []string     `json:"features" yaml:"features"`
	LandArea     *string      `json:"land_area,omitempty" yaml:"land_area"`
	BuildingArea *string      `json:"building_area,omitempty" yaml:"building_area"`
	Floors       *int         `json:"floors,omitempty" yaml:"floors"`
	CarParks     *int         `json:"car_parks,omitempty" yaml:"car_parks"`
	YearBuilt    *int         `json:"year_built,omitempty" yaml:"year_built"`
	VacantSpaces []string     `json:"vacant_spaces,omitempty" yaml:"vacant_spaces"`
	Featured     bool         `json:"featured" yaml:"featured"`
	Coordinates  *Coordinates `json:"coordinates,omitempty" yaml:"coordinates"`
	Building3D   Building3D   `json:"building3d" yaml:"building3d"`
}

// Path returns the detail page route for the property
func (p *Property) Path() string {
	return "/portfolio/" + p.Slug
}

// CategoryTab is one entry of the portfolio filter bar
type CategoryTab struct {
	Value Category `json:"value"`
	Label string   `json:"label"`
}
