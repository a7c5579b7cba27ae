package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"sipkagroup/server/internal/models"
)

// DefaultRelatedLimit is how many related properties a detail page shows
const DefaultRelatedLimit = 3

var ErrNotFound = errors.New("property not found")

//go:embed properties.yaml
var propertiesYAML []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Catalog is the immutable, ordered list of portfolio properties
type Catalog struct {
	properties []models.Property
	bySlug     map[string]int
}

// Default returns the catalog compiled into the binary. It is parsed and
// validated once; later calls return the same instance.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(propertiesYAML)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for callers that cannot run without a catalog
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a YAML property list and validates it
func Parse(data []byte) (*Catalog, error) {
	var properties []models.Property
	if err := yaml.Unmarshal(data, &properties); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(properties)
}

// New builds a catalog from records in display order
func New(properties []models.Property) (*Catalog, error) {
	if err := Validate(properties); err != nil {
		return nil, err
	}

	c := &Catalog{
		properties: make([]models.Property, len(properties)),
		bySlug:     make(map[string]int, len(properties)),
	}
	copy(c.properties, properties)
	for i, p := range c.properties {
		c.bySlug[p.Slug] = i
	}
	return c, nil
}

// Validate checks the invariants every catalog must hold
func Validate(properties []models.Property) error {
	slugs := make(map[string]bool, len(properties))
	ids := make(map[string]bool, len(properties))

	for i, p := range properties {
		if p.Slug == "" {
			return fmt.Errorf("property at index %d has an empty slug", i)
		}
		if slugs[p.Slug] {
			return fmt.Errorf("duplicate slug: %s", p.Slug)
		}
		slugs[p.Slug] = true

		if p.ID == "" {
			return fmt.Errorf("property %s has an empty id", p.Slug)
		}
		if ids[p.ID] {
			return fmt.Errorf("property %s: duplicate id %s", p.Slug, p.ID)
		}
		ids[p.ID] = true

		if !p.Category.Valid() {
			return fmt.Errorf("property %s: invalid category %q", p.Slug, p.Category)
		}
		if !p.Status.Valid() {
			return fmt.Errorf("property %s: invalid status %q", p.Slug, p.Status)
		}

		b := p.Building3D
		if b.Width <= 0 || b.Height <= 0 || b.Depth <= 0 {
			return fmt.Errorf("property %s: building extents must be positive (w=%v h=%v d=%v)",
				p.Slug, b.Width, b.Height, b.Depth)
		}
	}
	return nil
}

// All returns every property in catalog order
func (c *Catalog) All() []models.Property {
	out := make([]models.Property, len(c.properties))
	copy(out, c.properties)
	return out
}

func (c *Catalog) Len() int {
	return len(c.properties)
}

// BySlug looks up a property by its URL slug
func (c *Catalog) BySlug(slug string) (models.Property, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return models.Property{}, false
	}
	return c.properties[i], true
}

// Get is BySlug returning ErrNotFound on a miss
func (c *Catalog) Get(slug string) (models.Property, error) {
	p, ok := c.BySlug(slug)
	if !ok {
		return models.Property{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return p, nil
}

// Filter returns the properties in the given category, preserving catalog
// order. CategoryAll and the empty category match everything.
func (c *Catalog) Filter(category models.Category) []models.Property {
	if category == "" || category == models.CategoryAll {
		return c.All()
	}

	out := make([]models.Property, 0)
	for _, p := range c.properties {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit other properties sharing p's category
func (c *Catalog) Related(p models.Property, limit int) []models.Property {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	out := make([]models.Property, 0, limit)
	for _, other := range c.properties {
		if len(out) == limit {
			break
		}
		if other.Category == p.Category && other.ID != p.ID {
			out = append(out, other)
		}
	}
	return out
}

func (c *Catalog) Featured() []models.Property {
	out := make([]models.Property, 0)
	for _, p := range c.properties {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the filter tabs for the portfolio listing, "all" first
func (c *Catalog) Categories() []models.CategoryTab {
	tabs := []models.CategoryTab{{Value: models.CategoryAll, Label: models.CategoryAll.Label()}}
	for _, cat := range models.Categories {
		tabs = append(tabs, models.CategoryTab{Value: cat, Label: cat.Label()})
	}
	return tabs
}
