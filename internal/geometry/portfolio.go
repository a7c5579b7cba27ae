package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"sipkagroup/server/internal/models"
)

// PortfolioMapper turns catalog entries into the portfolio map feed
type PortfolioMapper struct {
	logger *logrus.Logger
}

func NewPortfolioMapper(logger *logrus.Logger) *PortfolioMapper {
	return &PortfolioMapper{logger: logger}
}

// Point returns the property location as a lon/lat point
func Point(c models.Coordinates) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Bound returns the bounding box of every located property. ok is false
// when no property carries coordinates.
func Bound(props []models.Property) (bound orb.Bound, ok bool) {
	for _, p := range props {
		if p.Coordinates == nil {
			continue
		}
		pt := Point(*p.Coordinates)
		if !ok {
			bound = pt.Bound()
			ok = true
			continue
		}
		bound = bound.Extend(pt)
	}
	return bound, ok
}

// FeatureCollection builds one point feature per located property plus a
// polygon feature covering the whole portfolio
func (pm *PortfolioMapper) FeatureCollection(props []models.Property) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, p := range props {
		if p.Coordinates == nil {
			pm.logger.WithField("slug", p.Slug).Debug("Property has no coordinates, skipping map feature")
			continue
		}

		feature := geojson.NewFeature(Point(*p.Coordinates))
		feature.ID = p.Slug
		feature.Properties = geojson.Properties{
			"slug":     p.Slug,
			"name":     p.Name,
			"location": p.Location,
			"category": string(p.Category),
			"status":   string(p.Status),
			"href":     p.Path(),
			"color":    p.Building3D.Color,
		}
		fc.Append(feature)
	}

	if bound, ok := Bound(props); ok {
		extent := geojson.NewFeature(bound.ToPolygon())
		extent.Properties = geojson.Properties{
			"geometry_type": "portfolio_extent",
			"point_count":   len(fc.Features),
		}
		fc.Append(extent)
		fc.BBox = geojson.NewBBox(bound)
	}

	pm.logger.WithField("features", len(fc.Features)).Debug("Built portfolio map feed")
	return fc
}

// MarshalFeatureCollection encodes the feed for the map endpoint
func (pm *PortfolioMapper) MarshalFeatureCollection(props []models.Property) ([]byte, error) {
	data, err := pm.FeatureCollection(props).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return data, nil
}
