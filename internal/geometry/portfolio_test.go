package geometry

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sipkagroup/server/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testProperties() []models.Property {
	return []models.Property{
		{
			Slug:        "harbour-view",
			Name:        "Harbour View",
			Category:    models.CategoryCommercial,
			Status:      models.StatusAvailable,
			Coordinates: &models.Coordinates{Latitude: -36.84, Longitude: 174.76},
		},
		{
			Slug:     "unmapped",
			Name:     "Unmapped",
			Category: models.CategoryHospitality,
		},
		{
			Slug:        "lake-lots",
			Name:        "Lake Lots",
			Category:    models.CategoryDevelopment,
			Status:      models.StatusSold,
			Coordinates: &models.Coordinates{Latitude: -45.03, Longitude: 168.66},
		},
	}
}

func TestBound(t *testing.T) {
	bound, ok := Bound(testProperties())
	require.True(t, ok)
	assert.Equal(t, orb.Point{168.66, -45.03}, bound.Min)
	assert.Equal(t, orb.Point{174.76, -36.84}, bound.Max)

	_, ok = Bound([]models.Property{{Slug: "x"}})
	assert.False(t, ok)
}

func TestFeatureCollection(t *testing.T) {
	pm := NewPortfolioMapper(quietLogger())
	fc := pm.FeatureCollection(testProperties())

	// two points plus the extent polygon
	require.Len(t, fc.Features, 3)

	first := fc.Features[0]
	assert.Equal(t, "harbour-view", first.ID)
	assert.Equal(t, orb.Point{174.76, -36.84}, first.Geometry)
	assert.Equal(t, "/portfolio/harbour-view", first.Properties["href"])
	assert.Equal(t, "commercial", first.Properties["category"])

	extent := fc.Features[2]
	_, isPolygon := extent.Geometry.(orb.Polygon)
	assert.True(t, isPolygon)
	assert.Equal(t, 2, extent.Properties["point_count"])
	assert.NotNil(t, fc.BBox)
}

func TestFeatureCollectionEmpty(t *testing.T) {
	pm := NewPortfolioMapper(quietLogger())
	fc := pm.FeatureCollection(nil)
	assert.Empty(t, fc.Features)
	assert.Nil(t, fc.BBox)
}

func TestMarshalFeatureCollection(t *testing.T) {
	pm := NewPortfolioMapper(quietLogger())
	data, err := pm.MarshalFeatureCollection(testProperties())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])
	assert.Len(t, decoded["features"], 3)
}
