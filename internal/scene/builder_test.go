package scene

import (
	"errors"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sipkagroup/server/internal/catalog"
	"sipkagroup/server/internal/models"
)

func testProperties() []models.Property {
	return []models.Property{
		{
			ID: "1", Slug: "canterbury-arcade", Name: "Canterbury Arcade",
			Category: models.CategoryCommercial, Status: models.StatusLeased,
			Building3D: models.Building3D{
				Height: 14, Width: 6, Depth: 10,
				Color: "#1e3a8a", EmissiveColor: "#60a5fa",
				Position: models.Vec3{X: -12, Z: -6},
			},
		},
		{
			ID: "2", Slug: "grafton-apartments", Name: "Grafton Apartments",
			Category: models.CategoryResidential, Status: models.StatusLeased,
			Building3D: models.Building3D{
				Height: 12, Width: 5, Depth: 8,
				Color: "#7c2d12", EmissiveColor: "#fdba74",
				Position: models.Vec3{X: 20, Z: 6},
			},
		},
	}
}

func TestBuildFull(t *testing.T) {
	alloc := NewMemoryAllocator()
	props := testProperties()

	s, err := Build(props, ProfileFor(ModeFull), alloc)
	require.NoError(t, err)

	require.Len(t, s.Buildings, len(props))
	assert.Equal(t, AmbientNodes, s.Ambient())
	assert.False(t, s.Fallback)

	b := s.Buildings[0]
	assert.Equal(t, 0, b.Index)
	assert.Equal(t, "canterbury-arcade", b.Slug)
	assert.Equal(t, math32.Vec3(6, 14, 10), b.Body.Geometry.Size)
	assert.Equal(t, math32.Vec3(0, 7, 0), b.Body.Position)
	assert.Equal(t, math32.Vec3(-12, 0, -6), b.Anchor)
	assert.True(t, b.Body.CastShadow)

	require.NotNil(t, b.Glow)
	assert.InDelta(t, 6.3, b.Glow.Geometry.Size.X, 1e-5)
	assert.InDelta(t, 14.3, b.Glow.Geometry.Size.Y, 1e-5)
	assert.InDelta(t, 10.3, b.Glow.Geometry.Size.Z, 1e-5)
	assert.Equal(t, SideBack, b.Glow.Material.Side)
	assert.True(t, b.Glow.Material.Transparent)
	assert.Equal(t, float32(0), b.Glow.Material.Opacity)
	assert.Equal(t, b.Body.Position, b.Glow.Position)

	require.NotNil(t, b.Edges)
	assert.Equal(t, ShapeEdges, b.Edges.Geometry.Shape)
	assert.Equal(t, float32(EdgeIdleOpacity), b.Edges.Material.Opacity)
	assert.Equal(t, b.Body.Position, b.Edges.Position)
	require.NotNil(t, b.GroundIndicator)

	assert.Equal(t, math32.Vec3(-15, 0, -11), b.Bounds.Min)
	assert.Equal(t, math32.Vec3(-9, 14, -1), b.Bounds.Max)

	assert.Equal(t, 5000, s.Stars.Count)
	assert.Len(t, s.Particles.Positions, 500)
	assert.Equal(t, float32(100), s.Grid.FadeDistance)
	assert.Len(t, s.Effects, 3)
	assert.Equal(t, 2048, s.Lights[1].ShadowMapSize)

	assert.Equal(t, len(s.Resources()), alloc.Live())
}

func TestBuildConstrained(t *testing.T) {
	s, err := Build(testProperties(), ProfileFor(ModeConstrained), NewMemoryAllocator())
	require.NoError(t, err)

	require.Len(t, s.Buildings, 2)
	assert.Equal(t, AmbientNodes, s.Ambient())
	for _, b := range s.Buildings {
		assert.Nil(t, b.Glow)
		assert.Nil(t, b.Edges)
		assert.Nil(t, b.GroundIndicator)
		assert.False(t, b.Body.CastShadow)
		assert.Equal(t, float32(0.3), b.Body.Material.Metalness)
	}

	assert.Equal(t, 1000, s.Stars.Count)
	assert.Len(t, s.Particles.Positions, 100)
	assert.Equal(t, float32(4), s.Grid.CellSize)
	assert.Equal(t, float32(20), s.Grid.SectionSize)
	assert.Equal(t, float32(60), s.Grid.FadeDistance)
	assert.Equal(t, 512, s.Lights[1].ShadowMapSize)
	assert.Empty(t, s.Effects)
}

func TestBuildDefaultCatalog(t *testing.T) {
	props := catalog.MustDefault().All()
	for _, mode := range []Mode{ModeFull, ModeConstrained} {
		s, err := Build(props, ProfileFor(mode), nil)
		require.NoError(t, err)
		assert.Len(t, s.Buildings, len(props), mode.String())
		assert.Len(t, s.Ambient(), len(AmbientNodes), mode.String())
		s.Release()
	}
}

func TestBuildEmpty(t *testing.T) {
	s, err := Build(nil, ProfileFor(ModeFull), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Buildings)
	assert.Equal(t, AmbientNodes, s.Ambient())
}

func TestBuildReleasesOnAllocationFailure(t *testing.T) {
	alloc := NewMemoryAllocator()
	alloc.FailAfter = 7

	s, err := Build(testProperties(), ProfileFor(ModeFull), alloc)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, ErrAllocation))
	assert.Equal(t, 0, alloc.Live())
}

func TestBuildRejectsBadColor(t *testing.T) {
	props := testProperties()
	props[1].Building3D.Color = "not-a-colour"

	alloc := NewMemoryAllocator()
	_, err := Build(props, ProfileFor(ModeFull), alloc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grafton-apartments")
	assert.Equal(t, 0, alloc.Live())
}

func TestSceneRelease(t *testing.T) {
	alloc := NewMemoryAllocator()
	s, err := Build(testProperties(), ProfileFor(ModeFull), alloc)
	require.NoError(t, err)
	require.NotZero(t, alloc.Live())

	s.Release()
	assert.Equal(t, 0, alloc.Live())
	assert.Empty(t, s.Resources())

	s.Release()
	assert.Equal(t, 0, alloc.Live())
}

func TestFallback(t *testing.T) {
	s := Fallback()
	assert.True(t, s.Fallback)
	require.NotNil(t, s.Placeholder)
	assert.True(t, s.Placeholder.Material.Wireframe)
	assert.Equal(t, math32.Vec3(1, 1, 1), s.Placeholder.Geometry.Size)
	assert.Empty(t, s.Buildings)
	s.Release()
}

func TestParticlePositions(t *testing.T) {
	a := ParticlePositions(50, 42)
	b := ParticlePositions(50, 42)
	assert.Equal(t, a, b)

	for _, p := range a {
		assert.GreaterOrEqual(t, p.X, float32(-75))
		assert.LessOrEqual(t, p.X, float32(75))
		assert.GreaterOrEqual(t, p.Y, float32(0))
		assert.LessOrEqual(t, p.Y, float32(60))
		assert.GreaterOrEqual(t, p.Z, float32(-75))
		assert.LessOrEqual(t, p.Z, float32(75))
	}

	assert.NotEqual(t, a, ParticlePositions(50, 7))
	assert.Empty(t, ParticlePositions(0, 42))
}

func TestParticlePositionsPrecision(t *testing.T) {
	positions := ParticlePositions(2, 42)
	require.Len(t, positions, 2)

	// frac(sin(n+42)*10000) mapped into the particle volume
	expected := []math32.Vector3{
		math32.Vec3(42.678127, 15.154423, -72.112342),
		math32.Vec3(-69.713199, 53.008589, 34.684118),
	}
	for i, want := range expected {
		assert.InDelta(t, want.X, positions[i].X, 1e-3)
		assert.InDelta(t, want.Y, positions[i].Y, 1e-3)
		assert.InDelta(t, want.Z, positions[i].Z, 1e-3)
	}
}

func TestEffects(t *testing.T) {
	chain := Effects(ProfileFor(ModeFull))
	require.Len(t, chain, 3)
	assert.Equal(t, EffectBloom, chain[0].Kind)
	assert.Equal(t, float32(0.4), chain[0].LuminanceThreshold)
	assert.Equal(t, float32(1.2), chain[0].Intensity)
	assert.True(t, chain[0].MipmapBlur)
	assert.Equal(t, EffectChromaticAberration, chain[1].Kind)
	assert.False(t, chain[1].RadialModulation)
	assert.Equal(t, EffectVignette, chain[2].Kind)
	assert.Equal(t, float32(0.3), chain[2].VignetteOffset)
	assert.Equal(t, float32(0.7), chain[2].Darkness)

	assert.Empty(t, Effects(ProfileFor(ModeConstrained)))
}
