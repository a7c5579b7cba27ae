package scene

import (
	"fmt"
	"math"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"

	"sipkagroup/server/internal/models"
)

// GlowPadding is added to each building dimension for the glow shell
const GlowPadding = 0.3

// Scene-wide constants shared by the browser renderer and the native preview
const (
	BackgroundColor = "#030712"
	GroundColor     = "#0f172a"
	GroundSize      = 200
	FallbackColor   = "#1a365d"

	particleSeed   = 42
	particleSpread = 150
	particleHeight = 60
)

type Shape string

const (
	ShapeBox    Shape = "box"
	ShapeEdges  Shape = "edges"
	ShapePlane  Shape = "plane"
	ShapePoints Shape = "points"
)

type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

type Geometry struct {
	Shape  Shape          `json:"shape"`
	Size   math32.Vector3 `json:"size"`
	Handle Handle         `json:"handle"`
}

type Material struct {
	Color           string  `json:"color"`
	Metalness       float32 `json:"metalness,omitempty"`
	Roughness       float32 `json:"roughness,omitempty"`
	EnvMapIntensity float32 `json:"env_map_intensity,omitempty"`
	Opacity         float32 `json:"opacity"`
	Transparent     bool    `json:"transparent"`
	Side            Side    `json:"side"`
	Wireframe       bool    `json:"wireframe,omitempty"`
	Handle          Handle  `json:"handle"`
}

// Mesh is a geometry/material pair placed relative to its parent group
type Mesh struct {
	Geometry      Geometry       `json:"geometry"`
	Material      Material       `json:"material"`
	Position      math32.Vector3 `json:"position"`
	Rotation      math32.Vector3 `json:"rotation"`
	CastShadow    bool           `json:"cast_shadow"`
	ReceiveShadow bool           `json:"receive_shadow"`
}

// BuildingNode is the visual representation of one property
type BuildingNode struct {
	Index    int    `json:"index"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Location string `json:"location"`
	// Anchor is the building's footprint centre on the ground plane
	Anchor math32.Vector3 `json:"anchor"`
	Body   Mesh           `json:"body"`
	Glow   *Mesh          `json:"glow,omitempty"`
	Edges  *Mesh          `json:"edges,omitempty"`
	// GroundIndicator is the tinted footprint plane; it does not float
	GroundIndicator *Mesh `json:"ground_indicator,omitempty"`
	// Bounds is the world-space collision volume at rest
	Bounds math32.Box3 `json:"bounds"`
}

type LightKind string

const (
	LightAmbient     LightKind = "ambient"
	LightDirectional LightKind = "directional"
	LightPoint       LightKind = "point"
	LightSpot        LightKind = "spot"
)

type Light struct {
	Kind          LightKind      `json:"kind"`
	Position      math32.Vector3 `json:"position"`
	Intensity     float32        `json:"intensity"`
	Color         string         `json:"color,omitempty"`
	CastShadow    bool           `json:"cast_shadow"`
	ShadowMapSize int            `json:"shadow_map_size,omitempty"`
	Angle         float32        `json:"angle,omitempty"`
	Penumbra      float32        `json:"penumbra,omitempty"`
}

type Fog struct {
	Color string  `json:"color"`
	Near  float32 `json:"near"`
	Far   float32 `json:"far"`
}

type Grid struct {
	Size             float32 `json:"size"`
	CellSize         float32 `json:"cell_size"`
	CellThickness    float32 `json:"cell_thickness"`
	CellColor        string  `json:"cell_color"`
	SectionSize      float32 `json:"section_size"`
	SectionThickness float32 `json:"section_thickness"`
	SectionColor     string  `json:"section_color"`
	FadeDistance     float32 `json:"fade_distance"`
	FadeStrength     float32 `json:"fade_strength"`
	Infinite         bool    `json:"infinite"`
}

type Starfield struct {
	Radius     float32  `json:"radius"`
	Depth      float32  `json:"depth"`
	Count      int      `json:"count"`
	Factor     float32  `json:"factor"`
	Saturation float32  `json:"saturation"`
	Fade       bool     `json:"fade"`
	Speed      float32  `json:"speed"`
	Geometry   Geometry `json:"geometry"`
}

type ParticleField struct {
	Positions []math32.Vector3 `json:"positions"`
	Color     string           `json:"color"`
	Size      float32          `json:"size"`
	Opacity   float32          `json:"opacity"`
	Additive  bool             `json:"additive"`
	Geometry  Geometry         `json:"geometry"`
	Material  Material         `json:"material"`
}

type CameraSpec struct {
	Position math32.Vector3 `json:"position"`
	LookAt   math32.Vector3 `json:"look_at"`
	FOV      float32        `json:"fov"`
	Near     float32        `json:"near"`
	Far      float32        `json:"far"`
}

// DefaultCamera is the camera the rig starts from
func DefaultCamera() CameraSpec {
	return CameraSpec{
		Position: math32.Vec3(0, 35, 60),
		LookAt:   math32.Vec3(0, 10, 0),
		FOV:      50,
		Near:     0.1,
		Far:      500,
	}
}

// AmbientNodes names the shared nodes every built scene carries besides its buildings
var AmbientNodes = []string{"ground", "grid", "starfield", "particles", "lighting"}

// Scene is the complete description of one mounted city
type Scene struct {
	Profile    Profile         `json:"profile"`
	Background string          `json:"background"`
	Fog        Fog             `json:"fog"`
	Camera     CameraSpec      `json:"camera"`
	Lights     []Light         `json:"lights"`
	Ground     *Mesh           `json:"ground,omitempty"`
	Grid       *Grid           `json:"grid,omitempty"`
	Stars      *Starfield      `json:"stars,omitempty"`
	Particles  *ParticleField  `json:"particles,omitempty"`
	Buildings  []*BuildingNode `json:"buildings"`
	Effects    []Effect        `json:"effects"`

	// Fallback is set when the scene could not be built and only the
	// placeholder should be drawn
	Fallback    bool  `json:"fallback"`
	Placeholder *Mesh `json:"placeholder,omitempty"`

	resources *tracker
	released  bool
}

// Ambient returns the names of the ambient nodes present in the scene
func (s *Scene) Ambient() []string {
	present := make([]string, 0, len(AmbientNodes))
	if s.Ground != nil {
		present = append(present, "ground")
	}
	if s.Grid != nil {
		present = append(present, "grid")
	}
	if s.Stars != nil {
		present = append(present, "starfield")
	}
	if s.Particles != nil {
		present = append(present, "particles")
	}
	if len(s.Lights) > 0 {
		present = append(present, "lighting")
	}
	return present
}

// Resources returns the handles the scene currently holds
func (s *Scene) Resources() []Handle {
	if s.resources == nil {
		return nil
	}
	out := make([]Handle, len(s.resources.handles))
	copy(out, s.resources.handles)
	return out
}

// Release frees every resource acquired for the scene. Calling it more than
// once is a no-op.
func (s *Scene) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.resources != nil {
		s.resources.releaseAll()
	}
}

// Fallback returns the placeholder scene shown when the real one cannot be built
func Fallback() *Scene {
	return &Scene{
		Background: BackgroundColor,
		Camera:     DefaultCamera(),
		Fallback:   true,
		Placeholder: &Mesh{
			Geometry: Geometry{Shape: ShapeBox, Size: math32.Vec3(1, 1, 1)},
			Material: Material{Color: FallbackColor, Opacity: 1, Side: SideFront, Wireframe: true},
		},
	}
}

// builder carries the state of a single Build call
type builder struct {
	profile Profile
	res     *tracker
}

// Build converts the catalog into a scene for the given profile. On any
// allocation failure everything acquired so far is released and the error is
// returned; callers should then show Fallback().
func Build(properties []models.Property, profile Profile, alloc Allocator) (*Scene, error) {
	if alloc == nil {
		alloc = NewMemoryAllocator()
	}
	b := &builder{profile: profile, res: &tracker{alloc: alloc}}

	s, err := b.build(properties)
	if err != nil {
		b.res.releaseAll()
		return nil, err
	}
	s.resources = b.res
	return s, nil
}

func (b *builder) build(properties []models.Property) (*Scene, error) {
	s := &Scene{
		Profile:    b.profile,
		Background: BackgroundColor,
		Fog:        Fog{Color: BackgroundColor, Near: 50, Far: 150},
		Camera:     DefaultCamera(),
		Lights:     b.lights(),
		Grid:       b.grid(),
		Buildings:  make([]*BuildingNode, 0, len(properties)),
		Effects:    Effects(b.profile),
	}

	var err error
	if s.Ground, err = b.ground(); err != nil {
		return nil, err
	}
	if s.Stars, err = b.stars(); err != nil {
		return nil, err
	}
	if s.Particles, err = b.particles(); err != nil {
		return nil, err
	}

	for i, p := range properties {
		node, err := b.building(i, p)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", p.Slug, err)
		}
		s.Buildings = append(s.Buildings, node)
	}
	return s, nil
}

func (b *builder) mesh(label string, shape Shape, size math32.Vector3, mat Material) (Mesh, error) {
	g, err := b.res.acquire(Resource{Kind: ResourceGeometry, Label: label, Shape: shape, Size: size})
	if err != nil {
		return Mesh{}, err
	}
	m, err := b.res.acquire(Resource{Kind: ResourceMaterial, Label: label, Color: mat.Color})
	if err != nil {
		return Mesh{}, err
	}
	mat.Handle = m
	return Mesh{Geometry: Geometry{Shape: shape, Size: size, Handle: g}, Material: mat}, nil
}

func (b *builder) building(index int, p models.Property) (*BuildingNode, error) {
	spec := p.Building3D
	if _, err := colors.FromHex(spec.Color); err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", spec.Color, err)
	}
	if _, err := colors.FromHex(spec.EmissiveColor); err != nil {
		return nil, fmt.Errorf("invalid emissive color %q: %w", spec.EmissiveColor, err)
	}

	size := math32.Vec3(spec.Width, spec.Height, spec.Depth)
	anchor := math32.Vec3(spec.Position.X, spec.Position.Y, spec.Position.Z)
	center := math32.Vec3(0, spec.Height/2, 0)

	body, err := b.mesh(p.Slug+"/body", ShapeBox, size, Material{
		Color:           spec.Color,
		Metalness:       b.profile.Metalness,
		Roughness:       b.profile.Roughness,
		EnvMapIntensity: b.profile.EnvMapIntensity,
		Opacity:         1,
		Side:            SideFront,
	})
	if err != nil {
		return nil, err
	}
	body.Position = center
	body.CastShadow = b.profile.BuildingShadows
	body.ReceiveShadow = b.profile.BuildingShadows

	node := &BuildingNode{
		Index:    index,
		Slug:     p.Slug,
		Name:     p.Name,
		Location: p.Location,
		Anchor:   anchor,
		Body:     body,
		Bounds: math32.B3(
			anchor.X-spec.Width/2, anchor.Y, anchor.Z-spec.Depth/2,
			anchor.X+spec.Width/2, anchor.Y+spec.Height, anchor.Z+spec.Depth/2,
		),
	}

	if !b.profile.Decorations {
		return node, nil
	}

	pad := float32(GlowPadding)
	glow, err := b.mesh(p.Slug+"/glow", ShapeBox, math32.Vec3(spec.Width+pad, spec.Height+pad, spec.Depth+pad), Material{
		Color:       spec.EmissiveColor,
		Opacity:     GlowIdleOpacity,
		Transparent: true,
		Side:        SideBack,
	})
	if err != nil {
		return nil, err
	}
	glow.Position = center
	node.Glow = &glow

	edges, err := b.mesh(p.Slug+"/edges", ShapeEdges, size, Material{
		Color:       spec.EmissiveColor,
		Opacity:     EdgeIdleOpacity,
		Transparent: true,
		Side:        SideFront,
	})
	if err != nil {
		return nil, err
	}
	edges.Position = center
	node.Edges = &edges

	indicator, err := b.mesh(p.Slug+"/ground", ShapePlane, math32.Vec3(spec.Width+2, 0, spec.Depth+2), Material{
		Color:       spec.Color,
		Metalness:   0.5,
		Roughness:   0.5,
		Opacity:     0.1,
		Transparent: true,
		Side:        SideFront,
	})
	if err != nil {
		return nil, err
	}
	indicator.Position = math32.Vec3(0, 0.01, 0)
	indicator.Rotation = math32.Vec3(-math32.Pi/2, 0, 0)
	indicator.ReceiveShadow = true
	node.GroundIndicator = &indicator

	return node, nil
}

func (b *builder) lights() []Light {
	return []Light{
		{Kind: LightAmbient, Intensity: 0.2},
		{
			Kind:          LightDirectional,
			Position:      math32.Vec3(50, 50, 25),
			Intensity:     0.5,
			CastShadow:    true,
			ShadowMapSize: b.profile.ShadowMapSize,
		},
		{Kind: LightPoint, Position: math32.Vec3(-20, 30, -20), Intensity: 0.5, Color: "#60a5fa"},
		{Kind: LightPoint, Position: math32.Vec3(20, 30, 20), Intensity: 0.5, Color: "#a78bfa"},
		{
			Kind:       LightSpot,
			Position:   math32.Vec3(0, 60, 0),
			Intensity:  0.5,
			Color:      "#f472b6",
			Angle:      0.3,
			Penumbra:   1,
			CastShadow: b.profile.BuildingShadows,
		},
	}
}

func (b *builder) grid() *Grid {
	return &Grid{
		Size:             GroundSize,
		CellSize:         b.profile.GridCellSize,
		CellThickness:    0.5,
		CellColor:        "#1e3a8a",
		SectionSize:      b.profile.GridSectionSize,
		SectionThickness: 1,
		SectionColor:     "#3b82f6",
		FadeDistance:     b.profile.GridFadeDistance,
		FadeStrength:     1,
		Infinite:         true,
	}
}

func (b *builder) ground() (*Mesh, error) {
	m, err := b.mesh("ground", ShapePlane, math32.Vec3(GroundSize, 0, GroundSize), Material{
		Color:       GroundColor,
		Opacity:     0.8,
		Transparent: true,
		Side:        SideFront,
	})
	if err != nil {
		return nil, err
	}
	m.Position = math32.Vec3(0, -0.01, 0)
	m.Rotation = math32.Vec3(-math32.Pi/2, 0, 0)
	m.ReceiveShadow = true
	return &m, nil
}

func (b *builder) stars() (*Starfield, error) {
	g, err := b.res.acquire(Resource{Kind: ResourceGeometry, Label: "stars", Shape: ShapePoints})
	if err != nil {
		return nil, err
	}
	return &Starfield{
		Radius:   100,
		Depth:    50,
		Count:    b.profile.StarCount,
		Factor:   4,
		Fade:     true,
		Speed:    1,
		Geometry: Geometry{Shape: ShapePoints, Handle: g},
	}, nil
}

func (b *builder) particles() (*ParticleField, error) {
	positions := ParticlePositions(b.profile.ParticleCount, particleSeed)
	m, err := b.mesh("particles", ShapePoints, math32.Vec3(particleSpread, particleHeight, particleSpread), Material{
		Color:       "#60a5fa",
		Opacity:     0.6,
		Transparent: true,
		Side:        SideFront,
	})
	if err != nil {
		return nil, err
	}
	return &ParticleField{
		Positions: positions,
		Color:     "#60a5fa",
		Size:      0.15,
		Opacity:   0.6,
		Additive:  true,
		Geometry:  m.Geometry,
		Material:  m.Material,
	}, nil
}

// ParticlePositions scatters count points over a 150x60x150 volume centred on
// the origin. The same seed always yields the same layout.
func ParticlePositions(count int, seed float32) []math32.Vector3 {
	// hashed in float64: a float32 product near 1e4 keeps too few fractional bits
	random := func(s float64) float32 {
		x := math.Sin(s+float64(seed)) * 10000
		return float32(x - math.Floor(x))
	}

	positions := make([]math32.Vector3, count)
	for i := range positions {
		f := float64(i * 3)
		positions[i] = math32.Vec3(
			(random(f)-0.5)*particleSpread,
			random(f+1)*particleHeight,
			(random(f+2)-0.5)*particleSpread,
		)
	}
	return positions
}
