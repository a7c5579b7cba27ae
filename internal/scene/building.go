package scene

import "cogentcore.org/core/math32"

// Easing targets. Every eased value moves EaseFactor of the remaining
// distance toward its target each frame.
const (
	EaseFactor = 0.1

	HoverScale = 1.05

	GlowIdleOpacity    = 0
	GlowHoverOpacity   = 0.4
	EdgeIdleOpacity    = 0.3
	EdgeHoverOpacity   = 0.8
	HoverYawAmplitude  = 0.05
	hoverYawFrequency  = 2
	floatPhasePerIndex = 0.5

	settleEpsilon = 1e-3
)

type HoverState int

const (
	Idle HoverState = iota
	Hovered
)

func (s HoverState) String() string {
	if s == Hovered {
		return "hovered"
	}
	return "idle"
}

// FloatOffset is the idle bob applied to a building's group
func FloatOffset(elapsed float32, index int, speed, amount float32) float32 {
	return math32.Sin(elapsed*speed+float32(index)*floatPhasePerIndex) * amount
}

// Ease moves current one frame toward target
func Ease(current, target float32) float32 {
	return math32.Lerp(current, target, EaseFactor)
}

// BuildingTransform is the per-frame animated state of a building
type BuildingTransform struct {
	Index       int        `json:"index"`
	State       HoverState `json:"-"`
	OffsetY     float32    `json:"offset_y"`
	Scale       float32    `json:"scale"`
	Yaw         float32    `json:"yaw"`
	GlowOpacity float32    `json:"glow_opacity"`
	EdgeOpacity float32    `json:"edge_opacity"`
}

// BuildingController owns the transient animation state of one building. Only
// the render loop writes to it.
type BuildingController struct {
	node    *BuildingNode
	profile Profile
	state   HoverState

	offsetY     float32
	scale       float32
	yaw         float32
	glowOpacity float32
	edgeOpacity float32
}

func NewBuildingController(node *BuildingNode, profile Profile) *BuildingController {
	return &BuildingController{
		node:        node,
		profile:     profile,
		scale:       1,
		glowOpacity: GlowIdleOpacity,
		edgeOpacity: EdgeIdleOpacity,
	}
}

func (c *BuildingController) Node() *BuildingNode {
	return c.node
}

func (c *BuildingController) State() HoverState {
	return c.state
}

// PointerEnter marks the building hovered. It reports false when the profile
// has hover disabled.
func (c *BuildingController) PointerEnter() bool {
	if !c.profile.Hover {
		return false
	}
	c.state = Hovered
	return true
}

func (c *BuildingController) PointerLeave() {
	c.state = Idle
}

// Click returns the detail route for the building's property. Navigating away
// drops the hover.
func (c *BuildingController) Click() string {
	c.state = Idle
	return "/portfolio/" + c.node.Slug
}

// Update advances the building to the given elapsed time in seconds
func (c *BuildingController) Update(elapsed float32) {
	c.offsetY = FloatOffset(elapsed, c.node.Index, c.profile.FloatSpeed, c.profile.FloatAmount)

	if !c.profile.Hover {
		return
	}

	hovered := c.state == Hovered
	if hovered {
		c.scale = Ease(c.scale, HoverScale)
		c.glowOpacity = Ease(c.glowOpacity, GlowHoverOpacity)
		c.edgeOpacity = Ease(c.edgeOpacity, EdgeHoverOpacity)
		c.yaw = Ease(c.yaw, math32.Sin(elapsed*hoverYawFrequency)*HoverYawAmplitude)
	} else {
		c.scale = Ease(c.scale, 1)
		c.glowOpacity = Ease(c.glowOpacity, GlowIdleOpacity)
		c.edgeOpacity = Ease(c.edgeOpacity, EdgeIdleOpacity)
		c.yaw = Ease(c.yaw, 0)
	}
}

// Settled reports whether the eased values have reached their idle or hover
// targets. A hovered building keeps wobbling and is never settled.
func (c *BuildingController) Settled() bool {
	if c.state == Hovered {
		return false
	}
	return math32.Abs(c.scale-1) < settleEpsilon &&
		math32.Abs(c.glowOpacity-GlowIdleOpacity) < settleEpsilon &&
		math32.Abs(c.edgeOpacity-EdgeIdleOpacity) < settleEpsilon &&
		math32.Abs(c.yaw) < settleEpsilon
}

func (c *BuildingController) Transform() BuildingTransform {
	return BuildingTransform{
		Index:       c.node.Index,
		State:       c.state,
		OffsetY:     c.offsetY,
		Scale:       c.scale,
		Yaw:         c.yaw,
		GlowOpacity: c.glowOpacity,
		EdgeOpacity: c.edgeOpacity,
	}
}

// Bounds is the current collision volume including the float offset
func (c *BuildingController) Bounds() math32.Box3 {
	return c.node.Bounds.Translate(math32.Vec3(0, c.offsetY, 0))
}
