package scene

import (
	"regexp"
	"strings"
)

// MobileBreakpoint is the narrowest viewport width rendered in full quality
const MobileBreakpoint = 768

var mobileUserAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// Mode is the rendering quality class chosen when a scene mounts
type Mode int

const (
	ModeFull Mode = iota
	ModeConstrained
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeConstrained:
		return "constrained"
	default:
		return "unknown"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// FrameLoop controls how often frames are submitted
type FrameLoop string

const (
	FrameLoopAlways FrameLoop = "always"
	FrameLoopDemand FrameLoop = "demand"
)

// SelectMode classifies the device once at mount time. A viewport narrower
// than MobileBreakpoint or a mobile user agent yields ModeConstrained.
func SelectMode(viewportWidth int, userAgent string) Mode {
	if viewportWidth < MobileBreakpoint {
		return ModeConstrained
	}
	if mobileUserAgent.MatchString(strings.TrimSpace(userAgent)) {
		return ModeConstrained
	}
	return ModeFull
}

// Profile is every quality-dependent setting resolved from a Mode. Builders and
// controllers read from it instead of branching on the mode themselves.
type Profile struct {
	Mode Mode `json:"mode"`

	ShadowMapSize   int  `json:"shadow_map_size"`
	BuildingShadows bool `json:"building_shadows"`

	StarCount     int `json:"star_count"`
	ParticleCount int `json:"particle_count"`

	GridCellSize     float32 `json:"grid_cell_size"`
	GridSectionSize  float32 `json:"grid_section_size"`
	GridFadeDistance float32 `json:"grid_fade_distance"`

	PostProcessing bool `json:"post_processing"`
	Hover          bool `json:"hover"`
	// Decorations covers the glow shell, edge wireframe and ground indicator
	Decorations bool `json:"decorations"`

	FloatSpeed  float32 `json:"float_speed"`
	FloatAmount float32 `json:"float_amount"`

	Metalness       float32 `json:"metalness"`
	Roughness       float32 `json:"roughness"`
	EnvMapIntensity float32 `json:"env_map_intensity"`

	FrameLoop FrameLoop  `json:"frame_loop"`
	DPR       [2]float32 `json:"dpr"`
	Antialias bool       `json:"antialias"`
}

// ProfileFor resolves the settings for a mode
func ProfileFor(m Mode) Profile {
	if m == ModeConstrained {
		return Profile{
			Mode:             ModeConstrained,
			ShadowMapSize:    512,
			BuildingShadows:  false,
			StarCount:        1000,
			ParticleCount:    100,
			GridCellSize:     4,
			GridSectionSize:  20,
			GridFadeDistance: 60,
			PostProcessing:   false,
			Hover:            false,
			Decorations:      false,
			FloatSpeed:       0.3,
			FloatAmount:      0.08,
			Metalness:        0.3,
			Roughness:        0.5,
			EnvMapIntensity:  0.5,
			FrameLoop:        FrameLoopDemand,
			DPR:              [2]float32{1, 1.5},
			Antialias:        false,
		}
	}

	return Profile{
		Mode:             ModeFull,
		ShadowMapSize:    2048,
		BuildingShadows:  true,
		StarCount:        5000,
		ParticleCount:    500,
		GridCellSize:     2,
		GridSectionSize:  10,
		GridFadeDistance: 100,
		PostProcessing:   true,
		Hover:            true,
		Decorations:      true,
		FloatSpeed:       0.5,
		FloatAmount:      0.15,
		Metalness:        0.7,
		Roughness:        0.2,
		EnvMapIntensity:  1,
		FrameLoop:        FrameLoopAlways,
		DPR:              [2]float32{1, 2},
		Antialias:        true,
	}
}

// ResolveProfile is SelectMode followed by ProfileFor
func ResolveProfile(viewportWidth int, userAgent string) Profile {
	return ProfileFor(SelectMode(viewportWidth, userAgent))
}
