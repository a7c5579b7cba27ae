package scene

import "cogentcore.org/core/math32"

type EffectKind string

const (
	EffectBloom               EffectKind = "bloom"
	EffectChromaticAberration EffectKind = "chromatic_aberration"
	EffectVignette            EffectKind = "vignette"
)

// Effect is one stage of the post-processing chain. Only the fields relevant
// to Kind are set.
type Effect struct {
	Kind EffectKind `json:"kind"`

	Intensity          float32 `json:"intensity,omitempty"`
	LuminanceThreshold float32 `json:"luminance_threshold,omitempty"`
	LuminanceSmoothing float32 `json:"luminance_smoothing,omitempty"`
	MipmapBlur         bool    `json:"mipmap_blur,omitempty"`

	Offset           math32.Vector2 `json:"offset,omitempty"`
	RadialModulation bool           `json:"radial_modulation"`

	VignetteOffset float32 `json:"vignette_offset,omitempty"`
	Darkness       float32 `json:"darkness,omitempty"`
}

// Effects returns the post-processing chain in application order. It is empty
// when the profile disables post-processing.
func Effects(p Profile) []Effect {
	if !p.PostProcessing {
		return []Effect{}
	}
	return []Effect{
		{
			Kind:               EffectBloom,
			Intensity:          1.2,
			LuminanceThreshold: 0.4,
			LuminanceSmoothing: 0.9,
			MipmapBlur:         true,
		},
		{
			Kind:   EffectChromaticAberration,
			Offset: math32.Vec2(0.0005, 0.0005),
		},
		{
			Kind:           EffectVignette,
			VignetteOffset: 0.3,
			Darkness:       0.7,
		},
	}
}
