package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1"
	androidUA = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Mobile Safari/537.36"
)

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		userAgent string
		expected  Mode
	}{
		{name: "just below breakpoint", width: 767, userAgent: desktopUA, expected: ModeConstrained},
		{name: "at breakpoint", width: 768, userAgent: desktopUA, expected: ModeFull},
		{name: "wide desktop", width: 1920, userAgent: desktopUA, expected: ModeFull},
		{name: "iphone on a wide viewport", width: 1920, userAgent: iphoneUA, expected: ModeConstrained},
		{name: "android at breakpoint", width: 768, userAgent: androidUA, expected: ModeConstrained},
		{name: "lowercase signature", width: 1024, userAgent: "some ipad browser", expected: ModeConstrained},
		{name: "opera mini", width: 1024, userAgent: "Opera/9.80 (J2ME/MIDP; Opera Mini/9.80)", expected: ModeConstrained},
		{name: "empty user agent", width: 1024, userAgent: "", expected: ModeFull},
		{name: "zero width", width: 0, userAgent: "", expected: ModeConstrained},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SelectMode(tt.width, tt.userAgent))
		})
	}
}

func TestProfileFor(t *testing.T) {
	full := ProfileFor(ModeFull)
	assert.Equal(t, ModeFull, full.Mode)
	assert.Equal(t, 2048, full.ShadowMapSize)
	assert.Equal(t, 5000, full.StarCount)
	assert.Equal(t, 500, full.ParticleCount)
	assert.Equal(t, float32(2), full.GridCellSize)
	assert.Equal(t, float32(10), full.GridSectionSize)
	assert.Equal(t, float32(100), full.GridFadeDistance)
	assert.True(t, full.PostProcessing)
	assert.True(t, full.Hover)
	assert.True(t, full.Decorations)
	assert.Equal(t, float32(0.5), full.FloatSpeed)
	assert.Equal(t, float32(0.15), full.FloatAmount)
	assert.Equal(t, FrameLoopAlways, full.FrameLoop)

	constrained := ProfileFor(ModeConstrained)
	assert.Equal(t, ModeConstrained, constrained.Mode)
	assert.Equal(t, 512, constrained.ShadowMapSize)
	assert.Equal(t, 1000, constrained.StarCount)
	assert.Equal(t, 100, constrained.ParticleCount)
	assert.Equal(t, full.GridCellSize*2, constrained.GridCellSize)
	assert.Equal(t, full.GridSectionSize*2, constrained.GridSectionSize)
	assert.Equal(t, float32(60), constrained.GridFadeDistance)
	assert.False(t, constrained.PostProcessing)
	assert.False(t, constrained.Hover)
	assert.False(t, constrained.Decorations)
	assert.Equal(t, float32(0.3), constrained.FloatSpeed)
	assert.Equal(t, float32(0.08), constrained.FloatAmount)
	assert.Equal(t, FrameLoopDemand, constrained.FrameLoop)
}

func TestModeText(t *testing.T) {
	text, err := ModeConstrained.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "constrained", string(text))
	assert.Equal(t, "full", ModeFull.String())
	assert.Equal(t, ModeConstrained, ResolveProfile(320, "").Mode)
}
