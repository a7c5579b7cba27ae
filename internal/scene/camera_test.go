package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestCameraRigDoubleSmoothing(t *testing.T) {
	rig := NewCameraRig(DefaultCamera())
	rig.Update(0, math32.Vec2(1, 0))

	// first stage moves 5% toward pointer*0.5, second 2% toward that times 10
	assert.InDelta(t, 0.025, rig.SmoothedPointer().X, 1e-6)
	assert.InDelta(t, 0.005, rig.State().Position.X, 1e-6)
	assert.InDelta(t, 35, rig.State().Position.Y, 1e-4)
	assert.Equal(t, math32.Vec3(0, 10, 0), rig.State().LookAt)
}

func TestCameraRigConvergesWithLag(t *testing.T) {
	rig := NewCameraRig(DefaultCamera())
	pointer := math32.Vec2(1, 1)

	var prevX float32
	for i := 1; i <= 2000; i++ {
		rig.Update(0, pointer)
		x := rig.State().Position.X
		assert.GreaterOrEqual(t, x, prevX-1e-5)
		assert.LessOrEqual(t, x, float32(5)+1e-4)
		prevX = x
	}
	assert.InDelta(t, 5, rig.State().Position.X, 0.05)
	assert.InDelta(t, 35+0.3*5, rig.State().Position.Y, 0.05)
	assert.Equal(t, float32(60), rig.State().Position.Z)
}

func TestCameraRigBreathing(t *testing.T) {
	rig := NewCameraRig(DefaultCamera())
	elapsed := float32(5)
	rig.Update(elapsed, math32.Vec2(0, 0))

	want := float32(35) + math32.Sin(elapsed*0.3)*0.1
	assert.InDelta(t, want, rig.State().Position.Y, 1e-4)
	assert.Equal(t, float32(0), rig.State().Position.X)
}
