package scene

import "cogentcore.org/core/math32"

// Camera rig tuning. The pointer is smoothed first and the camera then
// follows the smoothed pointer, giving a lagged, heavy feel.
const (
	pointerSmoothing = 0.05
	cameraSmoothing  = 0.02

	pointerScaleX = 0.5
	pointerScaleY = 0.3
	cameraTravelX = 10
	cameraTravelY = 5

	breathingAmplitude = 0.1
	breathingFrequency = 0.3
)

// CameraState is the camera placement for one frame
type CameraState struct {
	Position math32.Vector3 `json:"position"`
	LookAt   math32.Vector3 `json:"look_at"`
}

// CameraRig drifts the camera toward the pointer. It never orbits or rolls:
// every frame it re-aims at the fixed look-at point.
type CameraRig struct {
	spec     CameraSpec
	position math32.Vector3
	pointer  math32.Vector2
}

func NewCameraRig(spec CameraSpec) *CameraRig {
	return &CameraRig{spec: spec, position: spec.Position}
}

// Update advances the rig. pointer is normalised to [-1, 1] on both axes.
func (r *CameraRig) Update(elapsed float32, pointer math32.Vector2) {
	r.pointer.X = math32.Lerp(r.pointer.X, pointer.X*pointerScaleX, pointerSmoothing)
	r.pointer.Y = math32.Lerp(r.pointer.Y, pointer.Y*pointerScaleY, pointerSmoothing)

	r.position.X = math32.Lerp(r.position.X, r.pointer.X*cameraTravelX, cameraSmoothing)
	r.position.Y = math32.Lerp(r.position.Y, r.spec.Position.Y+r.pointer.Y*cameraTravelY, cameraSmoothing)
	r.position.Y += math32.Sin(elapsed*breathingFrequency) * breathingAmplitude
}

func (r *CameraRig) State() CameraState {
	return CameraState{Position: r.position, LookAt: r.spec.LookAt}
}

// SmoothedPointer is the first smoothing stage's current value
func (r *CameraRig) SmoothedPointer() math32.Vector2 {
	return r.pointer
}
