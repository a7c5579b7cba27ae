package scene

import (
	"os"

	"cogentcore.org/core/math32"
	"github.com/sirupsen/logrus"

	"sipkagroup/server/internal/models"
)

const (
	particleSpinY     = 0.02
	particleWobbleX   = 0.05
	particleWobbleFrq = 0.1
)

// Navigator receives the route a building click should open
type Navigator func(path string)

// Frame is the snapshot a renderer draws after one Tick
type Frame struct {
	Elapsed          float32             `json:"elapsed"`
	Buildings        []BuildingTransform `json:"buildings"`
	Camera           CameraState         `json:"camera"`
	ParticleRotation math32.Vector3      `json:"particle_rotation"`
	// Cursor is "pointer" while a building is hovered
	Cursor string `json:"cursor"`
}

// Loop drives one mounted scene: it is the single writer of all animation
// state and must be called from one goroutine.
type Loop struct {
	logger    *logrus.Logger
	profile   Profile
	scene     *Scene
	buildings []*BuildingController
	camera    *CameraRig
	navigate  Navigator

	pointer     math32.Vector2
	hovered     int
	invalidated bool
	mounted     bool
}

// Mount builds the scene for the catalog and prepares its controllers. If the
// scene cannot be built the loop runs with the fallback placeholder instead.
func Mount(properties []models.Property, profile Profile, alloc Allocator, navigate Navigator, logger *logrus.Logger) *Loop {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	s, err := Build(properties, profile, alloc)
	if err != nil {
		logger.WithError(err).Warn("Failed to build city scene, showing placeholder")
		s = Fallback()
		s.Profile = profile
	}

	l := &Loop{
		logger:      logger,
		profile:     profile,
		scene:       s,
		camera:      NewCameraRig(s.Camera),
		navigate:    navigate,
		hovered:     -1,
		invalidated: true,
		mounted:     true,
	}
	for _, node := range s.Buildings {
		l.buildings = append(l.buildings, NewBuildingController(node, profile))
	}

	logger.WithFields(logrus.Fields{
		"mode":      profile.Mode.String(),
		"buildings": len(l.buildings),
		"fallback":  s.Fallback,
	}).Info("Mounted city scene")
	return l
}

func (l *Loop) Scene() *Scene {
	return l.scene
}

func (l *Loop) Profile() Profile {
	return l.profile
}

func (l *Loop) Mounted() bool {
	return l.mounted
}

// Buildings returns the controllers in catalog order
func (l *Loop) Buildings() []*BuildingController {
	return l.buildings
}

// Invalidate requests a frame when running on demand
func (l *Loop) Invalidate() {
	l.invalidated = true
}

// NeedsFrame reports whether the renderer should call Tick now
func (l *Loop) NeedsFrame() bool {
	if !l.mounted {
		return false
	}
	if l.profile.FrameLoop == FrameLoopAlways || l.invalidated {
		return true
	}
	for _, b := range l.buildings {
		if !b.Settled() {
			return true
		}
	}
	return false
}

// PointerMove records the pointer in normalised device coordinates
func (l *Loop) PointerMove(x, y float32) {
	l.pointer = math32.Vec2(x, y)
	l.Invalidate()
}

// Hover moves the hover to building i; -1 clears it. Hover is ignored when
// the profile disables it.
func (l *Loop) Hover(i int) {
	if i == l.hovered || !l.profile.Hover {
		return
	}
	if l.hovered >= 0 && l.hovered < len(l.buildings) {
		l.buildings[l.hovered].PointerLeave()
	}
	l.hovered = -1
	if i >= 0 && i < len(l.buildings) && l.buildings[i].PointerEnter() {
		l.hovered = i
	}
	l.Invalidate()
}

func (l *Loop) Hovered() int {
	return l.hovered
}

// Click navigates to building i's detail page and returns the route. It
// returns "" for an index outside the scene.
func (l *Loop) Click(i int) string {
	if i < 0 || i >= len(l.buildings) {
		return ""
	}
	path := l.buildings[i].Click()
	l.leaveAll()
	if l.navigate != nil {
		l.navigate(path)
	}
	l.logger.WithField("path", path).Debug("Building clicked")
	return path
}

func (l *Loop) leaveAll() {
	for _, b := range l.buildings {
		b.PointerLeave()
	}
	l.hovered = -1
}

// Tick advances every controller to elapsed seconds and returns the frame
func (l *Loop) Tick(elapsed float32) Frame {
	l.invalidated = false

	f := Frame{
		Elapsed:   elapsed,
		Buildings: make([]BuildingTransform, len(l.buildings)),
		Cursor:    "auto",
	}
	for i, b := range l.buildings {
		b.Update(elapsed)
		f.Buildings[i] = b.Transform()
	}
	if l.hovered >= 0 {
		f.Cursor = "pointer"
	}

	l.camera.Update(elapsed, l.pointer)
	f.Camera = l.camera.State()
	f.ParticleRotation = math32.Vec3(
		math32.Sin(elapsed*particleWobbleFrq)*particleWobbleX,
		elapsed*particleSpinY,
		0,
	)
	return f
}

// Pick returns the index of the nearest building hit by the ray, or -1
func (l *Loop) Pick(origin, dir math32.Vector3) int {
	best := -1
	bestT := math32.Inf(1)
	for i, b := range l.buildings {
		if t, ok := intersectBox(origin, dir, b.Bounds()); ok && t < bestT {
			best, bestT = i, t
		}
	}
	return best
}

// Unmount releases the scene's resources. It is safe to call more than once.
func (l *Loop) Unmount() {
	if !l.mounted {
		return
	}
	l.leaveAll()
	l.scene.Release()
	l.mounted = false
	l.logger.Info("Unmounted city scene")
}

// intersectBox is the slab test; it returns the entry distance along dir
func intersectBox(origin, dir math32.Vector3, box math32.Box3) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	axes := [3][4]float32{
		{origin.X, dir.X, box.Min.X, box.Max.X},
		{origin.Y, dir.Y, box.Min.Y, box.Max.Y},
		{origin.Z, dir.Z, box.Min.Z, box.Max.Z},
	}
	for _, a := range axes {
		o, d, lo, hi := a[0], a[1], a[2], a[3]
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}
