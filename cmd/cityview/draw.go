package main

import (
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"sipkagroup/server/internal/scene"
)

const (
	starSeed      = 7
	labelFontSize = 20
)

type renderer struct {
	gpu   *gpuAllocator
	loop  *scene.Loop
	stars []rl.Vector3
}

func newRenderer(gpu *gpuAllocator, loop *scene.Loop) *renderer {
	r := &renderer{gpu: gpu, loop: loop}
	if s := loop.Scene().Stars; s != nil {
		// Push the scattered points out onto the star shell
		for _, p := range scene.ParticlePositions(s.Count, starSeed) {
			dir := math32.Vec3(p.X, p.Y-30, p.Z)
			if dir.Length() == 0 {
				continue
			}
			dir = dir.Normal().MulScalar(s.Radius + s.Depth*(p.Y/60))
			r.stars = append(r.stars, vec(dir))
		}
	}
	return r
}

func vec(v math32.Vector3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func hexColor(hex string) rl.Color {
	c, err := colors.FromHex(hex)
	if err != nil {
		return rl.Magenta
	}
	return c
}

func (r *renderer) camera(state scene.CameraState) rl.Camera3D {
	spec := r.loop.Scene().Camera
	return rl.Camera3D{
		Position:   vec(state.Position),
		Target:     vec(state.LookAt),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       spec.FOV,
		Projection: rl.CameraPerspective,
	}
}

// draw renders one frame of the city
func (r *renderer) draw(f scene.Frame, cam rl.Camera3D) {
	s := r.loop.Scene()
	rl.ClearBackground(hexColor(s.Background))

	rl.BeginMode3D(cam)
	if s.Fallback {
		r.drawPlaceholder(s.Placeholder)
		rl.EndMode3D()
		return
	}

	r.drawMesh(s.Ground, 1)
	if s.Grid != nil {
		rl.DrawGrid(int32(s.Grid.Size/s.Grid.CellSize), s.Grid.CellSize)
	}
	r.drawStars()
	r.drawParticles(f.ParticleRotation)

	rl.DisableBackfaceCulling()
	for i, b := range r.loop.Buildings() {
		r.drawBuilding(b.Node(), f.Buildings[i])
	}
	rl.EnableBackfaceCulling()
	rl.EndMode3D()

	r.drawLabel(cam)
}

func (r *renderer) drawMesh(m *scene.Mesh, opacity float32) {
	if m == nil {
		return
	}
	mesh, ok := r.gpu.mesh(m.Geometry.Handle)
	if !ok {
		return
	}
	mtl, ok := r.gpu.material(m.Material.Handle, opacity)
	if !ok {
		return
	}
	rl.DrawMesh(mesh, mtl, rl.MatrixTranslate(m.Position.X, m.Position.Y, m.Position.Z))
}

func (r *renderer) drawBuilding(n *scene.BuildingNode, t scene.BuildingTransform) {
	// The ground indicator stays on the ground while the rest floats
	if n.GroundIndicator != nil {
		rl.PushMatrix()
		rl.Translatef(n.Anchor.X, n.Anchor.Y, n.Anchor.Z)
		r.drawMesh(n.GroundIndicator, n.GroundIndicator.Material.Opacity)
		rl.PopMatrix()
	}

	rl.PushMatrix()
	rl.Translatef(n.Anchor.X, n.Anchor.Y+t.OffsetY, n.Anchor.Z)
	rl.Rotatef(t.Yaw*rl.Rad2deg, 0, 1, 0)
	rl.Scalef(t.Scale, t.Scale, t.Scale)

	r.drawMesh(&n.Body, 1)
	if n.Glow != nil {
		r.drawMesh(n.Glow, t.GlowOpacity)
	}
	if n.Edges != nil {
		size := n.Edges.Geometry.Size
		rl.DrawCubeWiresV(vec(n.Edges.Position), vec(size), rl.ColorAlpha(hexColor(n.Edges.Material.Color), t.EdgeOpacity))
	}
	rl.PopMatrix()
}

func (r *renderer) drawStars() {
	for _, p := range r.stars {
		rl.DrawPoint3D(p, rl.RayWhite)
	}
}

func (r *renderer) drawParticles(rot math32.Vector3) {
	p := r.loop.Scene().Particles
	if p == nil {
		return
	}
	c := rl.ColorAlpha(hexColor(p.Color), p.Opacity)

	rl.PushMatrix()
	rl.Rotatef(rot.X*rl.Rad2deg, 1, 0, 0)
	rl.Rotatef(rot.Y*rl.Rad2deg, 0, 1, 0)
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, pos := range p.Positions {
		rl.DrawPoint3D(vec(pos), c)
	}
	rl.EndBlendMode()
	rl.PopMatrix()
}

func (r *renderer) drawPlaceholder(m *scene.Mesh) {
	if m == nil {
		return
	}
	rl.DrawCubeWiresV(vec(m.Position), vec(m.Geometry.Size), hexColor(m.Material.Color))
}

// drawLabel names the hovered building above its roof
func (r *renderer) drawLabel(cam rl.Camera3D) {
	i := r.loop.Hovered()
	if i < 0 {
		return
	}
	n := r.loop.Buildings()[i].Node()
	top := n.Bounds.Max
	pos := rl.GetWorldToScreen(rl.NewVector3(n.Anchor.X, top.Y+2, n.Anchor.Z), cam)
	text := n.Name + " - " + n.Location
	w := rl.MeasureText(text, labelFontSize)
	rl.DrawText(text, int32(pos.X)-w/2, int32(pos.Y), labelFontSize, rl.White)
}
