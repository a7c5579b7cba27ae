package main

import (
	"fmt"

	"cogentcore.org/core/colors"
	rl "github.com/gen2brain/raylib-go/raylib"

	"sipkagroup/server/internal/scene"
)

type gpuResource struct {
	mesh     *rl.Mesh
	material *rl.Material
	color    rl.Color
}

// gpuAllocator backs scene resources with raylib meshes and materials. It
// must only be used after the window (and GL context) exists.
type gpuAllocator struct {
	nextID uint64
	live   map[uint64]gpuResource
}

func newGPUAllocator() *gpuAllocator {
	return &gpuAllocator{live: make(map[uint64]gpuResource)}
}

func (a *gpuAllocator) Allocate(r scene.Resource) (scene.Handle, error) {
	var res gpuResource

	switch r.Kind {
	case scene.ResourceGeometry:
		mesh, ok := genMesh(r)
		if ok {
			if mesh.VertexCount == 0 {
				return scene.Handle{}, fmt.Errorf("%w: mesh %s", scene.ErrAllocation, r.Label)
			}
			res.mesh = &mesh
		}
	case scene.ResourceMaterial:
		c, err := colors.FromHex(r.Color)
		if err != nil {
			return scene.Handle{}, fmt.Errorf("%w: material %s: %v", scene.ErrAllocation, r.Label, err)
		}
		mtl := rl.LoadMaterialDefault()
		if !rl.IsMaterialValid(mtl) {
			return scene.Handle{}, fmt.Errorf("%w: material %s", scene.ErrAllocation, r.Label)
		}
		if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = c
		}
		res.material = &mtl
		res.color = c
	default:
		return scene.Handle{}, fmt.Errorf("%w: unknown kind %q", scene.ErrAllocation, r.Kind)
	}

	a.nextID++
	h := scene.Handle{ID: a.nextID, Kind: r.Kind, Label: r.Label}
	a.live[h.ID] = res
	return h, nil
}

func (a *gpuAllocator) Free(h scene.Handle) {
	res, ok := a.live[h.ID]
	if !ok {
		return
	}
	if res.mesh != nil {
		rl.UnloadMesh(res.mesh)
	}
	if res.material != nil {
		rl.UnloadMaterial(*res.material)
	}
	delete(a.live, h.ID)
}

func (a *gpuAllocator) Live() int {
	return len(a.live)
}

func (a *gpuAllocator) mesh(h scene.Handle) (rl.Mesh, bool) {
	res, ok := a.live[h.ID]
	if !ok || res.mesh == nil {
		return rl.Mesh{}, false
	}
	return *res.mesh, true
}

// material returns the material with its albedo alpha set to opacity
func (a *gpuAllocator) material(h scene.Handle, opacity float32) (rl.Material, bool) {
	res, ok := a.live[h.ID]
	if !ok || res.material == nil {
		return rl.Material{}, false
	}
	if albedo := res.material.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.ColorAlpha(res.color, opacity)
	}
	return *res.material, true
}

// genMesh uploads the geometry for r. Points and edges are drawn immediate
// mode and have no mesh; ok is false for them.
func genMesh(r scene.Resource) (mesh rl.Mesh, ok bool) {
	switch r.Shape {
	case scene.ShapeBox:
		return rl.GenMeshCube(r.Size.X, r.Size.Y, r.Size.Z), true
	case scene.ShapePlane:
		return rl.GenMeshPlane(r.Size.X, r.Size.Z, 1, 1), true
	default:
		return rl.Mesh{}, false
	}
}
