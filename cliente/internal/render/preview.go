package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"log"
	"sync"
	"unsafe"

	"CylinderForge/shared/collider"
	"CylinderForge/shared/meshing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Preview mantém na GPU uma cópia de cada malha viva e a desenha.
type Preview struct {
	mu     sync.Mutex
	models map[uint64]rl.Model // por collider.Mesh.ID

	WireColor   rl.Color
	SolidColor  rl.Color
	BoundsColor rl.Color
	NormalColor rl.Color
}

// NewPreview cria o renderizador da malha em edição.
func NewPreview() *Preview {
	return &Preview{
		models:      make(map[uint64]rl.Model),
		WireColor:   rl.Lime,
		SolidColor:  rl.Fade(rl.DarkGreen, 0.6),
		BoundsColor: rl.Yellow,
		NormalColor: rl.SkyBlue,
	}
}

// Wrap sobe a geometria para a GPU e devolve o handle. Liberar o handle
// descarrega o modelo. Sem janela aberta a malha fica só na RAM.
func (p *Preview) Wrap(geo meshing.GeometryData) *collider.Mesh {
	if !rl.IsWindowReady() || len(geo.Vertices) == 0 {
		return collider.NewMesh(geo, nil)
	}

	mesh := geometryToMesh(geo)
	rl.UploadMesh(&mesh, false)
	model := rl.LoadModelFromMesh(mesh)

	var handle *collider.Mesh
	handle = collider.NewMesh(geo, func() {
		p.unload(handle.ID())
	})

	p.mu.Lock()
	p.models[handle.ID()] = model
	p.mu.Unlock()
	return handle
}

func (p *Preview) unload(id uint64) {
	p.mu.Lock()
	model, ok := p.models[id]
	delete(p.models, id)
	p.mu.Unlock()

	if ok && rl.IsWindowReady() {
		rl.UnloadModel(model) // Libera também a RAM alocada em geometryToMesh
	}
}

// Loaded retorna quantos modelos estão na GPU.
func (p *Preview) Loaded() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.models)
}

// Draw desenha a malha. Deve ser chamado entre BeginMode3D/EndMode3D.
func (p *Preview) Draw(mesh *collider.Mesh, wireframe, bounds, normals bool) {
	if mesh == nil || mesh.Released() {
		return
	}

	p.mu.Lock()
	model, ok := p.models[mesh.ID()]
	p.mu.Unlock()

	if ok {
		if !wireframe {
			rl.DrawModel(model, rl.Vector3{}, 1.0, p.SolidColor)
		}
		rl.DrawModelWires(model, rl.Vector3{}, 1.0, p.WireColor)
	}

	geo := mesh.Geometry()
	if bounds {
		rl.DrawBoundingBox(rl.BoundingBox{
			Min: rl.Vector3{X: geo.Bounds.Min.X(), Y: geo.Bounds.Min.Y(), Z: geo.Bounds.Min.Z()},
			Max: rl.Vector3{X: geo.Bounds.Max.X(), Y: geo.Bounds.Max.Y(), Z: geo.Bounds.Max.Z()},
		}, p.BoundsColor)
	}
	if normals {
		for i := 0; i < geo.VertexCount() && len(geo.Normals) == len(geo.Vertices); i++ {
			v, n := geo.Vertex(i), geo.Normal(i)
			end := v.Add(n.Mul(0.25))
			rl.DrawLine3D(rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}, rl.Vector3{X: end.X(), Y: end.Y(), Z: end.Z()}, p.NormalColor)
		}
	}
}

// Unload descarrega todos os modelos restantes (fechamento da janela).
func (p *Preview) Unload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, model := range p.models {
		rl.UnloadModel(model)
		delete(p.models, id)
	}
}

func geometryToMesh(data meshing.GeometryData) rl.Mesh {
	var mesh rl.Mesh
	mesh.VertexCount = int32(data.VertexCount())
	mesh.TriangleCount = int32(data.TriangleCount())

	if len(data.Vertices) > 0 {
		mesh.Vertices = (*float32)(copyToC(unsafe.Pointer(&data.Vertices[0]), len(data.Vertices)*4))
	}
	if len(data.Normals) > 0 {
		mesh.Normals = (*float32)(copyToC(unsafe.Pointer(&data.Normals[0]), len(data.Normals)*4))
	}
	if len(data.Indices) > 0 {
		mesh.Indices = (*uint16)(copyToC(unsafe.Pointer(&data.Indices[0]), len(data.Indices)*2))
	}
	return mesh
}

// copyToC copia dados Go para memória C; o raylib libera com free() no UnloadModel.
func copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		log.Printf("[Preview] ERRO: malloc de %d bytes falhou", size)
		return nil
	}
	copy(unsafe.Slice((*byte)(ptr), size), unsafe.Slice((*byte)(data), size))
	return ptr
}
