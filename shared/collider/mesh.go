package collider

import (
	"sync/atomic"

	"CylinderForge/shared/meshing"
)

var meshIDs atomic.Uint64

// Mesh é o handle dono de uma malha gerada. Quem detém o handle é responsável
// por liberá-lo; o Binder assume essa posse ao instalar a malha.
type Mesh struct {
	id       uint64
	geometry meshing.GeometryData
	release  func()
	released bool
}

// NewMesh embrulha a geometria num handle. onRelease (opcional) libera recursos
// externos, como a cópia da malha na GPU.
func NewMesh(geo meshing.GeometryData, onRelease func()) *Mesh {
	return &Mesh{
		id:       meshIDs.Add(1),
		geometry: geo,
		release:  onRelease,
	}
}

// ID identifica a malha de forma única no processo.
func (m *Mesh) ID() uint64 {
	return m.id
}

// Geometry retorna a geometria da malha. Não deve ser modificada.
func (m *Mesh) Geometry() meshing.GeometryData {
	return m.geometry
}

// Release libera a malha. Chamadas repetidas são ignoradas.
func (m *Mesh) Release() {
	if m.released {
		return
	}
	m.released = true
	if m.release != nil {
		m.release()
	}
	m.geometry = meshing.GeometryData{}
}

// Released informa se a malha já foi liberada.
func (m *Mesh) Released() bool {
	return m.released
}
