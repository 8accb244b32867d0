package collider

import (
	"errors"
	"fmt"
)

var (
	// ErrAttachment indica que o host não aceita um componente de colisão.
	ErrAttachment = errors.New("collider: host cannot accept a collision shape")
	// ErrNilMesh indica uma tentativa de instalar uma malha nula.
	ErrNilMesh = errors.New("collider: nil mesh")
	// ErrReleased indica uma tentativa de instalar uma malha já liberada.
	ErrReleased = errors.New("collider: mesh already released")
	// ErrInUse indica uma malha já instalada em outro host.
	ErrInUse = errors.New("collider: mesh bound to another host")
)

// MeshCollider é o componente de colisão convexo preso a um host.
type MeshCollider struct {
	SharedMesh *Mesh
	Convex     bool
}

// Host é qualquer objeto capaz de carregar um MeshCollider.
type Host interface {
	// Collider retorna o componente atual ou nil se não houver.
	Collider() *MeshCollider
	// AddCollider cria e anexa um novo componente.
	AddCollider() (*MeshCollider, error)
}

// GameObject é a implementação de Host usada pelo editor e pelo servidor.
type GameObject struct {
	Name      string
	Destroyed bool // Objetos destruídos não aceitam novos componentes

	collider *MeshCollider
}

// NewGameObject cria um objeto sem componentes.
func NewGameObject(name string) *GameObject {
	return &GameObject{Name: name}
}

// Collider implementa Host.
func (g *GameObject) Collider() *MeshCollider {
	return g.collider
}

// AddCollider implementa Host.
func (g *GameObject) AddCollider() (*MeshCollider, error) {
	if g.Destroyed {
		return nil, fmt.Errorf("objeto %q destruído: %w", g.Name, ErrAttachment)
	}
	if g.collider != nil {
		return g.collider, nil
	}
	g.collider = &MeshCollider{}
	return g.collider, nil
}
