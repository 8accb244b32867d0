package collider

import (
	"fmt"
)

// State é o estado da ligação entre um host e sua malha gerada.
type State int

const (
	StateUnbound State = iota // Nenhuma malha instalada
	StateBound                // Exatamente uma malha viva
)

// String implementa fmt.Stringer.
func (s State) String() string {
	if s == StateBound {
		return "bound"
	}
	return "unbound"
}

// binding guarda o componente e a malha que o Binder possui para um host.
type binding struct {
	collider *MeshCollider
	mesh     *Mesh
}

// Binder instala malhas geradas como forma de colisão convexa e é o dono
// exclusivo da malha viva de cada host. Não é seguro para uso concorrente;
// roda na thread que chama o editor.
type Binder struct {
	bindings map[Host]*binding
	owners   map[*Mesh]Host
	releases int
}

// NewBinder cria um Binder vazio.
func NewBinder() *Binder {
	return &Binder{
		bindings: make(map[Host]*binding),
		owners:   make(map[*Mesh]Host),
	}
}

// Install anexa mesh como forma de colisão convexa de host.
// Cria o componente se faltar; se a criação falhar nada é alterado e o erro
// (envolvendo ErrAttachment) é devolvido. A malha anterior, se for outro objeto,
// é liberada antes de a nova ficar visível no componente. Uma malha pertence a
// um único host; instalá-la em outro falha com ErrInUse.
func (b *Binder) Install(host Host, mesh *Mesh) error {
	if mesh == nil {
		return ErrNilMesh
	}
	if mesh.Released() {
		return fmt.Errorf("malha %d: %w", mesh.ID(), ErrReleased)
	}
	if owner, ok := b.owners[mesh]; ok && owner != host {
		return fmt.Errorf("malha %d: %w", mesh.ID(), ErrInUse)
	}

	col := host.Collider()
	if col == nil {
		var err error
		col, err = host.AddCollider()
		if err != nil {
			return fmt.Errorf("falha ao anexar collider: %w", err)
		}
		if col == nil {
			return fmt.Errorf("host não devolveu componente: %w", ErrAttachment)
		}
	}

	bd, ok := b.bindings[host]
	if !ok {
		bd = &binding{}
		b.bindings[host] = bd
	}

	if bd.mesh != nil && bd.mesh != mesh {
		delete(b.owners, bd.mesh)
		bd.mesh.Release()
		b.releases++
	}

	bd.collider = col
	bd.mesh = mesh
	b.owners[mesh] = host
	col.SharedMesh = mesh
	col.Convex = true
	return nil
}

// Current retorna a malha viva do host (ou nil).
func (b *Binder) Current(host Host) *Mesh {
	if bd, ok := b.bindings[host]; ok {
		return bd.mesh
	}
	return nil
}

// State retorna o estado da ligação do host.
func (b *Binder) State(host Host) State {
	if b.Current(host) != nil {
		return StateBound
	}
	return StateUnbound
}

// Releases retorna quantas malhas substituídas foram liberadas até agora.
func (b *Binder) Releases() int {
	return b.releases
}

// Unbind libera a malha viva do host e limpa o componente.
func (b *Binder) Unbind(host Host) {
	bd, ok := b.bindings[host]
	if !ok {
		return
	}
	if bd.mesh != nil {
		if bd.collider != nil && bd.collider.SharedMesh == bd.mesh {
			bd.collider.SharedMesh = nil
		}
		delete(b.owners, bd.mesh)
		bd.mesh.Release()
		b.releases++
	}
	delete(b.bindings, host)
}

// Close libera todas as malhas vivas.
func (b *Binder) Close() {
	for host := range b.bindings {
		b.Unbind(host)
	}
}
