// Package editor implementa o fluxo de edição ao vivo: parâmetros mudam, a malha
// é regenerada e reinstalada no host, e pode ser salva como asset.
package editor

import (
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"CylinderForge/shared/assets"
	"CylinderForge/shared/collider"
	"CylinderForge/shared/meshing"
)

// ErrNoStore indica um pedido de salvamento numa sessão sem banco de assets.
var ErrNoStore = errors.New("editor: no asset store")

// WrapFunc transforma geometria num handle de malha (ex.: upload para a GPU).
type WrapFunc func(meshing.GeometryData) *collider.Mesh

// Session é o estado de uma janela de edição. Não é segura para uso concorrente.
type Session struct {
	// Wrap cria o handle de cada malha gerada. Nil usa collider.NewMesh sem recursos externos.
	Wrap WrapFunc

	host   collider.Host
	binder *collider.Binder
	store  *assets.Store

	params meshing.Params

	meshName         string
	selection        string
	savePath         string
	savePathModified bool
	lastSaved        string
}

// New cria uma sessão para host. store pode ser nil; nesse caso Save falha com ErrNoStore.
func New(host collider.Host, store *assets.Store) *Session {
	return &Session{
		host:     host,
		binder:   collider.NewBinder(),
		store:    store,
		params:   meshing.DefaultParams(),
		meshName: assets.DefaultMeshName,
	}
}

// Params retorna os parâmetros atuais (já sanitizados).
func (s *Session) Params() meshing.Params { return s.params }

// Host retorna o objeto que recebe a malha.
func (s *Session) Host() collider.Host { return s.host }

// Current retorna a malha viva do host, ou nil.
func (s *Session) Current() *collider.Mesh { return s.binder.Current(s.host) }

// Releases retorna quantas malhas substituídas já foram liberadas.
func (s *Session) Releases() int { return s.binder.Releases() }

// LastSaved retorna o caminho do último asset salvo.
func (s *Session) LastSaved() string { return s.lastSaved }

// SetParams sanitiza p e, se diferir dos parâmetros atuais (ou se ainda não houver
// malha), regenera e instala a nova malha.
func (s *Session) SetParams(p meshing.Params) (bool, error) {
	p = p.Sanitize()
	if p == s.params && s.Current() != nil {
		return false, nil
	}
	if err := s.install(p, meshing.BuildCylinder(p)); err != nil {
		return false, err
	}
	return true, nil
}

// Refresh regenera e reinstala a malha com os parâmetros atuais.
func (s *Session) Refresh() error {
	return s.install(s.params, meshing.BuildCylinder(s.params))
}

// Apply instala uma geometria produzida em outro lugar (ex.: recebida do servidor).
func (s *Session) Apply(p meshing.Params, geo meshing.GeometryData) error {
	return s.install(p.Sanitize(), geo)
}

func (s *Session) install(p meshing.Params, geo meshing.GeometryData) error {
	mesh := s.wrap(geo)
	if err := s.binder.Install(s.host, mesh); err != nil {
		mesh.Release()
		log.Printf("[Editor] ERRO ao instalar malha: %v", err)
		return err
	}
	s.params = p
	return nil
}

func (s *Session) wrap(geo meshing.GeometryData) *collider.Mesh {
	if s.Wrap != nil {
		if m := s.Wrap(geo); m != nil {
			return m
		}
	}
	return collider.NewMesh(geo, nil)
}

// Save gera uma malha nova, otimiza, persiste-a sob um caminho único na pasta
// de destino e instala essa mesma malha no host. O asset salvo vira a seleção.
func (s *Session) Save() (assets.Asset, error) {
	if s.store == nil {
		return assets.Asset{}, ErrNoStore
	}

	geo := meshing.BuildCylinder(s.params)
	if dropped := geo.Optimize(); dropped > 0 {
		log.Printf("[Editor] AVISO: Optimize descartou %d triângulos degenerados", dropped)
	}
	asset, err := s.store.Save(s.meshName, s.SavePath(), s.params, geo)
	if err != nil {
		return assets.Asset{}, fmt.Errorf("falha ao salvar malha: %w", err)
	}
	s.lastSaved = asset.Path
	s.Select(asset.Path)

	if err := s.install(s.params, geo); err != nil {
		return asset, err
	}
	return asset, nil
}

// MeshName retorna o nome usado no próximo salvamento.
func (s *Session) MeshName() string { return s.meshName }

// SetMeshName define o nome do próximo salvamento. Vazio volta ao padrão.
func (s *Session) SetMeshName(name string) {
	s.meshName = assets.CleanName(name)
}

// Select informa a seleção atual do navegador de assets. Enquanto o usuário não
// editar a pasta de destino, ela acompanha a seleção.
func (s *Session) Select(selection string) {
	s.selection = selection
}

// SavePath retorna a pasta de destino, sempre terminada em "/".
func (s *Session) SavePath() string {
	if s.savePathModified {
		return s.savePath
	}
	return assets.ResolveFolder(s.selection, s.isFolder)
}

// SetSavePath fixa a pasta de destino. Pastas fora de Assets são rejeitadas.
func (s *Session) SetSavePath(folder string) error {
	folder = assets.CleanFolder(folder)
	if folder != assets.RootFolder && !strings.HasPrefix(folder, assets.RootFolder+"/") {
		return fmt.Errorf("pasta %q fora de %s", folder, assets.RootFolder)
	}
	s.savePath = folder + "/"
	s.savePathModified = true
	return nil
}

// ResetSavePath volta a derivar a pasta de destino da seleção.
func (s *Session) ResetSavePath() {
	s.savePath = ""
	s.savePathModified = false
}

// SavePathModified informa se a pasta foi fixada pelo usuário.
func (s *Session) SavePathModified() bool { return s.savePathModified }

func (s *Session) isFolder(folder string) bool {
	if s.store != nil {
		return s.store.IsFolder(folder)
	}
	folder = path.Clean(folder)
	return folder == assets.RootFolder || folder == assets.DefaultFolder
}

// Close libera a malha viva.
func (s *Session) Close() {
	s.binder.Close()
}
