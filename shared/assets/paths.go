package assets

import (
	"fmt"
	"path"
	"strings"
)

const (
	// RootFolder é a raiz de todos os assets.
	RootFolder = "Assets"
	// DefaultFolder recebe as malhas quando nenhuma pasta válida foi escolhida.
	DefaultFolder = "Assets/SavedCustomColliders"
	// DefaultMeshName é usado quando o nome informado está vazio.
	DefaultMeshName = "CylinderCollider"
	// Extension é a extensão dos assets de malha.
	Extension = ".asset"
)

// CleanFolder normaliza uma pasta: barras '/', sem barra final. Vazio vira DefaultFolder.
func CleanFolder(folder string) string {
	folder = strings.TrimSpace(strings.ReplaceAll(folder, `\`, "/"))
	if folder == "" {
		return DefaultFolder
	}
	folder = path.Clean(folder)
	folder = strings.TrimPrefix(folder, "./")
	return strings.TrimSuffix(folder, "/")
}

// ResolveFolder escolhe a pasta de destino a partir da seleção atual do editor.
// Uma pasta selecionada é usada como está; um asset selecionado resolve para a
// pasta que o contém. Se o resultado não for uma pasta válida, usa DefaultFolder.
// O resultado sempre termina com "/".
func ResolveFolder(selection string, isFolder func(string) bool) string {
	folder := DefaultFolder
	if selection = strings.TrimSpace(selection); selection != "" {
		selection = CleanFolder(selection)
		if isFolder(selection) {
			folder = selection
		} else {
			folder = path.Dir(selection)
		}
	}
	if !isFolder(folder) {
		folder = DefaultFolder
	}
	return folder + "/"
}

// CleanName normaliza o nome da malha. Vazio vira DefaultMeshName; a extensão
// digitada pelo usuário é removida e separadores de caminho viram '_'.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, Extension)
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	if name == "" {
		return DefaultMeshName
	}
	return name
}

// UniquePath gera "pasta/nome.asset", acrescentando " 1", " 2"... ao nome
// enquanto taken informar que o caminho já existe.
func UniquePath(folder, name string, taken func(string) bool) string {
	folder = CleanFolder(folder) + "/"
	name = CleanName(name)

	candidate := folder + name + Extension
	for i := 1; taken(candidate); i++ {
		candidate = fmt.Sprintf("%s%s %d%s", folder, name, i, Extension)
	}
	return candidate
}
