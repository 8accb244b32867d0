package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"CylinderForge/shared/meshing"
)

// Config armazena as configurações do CylinderForge.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Servidor
	ListenAddr string `json:"listen_addr"`
	// Cliente (modo remoto)
	ServerURL string `json:"server_url"`

	// Assets
	AssetDB         string `json:"asset_db"`
	DefaultFolder   string `json:"default_folder"`
	DefaultMeshName string `json:"default_mesh_name"`

	// Parâmetros iniciais do cilindro
	Cylinder meshing.Params `json:"cylinder"`

	// Câmera
	CameraDistance    float32 `json:"camera_distance"`
	CameraSensitivity float32 `json:"camera_sensitivity"`
	ZoomSpeed         float32 `json:"zoom_speed"`

	// Debug
	ShowBounds    bool `json:"show_bounds"`
	ShowNormals   bool `json:"show_normals"`
	WireframeMode bool `json:"wireframe_mode"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "CylinderForge",
		Fullscreen:   false,
		TargetFPS:    60,

		ListenAddr: ":8080",
		ServerURL:  "ws://127.0.0.1:8080/ws",

		AssetDB:         "saves/assets.db",
		DefaultFolder:   "Assets/SavedCustomColliders",
		DefaultMeshName: "CylinderCollider",

		Cylinder: meshing.DefaultParams(),

		CameraDistance:    6.0,
		CameraSensitivity: 0.3,
		ZoomSpeed:         1.0,

		ShowBounds:    true,
		ShowNormals:   false,
		WireframeMode: true,
	}
}

// Path retorna o caminho do arquivo de configuração, ao lado do executável.
func Path() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações do arquivo padrão.
// Se o arquivo não existir ou for inválido, retorna as configurações padrão.
func Load() *Config {
	cfg, err := LoadFile(Path())
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LoadFile carrega as configurações de um arquivo JSON específico. Campos
// ausentes mantêm o valor padrão. Um arquivo inexistente não é erro.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s inválida: %w", path, err)
	}

	cfg.Cylinder = cfg.Cylinder.Sanitize()
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 60
	}
	return cfg, nil
}

// Save salva as configurações no arquivo padrão.
func (c *Config) Save() error {
	return c.SaveFile(Path())
}

// SaveFile salva as configurações em um arquivo JSON.
func (c *Config) SaveFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
