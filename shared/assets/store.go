package assets

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"CylinderForge/shared/meshing"
	"CylinderForge/shared/proto/meshwire"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound indica que o asset pedido não existe.
var ErrNotFound = errors.New("assets: not found")

// ErrClosed indica uso do Store depois de Close.
var ErrClosed = errors.New("assets: store closed")

// Asset é o esquema do banco para uma malha salva.
type Asset struct {
	Path      string `gorm:"primaryKey"` // "Assets/.../Nome.asset"
	Folder    string `gorm:"index"`
	Name      string
	Params    []byte // meshwire.Params
	Data      []byte // meshwire.Geometry
	Vertices  int
	Triangles int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName fixa o nome da tabela.
func (Asset) TableName() string { return "mesh_assets" }

// Folder representa uma pasta virtual de assets.
type Folder struct {
	Path string `gorm:"primaryKey"`
}

// StoreMetadata armazena informações globais do banco.
type StoreMetadata struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const CurrentFormatVersion = 1

// Store persiste malhas geradas num banco SQLite.
type Store struct {
	DB *gorm.DB
}

// Open abre (ou cria) o banco de assets e roda as migrações.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	// Logger do GORM silencioso; os logs relevantes saem pelo pacote log
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&Asset{}, &Folder{}, &StoreMetadata{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	s := &Store{DB: db}
	db.Save(&StoreMetadata{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)})
	if err := s.EnsureFolder(DefaultFolder); err != nil {
		return nil, err
	}

	log.Printf("[Assets] Banco de dados SQLite aberto: %s", dbPath)
	return s, nil
}

// Close fecha a conexão com o banco.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	s.DB = nil
	return sqlDB.Close()
}

// EnsureFolder cria a pasta e todas as suas ancestrais.
func (s *Store) EnsureFolder(folder string) error {
	if s.DB == nil {
		return ErrClosed
	}
	folder = CleanFolder(folder)
	for {
		if err := s.DB.Save(&Folder{Path: folder}).Error; err != nil {
			return fmt.Errorf("falha ao criar pasta %s: %w", folder, err)
		}
		parent := path.Dir(folder)
		if parent == "." || parent == "/" || parent == folder {
			return nil
		}
		folder = parent
	}
}

// IsFolder informa se a pasta existe.
func (s *Store) IsFolder(folder string) bool {
	if s.DB == nil {
		return false
	}
	var n int64
	s.DB.Model(&Folder{}).Where("path = ?", CleanFolder(folder)).Count(&n)
	return n > 0
}

// Exists informa se já existe um asset no caminho.
func (s *Store) Exists(assetPath string) bool {
	if s.DB == nil {
		return false
	}
	return exists(s.DB, assetPath)
}

func exists(db *gorm.DB, assetPath string) bool {
	var n int64
	db.Model(&Asset{}).Where("path = ?", assetPath).Count(&n)
	return n > 0
}

// Save persiste a malha sob um caminho único em folder e devolve o asset criado.
func (s *Store) Save(name, folder string, p meshing.Params, geo meshing.GeometryData) (Asset, error) {
	if s.DB == nil {
		return Asset{}, ErrClosed
	}
	folder = CleanFolder(folder)
	if err := s.EnsureFolder(folder); err != nil {
		return Asset{}, err
	}

	var asset Asset
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		assetPath := UniquePath(folder, name, func(candidate string) bool {
			return exists(tx, candidate)
		})
		asset = Asset{
			Path:      assetPath,
			Folder:    folder,
			Name:      path.Base(strings.TrimSuffix(assetPath, Extension)),
			Params:    meshwire.MarshalParams(p),
			Data:      meshwire.MarshalGeometry(geo),
			Vertices:  geo.VertexCount(),
			Triangles: geo.TriangleCount(),
		}
		return tx.Create(&asset).Error
	})
	if err != nil {
		log.Printf("[Assets] ERRO ao salvar malha %q: %v", name, err)
		return Asset{}, err
	}

	log.Printf("[Assets] Malha salva em: %s", asset.Path)
	return asset, nil
}

// Load carrega um asset e decodifica sua geometria.
func (s *Store) Load(assetPath string) (Asset, meshing.GeometryData, error) {
	if s.DB == nil {
		return Asset{}, meshing.GeometryData{}, ErrClosed
	}

	var asset Asset
	if err := s.DB.First(&asset, "path = ?", assetPath).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Asset{}, meshing.GeometryData{}, fmt.Errorf("%s: %w", assetPath, ErrNotFound)
		}
		return Asset{}, meshing.GeometryData{}, err
	}

	geo, err := meshwire.UnmarshalGeometry(asset.Data)
	if err != nil {
		return Asset{}, meshing.GeometryData{}, fmt.Errorf("asset %s corrompido: %w", assetPath, err)
	}
	return asset, geo, nil
}

// LoadParams devolve os parâmetros usados para gerar o asset.
func (a Asset) LoadParams() (meshing.Params, error) {
	return meshwire.UnmarshalParams(a.Params)
}

// List devolve os assets de uma pasta (todas se folder for vazio), ordenados por caminho.
func (s *Store) List(folder string) ([]Asset, error) {
	if s.DB == nil {
		return nil, ErrClosed
	}
	var out []Asset
	q := s.DB.Order("path")
	if folder != "" {
		q = q.Where("folder = ?", CleanFolder(folder))
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Delete remove um asset.
func (s *Store) Delete(assetPath string) error {
	if s.DB == nil {
		return ErrClosed
	}
	res := s.DB.Delete(&Asset{}, "path = ?", assetPath)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", assetPath, ErrNotFound)
	}
	return nil
}
