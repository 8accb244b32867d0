package assets

import (
	"errors"
	"path/filepath"
	"testing"

	"CylinderForge/shared/meshing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "assets.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	p := meshing.Params{Height: 3, Radius: 0.4, Sides: 12}
	geo := meshing.BuildCylinder(p)

	asset, err := s.Save("", "", p, geo)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if want := "Assets/SavedCustomColliders/CylinderCollider.asset"; asset.Path != want {
		t.Errorf("Save() path = %q, want %q", asset.Path, want)
	}
	if asset.Name != DefaultMeshName || asset.Vertices != 26 || asset.Triangles != 48 {
		t.Errorf("Save() = %+v", asset)
	}

	loaded, got, err := s.Load(asset.Path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(geo) {
		t.Error("Load() geometry differs from saved geometry")
	}
	gotParams, err := loaded.LoadParams()
	if err != nil {
		t.Fatalf("LoadParams() error = %v", err)
	}
	if gotParams != p {
		t.Errorf("LoadParams() = %+v, want %+v", gotParams, p)
	}
}

func TestStoreSaveUniqueNames(t *testing.T) {
	s := openTestStore(t)
	p := meshing.DefaultParams()
	geo := meshing.BuildCylinder(p)

	want := []string{
		"Assets/Props/Barrel.asset",
		"Assets/Props/Barrel 1.asset",
		"Assets/Props/Barrel 2.asset",
	}
	for i, w := range want {
		asset, err := s.Save("Barrel", "Assets/Props/", p, geo)
		if err != nil {
			t.Fatalf("Save(%d) error = %v", i, err)
		}
		if asset.Path != w {
			t.Errorf("Save(%d) path = %q, want %q", i, asset.Path, w)
		}
	}

	list, err := s.List("Assets/Props")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Errorf("List() returned %d assets, want 3", len(list))
	}
	if !s.IsFolder("Assets/Props") || !s.IsFolder("Assets") {
		t.Error("Save() did not create the folder chain")
	}
}

func TestStoreNotFound(t *testing.T) {
	s := openTestStore(t)

	if _, _, err := s.Load("Assets/Nope.asset"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
	if err := s.Delete("Assets/Nope.asset"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t)
	p := meshing.DefaultParams()
	asset, err := s.Save("Temp", "", p, meshing.BuildCylinder(p))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(asset.Path); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if s.Exists(asset.Path) {
		t.Error("asset still exists after Delete()")
	}
}

func TestStoreDefaultFolderExists(t *testing.T) {
	s := openTestStore(t)
	if !s.IsFolder(DefaultFolder) {
		t.Errorf("IsFolder(%q) = false after Open()", DefaultFolder)
	}
	if got := ResolveFolder("Assets/Unknown/x.asset", s.IsFolder); got != DefaultFolder+"/" {
		t.Errorf("ResolveFolder() = %q, want %q", got, DefaultFolder+"/")
	}
}

func TestStoreClosed(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "assets.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	p := meshing.DefaultParams()
	if _, err := s.Save("", "", p, meshing.BuildCylinder(p)); !errors.Is(err, ErrClosed) {
		t.Errorf("Save() error = %v, want ErrClosed", err)
	}
	if _, _, err := s.Load(DefaultFolder + "/x.asset"); !errors.Is(err, ErrClosed) {
		t.Errorf("Load() error = %v, want ErrClosed", err)
	}
	if _, err := s.List(""); !errors.Is(err, ErrClosed) {
		t.Errorf("List() error = %v, want ErrClosed", err)
	}
	if err := s.Delete(DefaultFolder + "/x.asset"); !errors.Is(err, ErrClosed) {
		t.Errorf("Delete() error = %v, want ErrClosed", err)
	}
	if err := s.EnsureFolder("Assets/Novo"); !errors.Is(err, ErrClosed) {
		t.Errorf("EnsureFolder() error = %v, want ErrClosed", err)
	}
	if s.IsFolder(DefaultFolder) || s.Exists(DefaultFolder+"/x.asset") {
		t.Error("IsFolder()/Exists() on closed store returned true")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
