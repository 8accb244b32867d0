package editor

import (
	"errors"
	"path/filepath"
	"testing"

	"CylinderForge/shared/assets"
	"CylinderForge/shared/collider"
	"CylinderForge/shared/meshing"
)

func newTestSession(t *testing.T, withStore bool) (*Session, *collider.GameObject) {
	t.Helper()
	var store *assets.Store
	if withStore {
		var err error
		store, err = assets.Open(filepath.Join(t.TempDir(), "assets.db"))
		if err != nil {
			t.Fatalf("assets.Open() error = %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}
	host := collider.NewGameObject("Cylinder")
	s := New(host, store)
	t.Cleanup(s.Close)
	return s, host
}

func TestSetParamsRegeneratesOnChange(t *testing.T) {
	s, host := newTestSession(t, false)

	changed, err := s.SetParams(meshing.DefaultParams())
	if err != nil || !changed {
		t.Fatalf("first SetParams() = %v, %v; want true, nil", changed, err)
	}
	first := s.Current()
	if host.Collider() == nil || host.Collider().SharedMesh != first || !host.Collider().Convex {
		t.Fatal("mesh not installed as convex shape")
	}

	changed, _ = s.SetParams(meshing.DefaultParams())
	if changed || s.Current() != first {
		t.Error("SetParams() with equal params rebuilt the mesh")
	}

	p := meshing.DefaultParams()
	p.Sides = 24
	changed, _ = s.SetParams(p)
	if !changed {
		t.Fatal("SetParams() with new sides did not rebuild")
	}
	if !first.Released() {
		t.Error("previous mesh was not released")
	}
	if got := s.Current().Geometry().VertexCount(); got != 2*24+2 {
		t.Errorf("VertexCount() = %d, want %d", got, 2*24+2)
	}
	if s.Releases() != 1 {
		t.Errorf("Releases() = %d, want 1", s.Releases())
	}
}

func TestSetParamsSanitizes(t *testing.T) {
	s, _ := newTestSession(t, false)
	s.SetParams(meshing.Params{Height: -3, Radius: 0, Sides: 1000})

	got := s.Params()
	if got.Height != meshing.MinExtent || got.Radius != meshing.MinExtent || got.Sides != meshing.MaxSides {
		t.Errorf("Params() = %+v, want clamped", got)
	}
}

func TestRefreshAlwaysRebuilds(t *testing.T) {
	s, _ := newTestSession(t, false)
	if err := s.Refresh(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if err := s.Refresh(); err != nil {
			t.Fatal(err)
		}
	}
	if s.Releases() != 10 {
		t.Errorf("Releases() = %d, want 10", s.Releases())
	}
	if s.Current() == nil || s.Current().Released() {
		t.Error("no live mesh after Refresh()")
	}
}

func TestWrapHook(t *testing.T) {
	s, _ := newTestSession(t, false)
	freed := 0
	s.Wrap = func(geo meshing.GeometryData) *collider.Mesh {
		return collider.NewMesh(geo, func() { freed++ })
	}

	s.Refresh()
	s.Refresh()
	s.Close()
	if freed != 2 {
		t.Errorf("release hook ran %d times, want 2", freed)
	}
}

func TestInstallFailureReleasesMesh(t *testing.T) {
	s, host := newTestSession(t, false)
	host.Destroyed = true

	var made *collider.Mesh
	s.Wrap = func(geo meshing.GeometryData) *collider.Mesh {
		made = collider.NewMesh(geo, nil)
		return made
	}

	p := meshing.DefaultParams()
	p.Height = 5
	if _, err := s.SetParams(p); !errors.Is(err, collider.ErrAttachment) {
		t.Fatalf("SetParams() error = %v, want ErrAttachment", err)
	}
	if !made.Released() {
		t.Error("mesh that failed to install was not released")
	}
	if s.Params().Height == 5 {
		t.Error("params changed despite failed install")
	}
}

func TestSaveWithoutStore(t *testing.T) {
	s, _ := newTestSession(t, false)
	if _, err := s.Save(); !errors.Is(err, ErrNoStore) {
		t.Errorf("Save() error = %v, want ErrNoStore", err)
	}
}

func TestSaveInstallsSavedMesh(t *testing.T) {
	s, _ := newTestSession(t, true)
	s.SetParams(meshing.Params{Height: 1, Radius: 0.25, Sides: 8})
	s.SetMeshName("Pillar")

	a1, err := s.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	a2, err := s.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if a1.Path != "Assets/SavedCustomColliders/Pillar.asset" || a2.Path != "Assets/SavedCustomColliders/Pillar 1.asset" {
		t.Errorf("Save() paths = %q, %q", a1.Path, a2.Path)
	}
	if s.LastSaved() != a2.Path {
		t.Errorf("LastSaved() = %q, want %q", s.LastSaved(), a2.Path)
	}
	if s.Current().Geometry().VertexCount() != a2.Vertices {
		t.Error("installed mesh does not match saved asset")
	}
	if a2.Triangles != 4*8 || s.Current().Geometry().TriangleCount() != 4*8 {
		t.Errorf("saved %d triangles, installed %d; want %d", a2.Triangles, s.Current().Geometry().TriangleCount(), 4*8)
	}
}

func TestSaveSelectsSavedAsset(t *testing.T) {
	s, _ := newTestSession(t, true)
	s.SetParams(meshing.DefaultParams())

	if err := s.SetSavePath("Assets/Props"); err != nil {
		t.Fatal(err)
	}
	asset, err := s.Save()
	if err != nil {
		t.Fatal(err)
	}
	if asset.Path != "Assets/Props/CylinderCollider.asset" {
		t.Fatalf("Save() path = %q", asset.Path)
	}

	// Sem pasta fixada, o destino segue o asset recém-salvo.
	s.ResetSavePath()
	if got := s.SavePath(); got != "Assets/Props/" {
		t.Errorf("SavePath() after save = %q, want %q", got, "Assets/Props/")
	}
}

func TestSaveAfterStoreClosed(t *testing.T) {
	store, err := assets.Open(filepath.Join(t.TempDir(), "assets.db"))
	if err != nil {
		t.Fatal(err)
	}
	s := New(collider.NewGameObject("Cylinder"), store)
	defer s.Close()
	s.SetParams(meshing.DefaultParams())

	store.Close()
	if _, err := s.Save(); !errors.Is(err, assets.ErrClosed) {
		t.Errorf("Save() after store Close() error = %v, want ErrClosed", err)
	}
	if got := s.SavePath(); got != "Assets/SavedCustomColliders/" {
		t.Errorf("SavePath() = %q", got)
	}
}

func TestSavePathFollowsSelection(t *testing.T) {
	s, _ := newTestSession(t, false)

	if got := s.SavePath(); got != "Assets/SavedCustomColliders/" {
		t.Errorf("SavePath() = %q", got)
	}
	s.Select("Assets")
	if got := s.SavePath(); got != "Assets/" {
		t.Errorf("SavePath() after Select = %q, want %q", got, "Assets/")
	}

	if err := s.SetSavePath("Assets/Props"); err != nil {
		t.Fatal(err)
	}
	s.Select("Assets/SavedCustomColliders")
	if got := s.SavePath(); got != "Assets/Props/" {
		t.Errorf("SavePath() after user edit = %q, want %q", got, "Assets/Props/")
	}

	s.ResetSavePath()
	if got := s.SavePath(); got != "Assets/SavedCustomColliders/" {
		t.Errorf("SavePath() after reset = %q", got)
	}

	if err := s.SetSavePath("/tmp/fora"); err == nil {
		t.Error("SetSavePath() outside Assets returned nil error")
	}
}

func TestSetMeshNameDefault(t *testing.T) {
	s, _ := newTestSession(t, false)
	s.SetMeshName("  ")
	if s.MeshName() != assets.DefaultMeshName {
		t.Errorf("MeshName() = %q, want %q", s.MeshName(), assets.DefaultMeshName)
	}
}
