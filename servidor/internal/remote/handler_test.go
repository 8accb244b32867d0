package remote

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"CylinderForge/shared/assets"
	"CylinderForge/shared/meshing"
	"CylinderForge/shared/proto/meshwire"

	"github.com/gorilla/websocket"
)

func startServer(t *testing.T, withStore bool) (*Handler, string) {
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

	h := NewHandler(store)
	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		h.Close()
		srv.Close()
	})
	return h, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, env meshwire.Envelope) meshwire.Envelope {
	t.Helper()
	if err := conn.WriteMessage(websocket.BinaryMessage, env.Marshal()); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	reply, err := meshwire.UnmarshalEnvelope(data)
	if err != nil {
		t.Fatalf("UnmarshalEnvelope() error = %v", err)
	}
	return reply
}

func TestBuild(t *testing.T) {
	_, url := startServer(t, false)
	conn := dial(t, url)

	p := meshing.Params{Height: 1.5, Radius: 0.3, Sides: 6}
	reply := roundTrip(t, conn, meshwire.Envelope{Type: meshwire.TypeBuild, Payload: meshwire.MarshalParams(p)})
	if reply.Type != meshwire.TypeMesh {
		t.Fatalf("reply type = %v (%s), want MESH", reply.Type, reply.Payload)
	}

	mesh, err := meshwire.UnmarshalMeshReply(reply.Payload)
	if err != nil {
		t.Fatalf("UnmarshalMeshReply() error = %v", err)
	}
	if mesh.Params != p {
		t.Errorf("Params = %+v, want %+v", mesh.Params, p)
	}
	if !mesh.Geometry.Equal(meshing.BuildCylinder(p)) {
		t.Error("geometry differs from a local build")
	}
	if mesh.AssetPath != "" {
		t.Errorf("AssetPath = %q, want empty", mesh.AssetPath)
	}
}

func TestBuildSanitizes(t *testing.T) {
	_, url := startServer(t, false)
	conn := dial(t, url)

	p := meshing.Params{Height: -1, Radius: 0, Sides: 2}
	reply := roundTrip(t, conn, meshwire.Envelope{Type: meshwire.TypeBuild, Payload: meshwire.MarshalParams(p)})
	mesh, err := meshwire.UnmarshalMeshReply(reply.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if mesh.Params != p.Sanitize() {
		t.Errorf("Params = %+v, want %+v", mesh.Params, p.Sanitize())
	}
	if mesh.Geometry.VertexCount() != 2*meshing.MinSides+2 {
		t.Errorf("VertexCount() = %d", mesh.Geometry.VertexCount())
	}
}

func TestSave(t *testing.T) {
	_, url := startServer(t, true)
	conn := dial(t, url)

	req := meshwire.SaveRequest{Params: meshing.DefaultParams(), Name: "Coluna"}
	for _, want := range []string{
		"Assets/SavedCustomColliders/Coluna.asset",
		"Assets/SavedCustomColliders/Coluna 1.asset",
	} {
		reply := roundTrip(t, conn, meshwire.Envelope{Type: meshwire.TypeSave, Payload: req.Marshal()})
		if reply.Type != meshwire.TypeMesh {
			t.Fatalf("reply type = %v (%s), want MESH", reply.Type, reply.Payload)
		}
		mesh, err := meshwire.UnmarshalMeshReply(reply.Payload)
		if err != nil {
			t.Fatal(err)
		}
		if mesh.AssetPath != want {
			t.Errorf("AssetPath = %q, want %q", mesh.AssetPath, want)
		}
	}

	req.Folder = "Assets/Props"
	reply := roundTrip(t, conn, meshwire.Envelope{Type: meshwire.TypeSave, Payload: req.Marshal()})
	mesh, err := meshwire.UnmarshalMeshReply(reply.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if mesh.AssetPath != "Assets/Props/Coluna.asset" {
		t.Errorf("AssetPath = %q, want %q", mesh.AssetPath, "Assets/Props/Coluna.asset")
	}
}

func TestErrors(t *testing.T) {
	_, url := startServer(t, false)
	conn := dial(t, url)

	save := meshwire.SaveRequest{Params: meshing.DefaultParams()}
	badFolder := meshwire.SaveRequest{Params: meshing.DefaultParams(), Folder: "/etc"}

	tests := []struct {
		name string
		env  meshwire.Envelope
	}{
		{"malformed params", meshwire.Envelope{Type: meshwire.TypeBuild, Payload: []byte{0xff}}},
		{"unknown type", meshwire.Envelope{Type: meshwire.Type(99)}},
		{"save without store", meshwire.Envelope{Type: meshwire.TypeSave, Payload: save.Marshal()}},
		{"folder outside assets", meshwire.Envelope{Type: meshwire.TypeSave, Payload: badFolder.Marshal()}},
	}

	for _, tt := range tests {
		reply := roundTrip(t, conn, tt.env)
		if reply.Type != meshwire.TypeError {
			t.Errorf("%s: reply type = %v, want ERROR", tt.name, reply.Type)
		}
		if len(reply.Payload) == 0 {
			t.Errorf("%s: empty error message", tt.name)
		}
	}
}

func TestGarbageFrame(t *testing.T) {
	_, url := startServer(t, false)
	conn := dial(t, url)

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0xff, 0xff, 0xff}); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	reply, err := meshwire.UnmarshalEnvelope(data)
	if err != nil || reply.Type != meshwire.TypeError {
		t.Errorf("reply = %v, %v; want ERROR frame", reply.Type, err)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	h, url := startServer(t, false)
	conn := dial(t, url)

	p := meshing.DefaultParams()
	roundTrip(t, conn, meshwire.Envelope{Type: meshwire.TypeBuild, Payload: meshwire.MarshalParams(p)})
	if h.Clients() != 1 {
		t.Fatalf("Clients() = %d, want 1", h.Clients())
	}

	conn.Close()
	deadline := time.Now().Add(5 * time.Second)
	for h.Clients() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Clients() = %d after disconnect, want 0", h.Clients())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
