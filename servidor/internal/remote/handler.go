// Package remote expõe o editor de cilindros por WebSocket. Cada conexão tem
// sua própria sessão de edição e seu próprio host de colisão.
package remote

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"CylinderForge/shared/assets"
	"CylinderForge/shared/collider"
	"CylinderForge/shared/editor"
	"CylinderForge/shared/proto/meshwire"

	"github.com/gorilla/websocket"
)

// MaxMessageSize limita o tamanho dos frames recebidos.
const MaxMessageSize = 1 << 20

// Handler atende o endpoint /ws.
type Handler struct {
	store    *assets.Store
	hub      *Hub
	upgrader websocket.Upgrader

	// SQLite gera o caminho único e insere em passos separados; salvamentos são serializados.
	saveMu sync.Mutex
}

// NewHandler cria um handler. store pode ser nil; pedidos de salvamento recebem erro.
func NewHandler(store *assets.Store) *Handler {
	return &Handler{
		store: store,
		hub:   newHub(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Clients retorna o número de conexões ativas.
func (h *Handler) Clients() int {
	return h.hub.Count()
}

// Close derruba todas as conexões; as sessões liberam suas malhas ao sair.
func (h *Handler) Close() {
	h.hub.closeAll()
}

// ServeHTTP faz o upgrade e atende a conexão até ela cair.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Erro no upgrade do WebSocket: %v", err)
		return
	}
	conn.SetReadLimit(MaxMessageSize)
	h.hub.register(conn)

	host := collider.NewGameObject(fmt.Sprintf("Cylinder@%s", conn.RemoteAddr()))
	sess := editor.New(host, h.store)
	defer func() {
		sess.Close()
		host.Destroyed = true
		h.hub.unregister(conn)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[WS] Erro ao ler mensagem: %v", err)
			}
			return
		}

		env, err := meshwire.UnmarshalEnvelope(message)
		if err != nil {
			h.sendError(conn, err)
			continue
		}
		h.handle(conn, sess, env)
	}
}

func (h *Handler) handle(conn *websocket.Conn, sess *editor.Session, env meshwire.Envelope) {
	switch env.Type {
	case meshwire.TypeBuild:
		p, err := meshwire.UnmarshalParams(env.Payload)
		if err != nil {
			h.sendError(conn, err)
			return
		}
		if _, err := sess.SetParams(p); err != nil {
			h.sendError(conn, err)
			return
		}
		h.sendMesh(conn, sess, "")

	case meshwire.TypeSave:
		req, err := meshwire.UnmarshalSaveRequest(env.Payload)
		if err != nil {
			h.sendError(conn, err)
			return
		}
		asset, err := h.save(sess, req)
		if err != nil {
			h.sendError(conn, err)
			return
		}
		h.sendMesh(conn, sess, asset.Path)

	default:
		h.sendError(conn, fmt.Errorf("tipo de mensagem não suportado: %s", env.Type))
	}
}

func (h *Handler) save(sess *editor.Session, req meshwire.SaveRequest) (assets.Asset, error) {
	if _, err := sess.SetParams(req.Params); err != nil {
		return assets.Asset{}, err
	}
	sess.SetMeshName(req.Name)
	if req.Folder != "" {
		if err := sess.SetSavePath(req.Folder); err != nil {
			return assets.Asset{}, err
		}
	} else {
		sess.ResetSavePath()
	}

	h.saveMu.Lock()
	defer h.saveMu.Unlock()
	return sess.Save()
}

func (h *Handler) sendMesh(conn *websocket.Conn, sess *editor.Session, assetPath string) {
	mesh := sess.Current()
	if mesh == nil {
		h.sendError(conn, errors.New("nenhuma malha instalada"))
		return
	}
	reply := meshwire.MeshReply{
		Params:    sess.Params(),
		Geometry:  mesh.Geometry(),
		AssetPath: assetPath,
	}
	h.hub.Send(conn, meshwire.TypeMesh, reply.Marshal())
}

func (h *Handler) sendError(conn *websocket.Conn, err error) {
	log.Printf("[WS] %s: %v", conn.RemoteAddr(), err)
	h.hub.Send(conn, meshwire.TypeError, []byte(err.Error()))
}
