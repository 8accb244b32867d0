package remote

import (
	"fmt"
	"log"
	"sync"

	"CylinderForge/shared/proto/meshwire"

	"github.com/gorilla/websocket"
)

// Hub gerencia as conexões WebSocket ativas
type Hub struct {
	clients map[*websocket.Conn]*sync.Mutex
	mu      sync.Mutex
}

func newHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()
	log.Printf("[Hub] Cliente registrado: %s", conn.RemoteAddr())
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	lock, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	lock.Lock()
	conn.Close()
	lock.Unlock()
	log.Printf("[Hub] Cliente desregistrado: %s", conn.RemoteAddr())
}

// Count retorna o número de clientes conectados.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// WriteSafe garante que apenas uma goroutine escreva no WebSocket por vez
func (h *Hub) WriteSafe(conn *websocket.Conn, messageType int, data []byte) error {
	h.mu.Lock()
	lock, ok := h.clients[conn]
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("cliente não encontrado no hub")
	}

	lock.Lock()
	defer lock.Unlock()
	return conn.WriteMessage(messageType, data)
}

// Send empacota payload num envelope e envia para conn.
func (h *Hub) Send(conn *websocket.Conn, t meshwire.Type, payload []byte) {
	env := meshwire.Envelope{Type: t, Payload: payload}
	if err := h.WriteSafe(conn, websocket.BinaryMessage, env.Marshal()); err != nil {
		log.Printf("[Hub] Erro ao enviar %s: %v", t, err)
	}
}

// closeAll derruba todas as conexões (desligamento do servidor).
func (h *Hub) closeAll() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		h.unregister(c)
	}
}
