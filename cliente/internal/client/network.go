package client

import (
	"errors"
	"log"
	"sync"
	"time"

	"CylinderForge/shared/meshing"
	"CylinderForge/shared/proto/meshwire"

	"github.com/gorilla/websocket"
)

// ErrNotConnected indica um envio sem conexão ativa.
var ErrNotConnected = errors.New("client: not connected")

// NetworkClient lida com a comunicação com o Servidor CylinderForge
type NetworkClient struct {
	conn      *websocket.Conn
	url       string
	connected bool
	mu        sync.RWMutex
	writeMu   sync.Mutex

	MaxRetries int
	RetryDelay time.Duration

	// Callbacks para o App (chamados na goroutine de leitura)
	OnMesh  func(reply meshwire.MeshReply)
	OnError func(msg string)
}

func NewNetworkClient(url string) *NetworkClient {
	return &NetworkClient{
		url:        url,
		MaxRetries: 10,
		RetryDelay: 2 * time.Second,
	}
}

func (c *NetworkClient) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	var conn *websocket.Conn
	var err error
	for i := 0; i < c.MaxRetries; i++ {
		log.Printf("[Network] Tentativa de conexão %d/%d em %s...", i+1, c.MaxRetries, c.url)
		conn, _, err = dialer.Dial(c.url, nil)
		if err == nil {
			break
		}
		log.Printf("[Network] Servidor ainda não está pronto: %v. Aguardando...", err)
		time.Sleep(c.RetryDelay)
	}

	if err != nil {
		log.Printf("[Network] ERRO CRÍTICO após %d tentativas: %v", c.MaxRetries, err)
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readLoop(conn)
	return nil
}

func (c *NetworkClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// RequestBuild pede ao servidor a malha para p.
func (c *NetworkClient) RequestBuild(p meshing.Params) error {
	return c.Send(meshwire.TypeBuild, meshwire.MarshalParams(p))
}

// RequestSave pede ao servidor que salve a malha para p como asset.
func (c *NetworkClient) RequestSave(p meshing.Params, name, folder string) error {
	req := meshwire.SaveRequest{Params: p, Name: name, Folder: folder}
	return c.Send(meshwire.TypeSave, req.Marshal())
}

func (c *NetworkClient) Send(t meshwire.Type, payload []byte) error {
	c.mu.RLock()
	conn, ok := c.conn, c.connected
	c.mu.RUnlock()
	if !ok {
		return ErrNotConnected
	}

	env := meshwire.Envelope{Type: t, Payload: payload}

	c.writeMu.Lock()
	err := conn.WriteMessage(websocket.BinaryMessage, env.Marshal())
	c.writeMu.Unlock()

	if err != nil {
		log.Printf("[Network] Erro ao enviar mensagem: %v", err)
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}
	return err
}

// Close encerra a conexão.
func (c *NetworkClient) Close() {
	c.mu.Lock()
	conn := c.conn
	c.connected = false
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func (c *NetworkClient) readLoop(conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[Network] Conexão perdida: %v", err)
			return
		}

		env, err := meshwire.UnmarshalEnvelope(message)
		if err != nil {
			log.Printf("[Network] Erro ao desempacotar envelope: %v", err)
			continue
		}

		c.handleMessage(env)
	}
}

func (c *NetworkClient) handleMessage(env meshwire.Envelope) {
	switch env.Type {
	case meshwire.TypeMesh:
		reply, err := meshwire.UnmarshalMeshReply(env.Payload)
		if err != nil {
			log.Printf("[Network] Malha inválida do servidor: %v", err)
			return
		}
		log.Printf("[Network] Malha recebida: %d vértices, %d triângulos", reply.Geometry.VertexCount(), reply.Geometry.TriangleCount())
		if c.OnMesh != nil {
			c.OnMesh(reply)
		}
	case meshwire.TypeError:
		log.Printf("[Network] Erro do servidor: %s", env.Payload)
		if c.OnError != nil {
			c.OnError(string(env.Payload))
		}
	default:
		log.Printf("[Network] Mensagem ignorada: %s", env.Type)
	}
}
