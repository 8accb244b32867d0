package app

import (
	"log"

	"CylinderForge/cliente/internal/camera"
	"CylinderForge/cliente/internal/client"
	"CylinderForge/cliente/internal/render"
	"CylinderForge/shared/assets"
	"CylinderForge/shared/collider"
	"CylinderForge/shared/config"
	"CylinderForge/shared/editor"
	"CylinderForge/shared/proto/meshwire"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// App é a janela do editor de colisores cilíndricos.
type App struct {
	Config *config.Config
	Remote bool // Malhas geradas pelo servidor em vez de localmente

	Cam *camera.OrbitController

	host    *collider.GameObject
	session *editor.Session
	store   *assets.Store
	preview *render.Preview

	netClient *client.NetworkClient
	incoming  chan meshwire.MeshReply
	messages  chan string

	// Seleção no navegador de assets
	assetList []assets.Asset
	selected  int

	frameCount  int
	lastKeyTime float64 // Repetição de teclas seguradas
	status      string
	statusTime  float64
}

// New cria uma nova instância da aplicação.
func New(cfg *config.Config, remote bool) *App {
	return &App{
		Config:   cfg,
		Remote:   remote,
		host:     collider.NewGameObject("Cylinder"),
		incoming: make(chan meshwire.MeshReply, 16),
		messages: make(chan string, 16),
		selected: -1,
	}
}

// Run inicia o loop principal da aplicação.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	// Inicializar janela raylib
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning)

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0)

	a.Cam = camera.New(a.Config.CameraDistance, a.Config.CameraSensitivity, a.Config.ZoomSpeed)
	a.preview = render.NewPreview()

	log.Println("[CylinderForge] Janela inicializada com sucesso")
	log.Printf("[CylinderForge] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	if !a.Remote {
		store, err := assets.Open(a.Config.AssetDB)
		if err != nil {
			log.Printf("[App] Banco de assets indisponível, salvamento desativado: %v", err)
		} else {
			a.store = store
		}
	}

	a.session = editor.New(a.host, a.store)
	a.session.Wrap = a.preview.Wrap
	a.session.SetMeshName(a.Config.DefaultMeshName)
	if a.Config.DefaultFolder != "" && a.Config.DefaultFolder != assets.DefaultFolder {
		if err := a.session.SetSavePath(a.Config.DefaultFolder); err != nil {
			log.Printf("[App] Pasta padrão ignorada: %v", err)
		}
	}

	if a.Remote {
		a.netClient = client.NewNetworkClient(a.Config.ServerURL)
		go a.connectServer()
	} else {
		a.applyParams(a.Config.Cylinder)
		a.refreshAssetList()
	}
	a.frameMesh()

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++
	a.processIncoming()
	a.updateCamera()
	a.updateInput()
}

// setStatus mostra uma mensagem temporária no HUD.
func (a *App) setStatus(msg string) {
	log.Printf("[App] %s", msg)
	a.status = msg
	a.statusTime = rl.GetTime()
}

// frameMesh centraliza a câmera na malha viva.
func (a *App) frameMesh() {
	if mesh := a.session.Current(); mesh != nil {
		b := mesh.Geometry().Bounds
		a.Cam.Frame(b.Min, b.Max)
	}
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando aplicação...")

	if a.netClient != nil {
		a.netClient.Close()
	}

	a.Config.Cylinder = a.session.Params()
	a.session.Close()
	a.preview.Unload()

	if a.store != nil {
		a.store.Close()
	}

	if err := a.Config.Save(); err != nil {
		log.Printf("[CylinderForge] Erro ao salvar configurações: %v", err)
	}
}
