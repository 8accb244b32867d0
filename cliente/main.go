package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"CylinderForge/cliente/internal/app"
	"CylinderForge/shared/config"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Flags de linha de comando
	serverURL := flag.String("server", "", "URL do Servidor CylinderForge; ativa o modo remoto (ex.: ws://localhost:8080/ws)")
	dbPath := flag.String("db", "", "Banco SQLite de assets (modo local)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	// Configurar Log em Arquivo
	f, err := os.OpenFile("debug_cf.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		defer f.Close()
		log.SetOutput(f)
		log.Println("--- INICIANDO CYLINDERFORGE ---")
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║        CylinderForge v0.1.0          ║")
	log.Println("║  Editor de colisores cilíndricos     ║")
	log.Println("╚══════════════════════════════════════╝")

	cfg := config.Load()

	// Flags sobrescrevem o config salvo
	remote := *serverURL != ""
	if remote {
		cfg.ServerURL = *serverURL
	}
	if *dbPath != "" {
		cfg.AssetDB = *dbPath
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}

	application := app.New(cfg, remote)
	application.Run()
}
