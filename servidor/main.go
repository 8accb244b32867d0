package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"CylinderForge/servidor/internal/remote"
	"CylinderForge/shared/assets"
	"CylinderForge/shared/config"
)

func main() {
	// Garante que o working directory é o mesmo diretório do executável,
	// para que caminhos relativos (saves/, tmp/) funcionem corretamente.
	if exePath, err := os.Executable(); err == nil {
		os.Chdir(filepath.Dir(exePath))
	}

	cfg := config.Load()
	addr := flag.String("addr", cfg.ListenAddr, "endereço de escuta do WebSocket")
	dbPath := flag.String("db", cfg.AssetDB, "banco SQLite de assets")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)
	if err := os.MkdirAll("tmp", 0755); err == nil {
		logFile, err := os.OpenFile("tmp/server.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			defer logFile.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, logFile))
		}
	}
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║    CylinderForge SERVER v0.1.0       ║")
	log.Println("╚══════════════════════════════════════╝")

	store, err := assets.Open(*dbPath)
	if err != nil {
		log.Fatalf("Erro fatal: não foi possível abrir o banco de assets: %v", err)
	}
	defer store.Close()

	if list, err := store.List(""); err == nil {
		log.Printf("[Startup] %d malhas salvas no banco.", len(list))
	}

	handler := remote.NewHandler(store)
	mux := http.NewServeMux()
	mux.Handle("/ws", handler)

	// Verifica a porta antes de subir o servidor
	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Printf("╔══════════════════════════════════════════════════════════════╗")
		log.Printf("║ ERRO CRÍTICO: Não foi possível abrir %-24s║", *addr)
		log.Printf("║ Provavelmente há outra instância do servidor rodando.        ║")
		log.Printf("╚══════════════════════════════════════════════════════════════╝")
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}

	srv := &http.Server{Handler: mux}
	go func() {
		log.Printf("Servidor CylinderForge iniciado em %s", *addr)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erro fatal no servidor HTTP: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Encerrando servidor...")
	handler.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Erro ao encerrar servidor: %v", err)
	}
}
