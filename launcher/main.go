package main

import (
	"flag"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

func main() {
	remote := flag.Bool("remote", false, "Inicia o servidor e abre o cliente em modo remoto")
	flag.Parse()

	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║       CylinderForge Launcher         ║")
	fmt.Println("╚══════════════════════════════════════╝")

	clientArgs := []string{}
	if *remote {
		// 1. Iniciar o Servidor em uma nova janela (necessário para ver os logs)
		fmt.Println("[1/2] Iniciando Servidor...")
		serverCmd := serverCommand()
		serverCmd.Dir = "servidor"
		if err := serverCmd.Start(); err != nil {
			log.Fatalf("Erro ao iniciar servidor: %v", err)
		}

		fmt.Println("Aguardando inicialização do servidor...")
		time.Sleep(2 * time.Second)
		clientArgs = append(clientArgs, "-server", "ws://127.0.0.1:8080/ws")
	}

	fmt.Println("[2/2] Abrindo Cliente...")

	absClientPath, err := filepath.Abs(filepath.Join("cliente", binName("client")))
	if err != nil {
		log.Fatalf("Erro ao resolver caminho do cliente: %v", err)
	}

	clientCmd := exec.Command(absClientPath, clientArgs...)
	clientCmd.Dir = "cliente" // Diretório de trabalho para config.json e saves/

	if err := clientCmd.Start(); err != nil {
		fmt.Printf("ERRO CRÍTICO: Não foi possível executar o cliente em %s\n", absClientPath)
		fmt.Printf("Detalhes: %v\n", err)
		fmt.Println("Pressione Enter para sair...")
		fmt.Scanln()
		return
	}

	fmt.Println("\nSucesso! CylinderForge foi iniciado.")
	fmt.Println("O Launcher fechará automaticamente em 2 segundos...")
	time.Sleep(2 * time.Second)
}

func serverCommand() *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.Command("cmd", "/c", "start", "CylinderForge SERVER", binName("server"))
	}
	abs, _ := filepath.Abs(filepath.Join("servidor", binName("server")))
	return exec.Command(abs)
}

func binName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
