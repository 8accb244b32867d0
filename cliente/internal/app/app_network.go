package app

import (
	"errors"
	"fmt"
	"log"

	"CylinderForge/shared/assets"
	"CylinderForge/shared/meshing"
	"CylinderForge/shared/proto/meshwire"
)

// connectServer tenta conectar ao Servidor CylinderForge e pede a primeira malha.
func (a *App) connectServer() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro em connectServer: %v", r)
		}
	}()

	nc := a.netClient
	nc.OnMesh = func(reply meshwire.MeshReply) {
		a.incoming <- reply
	}
	nc.OnError = func(msg string) {
		a.messages <- "Servidor: " + msg
	}

	if err := nc.Connect(); err != nil {
		a.messages <- fmt.Sprintf("Sem conexão com %s", a.Config.ServerURL)
		return
	}
	a.messages <- fmt.Sprintf("Conectado a %s", a.Config.ServerURL)

	if err := nc.RequestBuild(a.Config.Cylinder); err != nil {
		log.Printf("[App] Erro ao pedir malha: %v", err)
	}
}

// processIncoming instala na thread principal as malhas recebidas do servidor.
func (a *App) processIncoming() {
	for {
		select {
		case reply := <-a.incoming:
			first := a.session.Current() == nil
			if err := a.session.Apply(reply.Params, reply.Geometry); err != nil {
				a.setStatus(fmt.Sprintf("Erro ao instalar malha: %v", err))
				continue
			}
			if reply.AssetPath != "" {
				a.setStatus(fmt.Sprintf("Malha salva em %s", reply.AssetPath))
			}
			if first {
				a.frameMesh()
			}
		case msg := <-a.messages:
			a.setStatus(msg)
		default:
			return
		}
	}
}

// applyParams aplica os parâmetros editados. Localmente a sessão regenera a malha;
// no modo remoto o pedido vai para o servidor.
func (a *App) applyParams(p meshing.Params) {
	if a.Remote {
		if p.Sanitize() == a.session.Params() || !a.netClient.IsConnected() {
			return
		}
		if err := a.netClient.RequestBuild(p); err != nil {
			a.setStatus(fmt.Sprintf("Erro de rede: %v", err))
		}
		return
	}

	if _, err := a.session.SetParams(p); err != nil {
		a.setStatus(fmt.Sprintf("Erro ao gerar malha: %v", err))
	}
}

// refresh regenera a malha mesmo sem mudança de parâmetros.
func (a *App) refresh() {
	if a.Remote {
		if err := a.netClient.RequestBuild(a.session.Params()); err != nil {
			a.setStatus(fmt.Sprintf("Erro de rede: %v", err))
		}
		return
	}
	if err := a.session.Refresh(); err != nil {
		a.setStatus(fmt.Sprintf("Erro ao gerar malha: %v", err))
	}
}

// save salva a malha atual como asset.
func (a *App) save() {
	if a.Remote {
		if !a.netClient.IsConnected() {
			a.setStatus("Sem conexão com o servidor")
			return
		}
		folder := ""
		if a.session.SavePathModified() {
			folder = a.session.SavePath()
		}
		if err := a.netClient.RequestSave(a.session.Params(), a.session.MeshName(), folder); err != nil {
			a.setStatus(fmt.Sprintf("Erro de rede: %v", err))
		}
		return
	}

	asset, err := a.session.Save()
	if err != nil {
		a.setStatus(fmt.Sprintf("Erro ao salvar: %v", err))
		return
	}
	a.setStatus(fmt.Sprintf("Malha salva em %s", asset.Path))
	a.refreshAssetList()
}

// refreshAssetList recarrega a lista de assets do banco local.
func (a *App) refreshAssetList() {
	if a.store == nil {
		return
	}
	list, err := a.store.List("")
	if err != nil {
		log.Printf("[App] Erro ao listar assets: %v", err)
		return
	}
	a.assetList = list
	if a.selected >= len(list) {
		a.selected = -1
	}
}

// selectNextAsset percorre os assets salvos; a pasta de destino acompanha a seleção.
func (a *App) selectNextAsset() {
	if len(a.assetList) == 0 {
		a.setStatus("Nenhum asset salvo")
		return
	}
	a.selected = (a.selected + 1) % len(a.assetList)
	sel := a.assetList[a.selected]
	a.session.Select(sel.Path)
	a.setStatus(fmt.Sprintf("Selecionado: %s", sel.Path))
}

// loadSelectedAsset carrega os parâmetros do asset selecionado.
func (a *App) loadSelectedAsset() {
	if a.store == nil || a.selected < 0 || a.selected >= len(a.assetList) {
		return
	}
	asset, _, err := a.store.Load(a.assetList[a.selected].Path)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			a.refreshAssetList()
		}
		a.setStatus(fmt.Sprintf("Erro ao carregar: %v", err))
		return
	}
	p, err := asset.LoadParams()
	if err != nil {
		a.setStatus(fmt.Sprintf("Asset %s sem parâmetros: %v", asset.Path, err))
		return
	}
	a.applyParams(p)
	a.setStatus(fmt.Sprintf("Carregado: %s", asset.Path))
}
