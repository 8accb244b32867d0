package app

import (
	"fmt"
	"log"

	"CylinderForge/cliente/internal/camera"
	"CylinderForge/shared/meshing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	keyRepeatDelay = 0.08
	heightStep     = 0.1
	radiusStep     = 0.05
	rotationStep   = 15.0
)

// updateCamera atualiza a câmera baseado no input.
func (a *App) updateCamera() {
	a.Cam.HandleInput()
	a.Cam.Update(rl.GetFrameTime())

	if rl.IsKeyPressed(rl.KeyF) {
		a.frameMesh()
	}

	// Alternar projeção com P
	if rl.IsKeyPressed(rl.KeyP) {
		if a.Cam.Mode == camera.ModePerspective {
			a.Cam.SetMode(camera.ModeOrthographic)
			log.Println("[Camera] Modo Ortográfico")
		} else {
			a.Cam.SetMode(camera.ModePerspective)
			log.Println("[Camera] Modo Perspectiva")
		}
	}
}

// held retorna true no primeiro frame da tecla e, enquanto segurada, a cada keyRepeatDelay.
func (a *App) held(key int32) bool {
	if rl.IsKeyPressed(key) || (rl.IsKeyDown(key) && rl.GetTime()-a.lastKeyTime > keyRepeatDelay) {
		a.lastKeyTime = rl.GetTime()
		return true
	}
	return false
}

// updateInput processa o teclado: edição de parâmetros, salvamento e toggles de debug.
func (a *App) updateInput() {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)

	if ctrl {
		if rl.IsKeyPressed(rl.KeyS) {
			a.save()
		}
		if rl.IsKeyPressed(rl.KeyR) {
			a.session.ResetSavePath()
			a.setStatus(fmt.Sprintf("Pasta de destino: %s", a.session.SavePath()))
		}
		return
	}

	p := a.session.Params()
	switch {
	case a.held(rl.KeyW):
		p.Height += heightStep
	case a.held(rl.KeyS):
		p.Height -= heightStep
	case a.held(rl.KeyD):
		p.Radius += radiusStep
	case a.held(rl.KeyA):
		p.Radius -= radiusStep
	case a.held(rl.KeyE):
		p.Sides++
	case a.held(rl.KeyQ):
		p.Sides--
	case a.held(rl.KeyRight):
		p.Rotation[1] += rotationStep
	case a.held(rl.KeyLeft):
		p.Rotation[1] -= rotationStep
	case a.held(rl.KeyUp):
		p.Rotation[0] += rotationStep
	case a.held(rl.KeyDown):
		p.Rotation[0] -= rotationStep
	}
	if rl.IsKeyPressed(rl.KeyC) {
		if p.Winding == meshing.WindingCCW {
			p.Winding = meshing.WindingCW
		} else {
			p.Winding = meshing.WindingCCW
		}
		a.setStatus(fmt.Sprintf("Ordem dos vértices: %s", p.Winding))
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		p = meshing.DefaultParams()
	}
	a.applyParams(p)

	if rl.IsKeyPressed(rl.KeyR) {
		a.refresh()
	}

	// Navegador de assets
	if rl.IsKeyPressed(rl.KeyTab) {
		a.selectNextAsset()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		a.loadSelectedAsset()
	}

	// Toggles de debug
	if rl.IsKeyPressed(rl.KeyF4) {
		a.Config.WireframeMode = !a.Config.WireframeMode
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.Config.ShowBounds = !a.Config.ShowBounds
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.Config.ShowNormals = !a.Config.ShowNormals
	}
}
