package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const statusDuration = 4.0

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(30, 30, 40, 255))

	a.drawScene()
	a.drawHUD()

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)

	rl.DrawGrid(20, 0.5)
	a.preview.Draw(a.session.Current(), a.Config.WireframeMode, a.Config.ShowBounds, a.Config.ShowNormals)

	rl.EndMode3D()
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	width := int32(360)
	height := int32(250)
	x, y := int32(10), int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	mode := "Local"
	if a.Remote {
		mode = "Remoto"
		if !a.netClient.IsConnected() {
			mode = "Remoto (desconectado)"
		}
	}
	rl.DrawText(mode, x+200, y+14, 14, rl.LightGray)

	p := a.session.Params()
	lines := []string{
		fmt.Sprintf("Altura: %.2f  [W/S]", p.Height),
		fmt.Sprintf("Raio:   %.2f  [A/D]", p.Radius),
		fmt.Sprintf("Lados:  %d  [Q/E]", p.Sides),
		fmt.Sprintf("Rotação: %.0f, %.0f, %.0f  [Setas]", p.Rotation[0], p.Rotation[1], p.Rotation[2]),
		fmt.Sprintf("Ordem: %s  [C]", p.Winding),
	}
	if mesh := a.session.Current(); mesh != nil {
		geo := mesh.Geometry()
		lines = append(lines, fmt.Sprintf("Vértices: %d  Triângulos: %d", geo.VertexCount(), geo.TriangleCount()))
	} else {
		lines = append(lines, "Nenhuma malha")
	}
	lines = append(lines,
		fmt.Sprintf("Nome: %s", a.session.MeshName()),
		fmt.Sprintf("Pasta: %s", a.session.SavePath()),
		"Ctrl+S salvar  Ctrl+R pasta padrão  Tab/L assets",
	)

	for i, line := range lines {
		rl.DrawText(line, x+10, y+40+int32(i)*22, 16, rl.RayWhite)
	}

	if a.status != "" && rl.GetTime()-a.statusTime < statusDuration {
		sy := int32(rl.GetScreenHeight()) - 34
		rl.DrawRectangle(0, sy, int32(rl.GetScreenWidth()), 34, rl.NewColor(0, 0, 0, 200))
		rl.DrawText(a.status, 10, sy+8, 18, rl.Gold)
	}
}
