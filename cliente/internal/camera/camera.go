package camera

import (
	"math"

	"CylinderForge/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode define o tipo de projeção estritamente.
type Mode int

const (
	ModePerspective Mode = iota
	ModeOrthographic
)

// OrbitController gira a câmera em torno da malha em edição.
type OrbitController struct {
	// Estado interno do Raylib
	RLCamera rl.Camera3D

	// Configurações
	Mode         Mode
	MinZoom      float32
	MaxZoom      float32
	RotateSpeed  float32
	ZoomSpeed    float32
	SmoothFactor float32 // 0.0 a 1.0 (quanto menor, mais suave/lento)

	// Estado Alvo (para interpolação suave)
	TargetLookAt mgl32.Vec3
	TargetZoom   float32
	AngleY       float32 // Azimute (radianos)
	AngleX       float32 // Elevação (radianos)

	// Estado Atual (interpolado)
	CurrentLookAt mgl32.Vec3
	CurrentZoom   float32
}

// New cria um controlador olhando para a origem a dist unidades.
func New(dist, sensitivity, zoomSpeed float32) *OrbitController {
	c := &OrbitController{
		Mode:         ModePerspective,
		MinZoom:      1.0,
		MaxZoom:      100.0,
		RotateSpeed:  sensitivity,
		ZoomSpeed:    zoomSpeed,
		SmoothFactor: 0.2,

		TargetZoom: dist,
		AngleY:     45.0 * rl.Deg2rad,
		AngleX:     -25.0 * rl.Deg2rad,
	}
	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	c.apply()
	return c
}

// Frame centraliza a câmera numa caixa, ajustando o zoom para que ela caiba na tela.
func (c *OrbitController) Frame(min, max mgl32.Vec3) {
	c.TargetLookAt = min.Add(max).Mul(0.5)
	c.TargetZoom = util.ClampF(max.Sub(min).Len()*1.5, c.MinZoom, c.MaxZoom)
}

// Update interpola o estado atual em direção ao alvo. Deve ser chamado a cada frame.
func (c *OrbitController) Update(dt float32) {
	factor := util.ClampF(c.SmoothFactor*60.0*dt, 0, 1) // Normaliza para 60 FPS

	c.CurrentLookAt = c.CurrentLookAt.Add(c.TargetLookAt.Sub(c.CurrentLookAt).Mul(factor))
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)
	c.apply()
}

// Offset converte ângulos e distância em deslocamento cartesiano a partir do alvo.
func Offset(angleX, angleY, dist float32) mgl32.Vec3 {
	cosX := float32(math.Cos(float64(angleX)))
	sinX := float32(math.Sin(float64(angleX)))
	cosY := float32(math.Cos(float64(angleY)))
	sinY := float32(math.Sin(float64(angleY)))

	// Y é UP no Raylib; elevação negativa olha de cima para baixo
	return mgl32.Vec3{dist * cosX * sinY, dist * -sinX, dist * cosX * cosY}
}

func (c *OrbitController) apply() {
	dist := c.CurrentZoom
	if c.Mode == ModeOrthographic {
		c.RLCamera.Fovy = c.CurrentZoom
		c.RLCamera.Projection = rl.CameraOrthographic
		dist = c.MaxZoom // Mantém a câmera longe para evitar clipping
	} else {
		c.RLCamera.Fovy = 45.0
		c.RLCamera.Projection = rl.CameraPerspective
	}

	pos := c.CurrentLookAt.Add(Offset(c.AngleX, c.AngleY, dist))
	c.RLCamera.Position = toRL(pos)
	c.RLCamera.Target = toRL(c.CurrentLookAt)
}

// SetMode alterna entre Perspectiva e Ortográfica.
func (c *OrbitController) SetMode(mode Mode) {
	c.Mode = mode
	c.apply()
}

// HandleInput processa mouse: botão direito orbita, scroll aproxima.
// Retorna true se houve input.
func (c *OrbitController) HandleInput() bool {
	moved := false

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		moved = true
		c.TargetZoom = util.ClampF(c.TargetZoom-wheel*c.ZoomSpeed, c.MinZoom, c.MaxZoom)
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			moved = true
		}
		c.AngleY -= delta.X * c.RotateSpeed * 0.01
		c.AngleX -= delta.Y * c.RotateSpeed * 0.01

		// Não deixa a câmera virar de ponta cabeça
		c.AngleX = util.ClampF(c.AngleX, -89.0*rl.Deg2rad, 89.0*rl.Deg2rad)
	}

	return moved
}

func toRL(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}
