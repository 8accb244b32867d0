package meshing

import (
	"math"

	"CylinderForge/shared/util"

	"github.com/go-gl/mathgl/mgl32"
)

// Limites dos parâmetros do cilindro.
const (
	MinExtent = 0.1
	MinSides  = 3
	MaxSides  = 64

	DefaultHeight = 2.0
	DefaultRadius = 0.5
	DefaultSides  = 16
)

// Winding define qual ordem de vértices é considerada a face frontal.
type Winding int

const (
	// WindingCCW: anti-horário, mão direita (Raylib/OpenGL).
	WindingCCW Winding = iota
	// WindingCW: horário, para hosts de mão esquerda.
	WindingCW
)

// String implementa fmt.Stringer.
func (w Winding) String() string {
	if w == WindingCW {
		return "cw"
	}
	return "ccw"
}

// Params descreve o cilindro a ser gerado.
type Params struct {
	Height   float32    `json:"height"`
	Radius   float32    `json:"radius"`
	Sides    int        `json:"sides"`
	Center   mgl32.Vec3 `json:"center"`
	Rotation mgl32.Vec3 `json:"rotation"` // Euler em graus (aplicado Z, depois X, depois Y)
	Winding  Winding    `json:"winding"`
}

// DefaultParams retorna os parâmetros padrão (altura 2, raio 0.5, 16 lados).
func DefaultParams() Params {
	return Params{
		Height: DefaultHeight,
		Radius: DefaultRadius,
		Sides:  DefaultSides,
	}
}

// Sanitize força os parâmetros para o valor válido mais próximo.
// Entradas inválidas nunca são rejeitadas para não travar a edição interativa.
func (p Params) Sanitize() Params {
	if !isFinite(p.Height) {
		p.Height = DefaultHeight
	}
	if !isFinite(p.Radius) {
		p.Radius = DefaultRadius
	}
	p.Height = util.MaxF(MinExtent, p.Height)
	p.Radius = util.MaxF(MinExtent, p.Radius)
	p.Sides = util.ClampInt(p.Sides, MinSides, MaxSides)

	for i := 0; i < 3; i++ {
		if !isFinite(p.Center[i]) {
			p.Center[i] = 0
		}
		if !isFinite(p.Rotation[i]) {
			p.Rotation[i] = 0
		}
	}
	if p.Winding != WindingCW {
		p.Winding = WindingCCW
	}
	return p
}

// Quat retorna a orientação dos parâmetros como quaternion.
func (p Params) Quat() mgl32.Quat {
	qx := mgl32.QuatRotate(mgl32.DegToRad(p.Rotation[0]), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(mgl32.DegToRad(p.Rotation[1]), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(mgl32.DegToRad(p.Rotation[2]), mgl32.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// Axis retorna a direção do eixo do cilindro (Y local) após a rotação.
func (p Params) Axis() mgl32.Vec3 {
	return p.Quat().Rotate(mgl32.Vec3{0, 1, 0})
}

// TopCenterIndex e BottomCenterIndex retornam os índices dos vértices centrais das tampas.
func TopCenterIndex(sides int) int    { return 2 * sides }
func BottomCenterIndex(sides int) int { return 2*sides + 1 }

// BuildCylinder gera um cilindro fechado com tampas.
// Layout: anel superior em 2i, anel inferior em 2i+1, centro do topo em 2*sides e
// centro da base em 2*sides+1. São 4*sides triângulos com normais apontando para fora.
// Os parâmetros são sanitizados antes da construção.
func BuildCylinder(p Params) GeometryData {
	p = p.Sanitize()
	sides := p.Sides
	half := p.Height / 2

	rot := p.Quat()
	place := func(v mgl32.Vec3) mgl32.Vec3 {
		return rot.Rotate(v).Add(p.Center)
	}

	geo := GeometryData{
		Vertices: make([]float32, 0, 3*(2*sides+2)),
		Normals:  make([]float32, 0, 3*(2*sides+2)),
		Indices:  make([]uint16, 0, 12*sides),
	}
	addVertex := func(v mgl32.Vec3) {
		geo.Vertices = append(geo.Vertices, v[0], v[1], v[2])
	}

	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		angle := float64(i) * step
		x := float32(math.Cos(angle)) * p.Radius
		z := float32(math.Sin(angle)) * p.Radius
		addVertex(place(mgl32.Vec3{x, half, z}))
		addVertex(place(mgl32.Vec3{x, -half, z}))
	}
	addVertex(place(mgl32.Vec3{0, half, 0}))
	addVertex(place(mgl32.Vec3{0, -half, 0}))

	topCenter := TopCenterIndex(sides)
	bottomCenter := BottomCenterIndex(sides)

	// tri emite a tripla na ordem canônica (horária) ou trocando os dois últimos
	// vértices, o que inverte a face frontal para a convenção anti-horária.
	tri := func(a, b, c int) {
		if p.Winding == WindingCCW {
			b, c = c, b
		}
		geo.Indices = append(geo.Indices, uint16(a), uint16(b), uint16(c))
	}

	// Paredes laterais
	for i := 0; i < sides; i++ {
		currentTop := 2 * i
		currentBottom := currentTop + 1
		nextTop := 2 * ((i + 1) % sides)
		nextBottom := nextTop + 1

		tri(currentTop, currentBottom, nextTop)
		tri(nextTop, currentBottom, nextBottom)
	}

	// Tampa superior
	for i := 0; i < sides; i++ {
		tri(topCenter, 2*i, 2*((i+1)%sides))
	}

	// Tampa inferior (ordem invertida em relação ao topo)
	for i := 0; i < sides; i++ {
		tri(bottomCenter, 2*((i+1)%sides)+1, 2*i+1)
	}

	geo.RecalculateNormals(p.Winding)
	geo.RecalculateBounds()
	return geo
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
