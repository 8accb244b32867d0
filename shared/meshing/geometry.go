package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds é uma caixa alinhada aos eixos (AABB).
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center retorna o centro da caixa.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size retorna as dimensões da caixa em cada eixo.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains verifica se o ponto está dentro da caixa (com tolerância).
func (b Bounds) Contains(p mgl32.Vec3) bool {
	const eps = 1e-5
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i]-eps || p[i] > b.Max[i]+eps {
			return false
		}
	}
	return true
}

// GeometryData contém os buffers de uma malha indexada.
// Vertices e Normals são xyz intercalados; Indices são triplas de triângulos.
type GeometryData struct {
	Vertices []float32
	Normals  []float32
	Indices  []uint16
	Bounds   Bounds
}

// Clone cria uma cópia profunda dos dados para evitar corrupção de memória.
func (g GeometryData) Clone() GeometryData {
	clone := GeometryData{Bounds: g.Bounds}
	if len(g.Vertices) > 0 {
		clone.Vertices = make([]float32, len(g.Vertices))
		copy(clone.Vertices, g.Vertices)
	}
	if len(g.Normals) > 0 {
		clone.Normals = make([]float32, len(g.Normals))
		copy(clone.Normals, g.Normals)
	}
	if len(g.Indices) > 0 {
		clone.Indices = make([]uint16, len(g.Indices))
		copy(clone.Indices, g.Indices)
	}
	return clone
}

// VertexCount retorna o número de vértices.
func (g GeometryData) VertexCount() int {
	return len(g.Vertices) / 3
}

// TriangleCount retorna o número de triângulos.
func (g GeometryData) TriangleCount() int {
	return len(g.Indices) / 3
}

// Vertex retorna a posição do vértice i.
func (g GeometryData) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{g.Vertices[3*i], g.Vertices[3*i+1], g.Vertices[3*i+2]}
}

// Normal retorna a normal do vértice i.
func (g GeometryData) Normal(i int) mgl32.Vec3 {
	return mgl32.Vec3{g.Normals[3*i], g.Normals[3*i+1], g.Normals[3*i+2]}
}

// Triangle retorna os três índices do triângulo t.
func (g GeometryData) Triangle(t int) (a, b, c int) {
	return int(g.Indices[3*t]), int(g.Indices[3*t+1]), int(g.Indices[3*t+2])
}

// FaceNormal retorna a normal (não normalizada) do triângulo t para a convenção de winding dada.
// O comprimento é o dobro da área do triângulo.
func (g GeometryData) FaceNormal(t int, w Winding) mgl32.Vec3 {
	a, b, c := g.Triangle(t)
	return faceNormal(g.Vertex(a), g.Vertex(b), g.Vertex(c), w)
}

// Centroid retorna o baricentro do triângulo t.
func (g GeometryData) Centroid(t int) mgl32.Vec3 {
	a, b, c := g.Triangle(t)
	return g.Vertex(a).Add(g.Vertex(b)).Add(g.Vertex(c)).Mul(1.0 / 3.0)
}

// Equal compara duas malhas vértice a vértice e índice a índice.
func (g GeometryData) Equal(other GeometryData) bool {
	if len(g.Vertices) != len(other.Vertices) || len(g.Normals) != len(other.Normals) || len(g.Indices) != len(other.Indices) {
		return false
	}
	for i := range g.Vertices {
		if g.Vertices[i] != other.Vertices[i] {
			return false
		}
	}
	for i := range g.Normals {
		if g.Normals[i] != other.Normals[i] {
			return false
		}
	}
	for i := range g.Indices {
		if g.Indices[i] != other.Indices[i] {
			return false
		}
	}
	return g.Bounds == other.Bounds
}

// faceNormal calcula o produto vetorial respeitando a convenção de face frontal.
func faceNormal(a, b, c mgl32.Vec3, w Winding) mgl32.Vec3 {
	if w == WindingCW {
		return c.Sub(a).Cross(b.Sub(a))
	}
	return b.Sub(a).Cross(c.Sub(a))
}

// RecalculateNormals gera normais suaves por vértice somando as normais das faces
// (ponderadas pela área) que compartilham o vértice.
func (g *GeometryData) RecalculateNormals(w Winding) {
	n := g.VertexCount()
	acc := make([]mgl32.Vec3, n)
	for t := 0; t < g.TriangleCount(); t++ {
		a, b, c := g.Triangle(t)
		fn := faceNormal(g.Vertex(a), g.Vertex(b), g.Vertex(c), w)
		acc[a] = acc[a].Add(fn)
		acc[b] = acc[b].Add(fn)
		acc[c] = acc[c].Add(fn)
	}

	g.Normals = g.Normals[:0]
	for _, v := range acc {
		if v.LenSqr() > 0 {
			v = v.Normalize()
		}
		g.Normals = append(g.Normals, v[0], v[1], v[2])
	}
}

// RecalculateBounds recalcula a AABB a partir dos vértices.
func (g *GeometryData) RecalculateBounds() {
	if g.VertexCount() == 0 {
		g.Bounds = Bounds{}
		return
	}
	minV := g.Vertex(0)
	maxV := minV
	for i := 1; i < g.VertexCount(); i++ {
		v := g.Vertex(i)
		for k := 0; k < 3; k++ {
			if v[k] < minV[k] {
				minV[k] = v[k]
			}
			if v[k] > maxV[k] {
				maxV[k] = v[k]
			}
		}
	}
	g.Bounds = Bounds{Min: minV, Max: maxV}
}

// Optimize remove triângulos degenerados (índices repetidos ou área nula).
// É um passo opcional; uma malha de cilindro válida sai inalterada.
// Retorna quantos triângulos foram descartados.
func (g *GeometryData) Optimize() int {
	const minArea2 = 1e-12
	kept := g.Indices[:0]
	dropped := 0
	for t := 0; t < g.TriangleCount(); t++ {
		a, b, c := g.Triangle(t)
		if a == b || b == c || a == c {
			dropped++
			continue
		}
		if faceNormal(g.Vertex(a), g.Vertex(b), g.Vertex(c), WindingCCW).LenSqr() < minArea2 {
			dropped++
			continue
		}
		kept = append(kept, uint16(a), uint16(b), uint16(c))
	}
	g.Indices = kept
	return dropped
}
