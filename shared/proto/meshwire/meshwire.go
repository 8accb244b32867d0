// Package meshwire codifica parâmetros e malhas de cilindro no formato wire do
// protobuf. É usado tanto nos blobs do banco de assets quanto nos frames do websocket.
//
// Params:   1=height(fixed32) 2=radius(fixed32) 3=sides(varint) 4=center(packed fixed32)
//
//	5=rotation(packed fixed32) 6=winding(varint)
//
// Geometry: 1=vertices 2=normals (packed fixed32) 3=indices(packed varint)
//
//	4=bounds.min 5=bounds.max (packed fixed32)
//
// Envelope: 1=type(varint) 2=payload(bytes)
package meshwire

import (
	"errors"
	"fmt"
	"math"

	"CylinderForge/shared/meshing"

	"github.com/go-gl/mathgl/mgl32"
	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed indica bytes que não formam uma mensagem válida.
var ErrMalformed = errors.New("meshwire: malformed message")

// ---------- CAMPOS ----------

type field struct {
	num     protowire.Number
	typ     protowire.Type
	varint  uint64
	fixed32 uint32
	bytes   []byte
}

// walk percorre todos os campos de b. Campos desconhecidos são entregues a fn,
// que pode ignorá-los.
func walk(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			f.fixed32, n = protowire.ConsumeFixed32(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("%w: campo %d: %v", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (f field) expect(typ protowire.Type) error {
	if f.typ != typ {
		return fmt.Errorf("%w: campo %d com tipo %d, esperado %d", ErrMalformed, f.num, f.typ, typ)
	}
	return nil
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendPackedFloats(b []byte, num protowire.Number, vs []float32) []byte {
	if len(vs) == 0 {
		return b
	}
	packed := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		packed = protowire.AppendFixed32(packed, math.Float32bits(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func consumePackedFloats(f field) ([]float32, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return nil, err
	}
	if len(f.bytes)%4 != 0 {
		return nil, fmt.Errorf("%w: campo %d com %d bytes", ErrMalformed, f.num, len(f.bytes))
	}
	out := make([]float32, 0, len(f.bytes)/4)
	b := f.bytes
	for len(b) > 0 {
		v, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		out = append(out, math.Float32frombits(v))
		b = b[n:]
	}
	return out, nil
}

func appendVec3(b []byte, num protowire.Number, v mgl32.Vec3) []byte {
	if v == (mgl32.Vec3{}) {
		return b
	}
	return appendPackedFloats(b, num, v[:])
}

func consumeVec3(f field) (mgl32.Vec3, error) {
	vs, err := consumePackedFloats(f)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	if len(vs) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: campo %d com %d componentes", ErrMalformed, f.num, len(vs))
	}
	return mgl32.Vec3{vs[0], vs[1], vs[2]}, nil
}

// ---------- PARAMS ----------

// AppendParams serializa os parâmetros em b.
func AppendParams(b []byte, p meshing.Params) []byte {
	b = appendFloat(b, 1, p.Height)
	b = appendFloat(b, 2, p.Radius)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(p.Sides)))
	b = appendVec3(b, 4, p.Center)
	b = appendVec3(b, 5, p.Rotation)
	if p.Winding != meshing.WindingCCW {
		b = protowire.AppendTag(b, 6, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.Winding))
	}
	return b
}

// MarshalParams serializa os parâmetros.
func MarshalParams(p meshing.Params) []byte {
	return AppendParams(nil, p)
}

// UnmarshalParams decodifica parâmetros. Os valores não são sanitizados aqui.
func UnmarshalParams(b []byte) (meshing.Params, error) {
	var p meshing.Params
	err := walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1:
			if err = f.expect(protowire.Fixed32Type); err == nil {
				p.Height = math.Float32frombits(f.fixed32)
			}
		case 2:
			if err = f.expect(protowire.Fixed32Type); err == nil {
				p.Radius = math.Float32frombits(f.fixed32)
			}
		case 3:
			if err = f.expect(protowire.VarintType); err == nil {
				p.Sides = clampSides(protowire.DecodeZigZag(f.varint))
			}
		case 4:
			p.Center, err = consumeVec3(f)
		case 5:
			p.Rotation, err = consumeVec3(f)
		case 6:
			if err = f.expect(protowire.VarintType); err == nil {
				p.Winding = meshing.Winding(f.varint & 0xff)
			}
		}
		return err
	})
	return p, err
}

// clampSides evita overflow de int em plataformas de 32 bits; a faixa real é
// aplicada depois por Sanitize.
func clampSides(v int64) int {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}

// ---------- GEOMETRY ----------

// AppendGeometry serializa a geometria em b.
func AppendGeometry(b []byte, g meshing.GeometryData) []byte {
	b = appendPackedFloats(b, 1, g.Vertices)
	b = appendPackedFloats(b, 2, g.Normals)
	if len(g.Indices) > 0 {
		packed := make([]byte, 0, len(g.Indices)*2)
		for _, idx := range g.Indices {
			packed = protowire.AppendVarint(packed, uint64(idx))
		}
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	b = appendVec3(b, 4, g.Bounds.Min)
	b = appendVec3(b, 5, g.Bounds.Max)
	return b
}

// MarshalGeometry serializa a geometria.
func MarshalGeometry(g meshing.GeometryData) []byte {
	return AppendGeometry(nil, g)
}

// UnmarshalGeometry decodifica e valida uma geometria: vértices em triplas,
// normais vazias ou do mesmo tamanho e índices dentro da faixa de vértices.
func UnmarshalGeometry(b []byte) (meshing.GeometryData, error) {
	var g meshing.GeometryData
	err := walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1:
			g.Vertices, err = consumePackedFloats(f)
		case 2:
			g.Normals, err = consumePackedFloats(f)
		case 3:
			g.Indices, err = consumePackedIndices(f)
		case 4:
			g.Bounds.Min, err = consumeVec3(f)
		case 5:
			g.Bounds.Max, err = consumeVec3(f)
		}
		return err
	})
	if err != nil {
		return meshing.GeometryData{}, err
	}

	if len(g.Vertices)%3 != 0 {
		return meshing.GeometryData{}, fmt.Errorf("%w: %d floats de vértice", ErrMalformed, len(g.Vertices))
	}
	if len(g.Normals) != 0 && len(g.Normals) != len(g.Vertices) {
		return meshing.GeometryData{}, fmt.Errorf("%w: %d normais para %d vértices", ErrMalformed, len(g.Normals)/3, g.VertexCount())
	}
	if len(g.Indices)%3 != 0 {
		return meshing.GeometryData{}, fmt.Errorf("%w: %d índices", ErrMalformed, len(g.Indices))
	}
	for _, idx := range g.Indices {
		if int(idx) >= g.VertexCount() {
			return meshing.GeometryData{}, fmt.Errorf("%w: índice %d fora da faixa", ErrMalformed, idx)
		}
	}
	return g, nil
}

func consumePackedIndices(f field) ([]uint16, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return nil, err
	}
	out := make([]uint16, 0, len(f.bytes))
	b := f.bytes
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		if v > math.MaxUint16 {
			return nil, fmt.Errorf("%w: índice %d", ErrMalformed, v)
		}
		out = append(out, uint16(v))
		b = b[n:]
	}
	return out, nil
}
