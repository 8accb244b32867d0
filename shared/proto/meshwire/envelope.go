package meshwire

import (
	"fmt"

	"CylinderForge/shared/meshing"

	"google.golang.org/protobuf/encoding/protowire"
)

// Type identifica o conteúdo de um Envelope.
type Type int32

const (
	TypeUnknown Type = iota
	TypeBuild        // cliente -> servidor: Params
	TypeSave         // cliente -> servidor: SaveRequest
	TypeMesh         // servidor -> cliente: MeshReply
	TypeError        // servidor -> cliente: mensagem de erro (UTF-8)
)

// String implementa fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeBuild:
		return "BUILD"
	case TypeSave:
		return "SAVE"
	case TypeMesh:
		return "MESH"
	case TypeError:
		return "ERROR"
	default:
		return fmt.Sprintf("TYPE_%d", int32(t))
	}
}

// Envelope é o frame trocado pelo websocket.
type Envelope struct {
	Type    Type
	Payload []byte
}

// Marshal serializa o envelope.
func (e Envelope) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Type))
	if len(e.Payload) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, e.Payload)
	}
	return b
}

// UnmarshalEnvelope decodifica um envelope.
func UnmarshalEnvelope(b []byte) (Envelope, error) {
	var e Envelope
	err := walk(b, func(f field) error {
		switch f.num {
		case 1:
			if err := f.expect(protowire.VarintType); err != nil {
				return err
			}
			e.Type = Type(int32(f.varint))
		case 2:
			if err := f.expect(protowire.BytesType); err != nil {
				return err
			}
			e.Payload = f.bytes
		}
		return nil
	})
	return e, err
}

// SaveRequest pede que a malha atual seja persistida como asset.
// 1=params(bytes) 2=name(string) 3=folder(string)
type SaveRequest struct {
	Params meshing.Params
	Name   string
	Folder string
}

// Marshal serializa o pedido.
func (r SaveRequest) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalParams(r.Params))
	if r.Name != "" {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, r.Name)
	}
	if r.Folder != "" {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, r.Folder)
	}
	return b
}

// UnmarshalSaveRequest decodifica um pedido de salvamento.
func UnmarshalSaveRequest(b []byte) (SaveRequest, error) {
	var r SaveRequest
	err := walk(b, func(f field) error {
		if f.num < 1 || f.num > 3 {
			return nil
		}
		if err := f.expect(protowire.BytesType); err != nil {
			return err
		}
		switch f.num {
		case 1:
			p, err := UnmarshalParams(f.bytes)
			if err != nil {
				return err
			}
			r.Params = p
		case 2:
			r.Name = string(f.bytes)
		case 3:
			r.Folder = string(f.bytes)
		}
		return nil
	})
	return r, err
}

// MeshReply devolve a malha gerada (e o caminho do asset, quando salva).
// 1=params(bytes) 2=geometry(bytes) 3=asset_path(string)
type MeshReply struct {
	Params    meshing.Params
	Geometry  meshing.GeometryData
	AssetPath string
}

// Marshal serializa a resposta.
func (r MeshReply) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalParams(r.Params))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalGeometry(r.Geometry))
	if r.AssetPath != "" {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, r.AssetPath)
	}
	return b
}

// UnmarshalMeshReply decodifica uma resposta de malha.
func UnmarshalMeshReply(b []byte) (MeshReply, error) {
	var r MeshReply
	err := walk(b, func(f field) error {
		if f.num < 1 || f.num > 3 {
			return nil
		}
		if err := f.expect(protowire.BytesType); err != nil {
			return err
		}
		var err error
		switch f.num {
		case 1:
			r.Params, err = UnmarshalParams(f.bytes)
		case 2:
			r.Geometry, err = UnmarshalGeometry(f.bytes)
		case 3:
			r.AssetPath = string(f.bytes)
		}
		return err
	})
	return r, err
}
