package storage

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/decawise/internal/apperrors"
	"github.com/palemoky/decawise/internal/config"
)

// Codec encodes a snapshot for the session slot.
type Codec interface {
	Name() string
	Marshal(snap *GameSnapshot) ([]byte, error)
	Unmarshal(data []byte, snap *GameSnapshot) error
}

// NewCodec returns the codec registered under name.
func NewCodec(name string) (Codec, error) {
	switch name {
	case "", config.CodecJSON:
		return JSONCodec{}, nil
	case config.CodecProto:
		return ProtoCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownCodec, name)
}

// JSONCodec stores the snapshot as JSON text.
type JSONCodec struct{}

func (JSONCodec) Name() string { return config.CodecJSON }

func (JSONCodec) Marshal(snap *GameSnapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("序列化游戏数据失败: %w", err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, snap *GameSnapshot) error {
	if err := json.Unmarshal(data, snap); err != nil {
		return fmt.Errorf("反序列化游戏数据失败: %w", err)
	}
	return nil
}

// ProtoCodec stores the snapshot as a binary protobuf google.protobuf.Struct.
type ProtoCodec struct{}

func (ProtoCodec) Name() string { return config.CodecProto }

func (ProtoCodec) Marshal(snap *GameSnapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("序列化游戏数据失败: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("序列化游戏数据失败: %w", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build protobuf struct: %w", err)
	}
	return proto.Marshal(st)
}

func (ProtoCodec) Unmarshal(data []byte, snap *GameSnapshot) error {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("反序列化游戏数据失败: %w", err)
	}
	// AsMap yields float64 numbers; encoding/json prints integral values
	// without an exponent, so int fields decode cleanly.
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return fmt.Errorf("反序列化游戏数据失败: %w", err)
	}
	return JSONCodec{}.Unmarshal(raw, snap)
}
