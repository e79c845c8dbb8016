package model

import (
	"encoding/binary"
	"errors"
	m "math"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"

	"morphvk/engine/core"
)

func f32le(values ...float32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], m.Float32bits(v))
	}
	return buf
}

func u16le(values ...uint16) []byte {
	buf := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

func u32le(values ...uint32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// singleAccessorDoc wraps raw bytes in a one-buffer, one-view document.
func singleAccessorDoc(data []byte, compType gltf.ComponentType, count uint32, byteStride uint32) (*accessorReader, *gltf.Accessor) {
	doc := &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: uint32(len(data)), Data: data}},
		BufferViews: []*gltf.BufferView{{
			Buffer:     0,
			ByteOffset: 0,
			ByteLength: uint32(len(data)),
			ByteStride: byteStride,
		}},
	}
	accessor := &gltf.Accessor{
		BufferView:    gltf.Index(0),
		ComponentType: compType,
		Count:         count,
	}
	doc.Accessors = []*gltf.Accessor{accessor}
	return &accessorReader{doc: doc}, accessor
}

func TestFloatsTightlyPacked(t *testing.T) {
	reader, accessor := singleAccessorDoc(f32le(1, 2, 3, 4, 5, 6), gltf.ComponentFloat, 2, 0)

	got, err := reader.Floats(accessor, 3)
	if err != nil {
		t.Fatalf("Floats returned error: %v", err)
	}
	want := []float32{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("got %d floats, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("float %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestFloatsInterleavedStride(t *testing.T) {
	// Two vec3 elements interleaved with a 4-byte pad: stride 16.
	data := append(f32le(1, 2, 3, 99), f32le(4, 5, 6, 99)...)
	reader, accessor := singleAccessorDoc(data, gltf.ComponentFloat, 2, 16)

	got, err := reader.Floats(accessor, 3)
	if err != nil {
		t.Fatalf("Floats returned error: %v", err)
	}
	want := []float32{1, 2, 3, 4, 5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("float %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestFloatsHonorsAccessorByteOffset(t *testing.T) {
	reader, accessor := singleAccessorDoc(f32le(99, 1, 2, 3), gltf.ComponentFloat, 1, 0)
	accessor.ByteOffset = 4

	got, err := reader.Floats(accessor, 3)
	if err != nil {
		t.Fatalf("Floats returned error: %v", err)
	}
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("offset read = %v, want [1 2 3]", got)
	}
}

func TestFloatsRejectsNonFloatComponent(t *testing.T) {
	reader, accessor := singleAccessorDoc(u16le(1, 2, 3), gltf.ComponentUshort, 1, 0)

	if _, err := reader.Floats(accessor, 3); !errors.Is(err, core.ErrUnsupportedComponentType) {
		t.Errorf("error = %v, want ErrUnsupportedComponentType", err)
	}
}

func TestFloatsTruncatedData(t *testing.T) {
	reader, accessor := singleAccessorDoc(f32le(1, 2), gltf.ComponentFloat, 1, 0)

	if _, err := reader.Floats(accessor, 3); !errors.Is(err, core.ErrAssetLoadFailure) {
		t.Errorf("error = %v, want ErrAssetLoadFailure", err)
	}
}

func TestIndicesWidening(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		compType gltf.ComponentType
	}{
		{"ubyte", []byte{0, 1, 250}, gltf.ComponentUbyte},
		{"ushort", u16le(0, 1, 65000), gltf.ComponentUshort},
		{"uint", u32le(0, 1, 70000), gltf.ComponentUint},
	}
	want := map[string][]uint32{
		"ubyte":  {0, 1, 250},
		"ushort": {0, 1, 65000},
		"uint":   {0, 1, 70000},
	}

	for _, tc := range tests {
		reader, accessor := singleAccessorDoc(tc.data, tc.compType, 3, 0)
		got, err := reader.Indices(accessor)
		if err != nil {
			t.Fatalf("%s: Indices returned error: %v", tc.name, err)
		}
		for i, w := range want[tc.name] {
			if got[i] != w {
				t.Errorf("%s: index %d = %d, want %d", tc.name, i, got[i], w)
			}
		}
	}
}

func TestIndicesRejectsFloatComponent(t *testing.T) {
	reader, accessor := singleAccessorDoc(f32le(0, 1, 2), gltf.ComponentFloat, 3, 0)

	_, err := reader.Indices(accessor)
	if !errors.Is(err, core.ErrUnsupportedComponentType) {
		t.Errorf("error = %v, want ErrUnsupportedComponentType", err)
	}
	// The message names the offending glTF component type.
	if !strings.Contains(err.Error(), "FLOAT") {
		t.Errorf("error %q does not name the component type", err)
	}
}

func TestAccessorWithoutBufferView(t *testing.T) {
	reader, accessor := singleAccessorDoc(f32le(1), gltf.ComponentFloat, 1, 0)
	accessor.BufferView = nil

	if _, err := reader.Floats(accessor, 1); !errors.Is(err, core.ErrAssetLoadFailure) {
		t.Errorf("error = %v, want ErrAssetLoadFailure", err)
	}
}
