package model

import (
	"encoding/binary"
	"fmt"
	m "math"
	"unsafe"

	"github.com/qmuntal/gltf"
	"golang.org/x/exp/constraints"

	"morphvk/engine/core"
)

// accessorReader decodes accessor contents out of a document's buffers.
// Elements are always copied into fresh slices so unaligned or interleaved
// source data never leaks into the flattened output.
type accessorReader struct {
	doc *gltf.Document
}

// view returns the bytes backing an accessor, starting at its first
// element, together with the buffer view's byte stride (0 = tight).
func (r *accessorReader) view(a *gltf.Accessor) ([]byte, int, error) {
	if a.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view: %w", core.ErrAssetLoadFailure)
	}
	if int(*a.BufferView) >= len(r.doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range: %w", *a.BufferView, core.ErrAssetLoadFailure)
	}
	bv := r.doc.BufferViews[*a.BufferView]
	if int(bv.Buffer) >= len(r.doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range: %w", bv.Buffer, core.ErrAssetLoadFailure)
	}
	buf := r.doc.Buffers[bv.Buffer].Data
	start := int(bv.ByteOffset) + int(a.ByteOffset)
	if start > len(buf) {
		return nil, 0, fmt.Errorf("accessor offset %d past end of buffer: %w", start, core.ErrAssetLoadFailure)
	}
	return buf[start:], int(bv.ByteStride), nil
}

// Floats reads a float accessor of the given component count (3 for vec3,
// 1 for scalars and so on) into a flat slice, honoring the view's stride.
func (r *accessorReader) Floats(a *gltf.Accessor, components int) ([]float32, error) {
	if a.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("component type %s for float accessor: %w", componentName(a.ComponentType), core.ErrUnsupportedComponentType)
	}

	data, stride, err := r.view(a)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = components * 4
	}

	count := int(a.Count)
	if count > 0 && (count-1)*stride+components*4 > len(data) {
		return nil, fmt.Errorf("accessor data truncated (%d elements): %w", count, core.ErrAssetLoadFailure)
	}

	out := make([]float32, 0, count*components)
	for i := 0; i < count; i++ {
		offset := i * stride
		for c := 0; c < components; c++ {
			bits := binary.LittleEndian.Uint32(data[offset+c*4:])
			out = append(out, m.Float32frombits(bits))
		}
	}
	return out, nil
}

// Indices reads an index accessor, widening uint8 and uint16 storage to
// uint32. Component types outside the three index widths are rejected.
func (r *accessorReader) Indices(a *gltf.Accessor) ([]uint32, error) {
	data, stride, err := r.view(a)
	if err != nil {
		return nil, err
	}

	switch a.ComponentType {
	case gltf.ComponentUbyte:
		return readIndexRun[uint8](data, int(a.Count), stride)
	case gltf.ComponentUshort:
		return readIndexRun[uint16](data, int(a.Count), stride)
	case gltf.ComponentUint:
		return readIndexRun[uint32](data, int(a.Count), stride)
	default:
		return nil, fmt.Errorf("index component type %s: %w", componentName(a.ComponentType), core.ErrUnsupportedComponentType)
	}
}

// componentName renders a component type as its glTF name.
func componentName(t gltf.ComponentType) string {
	switch t {
	case gltf.ComponentFloat:
		return "FLOAT"
	case gltf.ComponentByte:
		return "BYTE"
	case gltf.ComponentUbyte:
		return "UNSIGNED_BYTE"
	case gltf.ComponentShort:
		return "SHORT"
	case gltf.ComponentUshort:
		return "UNSIGNED_SHORT"
	case gltf.ComponentUint:
		return "UNSIGNED_INT"
	default:
		return fmt.Sprintf("%d", t)
	}
}

// readIndexRun widens count little-endian unsigned integers of T's width
// to uint32.
func readIndexRun[T constraints.Unsigned](data []byte, count, stride int) ([]uint32, error) {
	var zero T
	width := int(unsafe.Sizeof(zero))
	if stride == 0 {
		stride = width
	}
	if count > 0 && (count-1)*stride+width > len(data) {
		return nil, fmt.Errorf("index data truncated (%d elements): %w", count, core.ErrAssetLoadFailure)
	}

	out := make([]uint32, 0, count)
	for i := 0; i < count; i++ {
		offset := i * stride
		var v uint32
		for b := width - 1; b >= 0; b-- {
			v = v<<8 | uint32(data[offset+b])
		}
		out = append(out, v)
	}
	return out, nil
}
