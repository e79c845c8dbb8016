package model

import (
	"encoding/binary"
	"fmt"
	m "math"

	vk "github.com/goki/vulkan"
	"github.com/google/uuid"
	"github.com/qmuntal/gltf"

	"morphvk/engine/core"
	"morphvk/engine/math"
	"morphvk/engine/renderer/vulkan"
)

// Model is a flattened glTF scene: the static and morph mesh lists, the
// material table, the CPU-side sequences and the device buffers they are
// uploaded to.
type Model struct {
	ID string

	MeshesStatic []*Mesh
	MeshesMorph  []*Mesh
	Materials    []Material

	StaticVertexData []math.Vertex
	StaticIndexData  []uint32
	MorphVertexData  []math.Vertex
	MorphIndexData   []uint32
	MorphPackData    []float32

	AnimationMaxTime float32
	currentTime      float32

	staticVertexBuffer *vulkan.Buffer
	staticIndexBuffer  *vulkan.Buffer
	morphVertexBuffer  *vulkan.Buffer
	morphIndexBuffer   *vulkan.Buffer
	morphPackBuffer    *vulkan.Buffer
}

// LoadFromDocument flattens a parsed document without touching the GPU.
func LoadFromDocument(doc *gltf.Document, globalScale float32) (*Model, error) {
	bc := newBuildContext(doc, globalScale)
	if err := bc.flatten(); err != nil {
		return nil, err
	}

	model := &Model{
		ID:               uuid.New().String(),
		MeshesStatic:     bc.meshesStatic,
		MeshesMorph:      bc.meshesMorph,
		Materials:        loadMaterials(doc),
		StaticVertexData: bc.staticVertices,
		StaticIndexData:  bc.staticIndices,
		MorphVertexData:  bc.morphVertices,
		MorphIndexData:   bc.morphIndices,
		MorphPackData:    bc.morphPack,
		AnimationMaxTime: bc.animationMaxTime,
	}

	core.LogDebug("model %s flattened: %d static meshes (%d vertices, %d indices), %d morph meshes (%d vertices, %d indices, %d packed floats)",
		model.ID,
		len(model.MeshesStatic), len(model.StaticVertexData), len(model.StaticIndexData),
		len(model.MeshesMorph), len(model.MorphVertexData), len(model.MorphIndexData),
		len(model.MorphPackData))

	return model, nil
}

// LoadFromFile parses a glTF asset, flattens it and uploads the result
// to the device.
func LoadFromFile(path string, device *vulkan.Device, globalScale float32) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		core.LogError("could not load gltf file %s: %v", path, err)
		return nil, fmt.Errorf("%s: %v: %w", path, err, core.ErrAssetLoadFailure)
	}

	model, err := LoadFromDocument(doc, globalScale)
	if err != nil {
		return nil, err
	}
	if err := model.Upload(device); err != nil {
		model.Destroy(device)
		return nil, err
	}
	return model, nil
}

// Upload pushes the flattened sequences into device-local buffers. The
// static and morph pairs are uploaded independently and either is a
// no-op when its sequences are empty; the morph pack array additionally
// goes into a storage buffer for the vertex shader.
func (mdl *Model) Upload(device *vulkan.Device) error {
	var err error

	if len(mdl.StaticVertexData) > 0 && len(mdl.StaticIndexData) > 0 {
		mdl.staticVertexBuffer, err = device.CreateDeviceLocalBuffer(vertexBytes(mdl.StaticVertexData), vk.BufferUsageVertexBufferBit)
		if err != nil {
			return err
		}
		mdl.staticIndexBuffer, err = device.CreateDeviceLocalBuffer(indexBytes(mdl.StaticIndexData), vk.BufferUsageIndexBufferBit)
		if err != nil {
			return err
		}
	}

	if len(mdl.MorphVertexData) > 0 && len(mdl.MorphIndexData) > 0 {
		mdl.morphVertexBuffer, err = device.CreateDeviceLocalBuffer(vertexBytes(mdl.MorphVertexData), vk.BufferUsageVertexBufferBit)
		if err != nil {
			return err
		}
		mdl.morphIndexBuffer, err = device.CreateDeviceLocalBuffer(indexBytes(mdl.MorphIndexData), vk.BufferUsageIndexBufferBit)
		if err != nil {
			return err
		}
		if len(mdl.MorphPackData) > 0 {
			mdl.morphPackBuffer, err = device.CreateDeviceLocalBuffer(floatBytes(mdl.MorphPackData), vk.BufferUsageStorageBufferBit)
			if err != nil {
				return err
			}
		}
	}

	core.LogInfo("model %s uploaded", mdl.ID)
	return nil
}

// MorphPackBuffer exposes the packed morph delta storage buffer for
// descriptor binding, nil when the model has no morph data.
func (mdl *Model) MorphPackBuffer() *vulkan.Buffer {
	return mdl.morphPackBuffer
}

// Destroy releases every device buffer the model owns. Buffer and memory
// of each pair go together; the CPU-side data stays valid.
func (mdl *Model) Destroy(device *vulkan.Device) {
	mdl.staticVertexBuffer.Destroy(device)
	mdl.staticIndexBuffer.Destroy(device)
	mdl.morphVertexBuffer.Destroy(device)
	mdl.morphIndexBuffer.Destroy(device)
	mdl.morphPackBuffer.Destroy(device)
	mdl.staticVertexBuffer = nil
	mdl.staticIndexBuffer = nil
	mdl.morphVertexBuffer = nil
	mdl.morphIndexBuffer = nil
	mdl.morphPackBuffer = nil
}

func putFloat(buf []byte, offset int, v float32) {
	binary.LittleEndian.PutUint32(buf[offset:], m.Float32bits(v))
}

// vertexBytes lays vertices out as the GPU expects them: position,
// normal, tangent, each three little-endian float32s.
func vertexBytes(vertices []math.Vertex) []byte {
	buf := make([]byte, len(vertices)*math.VertexSize)
	offset := 0
	for _, v := range vertices {
		for _, f := range [9]float32{
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.Tangent.X, v.Tangent.Y, v.Tangent.Z,
		} {
			putFloat(buf, offset, f)
			offset += 4
		}
	}
	return buf
}

func indexBytes(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, index := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], index)
	}
	return buf
}

func floatBytes(values []float32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		putFloat(buf, i*4, v)
	}
	return buf
}
