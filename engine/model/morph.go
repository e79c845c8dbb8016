package model

import (
	"github.com/qmuntal/gltf"

	"morphvk/engine/math"
)

// packMorphTargets appends one interleaved block of morph target deltas
// to the shared pack array and fills the mesh's push constant record.
//
// The block holds, per vertex, the runs [positions..., normals...,
// tangents...], each delta a transformed vec3. The push constant offsets
// split a vertex's run: slots below NormalOffset are position deltas,
// below TangentOffset normal deltas, the rest tangent deltas, and
// VertexStride is the run length. BufferOffset is the float-element
// index of the block's start in the pack array.
//
// The vertex count comes from the POSITION target accessors; target
// streams disagreeing in count are caller-guaranteed not to happen and
// are not validated.
func (bc *buildContext) packMorphTargets(mesh *Mesh, prim *gltf.Primitive, worldRS math.Mat4) error {
	var streams [][]float32
	vertexCount := 0

	for _, target := range prim.Targets {
		if index, ok := target[gltf.POSITION]; ok {
			accessor, err := bc.attributeAccessor(index)
			if err != nil {
				return err
			}
			deltas, err := bc.reader.Floats(accessor, 3)
			if err != nil {
				return err
			}
			streams = append(streams, deltas)
			vertexCount = int(accessor.Count)
		}
	}

	mesh.PushConstants.NormalOffset = uint32(len(streams))
	for _, target := range prim.Targets {
		if index, ok := target[gltf.NORMAL]; ok {
			accessor, err := bc.attributeAccessor(index)
			if err != nil {
				return err
			}
			deltas, err := bc.reader.Floats(accessor, 3)
			if err != nil {
				return err
			}
			streams = append(streams, deltas)
		}
	}

	mesh.PushConstants.TangentOffset = uint32(len(streams))
	for _, target := range prim.Targets {
		if index, ok := target[gltf.TANGENT]; ok {
			accessor, err := bc.attributeAccessor(index)
			if err != nil {
				return err
			}
			deltas, err := bc.reader.Floats(accessor, 3)
			if err != nil {
				return err
			}
			streams = append(streams, deltas)
		}
	}

	mesh.PushConstants.VertexStride = uint32(len(streams))
	mesh.PushConstants.BufferOffset = uint32(len(bc.morphPack))

	for v := 0; v < vertexCount; v++ {
		for j, stream := range streams {
			delta := math.NewVec3Zero()
			if v*3+3 <= len(stream) {
				delta = math.NewVec3(stream[v*3+0], stream[v*3+1], stream[v*3+2])
			}
			delta = delta.Transform(worldRS)

			if uint32(j) < mesh.PushConstants.NormalOffset {
				// Only position deltas get the global scale.
				delta = delta.MulScalar(bc.globalScale)
			} else if delta.X != 0 || delta.Y != 0 || delta.Z != 0 {
				// Normal and tangent deltas are renormalized; a zero
				// vector is left as-is.
				delta = delta.Normalize()
			}
			delta.Y *= -1.0

			bc.morphPack = append(bc.morphPack, delta.X, delta.Y, delta.Z)
		}
	}

	return nil
}
