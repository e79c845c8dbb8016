package model

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"

	"morphvk/engine/core"
	"morphvk/engine/math"
)

// buildContext owns the growing output sequences while the scene graph
// is flattened. A fresh context is used per load; there is no shared
// state between loads.
type buildContext struct {
	doc         *gltf.Document
	reader      *accessorReader
	globalScale float32

	staticVertices []math.Vertex
	staticIndices  []uint32
	morphVertices  []math.Vertex
	morphIndices   []uint32

	// Interleaved morph target deltas, one block per morph primitive.
	morphPack []float32

	meshesStatic []*Mesh
	meshesMorph  []*Mesh

	animationMaxTime float32
}

func newBuildContext(doc *gltf.Document, globalScale float32) *buildContext {
	return &buildContext{
		doc:         doc,
		reader:      &accessorReader{doc: doc},
		globalScale: globalScale,
	}
}

// flatten walks the document's default scene depth-first and fills the
// context's sequences.
func (bc *buildContext) flatten() error {
	if len(bc.doc.Scenes) == 0 {
		return fmt.Errorf("document has no scenes: %w", core.ErrAssetLoadFailure)
	}
	scene := bc.doc.Scenes[0]
	if bc.doc.Scene != nil {
		if int(*bc.doc.Scene) >= len(bc.doc.Scenes) {
			return fmt.Errorf("default scene %d out of range: %w", *bc.doc.Scene, core.ErrAssetLoadFailure)
		}
		scene = bc.doc.Scenes[*bc.doc.Scene]
	}

	for _, nodeIndex := range scene.Nodes {
		if err := bc.visitNode(nodeIndex, math.NewMat4Identity()); err != nil {
			return err
		}
	}
	return nil
}

var identityMatrix = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// nodeMatrices returns the node's local TRS matrix and its local
// rotation/scale-only matrix. An explicit node matrix is trusted for
// both. Parsers fill absent fields with either zeros or the glTF
// defaults, so both spellings of "absent" are treated as default.
func nodeMatrices(node *gltf.Node) (trs, rs math.Mat4) {
	if node.Matrix != [16]float64{} && node.Matrix != identityMatrix {
		var data [16]float32
		for i, v := range node.Matrix {
			data[i] = float32(v)
		}
		m := math.NewMat4FromArray(data)
		return m, m
	}

	translation := math.NewVec3(
		float32(node.Translation[0]),
		float32(node.Translation[1]),
		float32(node.Translation[2]))

	rotation := math.NewQuatIdentity()
	if node.Rotation != [4]float64{} {
		rotation = math.Quaternion{
			X: float32(node.Rotation[0]),
			Y: float32(node.Rotation[1]),
			Z: float32(node.Rotation[2]),
			W: float32(node.Rotation[3]),
		}
	}

	scale := math.NewVec3One()
	if node.Scale != [3]float64{} {
		scale = math.NewVec3(
			float32(node.Scale[0]),
			float32(node.Scale[1]),
			float32(node.Scale[2]))
	}

	// T * R * S
	trs = math.NewMat4Translation(translation).Mul(rotation.ToMat4()).Mul(math.NewMat4Scale(scale))
	rs = rotation.ToMat4().Mul(math.NewMat4Scale(scale))
	return trs, rs
}

func (bc *buildContext) visitNode(nodeIndex uint32, parentTRS math.Mat4) error {
	if int(nodeIndex) >= len(bc.doc.Nodes) {
		return fmt.Errorf("node %d out of range: %w", nodeIndex, core.ErrAssetLoadFailure)
	}
	node := bc.doc.Nodes[nodeIndex]

	localTRS, localRS := nodeMatrices(node)
	worldTRS := parentTRS.Mul(localTRS)
	// The rotation/scale matrix is deliberately not composed with the
	// parent chain; morph deltas only see the owning node's own RS.
	worldRS := localRS

	for _, child := range node.Children {
		if err := bc.visitNode(child, worldTRS); err != nil {
			return err
		}
	}

	if node.Mesh == nil {
		return nil // non mesh node
	}
	return bc.loadMesh(nodeIndex, *node.Mesh, worldTRS, worldRS)
}

func (bc *buildContext) loadMesh(nodeIndex, meshIndex uint32, worldTRS, worldRS math.Mat4) error {
	if int(meshIndex) >= len(bc.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range: %w", meshIndex, core.ErrAssetLoadFailure)
	}
	src := bc.doc.Meshes[meshIndex]

	mesh := &Mesh{MorphTarget: len(src.Weights) > 0}
	if mesh.MorphTarget {
		bc.meshesMorph = append(bc.meshesMorph, mesh)
		if err := bc.bindWeightsAnimation(mesh, nodeIndex, src); err != nil {
			return err
		}
	} else {
		bc.meshesStatic = append(bc.meshesStatic, mesh)
	}

	for _, prim := range src.Primitives {
		if err := bc.loadPrimitive(mesh, prim, worldTRS, worldRS); err != nil {
			return err
		}
	}
	return nil
}

func (bc *buildContext) attributeAccessor(index uint32) (*gltf.Accessor, error) {
	if int(index) >= len(bc.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range: %w", index, core.ErrAssetLoadFailure)
	}
	return bc.doc.Accessors[index], nil
}

func (bc *buildContext) loadPrimitive(mesh *Mesh, prim *gltf.Primitive, worldTRS, worldRS math.Mat4) error {
	// Primitives without an index accessor are not drawn.
	if prim.Indices == nil {
		return nil
	}

	// POSITION is a hard requirement.
	posIndex, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("primitive has no POSITION attribute: %w", core.ErrMissingRequiredAttribute)
	}
	posAccessor, err := bc.attributeAccessor(posIndex)
	if err != nil {
		return err
	}
	positions, err := bc.reader.Floats(posAccessor, 3)
	if err != nil {
		return err
	}

	var normals []float32
	if normIndex, ok := prim.Attributes[gltf.NORMAL]; ok {
		normAccessor, err := bc.attributeAccessor(normIndex)
		if err != nil {
			return err
		}
		normals, err = bc.reader.Floats(normAccessor, 3)
		if err != nil {
			return err
		}
	}

	// Indices are decoded before anything is appended so a primitive
	// with an unsupported index width leaves no trace in the sequences.
	idxAccessor, err := bc.attributeAccessor(*prim.Indices)
	if err != nil {
		return err
	}
	indices, err := bc.reader.Indices(idxAccessor)
	if err != nil {
		if errors.Is(err, core.ErrUnsupportedComponentType) {
			core.LogError("skipping primitive: %v", err)
			return nil
		}
		return err
	}

	vertices := &bc.staticVertices
	indexSequence := &bc.staticIndices
	if mesh.MorphTarget {
		vertices = &bc.morphVertices
		indexSequence = &bc.morphIndices
	}

	vertexStart := uint32(len(*vertices))
	// Morph draws bind the shared vertex buffer at this byte offset, so
	// the primitive's indices can stay zero-based.
	mesh.MorphVertexOffset = uint64(vertexStart) * math.VertexSize

	if mesh.MorphTarget {
		if err := bc.packMorphTargets(mesh, prim, worldRS); err != nil {
			return err
		}
	}

	for v := 0; v < int(posAccessor.Count); v++ {
		var vert math.Vertex

		pos := math.NewVec3(positions[v*3+0], positions[v*3+1], positions[v*3+2])
		vert.Position = pos.Transform(worldTRS).MulScalar(bc.globalScale)

		normal := math.NewVec3Zero()
		if v*3+3 <= len(normals) {
			normal = math.NewVec3(normals[v*3+0], normals[v*3+1], normals[v*3+2])
		}
		// A missing or zero normal normalizes to NaN; kept as-is.
		vert.Normal = normal.TransformDirection(worldTRS).Normalize()

		vert.Tangent = math.NewVec3Zero()

		// Vulkan coordinate system
		vert.Position.Y *= -1.0
		vert.Normal.Y *= -1.0

		*vertices = append(*vertices, vert)
	}

	firstIndex := uint32(len(*indexSequence))
	for _, index := range indices {
		if mesh.MorphTarget {
			*indexSequence = append(*indexSequence, index)
		} else {
			*indexSequence = append(*indexSequence, index+vertexStart)
		}
	}

	material := int32(-1)
	if prim.Material != nil {
		material = int32(*prim.Material)
	}
	mesh.Primitives = append(mesh.Primitives, Primitive{
		FirstIndex: firstIndex,
		IndexCount: uint32(len(indices)),
		Material:   material,
	})

	return nil
}
