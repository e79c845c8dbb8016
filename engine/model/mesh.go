package model

/** @brief The maximum number of morph target weights sent to the shader. */
const MaxWeights = 8

// Interpolation selects how the weights track is sampled between
// keyframes.
type Interpolation int

const (
	InterpolationLinear Interpolation = iota
	InterpolationStep
	InterpolationCubicSpline
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationStep:
		return "STEP"
	case InterpolationCubicSpline:
		return "CUBICSPLINE"
	default:
		return "LINEAR"
	}
}

// Primitive is one indexed draw range. Material is an index into the
// model's material table, -1 when unset.
type Primitive struct {
	FirstIndex uint32
	IndexCount uint32
	Material   int32
}

// MorphPushConstants is the per-mesh record handed to the vertex shader.
// Offsets are element indices into the shared morph pack array:
// BufferOffset locates the mesh's first packed block, NormalOffset and
// TangentOffset split a block into its position/normal/tangent runs, and
// VertexStride is the number of deltas per vertex.
type MorphPushConstants struct {
	BufferOffset  uint32
	NormalOffset  uint32
	TangentOffset uint32
	VertexStride  uint32
	Weights       [MaxWeights]float32
}

// Mesh is the flattened form of one source mesh. Morph meshes carry the
// weights animation track bound at load time; static meshes only use
// Primitives.
type Mesh struct {
	MorphTarget bool

	// Weights track. WeightsInit holds the source mesh's initial weights,
	// WeightsTime/WeightsData the bound animation channel's keyframes.
	Interpolation Interpolation
	WeightsInit   []float32
	WeightsTime   []float32
	WeightsData   []float32

	// Byte offset of this mesh's vertex region in the shared morph vertex
	// buffer, used as the bind offset at draw time.
	MorphVertexOffset uint64

	PushConstants MorphPushConstants

	Primitives []Primitive

	// Number of morph targets the source mesh declares. The weights
	// track carries this many values per keyframe even when it exceeds
	// MaxWeights.
	targetCount int

	// Keyframe cursor of the weights player.
	cursor int
}

// WeightCount returns how many weights the push constant record carries,
// truncated to MaxWeights.
func (m *Mesh) WeightCount() int {
	n := len(m.WeightsInit)
	if n > MaxWeights {
		n = MaxWeights
	}
	return n
}
