package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief A quaternion, used to represent rotational orientation. */
type Quaternion Vec4

/** @brief a 4x4 column-major matrix, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements, Data[col*4+row]. */
	Data [16]float32
}

/**
 * @brief Represents a single vertex of a flattened model.
 * Tangents are not generated; the field keeps the GPU layout and stays zero.
 */
type Vertex struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The normal of the vertex. */
	Normal Vec3
	/** @brief The tangent of the vertex. */
	Tangent Vec3
}

/** @brief The byte size of a Vertex as laid out in GPU buffers. */
const VertexSize = 9 * 4
