package model

import (
	"morphvk/engine/math"
)

// Advance moves the animation clock forward by delta seconds, wrapping
// at AnimationMaxTime, and refreshes every morph mesh's push constant
// weights. Meant for the frame loop; not safe for concurrent use.
func (mdl *Model) Advance(delta float32) {
	if mdl.AnimationMaxTime <= 0 {
		return
	}
	mdl.currentTime += delta
	for mdl.currentTime > mdl.AnimationMaxTime {
		mdl.currentTime -= mdl.AnimationMaxTime
	}
	for _, mesh := range mdl.MeshesMorph {
		mesh.updateWeights(mdl.currentTime)
	}
}

// CurrentTime returns the model's animation clock.
func (mdl *Model) CurrentTime() float32 {
	return mdl.currentTime
}

// updateWeights samples the bound weights track at time t with the
// mesh's interpolation mode. Meshes without a bound channel keep their
// initial weights.
func (mesh *Mesh) updateWeights(t float32) {
	if len(mesh.WeightsTime) == 0 || mesh.targetCount == 0 {
		return
	}

	// The cursor tracks the keyframe at or before t; a wrap resets it.
	if t < mesh.WeightsTime[mesh.cursor] {
		mesh.cursor = 0
	}
	for mesh.cursor+1 < len(mesh.WeightsTime) && mesh.WeightsTime[mesh.cursor+1] <= t {
		mesh.cursor++
	}

	k := mesh.cursor
	last := len(mesh.WeightsTime) - 1
	count := mesh.WeightCount()

	// Outside the track the boundary keyframes are held.
	if t <= mesh.WeightsTime[0] {
		for j := 0; j < count; j++ {
			mesh.PushConstants.Weights[j] = mesh.keyframeValue(0, j)
		}
		return
	}
	if k >= last {
		for j := 0; j < count; j++ {
			mesh.PushConstants.Weights[j] = mesh.keyframeValue(last, j)
		}
		return
	}

	t0 := mesh.WeightsTime[k]
	t1 := mesh.WeightsTime[k+1]
	u := math.Clamp((t-t0)/(t1-t0), 0, 1)

	switch mesh.Interpolation {
	case InterpolationStep:
		for j := 0; j < count; j++ {
			mesh.PushConstants.Weights[j] = mesh.keyframeValue(k, j)
		}
	case InterpolationCubicSpline:
		td := t1 - t0
		u2 := u * u
		u3 := u2 * u
		for j := 0; j < count; j++ {
			p0 := mesh.keyframeValue(k, j)
			p1 := mesh.keyframeValue(k+1, j)
			m0 := td * mesh.outTangent(k, j)
			m1 := td * mesh.inTangent(k+1, j)
			mesh.PushConstants.Weights[j] = (2*u3-3*u2+1)*p0 +
				(u3-2*u2+u)*m0 +
				(-2*u3+3*u2)*p1 +
				(u3-u2)*m1
		}
	default:
		for j := 0; j < count; j++ {
			a := mesh.keyframeValue(k, j)
			b := mesh.keyframeValue(k+1, j)
			mesh.PushConstants.Weights[j] = a + (b-a)*u
		}
	}
}

func (mesh *Mesh) trackValue(index int) float32 {
	if index < 0 || index >= len(mesh.WeightsData) {
		return 0
	}
	return mesh.WeightsData[index]
}

// keyframeValue reads weight j of keyframe k. Cubic spline tracks store
// per keyframe the triplet [in-tangents, values, out-tangents], each
// targetCount wide; the other modes store just the values.
func (mesh *Mesh) keyframeValue(k, j int) float32 {
	if mesh.Interpolation == InterpolationCubicSpline {
		return mesh.trackValue(k*3*mesh.targetCount + mesh.targetCount + j)
	}
	return mesh.trackValue(k*mesh.targetCount + j)
}

func (mesh *Mesh) inTangent(k, j int) float32 {
	return mesh.trackValue(k*3*mesh.targetCount + j)
}

func (mesh *Mesh) outTangent(k, j int) float32 {
	return mesh.trackValue(k*3*mesh.targetCount + 2*mesh.targetCount + j)
}
