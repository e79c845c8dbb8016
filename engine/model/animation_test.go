package model

import (
	"testing"
)

func linearTrackMesh() *Mesh {
	return &Mesh{
		MorphTarget: true,
		WeightsInit: []float32{0},
		WeightsTime: []float32{0, 1, 2},
		WeightsData: []float32{0, 1, 0},
		targetCount: 1,
	}
}

func TestLinearSampling(t *testing.T) {
	mesh := linearTrackMesh()

	mesh.updateWeights(0.5)
	if got := mesh.PushConstants.Weights[0]; got != 0.5 {
		t.Errorf("weight at t=0.5 = %f, want 0.5", got)
	}
	mesh.updateWeights(1.75)
	if got := mesh.PushConstants.Weights[0]; got != 0.25 {
		t.Errorf("weight at t=1.75 = %f, want 0.25", got)
	}
}

func TestStepSamplingHoldsKeyframe(t *testing.T) {
	mesh := linearTrackMesh()
	mesh.Interpolation = InterpolationStep

	mesh.updateWeights(0.9)
	if got := mesh.PushConstants.Weights[0]; got != 0 {
		t.Errorf("weight at t=0.9 = %f, want 0", got)
	}
	mesh.updateWeights(1.5)
	if got := mesh.PushConstants.Weights[0]; got != 1 {
		t.Errorf("weight at t=1.5 = %f, want 1", got)
	}
}

func TestBoundaryKeyframesHeld(t *testing.T) {
	mesh := &Mesh{
		MorphTarget: true,
		WeightsInit: []float32{0},
		WeightsTime: []float32{1, 2},
		WeightsData: []float32{0.3, 0.7},
		targetCount: 1,
	}

	mesh.updateWeights(0.5)
	if got := mesh.PushConstants.Weights[0]; got != 0.3 {
		t.Errorf("weight before first keyframe = %f, want 0.3", got)
	}
	mesh.updateWeights(5)
	if got := mesh.PushConstants.Weights[0]; got != 0.7 {
		t.Errorf("weight past last keyframe = %f, want 0.7", got)
	}
}

func TestCursorResetsOnWrap(t *testing.T) {
	mesh := linearTrackMesh()

	mesh.updateWeights(1.5)
	if mesh.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", mesh.cursor)
	}
	// Time wrapped back below the cursor's keyframe.
	mesh.updateWeights(0.25)
	if mesh.cursor != 0 {
		t.Errorf("cursor after wrap = %d, want 0", mesh.cursor)
	}
	if got := mesh.PushConstants.Weights[0]; got != 0.25 {
		t.Errorf("weight at t=0.25 = %f, want 0.25", got)
	}
}

func TestCubicSplineSampling(t *testing.T) {
	// Two keyframes, one target, zero tangents: the hermite basis reduces
	// to a smooth blend that passes the halfway point at u=0.5.
	mesh := &Mesh{
		MorphTarget:   true,
		Interpolation: InterpolationCubicSpline,
		WeightsInit:   []float32{0},
		WeightsTime:   []float32{0, 1},
		WeightsData: []float32{
			0, 0, 0, // in-tangent, value, out-tangent of keyframe 0
			0, 2, 0,
		},
		targetCount: 1,
	}

	mesh.updateWeights(0.5)
	if got := mesh.PushConstants.Weights[0]; got != 1 {
		t.Errorf("weight at u=0.5 = %f, want 1", got)
	}
	mesh.updateWeights(1)
	if got := mesh.PushConstants.Weights[0]; got != 2 {
		t.Errorf("weight at end = %f, want 2", got)
	}
}

func TestTrackStrideExceedsPushConstantCapacity(t *testing.T) {
	// Ten targets per keyframe; only the first MaxWeights reach the push
	// constants, but the stride of the raw track stays ten.
	const targets = 10
	times := []float32{0, 1}
	data := make([]float32, 2*targets)
	for j := 0; j < targets; j++ {
		data[targets+j] = float32(j) // keyframe 1
	}
	init := make([]float32, MaxWeights)
	mesh := &Mesh{
		MorphTarget: true,
		WeightsInit: init,
		WeightsTime: times,
		WeightsData: data,
		targetCount: targets,
	}

	mesh.updateWeights(1)
	for j := 0; j < MaxWeights; j++ {
		if got := mesh.PushConstants.Weights[j]; got != float32(j) {
			t.Errorf("weight %d = %f, want %d", j, got, j)
		}
	}
}

func TestAdvanceWrapsClock(t *testing.T) {
	model := &Model{AnimationMaxTime: 2}
	model.Advance(2.5)
	if got := model.CurrentTime(); got != 0.5 {
		t.Errorf("current time = %f, want 0.5", got)
	}
}

func TestAdvanceWithoutAnimationIsNoop(t *testing.T) {
	model := &Model{}
	model.Advance(1)
	if got := model.CurrentTime(); got != 0 {
		t.Errorf("current time = %f, want 0", got)
	}
}

func TestAdvanceSkipsTracklessMeshes(t *testing.T) {
	mesh := &Mesh{
		MorphTarget: true,
		WeightsInit: []float32{0.4},
		targetCount: 1,
	}
	mesh.PushConstants.Weights[0] = 0.4
	model := &Model{AnimationMaxTime: 1, MeshesMorph: []*Mesh{mesh}}

	model.Advance(0.5)
	if got := mesh.PushConstants.Weights[0]; got != 0.4 {
		t.Errorf("weight = %f, want unchanged 0.4", got)
	}
}
