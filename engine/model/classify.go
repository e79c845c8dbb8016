package model

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"morphvk/engine/core"
)

// bindWeightsAnimation snapshots the mesh's initial weights and resolves
// the animation channel driving them. All animations are scanned for a
// channel targeting this node with the weights path; the first match
// wins and later channels are ignored. Binding happens once at load and
// is never re-resolved.
func (bc *buildContext) bindWeightsAnimation(mesh *Mesh, nodeIndex uint32, src *gltf.Mesh) error {
	mesh.targetCount = len(src.Weights)
	for i, w := range src.Weights {
		if i >= MaxWeights {
			break
		}
		mesh.WeightsInit = append(mesh.WeightsInit, float32(w))
	}
	copy(mesh.PushConstants.Weights[:], mesh.WeightsInit)

	var sampler *gltf.AnimationSampler
	for _, animation := range bc.doc.Animations {
		for _, channel := range animation.Channels {
			if channel.Target.Node == nil || *channel.Target.Node != nodeIndex {
				continue
			}
			if channel.Target.Path != gltf.TRSWeights {
				continue
			}
			// A channel without a sampler index drives nothing.
			if channel.Sampler == nil {
				continue
			}
			if int(*channel.Sampler) >= len(animation.Samplers) {
				return fmt.Errorf("animation sampler %d out of range: %w", *channel.Sampler, core.ErrAssetLoadFailure)
			}
			sampler = animation.Samplers[*channel.Sampler]
			break
		}
		if sampler != nil {
			break
		}
	}

	if sampler == nil {
		// No animation drives this mesh; the initial weights stand.
		mesh.WeightsTime = nil
		mesh.WeightsData = nil
		return nil
	}

	switch sampler.Interpolation {
	case gltf.InterpolationStep:
		mesh.Interpolation = InterpolationStep
	case gltf.InterpolationCubicSpline:
		mesh.Interpolation = InterpolationCubicSpline
	default:
		// LINEAR is the glTF default.
		mesh.Interpolation = InterpolationLinear
	}

	inputAccessor, err := bc.attributeAccessor(sampler.Input)
	if err != nil {
		return err
	}
	times, err := bc.reader.Floats(inputAccessor, 1)
	if err != nil {
		return err
	}
	mesh.WeightsTime = times

	if len(times) > 0 && times[len(times)-1] > bc.animationMaxTime {
		bc.animationMaxTime = times[len(times)-1]
	}

	outputAccessor, err := bc.attributeAccessor(sampler.Output)
	if err != nil {
		return err
	}
	data, err := bc.reader.Floats(outputAccessor, 1)
	if err != nil {
		return err
	}
	mesh.WeightsData = data

	return nil
}
