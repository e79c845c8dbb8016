package model

import (
	"github.com/qmuntal/gltf"

	"morphvk/engine/math"
)

// AlphaMode mirrors the source asset's alpha handling.
type AlphaMode int

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

// Material holds shading factors plus integer texture handles. A handle
// is an index into the document's image table, -1 when the slot is unset.
// Texture decode and upload happen elsewhere.
type Material struct {
	AlphaMode   AlphaMode
	AlphaCutoff float32
	DoubleSided bool

	BaseColorFactor math.Vec4
	MetallicFactor  float32
	RoughnessFactor float32

	BaseColorTexture         int32
	MetallicRoughnessTexture int32
	NormalTexture            int32
	OcclusionTexture         int32
	EmissiveTexture          int32
}

// resolveTexture maps a texture table index to its backing image index.
func resolveTexture(doc *gltf.Document, textureIndex uint32) int32 {
	if int(textureIndex) >= len(doc.Textures) {
		return -1
	}
	tex := doc.Textures[textureIndex]
	if tex.Source == nil {
		return -1
	}
	return int32(*tex.Source)
}

func loadMaterials(doc *gltf.Document) []Material {
	materials := make([]Material, 0, len(doc.Materials))
	for _, src := range doc.Materials {
		mat := Material{
			AlphaCutoff:              1.0,
			BaseColorFactor:          math.NewVec4(1, 1, 1, 1),
			MetallicFactor:           1.0,
			RoughnessFactor:          1.0,
			BaseColorTexture:         -1,
			MetallicRoughnessTexture: -1,
			NormalTexture:            -1,
			OcclusionTexture:         -1,
			EmissiveTexture:          -1,
		}

		switch src.AlphaMode {
		case gltf.AlphaMask:
			mat.AlphaMode = AlphaMask
		case gltf.AlphaBlend:
			mat.AlphaMode = AlphaBlend
		default:
			mat.AlphaMode = AlphaOpaque
		}
		if src.AlphaCutoff != nil {
			mat.AlphaCutoff = float32(*src.AlphaCutoff)
		}
		mat.DoubleSided = src.DoubleSided

		if pbr := src.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				f := *pbr.BaseColorFactor
				mat.BaseColorFactor = math.NewVec4(float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3]))
			}
			if pbr.MetallicFactor != nil {
				mat.MetallicFactor = float32(*pbr.MetallicFactor)
			}
			if pbr.RoughnessFactor != nil {
				mat.RoughnessFactor = float32(*pbr.RoughnessFactor)
			}
			if pbr.BaseColorTexture != nil {
				mat.BaseColorTexture = resolveTexture(doc, pbr.BaseColorTexture.Index)
			}
			if pbr.MetallicRoughnessTexture != nil {
				mat.MetallicRoughnessTexture = resolveTexture(doc, pbr.MetallicRoughnessTexture.Index)
			}
		}
		if src.NormalTexture != nil && src.NormalTexture.Index != nil {
			mat.NormalTexture = resolveTexture(doc, *src.NormalTexture.Index)
		}
		if src.OcclusionTexture != nil && src.OcclusionTexture.Index != nil {
			mat.OcclusionTexture = resolveTexture(doc, *src.OcclusionTexture.Index)
		}
		if src.EmissiveTexture != nil {
			mat.EmissiveTexture = resolveTexture(doc, src.EmissiveTexture.Index)
		}

		materials = append(materials, mat)
	}
	return materials
}
