package model

import (
	"unsafe"

	vk "github.com/goki/vulkan"
)

// DrawStatic records one indexed draw per static primitive. The shared
// static vertex and index buffers are bound once up front; primitives
// address their ranges through FirstIndex/IndexCount.
func (mdl *Model) DrawStatic(commandBuffer vk.CommandBuffer) {
	if mdl.staticVertexBuffer == nil || mdl.staticIndexBuffer == nil {
		return
	}

	offsets := []vk.DeviceSize{0}
	vk.CmdBindVertexBuffers(commandBuffer, 0, 1, []vk.Buffer{mdl.staticVertexBuffer.Handle}, offsets)
	vk.CmdBindIndexBuffer(commandBuffer, mdl.staticIndexBuffer.Handle, 0, vk.IndexTypeUint32)

	for _, mesh := range mdl.MeshesStatic {
		for _, primitive := range mesh.Primitives {
			vk.CmdDrawIndexed(commandBuffer, primitive.IndexCount, 1, primitive.FirstIndex, 0, 0)
		}
	}
}

// DrawMorph records the morph meshes. Per mesh the push constant record
// is re-sent and the shared morph vertex buffer is bound at the mesh's
// vertex region, which is why morph indices stay zero-based.
func (mdl *Model) DrawMorph(commandBuffer vk.CommandBuffer, pipelineLayout vk.PipelineLayout) {
	if mdl.morphVertexBuffer == nil || mdl.morphIndexBuffer == nil {
		return
	}

	for _, mesh := range mdl.MeshesMorph {
		pc := mesh.PushConstants
		vk.CmdPushConstants(commandBuffer, pipelineLayout,
			vk.ShaderStageFlags(vk.ShaderStageVertexBit),
			0, uint32(unsafe.Sizeof(pc)), unsafe.Pointer(&pc))

		offsets := []vk.DeviceSize{vk.DeviceSize(mesh.MorphVertexOffset)}
		vk.CmdBindVertexBuffers(commandBuffer, 0, 1, []vk.Buffer{mdl.morphVertexBuffer.Handle}, offsets)
		vk.CmdBindIndexBuffer(commandBuffer, mdl.morphIndexBuffer.Handle, 0, vk.IndexTypeUint32)

		for _, primitive := range mesh.Primitives {
			vk.CmdDrawIndexed(commandBuffer, primitive.IndexCount, 1, primitive.FirstIndex, 0, 0)
		}
	}
}
