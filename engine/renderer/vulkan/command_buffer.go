package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"morphvk/engine/core"
)

type CommandBufferState int

const (
	COMMAND_BUFFER_STATE_READY CommandBufferState = iota
	COMMAND_BUFFER_STATE_RECORDING
	COMMAND_BUFFER_STATE_RECORDING_ENDED
	COMMAND_BUFFER_STATE_SUBMITTED
	COMMAND_BUFFER_STATE_NOT_ALLOCATED
)

type CommandBuffer struct {
	Handle vk.CommandBuffer
	// Command buffer state.
	State CommandBufferState
}

func NewCommandBuffer(d *Device, isPrimary bool) (*CommandBuffer, error) {
	cb := &CommandBuffer{
		State: COMMAND_BUFFER_STATE_NOT_ALLOCATED,
	}

	level := vk.CommandBufferLevelSecondary
	if isPrimary {
		level = vk.CommandBufferLevelPrimary
	}

	allocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        d.GraphicsCommandPool,
		CommandBufferCount: 1,
		Level:              level,
	}

	handles := make([]vk.CommandBuffer, 1)
	err := d.Locks.SafeCall(CommandBufferManagement, func() error {
		if res := vk.AllocateCommandBuffers(d.LogicalDevice, &allocateInfo, handles); res != vk.Success {
			err := fmt.Errorf("failed to allocate command buffer")
			core.LogError(err.Error())
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cb.Handle = handles[0]
	cb.State = COMMAND_BUFFER_STATE_READY

	return cb, nil
}

func (cb *CommandBuffer) Free(d *Device) {
	vk.FreeCommandBuffers(d.LogicalDevice, d.GraphicsCommandPool, 1, []vk.CommandBuffer{cb.Handle})
	cb.Handle = nil
	cb.State = COMMAND_BUFFER_STATE_NOT_ALLOCATED
}

func (cb *CommandBuffer) Begin(isSingleUse, isSimultaneousUse bool) error {
	beginInfo := &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: 0,
	}

	if isSingleUse {
		beginInfo.Flags |= vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit)
	}
	if isSimultaneousUse {
		beginInfo.Flags |= vk.CommandBufferUsageFlags(vk.CommandBufferUsageSimultaneousUseBit)
	}

	if res := vk.BeginCommandBuffer(cb.Handle, beginInfo); res != vk.Success {
		err := fmt.Errorf("failed to begin command buffer")
		core.LogError(err.Error())
		return err
	}
	cb.State = COMMAND_BUFFER_STATE_RECORDING

	return nil
}

func (cb *CommandBuffer) End() error {
	if res := vk.EndCommandBuffer(cb.Handle); res != vk.Success {
		err := fmt.Errorf("failed to end command buffer")
		core.LogError(err.Error())
		return err
	}
	cb.State = COMMAND_BUFFER_STATE_RECORDING_ENDED
	return nil
}

/**
 * Allocates a primary command buffer and begins recording it for a single
 * submission.
 */
func AllocateAndBeginSingleUse(d *Device) (*CommandBuffer, error) {
	cb, err := NewCommandBuffer(d, true)
	if err != nil {
		return nil, err
	}
	if err := cb.Begin(true, false); err != nil {
		return nil, err
	}
	return cb, nil
}

/**
 * Ends recording, submits to and waits for the queue operation and frees
 * the provided command buffer.
 */
func (cb *CommandBuffer) EndSingleUse(d *Device, queue vk.Queue) error {
	if err := cb.End(); err != nil {
		return err
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cb.Handle},
	}

	err := d.Locks.SafeQueueCall(uint32(d.GraphicsQueueIndex), func() error {
		if res := vk.QueueSubmit(queue, 1, []vk.SubmitInfo{submitInfo}, nil); res != vk.Success {
			err := fmt.Errorf("failed to submit to queue")
			core.LogError(err.Error())
			return err
		}
		// Wait for it to finish
		if res := vk.QueueWaitIdle(queue); res != vk.Success {
			err := fmt.Errorf("queue failed to wait in idle mode")
			core.LogError(err.Error())
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	cb.Free(d)

	return nil
}
