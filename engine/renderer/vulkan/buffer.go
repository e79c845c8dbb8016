package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"

	"morphvk/engine/core"
)

// Buffer is a Vulkan buffer together with its backing memory. The two are
// always created and destroyed as a pair.
type Buffer struct {
	Handle vk.Buffer
	Memory vk.DeviceMemory
	Size   uint64
}

// CreateBuffer creates a buffer of the given size and binds fresh memory
// to it. When data is non-nil the memory must be host visible; the bytes
// are copied in through a mapped range before returning.
func (d *Device) CreateBuffer(size uint64, usage vk.BufferUsageFlagBits, memoryProperties vk.MemoryPropertyFlagBits, data []byte) (*Buffer, error) {
	b := &Buffer{Size: size}

	bufferInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: vk.SharingModeExclusive,
	}

	err := d.Locks.SafeCall(BufferManagement, func() error {
		if res := vk.CreateBuffer(d.LogicalDevice, &bufferInfo, d.Allocator, &b.Handle); res != vk.Success {
			err := fmt.Errorf("failed to create buffer of size %d", size)
			core.LogError(err.Error())
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(d.LogicalDevice, b.Handle, &memoryRequirements)
	memoryRequirements.Deref()

	memoryIndex := d.FindMemoryIndex(memoryRequirements.MemoryTypeBits, uint32(memoryProperties))
	if memoryIndex < 0 {
		b.Destroy(d)
		return nil, core.ErrNoSuitableMemoryType
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memoryRequirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}

	err = d.Locks.SafeCall(MemoryManagement, func() error {
		if res := vk.AllocateMemory(d.LogicalDevice, &allocateInfo, d.Allocator, &b.Memory); res != vk.Success {
			err := fmt.Errorf("failed to allocate %d bytes of buffer memory", size)
			core.LogError(err.Error())
			return err
		}
		if res := vk.BindBufferMemory(d.LogicalDevice, b.Handle, b.Memory, 0); res != vk.Success {
			err := fmt.Errorf("failed to bind buffer memory")
			core.LogError(err.Error())
			return err
		}
		return nil
	})
	if err != nil {
		b.Destroy(d)
		return nil, err
	}

	if data != nil {
		var mapped unsafe.Pointer
		if res := vk.MapMemory(d.LogicalDevice, b.Memory, 0, vk.DeviceSize(size), 0, &mapped); res != vk.Success {
			b.Destroy(d)
			err := fmt.Errorf("failed to map buffer memory")
			core.LogError(err.Error())
			return nil, err
		}
		vk.Memcopy(mapped, data)
		vk.UnmapMemory(d.LogicalDevice, b.Memory)
	}

	return b, nil
}

// CreateDeviceLocalBuffer uploads data into a device-local buffer through
// a host-visible staging buffer and a single-use command buffer. The copy
// is flushed synchronously; the staging buffer never outlives the call.
func (d *Device) CreateDeviceLocalBuffer(data []byte, usage vk.BufferUsageFlagBits) (*Buffer, error) {
	size := uint64(len(data))

	staging, err := d.CreateBuffer(size,
		vk.BufferUsageTransferSrcBit,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit,
		data)
	if err != nil {
		return nil, err
	}
	defer staging.Destroy(d)

	local, err := d.CreateBuffer(size,
		usage|vk.BufferUsageTransferDstBit,
		vk.MemoryPropertyDeviceLocalBit,
		nil)
	if err != nil {
		return nil, err
	}

	cb, err := AllocateAndBeginSingleUse(d)
	if err != nil {
		local.Destroy(d)
		return nil, err
	}
	copyRegion := vk.BufferCopy{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(size),
	}
	vk.CmdCopyBuffer(cb.Handle, staging.Handle, local.Handle, 1, []vk.BufferCopy{copyRegion})
	if err := cb.EndSingleUse(d, d.GraphicsQueue); err != nil {
		local.Destroy(d)
		return nil, err
	}

	return local, nil
}

// Destroy releases the buffer handle and its memory together.
func (b *Buffer) Destroy(d *Device) {
	if b == nil {
		return
	}
	if b.Handle != vk.NullBuffer {
		vk.DestroyBuffer(d.LogicalDevice, b.Handle, d.Allocator)
		b.Handle = vk.NullBuffer
	}
	if b.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(d.LogicalDevice, b.Memory, d.Allocator)
		b.Memory = vk.NullDeviceMemory
	}
	b.Size = 0
}
