package vulkan

import "sync"

type LockGroup string

const (
	CommandBufferManagement LockGroup = "command_buffer_management"
	BufferManagement        LockGroup = "buffer_management"
	MemoryManagement        LockGroup = "memory_management"
)

// Mutex pool. Serializes device calls per concern and submissions per
// queue family.
type LockPool struct {
	locks map[LockGroup]*sync.Mutex
	mu    sync.Mutex // Protects access to the locks map

	queueMutexes map[uint32]*sync.Mutex // Queue family index as key
}

func NewLockPool() *LockPool {
	return &LockPool{
		locks:        make(map[LockGroup]*sync.Mutex),
		queueMutexes: make(map[uint32]*sync.Mutex),
	}
}

// Get or create a mutex for a specific group
func (lp *LockPool) setLock(group LockGroup) *sync.Mutex {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if _, exists := lp.locks[group]; !exists {
		lp.locks[group] = &sync.Mutex{}
	}
	lp.locks[group].Lock()

	return lp.locks[group]
}

func (lp *LockPool) SafeCall(group LockGroup, fn func() error) error {
	l := lp.setLock(group)
	defer l.Unlock()

	return fn()
}

func (lp *LockPool) SetQueueFamily(index uint32) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if _, exists := lp.queueMutexes[index]; !exists {
		lp.queueMutexes[index] = &sync.Mutex{}
	}
}

func (lp *LockPool) SafeQueueCall(queueFamilyIndex uint32, fn func() error) error {
	lp.mu.Lock()
	l, exists := lp.queueMutexes[queueFamilyIndex]
	if !exists {
		l = &sync.Mutex{}
		lp.queueMutexes[queueFamilyIndex] = l
	}
	lp.mu.Unlock()

	l.Lock()
	defer l.Unlock()

	return fn()
}
