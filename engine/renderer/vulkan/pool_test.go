package vulkan

import (
	"errors"
	"testing"
)

func TestSafeQueueCallUnregisteredFamily(t *testing.T) {
	lp := NewLockPool()

	// No SetQueueFamily beforehand; the mutex is created on demand.
	called := false
	if err := lp.SafeQueueCall(3, func() error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("SafeQueueCall returned error: %v", err)
	}
	if !called {
		t.Error("callback was not invoked")
	}
}

func TestSafeCallPropagatesError(t *testing.T) {
	lp := NewLockPool()
	want := errors.New("device lost")

	if err := lp.SafeCall(BufferManagement, func() error { return want }); !errors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
}
