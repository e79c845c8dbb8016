package core

import "testing"

func TestMetricsFrame(t *testing.T) {
	MetricsInitialize()

	for i := 0; i < metricsWindow; i++ {
		MetricsUpdate(0.01)
	}
	_, frameTime := MetricsFrame()
	if frameTime != 10 {
		t.Errorf("frame time = %f, want 10ms", frameTime)
	}

	// Accumulate past one second of frame time to close an FPS window.
	for i := 0; i < 100; i++ {
		MetricsUpdate(0.01)
	}
	fps, _ := MetricsFrame()
	if fps != 100 {
		t.Errorf("fps = %f, want 100", fps)
	}
}
