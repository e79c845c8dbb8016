package core

import "sync"

// Number of frames the rolling frame-time average spans.
const metricsWindow = 30

type metricsState struct {
	frameTimes   [metricsWindow]float64
	frameCounter int

	frameTimeAvg float64
	frames       int
	accumulated  float64
	fps          float64
}

var onceMetrics sync.Once
var metrics *metricsState

func MetricsInitialize() {
	onceMetrics.Do(func() {
		metrics = &metricsState{}
	})
}

// MetricsUpdate records one frame. frameElapsed is in seconds.
func MetricsUpdate(frameElapsed float64) {
	frameMS := frameElapsed * 1000.0

	metrics.frameTimes[metrics.frameCounter] = frameMS
	metrics.frameCounter++
	if metrics.frameCounter == metricsWindow {
		metrics.frameCounter = 0
		sum := 0.0
		for _, t := range metrics.frameTimes {
			sum += t
		}
		metrics.frameTimeAvg = sum / metricsWindow
	}

	metrics.accumulated += frameMS
	if metrics.accumulated > 1000 {
		metrics.fps = float64(metrics.frames)
		metrics.accumulated -= 1000
		metrics.frames = 0
	}
	metrics.frames++
}

// MetricsFrame returns the frames per second and the rolling average
// frame time in milliseconds.
func MetricsFrame() (float64, float64) {
	return metrics.fps, metrics.frameTimeAvg
}
