package engine

import (
	"morphvk/engine/assets"
	"morphvk/engine/config"
	"morphvk/engine/core"
	"morphvk/engine/model"
	"morphvk/engine/platform"
	"morphvk/engine/renderer/vulkan"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine owns the window, the device and the loaded model and drives the
// animation loop.
type Engine struct {
	currentStage Stage
	config       *config.Config
	platform     *platform.Platform
	device       *vulkan.Device
	model        *model.Model
	watcher      *assets.Watcher
	clock        *core.Clock
	isRunning    bool
	lastTime     float64
}

func New(cfg *config.Config) *Engine {
	return &Engine{
		currentStage: EngineStageUninitialized,
		config:       cfg,
		platform:     platform.New(),
		clock:        core.NewClock(),
	}
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	core.MetricsInitialize()

	cfg := e.config
	if err := e.platform.Startup(cfg.Application.Name, cfg.Application.Width, cfg.Application.Height); err != nil {
		return err
	}

	debug := cfg.Logging.Level == "debug"
	device, err := vulkan.NewDevice(cfg.Application.Name, e.platform.GetRequiredExtensionNames(), debug)
	if err != nil {
		return err
	}
	e.device = device

	mdl, err := model.LoadFromFile(cfg.Model.Path, e.device, cfg.Model.GlobalScale)
	if err != nil {
		return err
	}
	e.model = mdl

	if cfg.Assets.Watch {
		watcher, err := assets.NewWatcher()
		if err != nil {
			return err
		}
		if err := watcher.Watch(cfg.Assets.Directory); err != nil {
			watcher.Close()
			return err
		}
		e.watcher = watcher
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop until the window closes or Stop is called.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning = true

	e.clock.Start()
	e.lastTime = e.platform.GetAbsoluteTime()
	lastReport := e.lastTime

	for e.isRunning && !e.platform.ShouldClose() {
		e.platform.PumpMessages()
		e.clock.Update()

		currentTime := e.platform.GetAbsoluteTime()
		delta := currentTime - e.lastTime
		e.lastTime = currentTime

		core.MetricsUpdate(delta)
		if currentTime-lastReport > 5 {
			fps, frameTime := core.MetricsFrame()
			core.LogDebug("fps: %.0f, frame time: %.2fms", fps, frameTime)
			lastReport = currentTime
		}

		e.model.Advance(float32(delta))

		if e.watcher != nil {
			select {
			case path, ok := <-e.watcher.Events():
				if ok {
					e.reloadModel(path)
				}
			default:
			}
		}
	}
	return nil
}

// reloadModel swaps the current model for a fresh load of the changed
// asset. A failed load keeps the running model.
func (e *Engine) reloadModel(path string) {
	core.LogInfo("model asset changed, reloading: %s", path)

	mdl, err := model.LoadFromFile(path, e.device, e.config.Model.GlobalScale)
	if err != nil {
		core.LogError("reload failed, keeping current model: %v", err)
		return
	}

	e.device.WaitIdle()
	e.model.Destroy(e.device)
	e.model = mdl
}

// Stop requests the frame loop to exit. Safe to call from a goroutine.
func (e *Engine) Stop() {
	e.isRunning = false
}

func (e *Engine) Shutdown() {
	e.currentStage = EngineStageShuttingDown
	e.clock.Update()
	core.LogInfo("shutting down after %.1fs", e.clock.Elapsed()/1e9)
	e.clock.Stop()

	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
	if e.device != nil {
		e.device.WaitIdle()
	}
	if e.model != nil {
		e.model.Destroy(e.device)
		e.model = nil
	}
	if e.device != nil {
		e.device.Destroy()
		e.device = nil
	}
	e.platform.Shutdown()
}
