/*
Loads a glTF scene, flattens it into GPU-ready vertex and index buffers
and plays its morph target animations until the window closes.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"morphvk/engine"
	"morphvk/engine/config"
	"morphvk/engine/core"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}
	core.SetLogLevel(cfg.Logging.Level)

	e := engine.New(cfg)
	if err := e.Initialize(); err != nil {
		e.Shutdown()
		core.LogFatal("initialization failed: %v", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		e.Stop()
	}()

	if err := e.Run(); err != nil {
		core.LogError("run failed: %v", err)
	}
	e.Shutdown()
}
