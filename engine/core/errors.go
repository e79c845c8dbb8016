package core

import (
	"errors"
)

var (
	// ErrAssetLoadFailure means the glTF parser could not produce a scene.
	ErrAssetLoadFailure = errors.New("asset load failure")

	// ErrMissingRequiredAttribute means a primitive has no POSITION
	// attribute. Aborts the whole load.
	ErrMissingRequiredAttribute = errors.New("missing required attribute")

	// ErrUnsupportedComponentType means an accessor declares a component
	// type outside the supported set (float32 for vertex attributes;
	// uint8, uint16, uint32 for indices).
	ErrUnsupportedComponentType = errors.New("unsupported component type")

	// ErrNoSuitableMemoryType means the device exposes no memory type
	// matching the requested filter and property flags.
	ErrNoSuitableMemoryType = errors.New("no suitable memory type")
)
