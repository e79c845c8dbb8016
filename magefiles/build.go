//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the GLSL shaders to SPIR-V.
func (Build) Shaders() error {
	shaders := []string{
		"assets/shaders/static.vert",
		"assets/shaders/morph.vert",
		"assets/shaders/scene.frag",
	}
	for _, shader := range shaders {
		if _, err := executeCmd("glslc", withArgs(shader, "-o", shader+".spv"), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Builds the morphvk binary.
func (Build) Binary() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/morphvk", "."), withStream()); err != nil {
		return err
	}
	return nil
}
