//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Compiles every package and the heroscene command.
func (Build) All() error {
	return sh.RunV("go", "build", "./...")
}

// Installs the heroscene command.
func (Build) Install() error {
	return sh.RunV("go", "install", "./cmd/heroscene")
}

// Runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Renders two seconds of the hero scene into ./out with a snapshot.
func Render() error {
	mg.Deps(Test)
	return sh.RunV("go", "run", "./cmd/heroscene",
		"-config", "testdata/hero.toml",
		"-frames", "120",
		"-out", "out",
		"-snapshot", "out/snapshot.json",
	)
}

// Renders two seconds of the specials backdrop into ./out/specials.
func RenderSpecials() error {
	mg.Deps(Test)
	return sh.RunV("go", "run", "./cmd/heroscene",
		"-config", "testdata/hero.toml",
		"-scene", "specials",
		"-frames", "120",
		"-out", "out/specials",
	)
}
