//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified.
var Default = Build.Cli

type Build mg.Namespace

// Builds the facadegen binary into bin/.
func (Build) Cli() error {
	mg.Deps(Tidy)
	_, err := executeCmd("go", withArgs("build", "-o", "bin/facadegen", "./cmd/facadegen"), withStream())
	return err
}

// Runs the unit tests with the race detector.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs go vet over the module.
func Lint() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs go mod tidy.
func Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"))
	return err
}
