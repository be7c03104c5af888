//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Exports the bundled terrace example into out/.
func (Run) Example() error {
	mg.Deps(Build.Cli)
	fmt.Println("Export example...")
	_, err := executeCmd("bin/facadegen",
		withArgs("build",
			"-catalog", "internal/export/testdata/catalog.yaml",
			"-o", "out",
			"internal/export/testdata/terrace.yaml"),
		withStream())
	return err
}
