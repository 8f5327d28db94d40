//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles every command into ./bin
func Build() error {
	mg.Deps(BuildSimulator, BuildInspect)
	fmt.Println("Compilation finished")
	return nil
}

func BuildSimulator() error {
	fmt.Println("Building simulator executable...")
	return goCommand("build", "-o", "./bin/simulator", "./simulator")
}

func BuildInspect() error {
	fmt.Println("Building inspect executable...")
	return goCommand("build", "-o", "./bin/inspect", "./inspect")
}

// Test runs the unit tests. HDF5 tests need the same CGO flags as the build.
func Test() error {
	return goCommand("test", "./...")
}

// The HDF5 bindings use cgo, forward the flags pointing to the library
func goCommand(args ...string) error {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
