package main

import (
	"fmt"
	"os"

	"ckc/vm"
)

// machineBuilder returns a closure that reparses programFile fresh on every
// call, the shape verifier.Verifier needs to re-execute a program from
// scratch for each witness it re-checks.
func machineBuilder(programFile string) func() (*vm.VM, error) {
	return func() (*vm.VM, error) {
		f, err := os.Open(programFile)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", programFile, err)
		}
		defer f.Close()

		params, program, labels, err := vm.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", programFile, err)
		}
		return vm.New(params, program, labels)
	}
}

func loadTapeOrNil(path string) ([]uint64, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tape %s: %w", path, err)
	}
	defer f.Close()
	return vm.LoadTapeFile(f)
}
