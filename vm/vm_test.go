package vm

import (
	"os"
	"strings"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func mustParse(t *testing.T, path string) (Params, []Instruction, map[string]uint64) {
	t.Helper()
	f, err := os.Open(path)
	assert(t, err == nil, "opening %s: %v", path, err)
	defer f.Close()
	params, program, labels, err := Parse(f)
	assert(t, err == nil, "parsing %s: %v", path, err)
	return params, program, labels
}

func TestFibonacci(t *testing.T) {
	params, program, labels := mustParse(t, "../testdata/fib.tr")
	machine, err := New(params, program, labels)
	assert(t, err == nil, "constructing vm: %v", err)

	machine.LoadTapes([]uint64{39}, nil)
	err = machine.Run(nil)
	assert(t, err == nil, "running: %v", err)
	assert(t, machine.ExitCode() == 0, "expected exit code 0, got %d", machine.ExitCode())
	assert(t, machine.Output() == 63245986, "expected output 63245986, got %d", machine.Output())
}

func TestCollatz(t *testing.T) {
	params, program, labels := mustParse(t, "../testdata/collatz_v0.tr")
	machine, err := New(params, program, labels)
	assert(t, err == nil, "constructing vm: %v", err)

	for _, n := range []uint64{1, 2, 27, 97, 999} {
		machine.LoadTapes([]uint64{n}, nil)
		err = machine.Run(nil)
		assert(t, err == nil, "running n=%d: %v", n, err)
		assert(t, machine.Output() == 0, "n=%d: expected output 0, got %d", n, machine.Output())
	}
}

func TestRerunWithoutReparse(t *testing.T) {
	params, program, labels := mustParse(t, "../testdata/fib.tr")
	machine, err := New(params, program, labels)
	assert(t, err == nil, "constructing vm: %v", err)

	machine.LoadTapes([]uint64{10}, nil)
	assert(t, machine.Run(nil) == nil, "first run failed")
	first := machine.Output()

	machine.LoadTapes([]uint64{10}, nil)
	assert(t, machine.Run(nil) == nil, "second run failed")
	second := machine.Output()

	assert(t, first == second, "expected deterministic rerun, got %d then %d", first, second)
}

func TestSegfaultSynthesizesAnswerOne(t *testing.T) {
	params := Params{WordSize: 64, Registers: 1, Arch: archHarvard, Version: specVersion}
	program := []Instruction{} // empty program: pc=0 is immediately out of bounds
	machine, err := New(params, program, map[string]uint64{})
	assert(t, err == nil, "constructing vm: %v", err)

	machine.LoadTapes(nil, nil)
	assert(t, machine.Run(nil) == nil, "run should not error on segfault")
	assert(t, machine.ExitCode() == 1, "expected synthesized exit code 1, got %d", machine.ExitCode())
}

func TestReadEmptyTapeSetsFlag(t *testing.T) {
	src := strings.NewReader("; TinyRAM V=2.0 M=hv W=64 K=4\nread r0, 0\nanswer 0\n")
	params, program, labels, err := Parse(src)
	assert(t, err == nil, "parsing: %v", err)
	machine, err := New(params, program, labels)
	assert(t, err == nil, "constructing vm: %v", err)

	machine.LoadTapes(nil, nil)
	assert(t, machine.Run(nil) == nil, "run failed")
	assert(t, machine.State().Flag, "expected flag set after reading empty tape")
	assert(t, machine.readReg(0) == 0, "expected r0 == 0 after reading empty tape")
}

func TestProgramIdentityStable(t *testing.T) {
	params, program, labels := mustParse(t, "../testdata/fib.tr")
	machine, err := New(params, program, labels)
	assert(t, err == nil, "constructing vm: %v", err)

	a, err := machine.ProgramIdentity()
	assert(t, err == nil, "identity: %v", err)
	b, err := machine.ProgramIdentity()
	assert(t, err == nil, "identity: %v", err)
	assert(t, string(a) == string(b), "expected program identity to be stable across calls")
}
