package vm

import "encoding/binary"

// State is the mutable execution state of a single run (spec §3 "State").
// Program identity (the parsed instruction list) is carried alongside but
// excluded from Reset, matching the original emulator's reset_state, which
// clears everything except the loaded program.
type State struct {
	Running bool
	PC      uint64
	Flag    bool
	Regs    []uint64

	Tape1 []uint64
	Tape2 []uint64

	Memory []byte

	Result uint64
}

func newState(numRegisters uint16) *State {
	return &State{Regs: make([]uint64, numRegisters)}
}

// reset restores a State to its just-constructed values so a VM can be rerun
// against a fresh tape pair without reparsing its program (spec §5, prover
// strategies that re-execute the same program many times over a domain).
func (s *State) reset(tape1, tape2 []uint64) {
	s.Running = false
	s.PC = 0
	s.Flag = false
	for i := range s.Regs {
		s.Regs[i] = 0
	}
	s.Tape1 = append([]uint64(nil), tape1...)
	s.Tape2 = append([]uint64(nil), tape2...)
	s.Memory = s.Memory[:0]
	s.Result = 0
}

// growMemory lazily extends memory with zero bytes so it is at least n bytes
// long, mirroring the original's Vec-resize-on-write behavior for store.b
// and store.w.
func (s *State) growMemory(n int) {
	if len(s.Memory) >= n {
		return
	}
	grown := make([]byte, n)
	copy(grown, s.Memory)
	s.Memory = grown
}

// processState streams the canonical per-step serialization described in
// spec §4.2 into the supplied sink: pc (8 bytes, big-endian), flag (1 byte),
// each register (8 bytes big-endian, in order), then each byte of memory in
// its current (grown-prefix) order.
func (s *State) processState(sink func([]byte)) {
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], s.PC)
	sink(buf[:])

	if s.Flag {
		sink([]byte{0x01})
	} else {
		sink([]byte{0x00})
	}

	for _, r := range s.Regs {
		binary.BigEndian.PutUint64(buf[:], r)
		sink(buf[:])
	}

	for _, b := range s.Memory {
		sink([]byte{b})
	}
}

// outputWord reads the 8-byte little-endian word at memory address 0, which
// is the program's externally observable "output" (spec §3, distinct from
// the exit code set by `answer`). Memory shorter than 8 bytes is treated as
// implicitly zero-padded.
func (s *State) outputWord() uint64 {
	var buf [8]byte
	copy(buf[:], s.Memory)
	return binary.LittleEndian.Uint64(buf[:])
}
