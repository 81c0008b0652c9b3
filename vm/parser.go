package vm

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Parse reads TinyRAM-style program text (spec §6) and returns its declared
// Params together with the parsed instruction list and resolved label table.
// The caller passes the result to New to build a runnable VM.
func Parse(r io.Reader) (Params, []Instruction, map[string]uint64, error) {
	scanner := bufio.NewScanner(r)

	var header string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		header = line
		break
	}
	if header == "" {
		return Params{}, nil, nil, errBadHeader
	}
	params, err := parseHeader(header)
	if err != nil {
		return Params{}, nil, nil, err
	}

	var program []Instruction
	labels := make(map[string]uint64)

	for scanner.Scan() {
		raw := scanner.Text()
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if lbl, ok := parseLabelDecl(line); ok {
			if _, dup := labels[lbl]; dup {
				return Params{}, nil, nil, errDuplicateLabel
			}
			labels[lbl] = uint64(len(program))
			continue
		}

		instr, err := parseInstruction(line)
		if err != nil {
			return Params{}, nil, nil, err
		}
		program = append(program, instr)
	}
	if err := scanner.Err(); err != nil {
		return Params{}, nil, nil, err
	}

	if err := checkInstructions(params, program, labels); err != nil {
		return Params{}, nil, nil, err
	}

	return params, program, labels, nil
}

// headerRe matches "; TinyRAM V=2.0 M=hv W=<w> K=<k>" (spec §6), with the
// fields separated by arbitrary whitespace.
var headerRe = regexp.MustCompile(`^;\s*TinyRAM\s+V=(\S+)\s+M=(\S+)\s+W=(\d+)\s+K=(\d+)\s*$`)

func parseHeader(line string) (Params, error) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return Params{}, errBadHeader
	}
	wordSize, err := strconv.ParseUint(m[3], 10, 8)
	if err != nil {
		return Params{}, errBadHeader
	}
	registers, err := strconv.ParseUint(m[4], 10, 16)
	if err != nil {
		return Params{}, errBadHeader
	}
	params := Params{
		Version:   m[1],
		Arch:      m[2],
		WordSize:  uint8(wordSize),
		Registers: uint16(registers),
	}
	if err := params.Validate(); err != nil {
		return Params{}, err
	}
	return params, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}

// labelDeclRe matches a label declaration line: an underscore-prefixed
// identifier terminated by a colon, anchored at both ends (spec §6).
var labelDeclRe = regexp.MustCompile(`^_[0-9A-Za-z_]+:$`)

func parseLabelDecl(line string) (string, bool) {
	if !labelDeclRe.MatchString(line) {
		return "", false
	}
	return line[:len(line)-1], true
}

func splitFields(line string) []string {
	line = strings.ReplaceAll(line, ",", " ")
	return strings.Fields(line)
}

func parseInstruction(line string) (Instruction, error) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return Instruction{}, errInvalidLine
	}
	op, ok := namesToOpcode[fields[0]]
	if !ok {
		return Instruction{}, fmt.Errorf("%w: %s", errUnknownOpcode, fields[0])
	}
	operands := fields[1:]
	if len(operands) != op.arity() {
		return Instruction{}, fmt.Errorf("%w: %s wants %d operand(s), got %d", errBadArity, fields[0], op.arity(), len(operands))
	}

	instr := Instruction{Op: op}

	switch op.arity() {
	case 1:
		arg, err := parseArgument(operands[0])
		if err != nil {
			return Instruction{}, err
		}
		instr.Arg = arg

	case 2:
		if op == OpStoreB || op == OpStoreW {
			// store.b/store.w take (addr, reg) — the one documented
			// exception to destination-register-first ordering.
			arg, err := parseArgument(operands[0])
			if err != nil {
				return Instruction{}, err
			}
			reg, err := parseRegister(operands[1])
			if err != nil {
				return Instruction{}, err
			}
			instr.Arg = arg
			instr.Reg1 = reg
		} else {
			reg, err := parseRegister(operands[0])
			if err != nil {
				return Instruction{}, err
			}
			arg, err := parseArgument(operands[1])
			if err != nil {
				return Instruction{}, err
			}
			instr.Reg1 = reg
			instr.Arg = arg
		}

	default: // 3
		reg1, err := parseRegister(operands[0])
		if err != nil {
			return Instruction{}, err
		}
		reg2, err := parseRegister(operands[1])
		if err != nil {
			return Instruction{}, err
		}
		arg, err := parseArgument(operands[2])
		if err != nil {
			return Instruction{}, err
		}
		instr.Reg1 = reg1
		instr.Reg2 = reg2
		instr.Arg = arg
	}

	return instr, nil
}

func parseRegister(tok string) (uint16, error) {
	if !strings.HasPrefix(tok, "r") {
		return 0, fmt.Errorf("%w: expected register, got %q", errInvalidLine, tok)
	}
	n, err := strconv.ParseUint(tok[1:], 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: expected register, got %q", errInvalidLine, tok)
	}
	return uint16(n), nil
}

func parseArgument(tok string) (Argument, error) {
	if strings.HasPrefix(tok, "r") {
		if reg, err := parseRegister(tok); err == nil {
			return Argument{Kind: ArgRegister, Register: reg}, nil
		}
	}
	if strings.HasPrefix(tok, "_") {
		return Argument{Kind: ArgLabel, Label: tok}, nil
	}
	imm, err := strconv.ParseInt(tok, 0, 64)
	if err != nil {
		return Argument{}, fmt.Errorf("%w: bad immediate %q", errInvalidLine, tok)
	}
	return Argument{Kind: ArgImmediate, Immediate: imm}, nil
}

// checkInstructions validates register indices and label references against
// the declared params and the resolved label table, once the whole program
// is known (spec §3 register-index and label-resolution invariants).
func checkInstructions(params Params, program []Instruction, labels map[string]uint64) error {
	checkReg := func(r uint16) error {
		if r >= params.Registers {
			return fmt.Errorf("%w: r%d", errRegisterOOB, r)
		}
		return nil
	}
	for _, instr := range program {
		switch instr.Op.arity() {
		case 2:
			if err := checkReg(instr.Reg1); err != nil {
				return err
			}
		case 3:
			if err := checkReg(instr.Reg1); err != nil {
				return err
			}
			if err := checkReg(instr.Reg2); err != nil {
				return err
			}
		}
		if instr.Arg.Kind == ArgRegister {
			if err := checkReg(instr.Arg.Register); err != nil {
				return err
			}
		}
		if instr.Arg.Kind == ArgLabel {
			if _, ok := labels[instr.Arg.Label]; !ok {
				return fmt.Errorf("%w: %s", errUndefinedLabel, instr.Arg.Label)
			}
		}
	}
	return nil
}

// LoadTapeFile reads a tape file: one non-negative integer per line, in
// order, forming the tape consumed front-to-back by `read` (spec §6,
// grounded on original_source's Parser::load_tape_file).
func LoadTapeFile(r io.Reader) ([]uint64, error) {
	scanner := bufio.NewScanner(r)
	var tape []uint64
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, errBadTapeValue
		}
		tape = append(tape, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tape, nil
}
