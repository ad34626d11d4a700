package z80

import (
	"bytes"
	"encoding/gob"
	"os"
)

// State is the serializable snapshot of a CPU: every architectural
// register plus the dispatcher's control state, enough to resume after a
// stop on an instruction boundary or after a DD/FD, ED or CB prefix byte.
// The pending flag of a DDCB/FDCB sequence whose final opcode has been
// read but not executed is not captured, nor are InterruptVector,
// AllowExtendedInstructionSet and InstrumentMemory.
type State struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	A2, F2 byte
	B2, C2 byte
	D2, E2 byte
	H2, L2 byte

	IX, IY byte
	IXHi   byte // kept distinct from the low-byte IX field name for gob clarity
	IYHi   byte

	I, R byte
	PC   uint16
	SP   uint16
	WZ   uint16

	TactsLow  uint32
	TactsHigh uint32

	StateFlags StateFlag
	IFF1, IFF2 bool

	InterruptMode      InterruptMode
	IsInterruptBlocked bool
	IsInOpExecution    bool
	PrefixMode         PrefixMode
	IndexMode          IndexMode

	MaskableInterruptModeEntered bool
	OpCode                       byte
	UseGateArrayContention       bool
}

// GetState copies every register and control-state field into a State
// value, splitting the 64-bit tact counter into two 32-bit halves for a
// stable wire format across hosts that might otherwise disagree on int size.
func (c *CPU) GetState() State {
	return State{
		A: c.A, F: c.F,
		B: c.B, C: c.C,
		D: c.D, E: c.E,
		H: c.H, L: c.L,

		A2: c.A2, F2: c.F2,
		B2: c.B2, C2: c.C2,
		D2: c.D2, E2: c.E2,
		H2: c.H2, L2: c.L2,

		IX: c.IXL, IXHi: c.IXH,
		IY: c.IYL, IYHi: c.IYH,

		I: c.I, R: c.R,
		PC: c.PC, SP: c.SP, WZ: c.WZ,

		TactsLow:  uint32(c.Tacts),
		TactsHigh: uint32(c.Tacts >> 32),

		StateFlags: c.StateFlags,
		IFF1:       c.IFF1,
		IFF2:       c.IFF2,

		InterruptMode:      c.InterruptMode,
		IsInterruptBlocked: c.IsInterruptBlocked,
		IsInOpExecution:    c.IsInOpExecution,
		PrefixMode:         c.PrefixMode,
		IndexMode:          c.IndexMode,

		MaskableInterruptModeEntered: c.MaskableInterruptModeEntered,
		OpCode:                       c.OpCode,
		UseGateArrayContention:       c.UseGateArrayContention,
	}
}

// SetState restores every field GetState captured. The Bus, Contention,
// OnTact, and TraceFunc collaborators are untouched — a host reattaches
// those itself after restoring state.
func (c *CPU) SetState(s State) {
	c.A, c.F = s.A, s.F
	c.B, c.C = s.B, s.C
	c.D, c.E = s.D, s.E
	c.H, c.L = s.H, s.L

	c.A2, c.F2 = s.A2, s.F2
	c.B2, c.C2 = s.B2, s.C2
	c.D2, c.E2 = s.D2, s.E2
	c.H2, c.L2 = s.H2, s.L2

	c.IXL, c.IXH = s.IX, s.IXHi
	c.IYL, c.IYH = s.IY, s.IYHi

	c.I, c.R = s.I, s.R
	c.PC, c.SP, c.WZ = s.PC, s.SP, s.WZ

	c.Tacts = uint64(s.TactsHigh)<<32 | uint64(s.TactsLow)

	c.StateFlags = s.StateFlags
	c.IFF1 = s.IFF1
	c.IFF2 = s.IFF2

	c.InterruptMode = s.InterruptMode
	c.IsInterruptBlocked = s.IsInterruptBlocked
	c.IsInOpExecution = s.IsInOpExecution
	c.PrefixMode = s.PrefixMode
	c.IndexMode = s.IndexMode

	c.MaskableInterruptModeEntered = s.MaskableInterruptModeEntered
	c.OpCode = s.OpCode
	c.UseGateArrayContention = s.UseGateArrayContention
}

// SaveState gob-encodes the CPU's snapshot as a single opaque byte slice a
// host can stash anywhere — file, network message, rewind ring buffer.
func (c *CPU) SaveState() []byte {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	_ = enc.Encode(c.GetState())
	return buf.Bytes()
}

// LoadState decodes a snapshot produced by SaveState and applies it.
func (c *CPU) LoadState(data []byte) error {
	var s State
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return err
	}
	c.SetState(s)
	return nil
}

// SaveStateToFile and LoadStateFromFile are file-backed convenience
// wrappers for snapshot debugging.
func (c *CPU) SaveStateToFile(path string) error {
	return os.WriteFile(path, c.SaveState(), 0o644)
}

func (c *CPU) LoadStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.LoadState(data)
}
