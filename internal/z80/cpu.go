// Package z80 implements the core of a cycle-accurate Zilog Z80 interpreter:
// the register file, the precomputed flag tables, the ALU, the bus
// interface, and the fetch/decode/execute dispatcher with its prefix state
// machine and interrupt handling. Memory, I/O devices, and displays are
// external collaborators reached only through the Bus interface — this
// package never allocates or owns a byte of host memory.
package z80

// CPU is a single Z80 core instance: the full register file plus the
// control-state fields a host needs to drive and observe the dispatcher one
// step at a time.
type CPU struct {
	Registers

	Bus        Bus
	Contention ContentionProvider

	Tacts uint64

	StateFlags StateFlag
	IFF1, IFF2 bool

	InterruptMode       InterruptMode
	IsInterruptBlocked  bool
	IsInOpExecution     bool
	PrefixMode          PrefixMode
	IndexMode           IndexMode
	OpCode              byte
	MaskableInterruptModeEntered bool

	AllowExtendedInstructionSet bool
	UseGateArrayContention      bool
	InstrumentMemory            bool

	// InterruptVector is the byte the interrupting device places on the
	// data bus during a mode-2 interrupt acknowledge cycle. A host
	// drives this (by wiring its own device logic) before raising SigINT;
	// it defaults to 0xFF, the common float-high convention when no
	// device drives the bus.
	InterruptVector byte

	// OnTact, when set, is invoked after every tact-advancing bus access
	// with the cumulative tact count, so a host can render contention or
	// update a waveform without the core depending on any particular
	// display/audio package.
	OnTact func(tacts uint64)

	// TraceFunc, when set, is invoked once per ExecuteCycle that decodes a
	// byte (each prefix byte gets its own call) with a PC, that byte, and a
	// tact count: for a freshly fetched byte, its address and the count
	// before its fetch; for the cached final byte of a DDCB/FDCB sequence,
	// the current PC and count. Purely a host-side debugging hook.
	TraceFunc func(pc uint16, opcode byte, tacts uint64)

	execTouched  statusBitmap
	readTouched  statusBitmap
	writeTouched statusBitmap

	// eiJustExecuted/ddfdJustExecuted track which instruction just ran so
	// the post-step hook can decide whether to keep IsInterruptBlocked.
	eiJustExecuted   bool
	ddfdJustExecuted bool

	// indexedBitPending is set once the DD/FD CB d byte sequence has been
	// consumed up through the displacement and the final opcode byte has
	// been peeked into OpCode; the next ExecuteCycle call dispatches it
	// directly instead of fetching a new opcode.
	indexedBitPending bool
}

// New constructs a CPU with every register set to all-ones, matching
// power-on, and all control state zeroed. allowExtended sets
// AllowExtendedInstructionSet, which routes unrecognized ED opcodes to
// dispatchExtendedED; that hook defines no opcodes, so they stay NOPs.
func New(allowExtended bool) *CPU {
	c := &CPU{
		AllowExtendedInstructionSet: allowExtended,
		Contention:                  noContention{},
		InterruptVector:             0xFF,
	}
	c.TurnOn()
	return c
}

// SetBus installs the host's memory/port callbacks. The core performs no
// memory or I/O access before this is called.
func (c *CPU) SetBus(b Bus) { c.Bus = b }

// TurnOn re-initializes every register to all-ones (the documented
// power-on state) without touching control-state fields such as IFF1/IFF2
// or the pending signal bitfield.
func (c *CPU) TurnOn() {
	c.A, c.F = 0xFF, 0xFF
	c.B, c.C = 0xFF, 0xFF
	c.D, c.E = 0xFF, 0xFF
	c.H, c.L = 0xFF, 0xFF
	c.A2, c.F2 = 0xFF, 0xFF
	c.B2, c.C2 = 0xFF, 0xFF
	c.D2, c.E2 = 0xFF, 0xFF
	c.H2, c.L2 = 0xFF, 0xFF
	c.IXH, c.IXL = 0xFF, 0xFF
	c.IYH, c.IYL = 0xFF, 0xFF
	c.I, c.R = 0xFF, 0xFF
	c.SP, c.PC, c.WZ = 0xFFFF, 0xFFFF, 0xFFFF
}

// Reset applies the RESET protocol: PC, I, R, IFF1, IFF2, interrupt mode,
// prefix/index mode, and the interrupt-blocked latch all go to zero, the
// pending-signal bitfield is cleared, and the tact ledger restarts at zero.
// Reset is always a safe recovery action — any invariant drift in the
// dispatcher's mid-instruction state can be corrected by calling this.
func (c *CPU) Reset() {
	c.PC = 0
	c.I = 0
	c.R = 0
	c.IFF1 = false
	c.IFF2 = false
	c.InterruptMode = IM0
	c.PrefixMode = PrefixNone
	c.IndexMode = IndexNone
	c.IsInterruptBlocked = false
	c.IsInOpExecution = false
	c.StateFlags = 0
	c.Tacts = 0
	c.MaskableInterruptModeEntered = false
}

// RequestReset, RequestNMI, and RequestInterrupt latch the corresponding
// pending signal; ExecuteCycle services it on its next call. There is no
// request method for HALT: the HALT opcode handler sets SigHalt itself.
func (c *CPU) RequestReset()     { c.StateFlags |= SigReset }
func (c *CPU) RequestNMI()       { c.StateFlags |= SigNMI }
func (c *CPU) RequestInterrupt() { c.StateFlags |= SigINT }

// Halted reports whether the CPU is currently in the HALT state.
func (c *CPU) Halted() bool { return c.StateFlags&SigHalt != 0 }

// Delay adds n idle tacts with no bus access, exposed to hosts that need to
// account for device-side stretching the core itself doesn't model.
func (c *CPU) Delay(n int) { c.delay(n) }

// ExecuteCycle advances the CPU by one dispatch step: it services at most
// one pending signal, or else fetches, decodes, and executes exactly one
// instruction (which may itself be one M-cycle of a multi-byte prefixed
// opcode sequence, per the prefix state machine).
func (c *CPU) ExecuteCycle() {
	if c.StateFlags != 0 {
		if c.serviceSignals() {
			return
		}
	}

	if c.indexedBitPending {
		c.indexedBitPending = false
		if c.TraceFunc != nil {
			c.TraceFunc(c.PC, c.OpCode, c.Tacts)
		}
		c.dispatchIndexedBit(c.OpCode)
		c.PrefixMode = PrefixNone
		c.IndexMode = IndexNone
		c.IsInterruptBlocked = false
		return
	}

	pcBefore := c.PC
	tactsBefore := c.Tacts
	c.OpCode = c.fetchOpcode()
	if c.TraceFunc != nil {
		c.TraceFunc(pcBefore, c.OpCode, tactsBefore)
	}

	c.eiJustExecuted = false
	c.ddfdJustExecuted = false

	c.dispatch(c.OpCode)

	if !c.eiJustExecuted && !c.ddfdJustExecuted {
		c.IsInterruptBlocked = false
	}
}

// serviceSignals processes pending signals in priority order: INT, lone
// HALT, RESET, NMI. Exactly one completes per call. It returns true if a
// signal was serviced (in which case ExecuteCycle does not also fetch an
// opcode this call).
func (c *CPU) serviceSignals() bool {
	if c.StateFlags&SigINT != 0 && c.IFF1 && !c.IsInterruptBlocked {
		c.StateFlags &^= SigINT
		c.executeInterrupt()
		return true
	}
	if c.StateFlags == SigHalt {
		c.touchExec(c.PC)
		c.advanceTacts(3, c.PC)
		c.delay(1)
		c.bumpR()
		return true
	}
	if c.StateFlags&SigReset != 0 {
		c.StateFlags &^= SigReset
		c.Reset()
		return true
	}
	if c.StateFlags&SigNMI != 0 {
		c.StateFlags &^= SigNMI
		c.executeNMI()
		return true
	}
	return false
}

// GetReg8 reads an 8-bit register by its standard {B,C,D,E,H,L,(HL),A} code.
// Reading the indirect code 6 or an out-of-range code returns the defined
// sentinel 0xFF, per spec §7's programmer-error convention.
func (c *CPU) GetReg8(code RegCode) byte {
	switch code {
	case RegB:
		return c.B
	case RegC:
		return c.C
	case RegD:
		return c.D
	case RegE:
		return c.E
	case RegH:
		return c.H
	case RegL:
		return c.L
	case RegA:
		return c.A
	default:
		return 0xFF
	}
}

// SetReg8 writes an 8-bit register by code; the indirect code 6 and any
// out-of-range code are a documented no-op.
func (c *CPU) SetReg8(code RegCode, v byte) {
	switch code {
	case RegB:
		c.B = v
	case RegC:
		c.C = v
	case RegD:
		c.D = v
	case RegE:
		c.E = v
	case RegH:
		c.H = v
	case RegL:
		c.L = v
	case RegA:
		c.A = v
	}
}

// GetReg16 reads a 16-bit pair by the {BC,DE,HL,SP} code.
func (c *CPU) GetReg16(code PairCode) uint16 {
	if code > PairSP {
		return 0xFFFF
	}
	return c.pairByCode(code, IndexNone)
}

// SetReg16 writes a 16-bit pair by the {BC,DE,HL,SP} code.
func (c *CPU) SetReg16(code PairCode, v uint16) {
	if code > PairSP {
		return
	}
	c.setPairByCode(code, IndexNone, v)
}

// GetCallInstructionLength is a static classifier used by a host's
// step-over debugger: 3 for CALL nn / conditional CALL, 1 for RST n and
// HALT, 2 for a block-ED repeating op, 0 for anything else. It inspects but
// never executes the instruction at pc.
func (c *CPU) GetCallInstructionLength(pc uint16) int {
	if c.Bus == nil {
		return 0
	}
	op := c.Bus.ReadMemory(pc)
	switch {
	case op == 0xCD: // CALL nn
		return 3
	case op&0xC7 == 0xC4 && op >= 0xC4 && op <= 0xFC: // CALL cc,nn
		return 3
	case op&0xC7 == 0xC7: // RST n
		return 1
	case op == 0x76: // HALT
		return 1
	case op == 0xED:
		second := c.Bus.ReadMemory(pc + 1)
		switch second {
		case 0xB0, 0xB1, 0xB2, 0xB3, 0xB8, 0xB9, 0xBA, 0xBB:
			return 2
		}
	}
	return 0
}
