package z80

// RegCode indexes the Z80 "register by index" table used throughout the
// unprefixed and CB-prefixed opcode encodings: B, C, D, E, H, L, (HL), A.
// Index 6 is reserved for the indirect (HL)/(IX+d)/(IY+d) form and is never
// read or written directly through GetReg8/SetReg8.
type RegCode uint8

const (
	RegB RegCode = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegIndHL
	RegA
)

// PairCode indexes the 2-bit "register pair by index" table {BC, DE, HL, SP}
// used by 16-bit opcodes, and its PUSH/POP variant {BC, DE, HL, AF}.
type PairCode uint8

const (
	PairBC PairCode = iota
	PairDE
	PairHL
	PairSP // PairAF when used by PUSH/POP decoding
)

// IndexMode selects which index register (if any) stands in for HL in the
// current instruction's decode.
type IndexMode uint8

const (
	IndexNone IndexMode = iota
	IndexIX
	IndexIY
)

// PrefixMode is the dispatcher's current decode-table selector.
type PrefixMode uint8

const (
	PrefixNone PrefixMode = iota
	PrefixED
	PrefixCB
)

// InterruptMode is the Z80's three maskable interrupt response modes.
type InterruptMode uint8

const (
	IM0 InterruptMode = iota
	IM1
	IM2
)

// StateFlag is a bit in the dispatcher's pending-signal bitfield.
type StateFlag uint8

const (
	SigINT StateFlag = 1 << iota
	SigNMI
	SigReset
	SigHalt
)

// Flag bit positions within F (and F'), bit 7 down to bit 0: S Z R5 H R3 P/V N C.
const (
	FlagC  byte = 1 << 0
	FlagN  byte = 1 << 1
	FlagPV byte = 1 << 2
	FlagR3 byte = 1 << 3
	FlagH  byte = 1 << 4
	FlagR5 byte = 1 << 5
	FlagZ  byte = 1 << 6
	FlagS  byte = 1 << 7
)

// Registers holds the Z80's complete architectural and internal state:
// both register banks, the index registers, the interrupt/refresh pair,
// the program counter, stack pointer, and the internal WZ (MEMPTR) latch.
//
// 16-bit pairs are decomposed into their halves little-endian: the low
// byte is always the low-order half of the pair's accessor methods below.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	A2, F2 byte
	B2, C2 byte
	D2, E2 byte
	H2, L2 byte

	IXH, IXL byte
	IYH, IYL byte

	I, R byte

	SP, PC, WZ uint16
}

func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }
func (r *Registers) SetAF(v uint16) {
	r.A = byte(v >> 8)
	r.F = byte(v)
}

func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) SetBC(v uint16) {
	r.B = byte(v >> 8)
	r.C = byte(v)
}

func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) SetDE(v uint16) {
	r.D = byte(v >> 8)
	r.E = byte(v)
}

func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) SetHL(v uint16) {
	r.H = byte(v >> 8)
	r.L = byte(v)
}

func (r *Registers) AF2() uint16 { return uint16(r.A2)<<8 | uint16(r.F2) }
func (r *Registers) SetAF2(v uint16) {
	r.A2 = byte(v >> 8)
	r.F2 = byte(v)
}

func (r *Registers) BC2() uint16 { return uint16(r.B2)<<8 | uint16(r.C2) }
func (r *Registers) SetBC2(v uint16) {
	r.B2 = byte(v >> 8)
	r.C2 = byte(v)
}

func (r *Registers) DE2() uint16 { return uint16(r.D2)<<8 | uint16(r.E2) }
func (r *Registers) SetDE2(v uint16) {
	r.D2 = byte(v >> 8)
	r.E2 = byte(v)
}

func (r *Registers) HL2() uint16 { return uint16(r.H2)<<8 | uint16(r.L2) }
func (r *Registers) SetHL2(v uint16) {
	r.H2 = byte(v >> 8)
	r.L2 = byte(v)
}

func (r *Registers) IX() uint16 { return uint16(r.IXH)<<8 | uint16(r.IXL) }
func (r *Registers) SetIX(v uint16) {
	r.IXH = byte(v >> 8)
	r.IXL = byte(v)
}

func (r *Registers) IY() uint16 { return uint16(r.IYH)<<8 | uint16(r.IYL) }
func (r *Registers) SetIY(v uint16) {
	r.IYH = byte(v >> 8)
	r.IYL = byte(v)
}

// indexPair returns the IX or IY pair selected by mode, or HL for IndexNone.
func (r *Registers) indexPair(mode IndexMode) uint16 {
	switch mode {
	case IndexIX:
		return r.IX()
	case IndexIY:
		return r.IY()
	default:
		return r.HL()
	}
}

func (r *Registers) setIndexPair(mode IndexMode, v uint16) {
	switch mode {
	case IndexIX:
		r.SetIX(v)
	case IndexIY:
		r.SetIY(v)
	default:
		r.SetHL(v)
	}
}

// pairByCode implements the {BC,DE,HL,SP} table used by 16-bit opcodes
// (LD dd,nn; ADD HL,dd; INC/DEC dd; ...), honoring the current index mode's
// HL substitution.
func (r *Registers) pairByCode(code PairCode, mode IndexMode) uint16 {
	switch code {
	case PairBC:
		return r.BC()
	case PairDE:
		return r.DE()
	case PairHL:
		return r.indexPair(mode)
	default:
		return r.SP
	}
}

func (r *Registers) setPairByCode(code PairCode, mode IndexMode, v uint16) {
	switch code {
	case PairBC:
		r.SetBC(v)
	case PairDE:
		r.SetDE(v)
	case PairHL:
		r.setIndexPair(mode, v)
	default:
		r.SP = v
	}
}

// pushPopPairByCode implements the PUSH/POP variant {BC,DE,HL,AF}.
func (r *Registers) pushPopPairByCode(code PairCode, mode IndexMode) uint16 {
	switch code {
	case PairBC:
		return r.BC()
	case PairDE:
		return r.DE()
	case PairHL:
		return r.indexPair(mode)
	default:
		return r.AF()
	}
}

func (r *Registers) setPushPopPairByCode(code PairCode, mode IndexMode, v uint16) {
	switch code {
	case PairBC:
		r.SetBC(v)
	case PairDE:
		r.SetDE(v)
	case PairHL:
		r.setIndexPair(mode, v)
	default:
		r.SetAF(v)
	}
}

// bumpR increments R by one M1 cycle, preserving the top bit.
func (r *Registers) bumpR() {
	r.R = (r.R & 0x80) | ((r.R + 1) & 0x7F)
}
