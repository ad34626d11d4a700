package z80

// Precomputed flag and result tables for the ALU. Each table is built once,
// at package init, from closed-form formulas so the hot instruction-dispatch
// path never branches to compute a flag — it just indexes an array. This
// mirrors the lookup-table idiom the rest of the retrieved pack uses for
// static derived data (e.g. a title/checksum -> palette-id table), scaled up
// to the full set of arithmetic/rotate/shift/DAA tables a Z80 core needs.

var parityTable [256]byte // 1 = even parity, 0 = odd

// incOpFlags holds F (minus C, which INC/DEC preserve) after INC r8,
// indexed by the pre-increment value.
var incOpFlags [256]byte

// decOpFlags holds F (minus C) after DEC r8, indexed by the pre-decrement value.
var decOpFlags [256]byte

// aluLogOpFlags holds F after AND/OR/XOR (H always 0 here; AND ORs FlagH in
// at the call site), indexed by the result byte.
var aluLogOpFlags [256]byte

// rolOpResults/rorOpResults hold the plain rotated byte (no flags), used by
// rotate/shift paths that only need the value, keyed by the input byte.
var rolOpResults [256]byte
var rorOpResults [256]byte

// rlcFlags/rrcFlags/rlCarry0Flags/rlCarry1Flags/rrCarry0Flags/rrCarry1Flags/
// sraFlags each pack (result<<8)|flags for the named rotate/shift, keyed by
// the input byte. SLA reuses rlCarry0Flags, SLL reuses rlCarry1Flags (it
// always shifts a 1 into bit 0, regardless of the prior carry), and SRL
// reuses rrCarry0Flags, since those three undocumented/documented shifts
// produce exactly the same (result, flags) pairs as the corresponding
// carry-fixed rotate.
var rlcFlags [256]uint16
var rrcFlags [256]uint16
var rlCarry0Flags [256]uint16
var rlCarry1Flags [256]uint16
var rrCarry0Flags [256]uint16
var rrCarry1Flags [256]uint16
var sraFlags [256]uint16

// adcFlags/sbcFlags hold F after ADC/SBC, indexed by (carryIn<<16)|(A<<8)|operand.
var adcFlags [0x20000]byte
var sbcFlags [0x20000]byte

// daaResults holds (newA<<8)|newF after DAA, indexed by
// (h<<10)|(n<<9)|(c<<8)|A.
var daaResults [2048]uint16

func init() {
	initParityTable()
	initIncDecTables()
	initLogOpTable()
	initRotateTables()
	initAdcSbcTables()
	initDaaTable()
}

func initParityTable() {
	for v := 0; v < 256; v++ {
		bits := 0
		for b := v; b != 0; b &= b - 1 {
			bits++
		}
		if bits%2 == 0 {
			parityTable[v] = 1
		}
	}
}

// srzFlags returns the S/Z/R3/R5 bits for a result byte. Bit 3 and bit 5 of
// the byte line up exactly with FlagR3 and FlagR5, so they're copied directly.
func srzFlags(v byte) byte {
	var f byte
	if v&0x80 != 0 {
		f |= FlagS
	}
	if v == 0 {
		f |= FlagZ
	}
	f |= v & (FlagR3 | FlagR5)
	return f
}

func parityFlag(v byte) byte {
	if parityTable[v] == 1 {
		return FlagPV
	}
	return 0
}

func initIncDecTables() {
	for pre := 0; pre < 256; pre++ {
		post := byte(pre+1) & 0xFF
		f := srzFlags(post)
		if pre&0x0F == 0x0F {
			f |= FlagH
		}
		if pre == 0x7F {
			f |= FlagPV
		}
		incOpFlags[pre] = f

		post = byte(pre-1) & 0xFF
		f = srzFlags(post) | FlagN
		if pre&0x0F == 0x00 {
			f |= FlagH
		}
		if pre == 0x80 {
			f |= FlagPV
		}
		decOpFlags[pre] = f
	}
}

func initLogOpTable() {
	for v := 0; v < 256; v++ {
		aluLogOpFlags[v] = srzFlags(byte(v)) | parityFlag(byte(v))
	}
}

func initRotateTables() {
	for v := 0; v < 256; v++ {
		b := byte(v)

		rol := (b << 1) | (b >> 7)
		ror := (b >> 1) | (b << 7)
		rolOpResults[v] = rol
		rorOpResults[v] = ror

		// RLC: rotate left, bit 7 -> bit 0 and -> carry.
		rlcFlags[v] = pack(rol, flagsFor(rol, b&0x80 != 0))

		// RRC: rotate right, bit 0 -> bit 7 and -> carry.
		rrcFlags[v] = pack(ror, flagsFor(ror, b&0x01 != 0))

		// RL with carry-in 0/1: shift left, bit 0 <- carry-in, carry-out <- bit 7.
		rl0 := b << 1
		rl1 := (b << 1) | 1
		rlCarry0Flags[v] = pack(rl0, flagsFor(rl0, b&0x80 != 0))
		rlCarry1Flags[v] = pack(rl1, flagsFor(rl1, b&0x80 != 0))

		// RR with carry-in 0/1: shift right, bit 7 <- carry-in, carry-out <- bit 0.
		rr0 := b >> 1
		rr1 := (b >> 1) | 0x80
		rrCarry0Flags[v] = pack(rr0, flagsFor(rr0, b&0x01 != 0))
		rrCarry1Flags[v] = pack(rr1, flagsFor(rr1, b&0x01 != 0))

		// SRA: shift right, sign bit preserved, carry-out <- bit 0.
		sra := (b >> 1) | (b & 0x80)
		sraFlags[v] = pack(sra, flagsFor(sra, b&0x01 != 0))
	}
}

func pack(result, flags byte) uint16 { return uint16(result)<<8 | uint16(flags) }

// flagsFor computes S/Z/R3/R5/P(parity)/H=0/N=0/C for a rotate or shift
// result, the shared shape of every rotate/shift flag table.
func flagsFor(result byte, carryOut bool) byte {
	f := srzFlags(result) | parityFlag(result)
	if carryOut {
		f |= FlagC
	}
	return f
}

func initAdcSbcTables() {
	for cin := 0; cin < 2; cin++ {
		for a := 0; a < 256; a++ {
			for op := 0; op < 256; op++ {
				idx := (cin << 16) | (a << 8) | op
				adcFlags[idx] = computeAddFlags(byte(a), byte(op), cin == 1)
				sbcFlags[idx] = computeSubFlags(byte(a), byte(op), cin == 1)
			}
		}
	}
}

func computeAddFlags(a, op byte, cin bool) byte {
	ci := 0
	if cin {
		ci = 1
	}
	sum := int(a) + int(op) + ci
	result := byte(sum)
	f := srzFlags(result)
	if (int(a&0x0F) + int(op&0x0F) + ci) > 0x0F {
		f |= FlagH
	}
	if sum > 0xFF {
		f |= FlagC
	}
	signedSum := int(int8(a)) + int(int8(op)) + ci
	if signedSum < -128 || signedSum > 127 {
		f |= FlagPV
	}
	return f
}

func computeSubFlags(a, op byte, cin bool) byte {
	ci := 0
	if cin {
		ci = 1
	}
	diff := int(a) - int(op) - ci
	result := byte(diff)
	f := srzFlags(result) | FlagN
	if (int(a&0x0F) - int(op&0x0F) - ci) < 0 {
		f |= FlagH
	}
	if diff < 0 {
		f |= FlagC
	}
	signedDiff := int(int8(a)) - int(int8(op)) - ci
	if signedDiff < -128 || signedDiff > 127 {
		f |= FlagPV
	}
	return f
}

func initDaaTable() {
	for h := 0; h < 2; h++ {
		for n := 0; n < 2; n++ {
			for c := 0; c < 2; c++ {
				for a := 0; a < 256; a++ {
					idx := (h << 10) | (n << 9) | (c << 8) | a
					daaResults[idx] = computeDaa(byte(a), h == 1, n == 1, c == 1)
				}
			}
		}
	}
}

// computeDaa applies the documented BCD adjustment: pick a correction from
// {0x00,0x06,0x60,0x66} based on the decimal digits and H/C, add it (or
// subtract it, after a subtraction) from A, and derive the resulting flags.
func computeDaa(a byte, h, n, c bool) uint16 {
	correction := byte(0x00)
	newC := c

	loNibble := a & 0x0F
	hiNibble := a >> 4

	if !n { // previous op was addition
		if c || a > 0x99 {
			correction |= 0x60
			newC = true
		}
		if h || loNibble > 0x09 {
			correction |= 0x06
		}
	} else { // previous op was subtraction
		if c {
			newC = true
			if loNibble > 0x09 || h {
				correction |= 0x66
			} else {
				correction |= 0x60
			}
		} else if h {
			correction |= 0x06
		} else if loNibble > 0x09 {
			if hiNibble > 0x08 || loNibble > 0x09 {
				correction |= 0x06
			}
		}
		if !c && a > 0x99 {
			correction |= 0x60
		}
	}

	var newA byte
	var newH bool
	if !n {
		newA = a + correction
		newH = h2FromAdd(loNibble, h)
	} else {
		newA = a - correction
		newH = h2FromSub(loNibble, h)
	}

	f := srzFlags(newA) | parityFlag(newA)
	if newC {
		f |= FlagC
	}
	if n {
		f |= FlagN
	}
	if newH {
		f |= FlagH
	}
	return pack(newA, f)
}

// h2FromAdd mirrors the documented DAA half-carry rule after an addition:
// H' is set iff the low nibble was above 9. The incoming H does not affect
// it, although an incoming H alone still selects the 0x06 correction.
func h2FromAdd(loNibble byte, _ bool) bool {
	return loNibble > 0x09
}

// h2FromSub mirrors the half-carry rule after a subtraction: H' is set iff
// the low nibble was < 0x06 and the incoming H was set (borrow propagated
// out of the low nibble during the correction).
func h2FromSub(loNibble byte, h bool) bool {
	return h && loNibble < 0x06
}
