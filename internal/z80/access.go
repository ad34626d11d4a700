package z80

// readReg8ByCode and writeReg8ByCode implement the {B,C,D,E,H,L,(HL),A}
// table under the current index mode: H and L become IXH/IXL or IYH/IYL,
// and the indirect code resolves to (IX+d)/(IY+d) through resolveHL. This
// is the single place the "H/L/HL rewriting" rule from the prefix decode
// lives; every opcode handler that reads or writes an 8-bit operand by code
// goes through here so the substitution never has to be repeated.
func (c *CPU) readReg8ByCode(code RegCode) byte {
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
		if c.IndexMode == IndexIX {
			return c.IXH
		}
		if c.IndexMode == IndexIY {
			return c.IYH
		}
		return c.H
	case RegL:
		if c.IndexMode == IndexIX {
			return c.IXL
		}
		if c.IndexMode == IndexIY {
			return c.IYL
		}
		return c.L
	case RegIndHL:
		return c.readMemory(c.resolveHL())
	default:
		return c.A
	}
}

func (c *CPU) writeReg8ByCode(code RegCode, v byte) {
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
		if c.IndexMode == IndexIX {
			c.IXH = v
		} else if c.IndexMode == IndexIY {
			c.IYH = v
		} else {
			c.H = v
		}
	case RegL:
		if c.IndexMode == IndexIX {
			c.IXL = v
		} else if c.IndexMode == IndexIY {
			c.IYL = v
		} else {
			c.L = v
		}
	case RegIndHL:
		c.writeMemory(c.resolveHL(), v)
	case RegA:
		c.A = v
	}
}

// resolveHL returns the effective address a (HL) operand refers to. Under
// IndexNone it is simply HL; under IX/IY mode it reads the trailing
// displacement byte, spends the 5-T internal delay the indexed-addressing
// M-cycle is documented to take, and latches WZ to the computed address.
func (c *CPU) resolveHL() uint16 {
	if c.IndexMode == IndexNone {
		return c.HL()
	}
	base := c.indexPair(c.IndexMode)
	d := int32(c.fetchSignedByte())
	c.delay(5)
	addr := uint16(int32(base) + d)
	c.WZ = addr
	return addr
}
