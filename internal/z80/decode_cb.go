package z80

// shiftOp applies the rotate/shift selected by the CB opcode's y field
// (when its top two bits x are 0), in the documented order RLC,RRC,RL,RR,
// SLA,SRA,SLL,SRL.
func (c *CPU) shiftOp(y byte, v byte) byte {
	switch y {
	case 0:
		return c.Rlc(v)
	case 1:
		return c.Rrc(v)
	case 2:
		return c.Rl(v)
	case 3:
		return c.Rr(v)
	case 4:
		return c.Sla(v)
	case 5:
		return c.Sra(v)
	case 6:
		return c.Sll(v)
	default:
		return c.Srl(v)
	}
}

// dispatchCB executes a plain CB-prefixed opcode: rotate/shift, BIT, RES, or
// SET against one of the eight {B,C,D,E,H,L,(HL),A} operands. IndexMode is
// always None on this path; the indexed (DDCB/FDCB) form is handled
// entirely separately by dispatchIndexedBit.
func (c *CPU) dispatchCB(op byte) {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	code := regCodeFromField(z)

	switch x {
	case 0: // rotate/shift
		v := c.readReg8ByCode(code)
		result := c.shiftOp(y, v)
		if code == RegIndHL {
			c.delay(1)
		}
		c.writeReg8ByCode(code, result)
	case 1: // BIT y,r
		v := c.readReg8ByCode(code)
		c.BitTest(y, v, code == RegIndHL)
		if code == RegIndHL {
			c.delay(1)
		}
	case 2: // RES y,r
		v := c.readReg8ByCode(code)
		result := ResBit(y, v)
		if code == RegIndHL {
			c.delay(1)
		}
		c.writeReg8ByCode(code, result)
	default: // SET y,r
		v := c.readReg8ByCode(code)
		result := SetBit(y, v)
		if code == RegIndHL {
			c.delay(1)
		}
		c.writeReg8ByCode(code, result)
	}
}

// dispatchIndexedBit executes the DDCB/FDCB form. The displacement has
// already been consumed and WZ holds the effective (IX+d)/(IY+d) address;
// op is the final opcode byte peeked during beginIndexedBit. BIT never
// writes back; RES/SET/rotate-shift write the result both to memory and,
// per the documented undocumented behavior, to the plain register named by
// the low 3 bits of op when that field is not 6.
func (c *CPU) dispatchIndexedBit(op byte) {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7

	addr := c.WZ
	v := c.readMemory(addr)

	if x == 1 { // BIT y,(IX+d)
		c.BitTest(y, v, true)
		c.delay(1)
		return
	}

	var result byte
	switch x {
	case 0:
		result = c.shiftOp(y, v)
	case 2:
		result = ResBit(y, v)
	default:
		result = SetBit(y, v)
	}
	c.writeMemory(addr, result)
	if z != 6 {
		c.SetReg8(regCodeFromField(z), result)
	}
}
