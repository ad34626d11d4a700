package z80

// dispatchStandard executes every unprefixed opcode, reached either
// directly or after a DD/FD prefix (in which case IndexMode rewrites any
// H/L/HL/(HL) reference this instruction happens to make, through the
// helpers it calls (readReg8ByCode/writeReg8ByCode, resolveHL, pairByCode,
// indexPair) — this function never tests IndexMode itself). op 0xCB/0xED/0xDD/0xFD never reach here; dispatch
// intercepts them first.
//
// The decomposition follows the standard Z80 bitfield scheme: x = op>>6,
// y = (op>>3)&7, z = op&7, p = y>>1, q = y&1.
func (c *CPU) dispatchStandard(op byte) {
	if op == 0x76 { // HALT, carved out before the generic LD r,r' decode
		c.StateFlags |= SigHalt
		c.PC--
		return
	}

	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		c.dispatchQuadrant0(y, z, p, q)
	case 1:
		v := c.readReg8ByCode(regCodeFromField(z))
		c.writeReg8ByCode(regCodeFromField(y), v)
	case 2:
		operand := c.readReg8ByCode(regCodeFromField(z))
		c.Alu8(AluOp(y), operand)
	default:
		c.dispatchQuadrant3(y, z, p, q)
	}
}

func (c *CPU) dispatchQuadrant0(y, z, p, q byte) {
	switch z {
	case 0:
		c.dispatchRelativeJumps(y)
	case 1:
		pair := pairFromField(p)
		if q == 0 {
			c.setPairByCode(pair, c.IndexMode, c.fetchWord())
		} else {
			c.Add16(c.pairByCode(pair, c.IndexMode))
		}
	case 2:
		c.dispatchIndirectLoad(p, q)
	case 3:
		pair := pairFromField(p)
		v := c.pairByCode(pair, c.IndexMode)
		c.delay(2)
		if q == 0 {
			v++
		} else {
			v--
		}
		c.setPairByCode(pair, c.IndexMode, v)
	case 4:
		c.incReg(regCodeFromField(y))
	case 5:
		c.decReg(regCodeFromField(y))
	case 6:
		c.loadImmediate(regCodeFromField(y))
	case 7:
		c.dispatchAccumulatorOp(y)
	}
}

func (c *CPU) dispatchRelativeJumps(y byte) {
	switch y {
	case 0: // NOP
	case 1: // EX AF,AF'
		af, af2 := c.AF(), c.AF2()
		c.SetAF(af2)
		c.SetAF2(af)
	case 2: // DJNZ d
		c.delay(1)
		c.B--
		d := int32(c.fetchSignedByte())
		if c.B != 0 {
			c.PC = uint16(int32(c.PC) + d)
			c.delay(5)
			c.WZ = c.PC
		}
	case 3: // JR d
		d := int32(c.fetchSignedByte())
		c.PC = uint16(int32(c.PC) + d)
		c.delay(5)
		c.WZ = c.PC
	default: // JR cc,d  (y = 4..7 -> cc = y-4)
		d := int32(c.fetchSignedByte())
		if c.conditionSatisfied(conditionFromField(y - 4)) {
			c.PC = uint16(int32(c.PC) + d)
			c.delay(5)
			c.WZ = c.PC
		}
	}
}

func (c *CPU) dispatchIndirectLoad(p, q byte) {
	switch p {
	case 0:
		if q == 0 {
			c.writeMemory(c.BC(), c.A)
		} else {
			c.A = c.readMemory(c.BC())
		}
		c.WZ = c.BC() + 1
	case 1:
		if q == 0 {
			c.writeMemory(c.DE(), c.A)
		} else {
			c.A = c.readMemory(c.DE())
		}
		c.WZ = c.DE() + 1
	case 2:
		addr := c.fetchWord()
		if q == 0 {
			c.writeWord(addr, c.pairByCode(PairHL, c.IndexMode))
		} else {
			c.setPairByCode(PairHL, c.IndexMode, c.readWord(addr))
		}
		c.WZ = addr + 1
	default:
		addr := c.fetchWord()
		if q == 0 {
			c.writeMemory(addr, c.A)
		} else {
			c.A = c.readMemory(addr)
		}
		c.WZ = addr + 1
	}
}

func (c *CPU) incReg(code RegCode) {
	if code == RegIndHL {
		addr := c.resolveHL()
		v := c.readMemory(addr)
		c.delay(1)
		c.writeMemory(addr, c.applyInc(v))
		return
	}
	c.writeReg8ByCode(code, c.applyInc(c.readReg8ByCode(code)))
}

func (c *CPU) decReg(code RegCode) {
	if code == RegIndHL {
		addr := c.resolveHL()
		v := c.readMemory(addr)
		c.delay(1)
		c.writeMemory(addr, c.applyDec(v))
		return
	}
	c.writeReg8ByCode(code, c.applyDec(c.readReg8ByCode(code)))
}

func (c *CPU) applyInc(v byte) byte {
	c.F = (c.F & FlagC) | incOpFlags[v]
	return v + 1
}

func (c *CPU) applyDec(v byte) byte {
	c.F = (c.F & FlagC) | decOpFlags[v]
	return v - 1
}

func (c *CPU) loadImmediate(code RegCode) {
	if code == RegIndHL {
		if c.IndexMode == IndexNone {
			addr := c.HL()
			n := c.fetchByte()
			c.writeMemory(addr, n)
			return
		}
		// LD (IX+d),n / LD (IY+d),n: the displacement read is a plain 3T
		// access here, not resolveHL's 5T indexed-operand delay — the extra
		// 2T instead falls on the immediate fetch that follows it, per the
		// documented 4,4,3,2,3,3 = 19T M-cycle breakdown.
		base := c.indexPair(c.IndexMode)
		d := int32(c.fetchSignedByte())
		addr := uint16(int32(base) + d)
		c.WZ = addr
		c.delay(2)
		n := c.fetchByte()
		c.writeMemory(addr, n)
		return
	}
	c.writeReg8ByCode(code, c.fetchByte())
}

func (c *CPU) dispatchAccumulatorOp(y byte) {
	switch y {
	case 0:
		c.Rlca()
	case 1:
		c.Rrca()
	case 2:
		c.Rla()
	case 3:
		c.Rra()
	case 4:
		c.Daa()
	case 5:
		c.Cpl()
	case 6:
		c.Scf()
	case 7:
		c.Ccf()
	}
}

func (c *CPU) dispatchQuadrant3(y, z, p, q byte) {
	switch z {
	case 0: // RET cc
		c.delay(1)
		if c.conditionSatisfied(conditionFromField(y)) {
			c.PC = c.pop16()
			c.WZ = c.PC
		}
	case 1:
		c.dispatchStackOrTransfer(p, q)
	case 2: // JP cc,nn
		nn := c.fetchWord()
		c.WZ = nn
		if c.conditionSatisfied(conditionFromField(y)) {
			c.PC = nn
		}
	case 3:
		c.dispatchMiscGroup(y)
	case 4: // CALL cc,nn
		nn := c.fetchWord()
		c.WZ = nn
		if c.conditionSatisfied(conditionFromField(y)) {
			c.delay(1)
			c.push16(c.PC)
			c.PC = nn
		}
	case 5:
		c.dispatchPushOrCall(p, q)
	case 6: // alu[y] A,n
		c.Alu8(AluOp(y), c.fetchByte())
	case 7: // RST y*8
		c.delay(1)
		c.push16(c.PC)
		c.PC = uint16(y) * 8
		c.WZ = c.PC
	}
}

func (c *CPU) dispatchStackOrTransfer(p, q byte) {
	if q == 0 {
		c.setPushPopPairByCode(pairFromField(p), c.IndexMode, c.pop16())
		return
	}
	switch p {
	case 0: // RET
		c.PC = c.pop16()
		c.WZ = c.PC
	case 1: // EXX
		c.B, c.B2 = c.B2, c.B
		c.C, c.C2 = c.C2, c.C
		c.D, c.D2 = c.D2, c.D
		c.E, c.E2 = c.E2, c.E
		c.H, c.H2 = c.H2, c.H
		c.L, c.L2 = c.L2, c.L
	case 2: // JP (HL)/(IX)/(IY)
		c.PC = c.indexPair(c.IndexMode)
	default: // LD SP,HL/IX/IY
		c.delay(2)
		c.SP = c.indexPair(c.IndexMode)
	}
}

func (c *CPU) dispatchMiscGroup(y byte) {
	switch y {
	case 0: // JP nn
		nn := c.fetchWord()
		c.PC = nn
		c.WZ = nn
	case 1:
		// 0xCB; intercepted by dispatch before reaching here.
	case 2: // OUT (n),A
		n := c.fetchByte()
		port := uint16(c.A)<<8 | uint16(n)
		c.writePort(port, c.A)
		c.WZ = (uint16(c.A) << 8) | ((port + 1) & 0xFF)
	case 3: // IN A,(n)
		n := c.fetchByte()
		port := uint16(c.A)<<8 | uint16(n)
		c.A = c.readPort(port)
		c.WZ = port + 1
	case 4: // EX (SP),HL/IX/IY
		old := c.readWord(c.SP)
		c.writeWord(c.SP, c.indexPair(c.IndexMode))
		c.setIndexPair(c.IndexMode, old)
		c.delay(3)
		c.WZ = old
	case 5: // EX DE,HL: always the literal DE/HL pair, immune to DD/FD
		de := c.DE()
		c.SetDE(c.HL())
		c.SetHL(de)
	case 6: // DI
		c.IFF1 = false
		c.IFF2 = false
	case 7: // EI
		c.IFF1 = true
		c.IFF2 = true
		c.IsInterruptBlocked = true
		c.eiJustExecuted = true
	}
}

func (c *CPU) dispatchPushOrCall(p, q byte) {
	if q == 0 {
		c.delay(1)
		c.push16(c.pushPopPairByCode(pairFromField(p), c.IndexMode))
		return
	}
	switch p {
	case 0: // CALL nn
		nn := c.fetchWord()
		c.WZ = nn
		c.delay(1)
		c.push16(c.PC)
		c.PC = nn
	case 1, 2, 3:
		// 0xDD/0xED/0xFD; intercepted by dispatch before reaching here.
	}
}
