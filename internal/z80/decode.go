package z80

// dispatch is the prefix state machine's decision point, called once per
// ExecuteCycle with the byte that was just fetched. It either consumes a
// prefix byte and returns (leaving state for the next call) or routes to
// one of the four opcode tables and clears the prefix/index state, since
// every table dispatch here is terminal.
func (c *CPU) dispatch(op byte) {
	switch {
	case c.PrefixMode == PrefixED:
		c.PrefixMode = PrefixNone
		c.dispatchED(op)
		c.IndexMode = IndexNone

	case c.PrefixMode == PrefixCB:
		c.PrefixMode = PrefixNone
		c.dispatchCB(op)
		c.IndexMode = IndexNone

	case op == 0xCB:
		if c.IndexMode != IndexNone {
			c.beginIndexedBit()
		} else {
			c.PrefixMode = PrefixCB
		}

	case op == 0xED:
		c.PrefixMode = PrefixED
		c.IndexMode = IndexNone

	case op == 0xDD:
		c.IndexMode = IndexIX
		c.IsInterruptBlocked = true
		c.ddfdJustExecuted = true

	case op == 0xFD:
		c.IndexMode = IndexIY
		c.IsInterruptBlocked = true
		c.ddfdJustExecuted = true

	default:
		c.dispatchStandard(op)
		c.IndexMode = IndexNone
	}
}

// beginIndexedBit handles the DD/FD CB sequence's displacement byte: it is
// read, and the internal delay (3 T for this path, distinct from the 5 T a
// plain indexed operand takes) is spent, before the final opcode byte is
// peeked off the bus without bumping R, per the documented fetch order
// DD/FD, CB, displacement, opcode. ExecuteCycle resumes directly on that
// cached opcode next call rather than fetching a new one.
func (c *CPU) beginIndexedBit() {
	base := c.indexPair(c.IndexMode)
	d := int32(c.fetchSignedByte())
	c.WZ = uint16(int32(base) + d)
	c.delay(3)

	addr := c.PC
	c.OpCode = c.Bus.ReadMemory(addr)
	c.touchExec(addr)
	c.advanceTacts(3, addr)
	c.PC++

	c.PrefixMode = PrefixCB
	c.indexedBitPending = true
}

// regCodeFromField maps a y or z bitfield onto the {B,C,D,E,H,L,(HL),A}
// table directly, since RegCode's own iota order already matches it.
func regCodeFromField(f byte) RegCode { return RegCode(f) }

// pairFromField is the {BC,DE,HL,SP} order PairCode's iota order matches.
func pairFromField(f byte) PairCode { return PairCode(f) }

func conditionFromField(f byte) Condition { return Condition(f) }
