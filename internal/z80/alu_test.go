package z80

import "testing"

func TestLDIRCopiesBlockAndStops(t *testing.T) {
	prog := []byte{0xED, 0xB0} // LDIR
	c, b := newTestCPU(prog)
	b.mem[0xC000], b.mem[0xC001], b.mem[0xC002] = 0x11, 0x22, 0x33
	c.SetHL(0xC000)
	c.SetDE(0xD000)
	c.SetBC(3)

	for i := 0; i < 6; i++ {
		c.ExecuteCycle()
	}

	if b.mem[0xD000] != 0x11 || b.mem[0xD001] != 0x22 || b.mem[0xD002] != 0x33 {
		t.Fatalf("copied bytes = %02x %02x %02x, want 11 22 33",
			b.mem[0xD000], b.mem[0xD001], b.mem[0xD002])
	}
	if c.BC() != 0 {
		t.Fatalf("BC = %#04x, want 0", c.BC())
	}
	if c.HL() != 0xC003 || c.DE() != 0xD003 {
		t.Fatalf("HL/DE = %#04x/%#04x, want 0xC003/0xD003", c.HL(), c.DE())
	}
	if c.F&FlagPV != 0 {
		t.Fatalf("PV set after LDIR exhausted BC")
	}
	if c.PC != 2 {
		t.Fatalf("PC = %#04x, want 0x0002 (instruction complete, no further repeat)", c.PC)
	}
}

func TestCPIRFindsMatchAndStopsEarly(t *testing.T) {
	prog := []byte{0xED, 0xB1} // CPIR
	c, b := newTestCPU(prog)
	b.mem[0xC000], b.mem[0xC001], b.mem[0xC002] = 0x01, 0x99, 0x02
	c.SetHL(0xC000)
	c.SetBC(3)
	c.A = 0x99

	// Two iterations run before the match on the second byte stops it: ED,
	// B1 (no match, repeat), ED, B1 (match, no repeat).
	for i := 0; i < 4; i++ {
		c.ExecuteCycle()
	}

	if c.F&FlagZ == 0 {
		t.Fatalf("Z not set after CPIR found a match")
	}
	if c.HL() != 0xC002 {
		t.Fatalf("HL = %#04x, want 0xC002 (stopped right after the match)", c.HL())
	}
	if c.BC() != 1 {
		t.Fatalf("BC = %#04x, want 1", c.BC())
	}
}

func TestNegNegatesAccumulator(t *testing.T) {
	prog := []byte{0xED, 0x44} // NEG
	c, _ := newTestCPU(prog)
	c.A = 0x01
	c.ExecuteCycle() // ED
	c.ExecuteCycle() // 44
	if c.A != 0xFF {
		t.Fatalf("A = %#02x, want 0xFF", c.A)
	}
	if c.F&FlagN == 0 {
		t.Fatalf("N not set after NEG")
	}
	if c.F&FlagC == 0 {
		t.Fatalf("C not set after NEG of a nonzero value")
	}
}

func TestRLDRotatesDigitsThroughMemory(t *testing.T) {
	prog := []byte{0xED, 0x6F} // RLD
	c, b := newTestCPU(prog)
	c.SetHL(0xC000)
	c.A = 0x7A
	b.mem[0xC000] = 0x31
	c.ExecuteCycle() // ED
	c.ExecuteCycle() // 6F
	if c.A != 0x73 {
		t.Fatalf("A = %#02x, want 0x73", c.A)
	}
	if b.mem[0xC000] != 0x1A {
		t.Fatalf("mem[0xC000] = %#02x, want 0x1A", b.mem[0xC000])
	}
}

func TestSbcHLBorrows(t *testing.T) {
	prog := []byte{0xED, 0x42} // SBC HL,BC
	c, _ := newTestCPU(prog)
	c.SetHL(0x0000)
	c.SetBC(0x0001)
	c.F &^= FlagC // F is 0xFF from power-on and Reset keeps it; start with no borrow-in
	c.ExecuteCycle()
	c.ExecuteCycle()
	if c.HL() != 0xFFFF {
		t.Fatalf("HL = %#04x, want 0xFFFF", c.HL())
	}
	if c.F&FlagC == 0 {
		t.Fatalf("C not set after SBC HL,BC borrows")
	}
	if c.F&FlagN == 0 {
		t.Fatalf("N not set after SBC")
	}
}

func TestLoadIAndRFromAccumulator(t *testing.T) {
	prog := []byte{0xED, 0x47, 0xED, 0x4F} // LD I,A ; LD R,A
	c, _ := newTestCPU(prog)
	c.A = 0x77
	for i := 0; i < 4; i++ {
		c.ExecuteCycle()
	}
	if c.I != 0x77 {
		t.Fatalf("I = %#02x, want 0x77", c.I)
	}
	if c.R != 0x77 {
		t.Fatalf("R = %#02x, want 0x77", c.R)
	}
}
