package z80

import "testing"

func TestMaskableInterruptMode1(t *testing.T) {
	c, _ := newTestCPU([]byte{0x00, 0x00, 0x00})
	c.IFF1 = true
	c.IFF2 = true
	c.InterruptMode = IM1
	c.SP = 0xFFF0
	c.RequestInterrupt()
	c.ExecuteCycle()
	if c.PC != 0x0038 {
		t.Fatalf("PC = %#04x, want 0x0038", c.PC)
	}
	if c.IFF1 || c.IFF2 {
		t.Fatalf("IFF1/IFF2 not cleared by interrupt ack")
	}
	if c.Tacts != 13 {
		t.Fatalf("Tacts = %d, want 13", c.Tacts)
	}
	if c.SP != 0xFFEE {
		t.Fatalf("SP = %#04x, want 0xFFEE", c.SP)
	}
}

func TestMaskableInterruptMode2(t *testing.T) {
	c, b := newTestCPU(nil)
	c.IFF1 = true
	c.InterruptMode = IM2
	c.I = 0x40
	c.InterruptVector = 0xFF
	b.mem[0x40FF] = 0x00
	b.mem[0x4100] = 0x90 // LSB at the vector address, MSB at vector+1
	c.SP = 0xFFF0
	c.RequestInterrupt()
	c.ExecuteCycle()
	if c.PC != 0x9000 {
		t.Fatalf("PC = %#04x, want 0x9000", c.PC)
	}
	if c.Tacts != 19 {
		t.Fatalf("Tacts = %d, want 19", c.Tacts)
	}
}

func TestInterruptBlockedWhenIFF1Clear(t *testing.T) {
	c, _ := newTestCPU([]byte{0x00})
	c.IFF1 = false
	c.RequestInterrupt()
	c.ExecuteCycle()
	if c.PC != 1 {
		t.Fatalf("PC = %#04x, want 0x0001 (NOP executed, interrupt still pending)", c.PC)
	}
	if c.StateFlags&SigINT == 0 {
		t.Fatalf("pending interrupt was consumed despite IFF1=false")
	}
}

func TestInterruptWakesHalt(t *testing.T) {
	c, _ := newTestCPU([]byte{0x76})
	c.SP = 0xFFF0
	c.ExecuteCycle() // HALT
	if !c.Halted() {
		t.Fatalf("expected halted")
	}
	c.IFF1 = true
	c.InterruptMode = IM1
	c.RequestInterrupt()
	c.ExecuteCycle()
	if c.Halted() {
		t.Fatalf("interrupt did not wake the halted core")
	}
	if c.PC != 0x0038 {
		t.Fatalf("PC = %#04x, want 0x0038", c.PC)
	}
	retAddr := uint16(c.Bus.ReadMemory(c.SP)) | uint16(c.Bus.ReadMemory(c.SP+1))<<8
	if retAddr != 1 {
		t.Fatalf("pushed return address = %#04x, want 0x0001 (PC past the HALT opcode)", retAddr)
	}
}

func TestNonMaskableInterrupt(t *testing.T) {
	c, _ := newTestCPU([]byte{0x00})
	c.IFF1 = true
	c.IFF2 = false
	c.SP = 0xFFF0
	c.RequestNMI()
	c.ExecuteCycle()
	if c.PC != 0x0066 {
		t.Fatalf("PC = %#04x, want 0x0066", c.PC)
	}
	if c.IFF1 {
		t.Fatalf("IFF1 not cleared by NMI")
	}
	if !c.IFF2 {
		t.Fatalf("IFF2 should retain the pre-NMI IFF1 value")
	}
	if c.Tacts != 11 {
		t.Fatalf("Tacts = %d, want 11", c.Tacts)
	}
}

func TestResetSignal(t *testing.T) {
	c, _ := newTestCPU([]byte{0x00})
	c.PC = 0x1234
	c.IFF1 = true
	c.RequestReset()
	c.ExecuteCycle()
	if c.PC != 0 {
		t.Fatalf("PC = %#04x, want 0x0000 after reset", c.PC)
	}
	if c.IFF1 {
		t.Fatalf("IFF1 should clear on reset")
	}
}
