package z80

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadStateRoundTrip(t *testing.T) {
	c, _ := newTestCPU([]byte{0x00})
	c.A, c.F = 0x12, 0x34
	c.SetBC(0xBEEF)
	c.SetHL(0xC0DE)
	c.SetIX(0x1111)
	c.SetIY(0x2222)
	c.I, c.R = 0x40, 0x07
	c.PC, c.SP, c.WZ = 0x8000, 0xFFF0, 0x9000
	c.Tacts = 0x1_0000_0007
	c.IFF1, c.IFF2 = true, false
	c.InterruptMode = IM2
	c.PrefixMode = PrefixCB
	c.IndexMode = IndexIY

	data := c.SaveState()

	other := New(false)
	if err := other.LoadState(data); err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if other.A != 0x12 || other.F != 0x34 {
		t.Fatalf("AF = %02x%02x, want 1234", other.A, other.F)
	}
	if other.BC() != 0xBEEF {
		t.Fatalf("BC = %#04x, want 0xBEEF", other.BC())
	}
	if other.HL() != 0xC0DE {
		t.Fatalf("HL = %#04x, want 0xC0DE", other.HL())
	}
	if other.IX() != 0x1111 || other.IY() != 0x2222 {
		t.Fatalf("IX/IY = %#04x/%#04x, want 0x1111/0x2222", other.IX(), other.IY())
	}
	if other.PC != 0x8000 || other.SP != 0xFFF0 || other.WZ != 0x9000 {
		t.Fatalf("PC/SP/WZ = %#04x/%#04x/%#04x, want 0x8000/0xFFF0/0x9000", other.PC, other.SP, other.WZ)
	}
	if other.Tacts != 0x1_0000_0007 {
		t.Fatalf("Tacts = %#x, want 0x100000007", other.Tacts)
	}
	if !other.IFF1 || other.IFF2 {
		t.Fatalf("IFF1/IFF2 = %v/%v, want true/false", other.IFF1, other.IFF2)
	}
	if other.InterruptMode != IM2 {
		t.Fatalf("InterruptMode = %v, want IM2", other.InterruptMode)
	}
	if other.PrefixMode != PrefixCB || other.IndexMode != IndexIY {
		t.Fatalf("PrefixMode/IndexMode = %v/%v, want PrefixCB/IndexIY", other.PrefixMode, other.IndexMode)
	}
}

func TestSaveLoadStateFileRoundTrip(t *testing.T) {
	c, _ := newTestCPU([]byte{0x00})
	c.A = 0x99
	c.PC = 0x4242

	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.gob")
	if err := c.SaveStateToFile(path); err != nil {
		t.Fatalf("SaveStateToFile: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}

	other := New(false)
	if err := other.LoadStateFromFile(path); err != nil {
		t.Fatalf("LoadStateFromFile: %v", err)
	}
	if other.A != 0x99 || other.PC != 0x4242 {
		t.Fatalf("A/PC = %#02x/%#04x, want 0x99/0x4242", other.A, other.PC)
	}
}

func TestLoadStateRejectsGarbage(t *testing.T) {
	c := New(false)
	if err := c.LoadState([]byte{0xFF, 0x00, 0x01}); err == nil {
		t.Fatalf("expected an error decoding garbage data")
	}
}
