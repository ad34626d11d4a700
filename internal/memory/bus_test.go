package memory

import "testing"

func TestFlat_ImageLoadedAtZero(t *testing.T) {
	image := []byte{0x3E, 0x42, 0x00}
	b := New(image)
	if got := b.ReadMemory(0x0000); got != 0x3E {
		t.Fatalf("ReadMemory(0) got %02x, want 3E", got)
	}
	if got := b.ReadMemory(0x0002); got != 0x00 {
		t.Fatalf("ReadMemory(2) got %02x, want 00", got)
	}
	if got := b.ReadMemory(0xC000); got != 0x00 {
		t.Fatalf("unloaded RAM got %02x, want 00", got)
	}
}

func TestFlat_WriteRead(t *testing.T) {
	b := New(nil)
	b.WriteMemory(0xC000, 0x99)
	if got := b.ReadMemory(0xC000); got != 0x99 {
		t.Fatalf("ReadMemory(C000) got %02x, want 99", got)
	}
}

func TestFlat_Ports(t *testing.T) {
	b := New(nil)
	b.WritePort(0x00FE, 0x7F)
	if got := b.ReadPort(0x01FE); got != 0x7F {
		t.Fatalf("ReadPort(01FE) got %02x, want 7F (port space is byte-wide, high byte ignored)", got)
	}
}

func TestFlat_SaveLoadState(t *testing.T) {
	b := New(nil)
	b.WriteMemory(0x1234, 0xAB)
	b.WritePort(0x0005, 0xCD)
	data := b.SaveState()

	other := New(nil)
	other.LoadState(data)
	if got := other.ReadMemory(0x1234); got != 0xAB {
		t.Fatalf("restored RAM got %02x, want AB", got)
	}
	if got := other.ReadPort(0x0005); got != 0xCD {
		t.Fatalf("restored port got %02x, want CD", got)
	}
}

func TestNoContentionAddsNoTacts(t *testing.T) {
	var nc NoContention
	if got := nc.Contend(0x1234, 3); got != 0 {
		t.Fatalf("Contend() got %d, want 0", got)
	}
}
