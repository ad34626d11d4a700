// Package memory provides a reference host implementation of z80.Bus: a
// flat 64 KiB RAM image and a 256-entry port space backed by plain byte
// slices, plus a disassembler a debugging frontend can call against either
// live memory or a raw byte slice. Nothing here is part of the CPU core —
// it exists so cmd/z80run and cmd/z80view have somewhere to plug a ROM in.
package memory

import "github.com/retrozed/z80core/internal/z80"

// Flat is the simplest possible z80.Bus: 64 KiB of RAM with no mapping,
// mirroring, or contention, and a 256-entry port space that just remembers
// the last byte written to each port.
type Flat struct {
	RAM   [65536]byte
	Ports [256]byte
}

// New allocates a Flat bus with an optional image loaded at address 0.
func New(image []byte) *Flat {
	f := &Flat{}
	copy(f.RAM[:], image)
	return f
}

func (f *Flat) ReadMemory(addr uint16) byte     { return f.RAM[addr] }
func (f *Flat) WriteMemory(addr uint16, v byte) { f.RAM[addr] = v }
func (f *Flat) ReadPort(addr uint16) byte       { return f.Ports[byte(addr)] }
func (f *Flat) WritePort(addr uint16, v byte)   { f.Ports[byte(addr)] = v }

// SaveState returns the RAM contents followed by the port contents as one
// plain byte slice (no gob encoding, unlike the CPU's snapshot); LoadState
// copies such a slice back, RAM first.
func (f *Flat) SaveState() []byte {
	buf := make([]byte, 0, len(f.RAM)+len(f.Ports))
	buf = append(buf, f.RAM[:]...)
	buf = append(buf, f.Ports[:]...)
	return buf
}

func (f *Flat) LoadState(data []byte) {
	n := copy(f.RAM[:], data)
	if n < len(data) {
		copy(f.Ports[:], data[n:])
	}
}

// NoContention is the trivial z80.ContentionProvider every reference host
// that doesn't model a shared memory bus should use.
type NoContention struct{}

func (NoContention) Contend(addr uint16, tacts int) int { return 0 }

var _ z80.Bus = (*Flat)(nil)
var _ z80.ContentionProvider = NoContention{}
