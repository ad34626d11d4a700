// Command z80run is a headless harness for the z80 core: it loads a raw
// binary image into a flat 64 KiB bus, drives the CPU for a bounded number
// of steps or a wall-clock timeout, and optionally prints a PC/opcode
// trace.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/retrozed/z80core/internal/memory"
	"github.com/retrozed/z80core/internal/z80"
)

func main() {
	imagePath := flag.String("image", "", "path to a raw binary memory image, loaded at address 0")
	steps := flag.Int("steps", 1_000_000, "max instructions to execute")
	startPC := flag.Int("pc", 0x0000, "initial PC value")
	trace := flag.Bool("trace", false, "print PC/opcode/tacts for every instruction")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s); 0 disables")
	im := flag.Int("im", 1, "interrupt mode to start in (0, 1, or 2)")
	extended := flag.Bool("extended", false, "allow the Next-compatible extended ED opcode set")
	savePath := flag.String("savestate", "", "write a snapshot here after the run ends")
	flag.Parse()

	if *imagePath == "" {
		log.Fatal("-image is required")
	}
	image, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Fatalf("read image: %v", err)
	}

	bus := memory.New(image)
	cpu := z80.New(*extended)
	cpu.SetBus(bus)
	cpu.Contention = memory.NoContention{}
	cpu.Reset()
	cpu.PC = uint16(*startPC)
	cpu.InterruptMode = z80.InterruptMode(*im)

	if *trace {
		cpu.TraceFunc = func(pc uint16, opcode byte, tacts uint64) {
			log.Printf("pc=%04X op=%02X tacts=%d", pc, opcode, tacts)
		}
	}

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	for i := 0; i < *steps; i++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			log.Printf("stopped: timeout after %d instructions", i)
			break
		}
		cpu.ExecuteCycle()
	}

	log.Printf("ran %d tacts, halted=%v, pc=%04X", cpu.Tacts, cpu.Halted(), cpu.PC)

	if *savePath != "" {
		if err := cpu.SaveStateToFile(*savePath); err != nil {
			log.Fatalf("savestate: %v", err)
		}
	}
}
