// Command z80view is a tiny ebiten-backed live register/state viewer for
// the z80 core: it runs a loaded image and renders the register file,
// flags, and interrupt/prefix state as text every frame, built on an
// ebiten.Game loop generalized from a 160x144 LCD framebuffer to a text
// dump, since the core has no display of its own to draw.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/retrozed/z80core/internal/memory"
	"github.com/retrozed/z80core/internal/z80"
)

const (
	screenW = 420
	screenH = 260
)

type viewer struct {
	cpu    *z80.CPU
	bus    *memory.Flat
	paused bool
	speed  int // instructions executed per Update tick while running
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.cpu.Reset()
	}
	if v.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			v.cpu.ExecuteCycle()
		}
		return nil
	}
	for i := 0; i < v.speed; i++ {
		v.cpu.ExecuteCycle()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	c := v.cpu
	lines := []string{
		fmt.Sprintf("AF=%04X  BC=%04X  DE=%04X  HL=%04X", c.AF(), c.BC(), c.DE(), c.HL()),
		fmt.Sprintf("IX=%04X  IY=%04X  SP=%04X  PC=%04X  WZ=%04X", c.IX(), c.IY(), c.SP, c.PC, c.WZ),
		fmt.Sprintf("I=%02X  R=%02X  IM=%d  IFF1=%v  IFF2=%v", c.I, c.R, c.InterruptMode, c.IFF1, c.IFF2),
		fmt.Sprintf("flags: %s", flagString(c.F)),
		fmt.Sprintf("tacts=%d  halted=%v  prefix=%v  index=%v", c.Tacts, c.Halted(), c.PrefixMode, c.IndexMode),
		"",
		"SPACE pause/resume   N step (while paused)   R reset",
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func flagString(f byte) string {
	bits := []struct {
		mask byte
		name string
	}{
		{0x80, "S"}, {0x40, "Z"}, {0x20, "5"}, {0x10, "H"},
		{0x08, "3"}, {0x04, "P"}, {0x02, "N"}, {0x01, "C"},
	}
	var sb strings.Builder
	for _, b := range bits {
		if f&b.mask != 0 {
			sb.WriteString(b.name)
		} else {
			sb.WriteString(".")
		}
	}
	return sb.String()
}

func main() {
	imagePath := flag.String("image", "", "path to a raw binary memory image, loaded at address 0")
	startPC := flag.Int("pc", 0x0000, "initial PC value")
	speed := flag.Int("speed", 1000, "instructions executed per rendered frame while running")
	extended := flag.Bool("extended", false, "allow the Next-compatible extended ED opcode set")
	flag.Parse()

	var image []byte
	if *imagePath != "" {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			log.Fatalf("read image: %v", err)
		}
		image = data
	}

	bus := memory.New(image)
	cpu := z80.New(*extended)
	cpu.SetBus(bus)
	cpu.Contention = memory.NoContention{}
	cpu.Reset()
	cpu.PC = uint16(*startPC)

	v := &viewer{cpu: cpu, bus: bus, paused: true, speed: *speed}

	ebiten.SetWindowTitle("z80view")
	ebiten.SetWindowSize(screenW*2, screenH*2)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
