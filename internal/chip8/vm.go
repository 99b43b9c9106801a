// Package chip8 implements the CHIP-8 virtual machine: its memory and
// register model, the opcode decoder and instruction semantics, the sprite
// blitter, the 60 Hz timers, and the fetch-decode-execute step that a host
// run loop drives. Chip-8 used to be implemented on 4k systems like the
// Telmac 1800 and Cosmac VIP where the interpreter itself occupied the
// first 512 bytes of memory (up to 0x200). Here, running natively outside
// that 4K space, there's no need to avoid the low 512 bytes, and it's
// common (as here) to store font data there instead.
package chip8

import (
	"fmt"
	"io"
	"math/rand"
	"os"
)

//		System memory map
// 		+---------------+= 0xFFF (4095) End Chip-8 RAM
// 		|               |
// 		| 0x200 to 0xFFF|
// 		|     Chip-8    |
// 		| Program / Data|
// 		|     Space     |
// 		|               |
// 		+---------------+= entry point (0x200 by default)
// 		| 0x000 to 0x1FF|
// 		| Reserved for  |
// 		|  interpreter  |
// 		+---------------+= 0x000 (0) Begin Chip-8 RAM. Font data lives here.
//

// VM represents the CHIP-8 virtual machine: its own exclusive owner of all
// interpreter state. All mutation happens through Step, Tick60Hz, and the
// keypad/run-control setters; nothing here is safe for concurrent mutation.
type VM struct {
	cfg Config

	// memory is the full 4 KiB address space. 0x000-0x04F holds the
	// fontset; the ROM is loaded starting at cfg.EntryPoint.
	memory [4096]byte

	// opcode is the 16-bit instruction word currently under examination,
	// kept around so error diagnostics can report it.
	opcode uint16

	// v are the 16 general purpose registers, V0-VF. V[0xF] is the flag
	// register.
	v [16]byte

	// i is the 12-bit address register.
	i uint16

	// pc is the program counter.
	pc uint16

	// stack holds return addresses for CALL/RET, strictly LIFO.
	stack [16]uint16

	// sp is the number of entries currently on the stack (0 == empty).
	sp int

	// framebuffer is the 64x32 monochrome display, row-major.
	framebuffer [64 * 32]byte

	// redraw is set whenever the framebuffer changes and cleared once the
	// host presents it.
	redraw bool

	// delayTimer and soundTimer count down at 60 Hz, independent of CPU rate.
	delayTimer byte
	soundTimer byte

	// keypad holds the held/released state of the 16 hex keys.
	keypad [16]bool

	// rng is the VM's own seeded random byte source for CXNN, so RND is
	// reproducible given the same Config.Seed.
	rng *rand.Rand

	// waitingForKey is set while an FX0A is blocking PC advancement.
	waitingForKey bool
	waitKeyReg    uint16

	// halted holds a fatal VMError once one has occurred; once set, Step
	// refuses to execute further instructions.
	halted error

	// warn receives decoder-miss diagnostics. Defaults to os.Stderr;
	// tests substitute a buffer.
	warn io.Writer
}

// warnWriter returns the VM's diagnostic sink, defaulting to os.Stderr.
func (vm *VM) warnWriter() io.Writer {
	if vm.warn == nil {
		return os.Stderr
	}
	return vm.warn
}

// SetWarnWriter redirects decoder-miss diagnostics, mainly for tests.
func (vm *VM) SetWarnWriter(w io.Writer) { vm.warn = w }

// fontSet holds the 16 built-in 5-byte glyphs for hex digits 0-F.
// See http://www.multigesture.net/articles/how-to-write-an-emulator-chip-8-interpreter
var fontSet = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0x80, // C
	0xF0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// NewVM builds a VM from cfg, loads the fontset and the ROM at cfg.ROMPath,
// and returns a pointer to it or the load error.
func NewVM(cfg Config) (*VM, error) {
	if cfg.EntryPoint == 0 {
		cfg.EntryPoint = DefaultEntryPoint
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = DefaultTickRate
	}

	vm := &VM{
		cfg: cfg,
		pc:  cfg.EntryPoint,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	vm.loadFontSet()

	if cfg.ROMPath != "" {
		if err := vm.loadROM(cfg.ROMPath); err != nil {
			return nil, err
		}
	}
	return vm, nil
}

// loadFontSet writes the 16 built-in glyphs into the first 80 bytes of memory.
func (vm *VM) loadFontSet() {
	copy(vm.memory[:len(fontSet)], fontSet[:])
}

// loadROM reads path and copies its bytes into memory starting at the
// configured entry point.
func (vm *VM) loadROM(path string) error {
	rom, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("chip8: reading rom %q: %w", path, err)
	}

	maxSize := 0xFFF - int(vm.cfg.EntryPoint) + 1
	if len(rom) > maxSize {
		return fmt.Errorf("chip8: rom %q too large: %d bytes, max %d at entry point %#04x", path, len(rom), maxSize, vm.cfg.EntryPoint)
	}

	copy(vm.memory[vm.cfg.EntryPoint:], rom)
	return nil
}

// LoadROMBytes loads rom directly into memory, bypassing the filesystem.
// Used by tests to exercise short hand-assembled programs.
func (vm *VM) LoadROMBytes(rom []byte) error {
	maxSize := 0xFFF - int(vm.cfg.EntryPoint) + 1
	if len(rom) > maxSize {
		return fmt.Errorf("chip8: rom too large: %d bytes, max %d at entry point %#04x", len(rom), maxSize, vm.cfg.EntryPoint)
	}
	copy(vm.memory[vm.cfg.EntryPoint:], rom)
	return nil
}

// PC returns the current program counter. Exposed for tracing and tests.
func (vm *VM) PC() uint16 { return vm.pc }

// I returns the current address register. Exposed for tracing and tests.
func (vm *VM) I() uint16 { return vm.i }

// Register returns V[x].
func (vm *VM) Register(x int) byte { return vm.v[x&0xF] }

// DelayTimer returns the current delay timer value.
func (vm *VM) DelayTimer() byte { return vm.delayTimer }

// SoundTimer returns the current sound timer value.
func (vm *VM) SoundTimer() byte { return vm.soundTimer }

// Framebuffer returns the 64x32 row-major pixel array. Callers must not
// mutate it; it is only valid until the next Step.
func (vm *VM) Framebuffer() *[64 * 32]byte { return &vm.framebuffer }

// RedrawRequested reports whether the framebuffer changed since the last
// ClearRedraw.
func (vm *VM) RedrawRequested() bool { return vm.redraw }

// ClearRedraw clears the redraw flag; call after presenting the framebuffer.
func (vm *VM) ClearRedraw() { vm.redraw = false }

// Halted reports the fatal error that stopped the VM, if any.
func (vm *VM) Halted() error { return vm.halted }

// SetKey updates the held/released state of a single hex key (0x0-0xF).
// Out-of-range indices are ignored.
func (vm *VM) SetKey(key byte, pressed bool) {
	if key > 0xF {
		return
	}
	if vm.waitingForKey && pressed && !vm.keypad[key] {
		vm.v[vm.waitKeyReg] = key
		vm.waitingForKey = false
	}
	vm.keypad[key] = pressed
}

// WaitingForKey reports whether an FX0A instruction is blocking CPU
// advancement (event intake and timers must keep running regardless).
func (vm *VM) WaitingForKey() bool { return vm.waitingForKey }
