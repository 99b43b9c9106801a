package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arcane8/chippy/internal/app"
	"github.com/arcane8/chippy/internal/chip8"
	"github.com/spf13/cobra"
)

var (
	tickRate      int
	entryPointStr string
	seed          int64
	trace         bool
)

// runCmd runs the chippy virtual machine until the user quits or the VM
// hits a fatal error.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run the chippy emulator",
	Args:  cobra.ExactArgs(1),
	Run:   runChippy,
}

func init() {
	runCmd.Flags().IntVar(&tickRate, "tickrate", chip8.DefaultTickRate, "CPU steps per second")
	runCmd.Flags().StringVar(&entryPointStr, "entrypoint", "0x200", "load address and initial PC (accepts 0x prefix)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "seed for the RND instruction's byte source (default: derived from the clock)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print one PC/I line per CPU step to stderr")
}

func runChippy(cmd *cobra.Command, args []string) {
	romPath := args[0]

	entryPoint, err := parseEntryPoint(entryPointStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chippy: invalid --entrypoint %q: %v\n", entryPointStr, err)
		os.Exit(1)
	}

	effectiveSeed := seed
	if effectiveSeed == 0 {
		effectiveSeed = time.Now().UnixNano()
	}

	cfg := chip8.Config{
		ROMPath:    romPath,
		EntryPoint: entryPoint,
		TickRate:   tickRate,
		Seed:       effectiveSeed,
		Trace:      trace,
	}

	if err := app.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "chippy: %v\n", err)
		os.Exit(1)
	}
}

// parseEntryPoint accepts a decimal or 0x-prefixed hex address.
func parseEntryPoint(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, err
	}
	if v > 0xFFF {
		return 0, fmt.Errorf("%#x exceeds addressable memory (max 0xFFF)", v)
	}
	return uint16(v), nil
}
