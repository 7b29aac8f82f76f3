package main

import (
	"flag"
	"fmt"
	"os"

	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/emulator"
)

func main() {
	systemDir := flag.String("system", "", "Directory holding the BIOS/SFIX/Y-zoom ROMs")
	cartPath := flag.String("cart", "", "Path to a cartridge ZIP")
	logFile := flag.String("out", "logs.txt", "Output log file")
	maxFrames := flag.Int("frames", 60, "Run for N frames then dump logs")
	mvs := flag.Bool("mvs", false, "Load as an MVS board instead of AES")
	flag.Parse()

	if *systemDir == "" || *cartPath == "" {
		fmt.Println("Usage: dump_logs -system <dir> -cart <rom.zip> [-out <file>] [-frames <N>] [-mvs]")
		os.Exit(1)
	}

	cartData, err := os.ReadFile(*cartPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading cartridge: %v\n", err)
		os.Exit(1)
	}

	logger := debug.NewLogger(50000)
	logger.SetComponentEnabled(debug.ComponentPPU, true)
	logger.SetMinLevel(debug.LogLevelDebug)
	emu := emulator.NewEmulator(44100, logger)

	if err := emu.Init(*systemDir, *mvs); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading system ROMs: %v\n", err)
		os.Exit(1)
	}
	if err := emu.LoadCart(cartData); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading cartridge: %v\n", err)
		os.Exit(1)
	}
	emu.Reset()

	fmt.Printf("Running cartridge for %d frames...\n", *maxFrames)
	for i := 0; i < *maxFrames; i++ {
		emu.RunFrame()
	}

	entries := logger.GetEntries()
	ppuEntries := make([]debug.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Component == debug.ComponentPPU {
			ppuEntries = append(ppuEntries, entry)
		}
	}

	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	fmt.Fprintf(file, "PPU logs from %s (%d entries)\n", *cartPath, len(ppuEntries))
	fmt.Fprintf(file, "===========================================\n\n")
	for _, entry := range ppuEntries {
		fmt.Fprintf(file, "%s\n", entry.Format())
	}

	fmt.Printf("Dumped %d PPU log entries to %s\n", len(ppuEntries), *logFile)
}
