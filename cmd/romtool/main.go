// Command romtool inspects and builds Neo Geo cartridge archives: the
// load_cart half of the Host ABI, exposed standalone for ROM-set debugging
// and for generating synthetic test cartridges.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"nitro-core-dx/internal/rom"
)

func main() {
	app := cli.NewApp()
	app.Name = "romtool"
	app.Usage = "inspect and build Neo Geo cartridge archives"
	app.Version = "1.0.0"
	app.Commands = []cli.Command{
		{
			Name:      "inspect",
			Usage:     "print a cartridge's chip sizes and NGH code",
			ArgsUsage: "<rom.zip>",
			Action:    inspectCart,
		},
		{
			Name:  "build-blank",
			Usage: "build a synthetic cartridge with empty ROMs, for exercising the frame orchestrator",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "ngh", Value: 1, Usage: "4-digit BCD house code"},
				cli.StringFlag{Name: "out", Value: "blank.zip", Usage: "output archive path"},
			},
			Action: buildBlankCart,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("romtool failed", "error", err)
		os.Exit(1)
	}
}

func inspectCart(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelp(c, "inspect")
		return fmt.Errorf("no cartridge path given")
	}
	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	cart, err := rom.LoadCart(data)
	if err != nil {
		return err
	}
	fmt.Printf("NGH:        %04d\n", cart.NGH)
	fmt.Printf("P-ROM (1):  %d bytes\n", len(cart.PROMBank1))
	fmt.Printf("P-ROM bank2 candidates: %d\n", len(cart.PROMBankCandidates))
	fmt.Printf("S-ROM:      %d bytes\n", len(cart.SROM))
	fmt.Printf("C-ROM:      %d bytes (serialized)\n", len(cart.CROM))
	fmt.Printf("M1-ROM:     %d bytes\n", len(cart.M1ROM))
	fmt.Printf("V1-ROM:     %d bytes\n", len(cart.V1ROM))
	fmt.Printf("V2-ROM:     %d bytes\n", len(cart.V2ROM))
	return nil
}

func buildBlankCart(c *cli.Context) error {
	ngh := uint16(c.Int("ngh"))
	out := c.String("out")

	err := rom.NewCartBuilder(ngh).
		WithResetVectors(0x00100000, 0x00000400).
		WithFix(make([]byte, rom.FixTileBytes)).
		WithSprites(make([]byte, rom.CROMTileBytes/2), make([]byte, rom.CROMTileBytes/2)).
		WithSound(make([]byte, 0x8000), make([]byte, 0x100), nil).
		WriteFile(out)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
