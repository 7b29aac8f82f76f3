// Command neogeo-player is an SDL2 host for the Neo Geo core: it drives the
// Host ABI (init/load_cart/reset/run_frame/read_frame_buffer/
// read_audio_buffer/set_joypad) in a loop, blitting the RGB565 frame buffer
// to a streaming texture and queuing the PCM audio buffer to an SDL audio
// device.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"unsafe"

	"github.com/urfave/cli"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"

	"nitro-core-dx/internal/emulator"
)

const (
	screenWidth  = 320
	screenHeight = 224
	sampleRate   = 44100
)

func main() {
	app := cli.NewApp()
	app.Name = "neogeo-player"
	app.Usage = "play a Neo Geo cartridge"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "system", Usage: "directory holding the BIOS/SFIX/Y-zoom ROMs"},
		cli.StringFlag{Name: "cart", Usage: "path to a cartridge ZIP"},
		cli.IntFlag{Name: "scale", Value: 3, Usage: "window scale (1-6)"},
		cli.BoolFlag{Name: "mvs", Usage: "load as an MVS board instead of AES"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("neogeo-player failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	systemDir := c.String("system")
	cartPath := c.String("cart")
	scale := c.Int("scale")
	if systemDir == "" || cartPath == "" {
		cli.ShowAppHelp(c)
		return fmt.Errorf("both -system and -cart are required")
	}
	if scale < 1 || scale > 6 {
		return fmt.Errorf("scale must be between 1 and 6")
	}

	cartData, err := os.ReadFile(cartPath)
	if err != nil {
		return fmt.Errorf("reading cartridge: %w", err)
	}

	emu := emulator.NewEmulator(sampleRate, nil)
	if err := emu.Init(systemDir, c.Bool("mvs")); err != nil {
		return fmt.Errorf("loading system ROMs: %w", err)
	}
	if err := emu.LoadCart(cartData); err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	emu.Reset()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("neogeo-player",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(screenWidth*scale), int32(screenHeight*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB565, sdl.TEXTUREACCESS_STREAMING, screenWidth, screenHeight)
	if err != nil {
		return fmt.Errorf("creating texture: %w", err)
	}
	defer texture.Destroy()

	want := &sdl.AudioSpec{Freq: sampleRate, Format: sdl.AUDIO_S16SYS, Channels: 2, Samples: 2048}
	audioDevice, err := sdl.OpenAudioDevice("", false, want, nil, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	defer sdl.CloseAudioDevice(audioDevice)
	sdl.PauseAudioDevice(audioDevice, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	// SDL's event pump and rendering calls must stay on the thread that
	// created the window, so the frame loop itself runs inline here rather
	// than as a second errgroup member; the signal-handling goroutine above
	// only ever touches the shared context, never SDL or the Emulator.
	for {
		select {
		case <-ctx.Done():
			return g.Wait()
		default:
		}

		if quit := pollEvents(emu); quit {
			cancel()
			continue
		}

		emu.RunFrame()
		blit(renderer, texture, emu.ReadFrameBuffer())
		queueAudio(audioDevice, emu.ReadAudioBuffer())
	}
}

func pollEvents(emu *emulator.Emulator) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			handleKey(emu, e)
		}
	}
	return false
}

// handleKey maps a handful of keys onto joypad 1's active-low bits and the
// START/SELECT lines; a full key-remapping layer is out of scope here.
func handleKey(emu *emulator.Emulator, e *sdl.KeyboardEvent) {
	pressed := e.Type == sdl.KEYDOWN
	bit := func(mask uint8) {
		cur := emu.Input.Joypad1
		if pressed {
			cur &^= mask
		} else {
			cur |= mask
		}
		emu.SetJoypad(1, cur)
	}
	switch e.Keysym.Sym {
	case sdl.K_UP:
		bit(0x01)
	case sdl.K_DOWN:
		bit(0x02)
	case sdl.K_LEFT:
		bit(0x04)
	case sdl.K_RIGHT:
		bit(0x08)
	case sdl.K_z:
		bit(0x10)
	case sdl.K_x:
		bit(0x20)
	case sdl.K_RETURN:
		emu.SetStartSelect(1, pressed, false)
	case sdl.K_RSHIFT:
		emu.SetStartSelect(1, false, pressed)
	}
}

func blit(renderer *sdl.Renderer, texture *sdl.Texture, frame []uint16) {
	pitch := screenWidth * 2
	texture.Update(nil, unsafe.Pointer(&frame[0]), pitch)
	renderer.Clear()
	renderer.Copy(texture, nil, nil)
	renderer.Present()
}

func queueAudio(device sdl.AudioDeviceID, samples []int16) {
	if len(samples) == 0 {
		return
	}
	if err := sdl.QueueAudio(device, int16SliceToBytes(samples)); err != nil {
		slog.Warn("queueing audio failed", "error", err)
	}
}

func int16SliceToBytes(samples []int16) []byte {
	b := make([]byte, len(samples)*2)
	for i, s := range samples {
		b[i*2] = byte(s)
		b[i*2+1] = byte(s >> 8)
	}
	return b
}
