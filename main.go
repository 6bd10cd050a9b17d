package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/retro8/chip8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	// The CHIP-8 virtual machine.
	VM *chip8.VM

	// The SDL window and renderer.
	Window   *sdl.Window
	Renderer *sdl.Renderer

	// Logger for host-side messages and forwarded VM diagnostics.
	Logger *log.Logger

	// Paused stops the cycle budget; single stepping stays available.
	Paused bool

	// ROM holds the loaded program bytes so the machine can be rebooted.
	ROM []byte

	// diagSeen counts the VM diagnostic lines already forwarded.
	diagSeen int
)

// timers run at 60 Hz regardless of execution speed
const frameRate = 60

func init() {
	// SDL event handling must stay on the main OS thread
	runtime.LockOSThread()
}

func main() {
	pause := flag.Bool("pause", false, "start in a paused state")
	cycles := flag.Int("cycles", 600, "instructions executed per second")
	scale := flag.Int("scale", 10, "display scale factor")
	quiet := flag.Bool("quiet", false, "only log errors")
	flag.Parse()

	Logger = createLogger(*quiet)
	Paused = *pause

	filename := flag.Arg(0)
	if filename == "" {
		var err error
		if filename, err = dialog.File().Filter("CHIP-8 ROMs", "ch8", "rom").Load(); err != nil {
			Logger.Fatal("no ROM selected", log.Err(err))
		}
	}

	var err error
	if ROM, err = os.ReadFile(filename); err != nil {
		Logger.Fatal("reading ROM", log.Err(err), log.String("file", filename))
	}

	VM = chip8.New()
	if err := VM.LoadROM(ROM); err != nil {
		Logger.Fatal("loading ROM", log.Err(err), log.String("file", filename))
	}
	Logger.Info("ROM loaded",
		log.String("file", filename),
		log.Int("bytes", len(ROM)))

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		Logger.Fatal("initializing SDL", log.Err(err))
	}
	defer sdl.Quit()

	Window, err = sdl.CreateWindow("CHIP-8",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(chip8.DisplayWidth**scale), int32(chip8.DisplayHeight**scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		Logger.Fatal("creating window", log.Err(err))
	}
	defer Window.Destroy()

	Renderer, err = sdl.CreateRenderer(Window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		Logger.Fatal("creating renderer", log.Err(err))
	}
	defer Renderer.Destroy()

	if err := InitScreen(); err != nil {
		Logger.Fatal("creating screen texture", log.Err(err))
	}
	if err := InitAudio(); err != nil {
		// sound is not essential; run without it
		Logger.Error("opening audio device", log.Err(err))
	}

	// the machine performs no self-throttling: run a fixed budget of
	// cycles per frame and yield to rendering in between
	budget := *cycles / frameRate
	frame := time.NewTicker(time.Second / frameRate)
	defer frame.Stop()

	for ProcessEvents() {
		<-frame.C

		if !Paused {
			for i := 0; i < budget; i++ {
				if VM.WaitingForKey() || VM.Halted() {
					break
				}
				VM.Step()
			}
		}

		VM.DecrementTimers()
		QueueTone()
		forwardDiagnostics()
		Refresh()
	}
}

// createLogger builds the host logger with the requested verbosity.
func createLogger(quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// StepOnce executes a single instruction while paused and traces it.
func StepOnce() {
	Logger.Info("step",
		log.String("ins", VM.Disassemble(VM.PC)),
		log.Uint8("sp", VM.SP))
	VM.Step()
}

// Reboot resets the machine and reloads the current ROM.
func Reboot() {
	VM = chip8.New()
	if err := VM.LoadROM(ROM); err != nil {
		Logger.Fatal("reloading ROM", log.Err(err))
	}
	diagSeen = 0
	Logger.Info("machine reset")
}

// forwardDiagnostics mirrors new VM diagnostic lines to the host log.
func forwardDiagnostics() {
	lines := VM.Diagnostics().Lines()
	for ; diagSeen < len(lines); diagSeen++ {
		Logger.Warn(lines[diagSeen])
	}
}
