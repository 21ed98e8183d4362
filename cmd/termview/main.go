// Command termview plays the horde simulation in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"horde-server/sim"
)

const frameRate = 60

func main() {
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "world seed")
	maxEnemies := flag.Int("enemies", sim.DefaultConfig().MaxEnemies, "enemy cap")
	lifetime := flag.Duration("lifetime", 5*time.Second, "projectile lifetime (0 keeps them forever)")
	logPath := flag.String("log", "", "write debug log to this file")
	debug := flag.Bool("debug", false, "trace cursor and player position to the log")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg := sim.DefaultConfig()
	cfg.Seed = *seed
	cfg.MaxEnemies = *maxEnemies
	cfg.ProjectileLifetime = *lifetime
	cfg.DebugCursor = *debug
	cfg.DebugPlayer = *debug

	world := sim.NewWorld(cfg)
	if *logPath != "" {
		file := &lumberjack.Logger{Filename: *logPath, MaxSize: 10, MaxBackups: 1}
		defer file.Close()
		level := zerolog.InfoLevel
		if *debug {
			level = zerolog.DebugLevel
		}
		world.SetLogger(zerolog.New(file).Level(level).With().Timestamp().Logger())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	var sound *Sound
	if !*mute {
		// no audio device is not fatal
		sound, _ = NewSound()
	}

	world.Init()
	run(screen, world, sound)

	sound.Close()
	screen.Fini()
}

func run(screen tcell.Screen, world *sim.World, sound *Sound) {
	view := NewView(screen, world)
	var keys KeyTracker

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	dt := time.Second / frameRate
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
				keys.Key(ev, time.Now())
			case *tcell.EventMouse:
				keys.Mouse(ev)
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			ctx := sim.TickContext{Delta: dt, Input: keys.Input(now)}
			if col, row, ok := keys.Pointer(); ok {
				c := view.Cursor(col, row)
				ctx.Cursor = &c
			}
			shots := world.Stats().ShotsFired
			world.Tick(ctx)
			if world.Stats().ShotsFired > shots {
				sound.Shot()
			}
			view.Draw(world)
		}
	}
}
