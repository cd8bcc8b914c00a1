package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreelectronics/glowbit-orb/config"
	"github.com/coreelectronics/glowbit-orb/driver/sim"
	"github.com/coreelectronics/glowbit-orb/orb"
	"github.com/coreelectronics/glowbit-orb/show"
)

// orbshow plays a show program against the simulated driver and exits when
// the program ends, so programs can be checked without hardware.
func main() {
	var (
		programPath = flag.String("program", "", "path to a show program JSON")
		preset      = flag.String("preset", "pico", "orb preset: pico | mini")
		fps         = flag.Int("fps", 60, "simulation frames per second")
		maxSeconds  = flag.Float64("max-seconds", 0, "stop after this many simulated seconds; zero runs to the end")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	if *programPath == "" {
		log.Fatal().Msg("provide -program path to a show program JSON")
	}
	data, err := os.ReadFile(*programPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *programPath).Msg("read program")
	}
	prog, err := show.ParseProgram(data)
	if err != nil {
		log.Fatal().Err(err).Msg("bad program")
	}
	if prog.Loop && *maxSeconds <= 0 {
		log.Warn().Msg("looping program without -max-seconds runs until interrupted")
	}

	cfg := &config.Config{Preset: *preset}
	if err := cfg.Resolve(); err != nil {
		log.Fatal().Err(err).Str("preset", *preset).Msg("bad preset")
	}
	total := cfg.StatusLEDs
	for _, c := range cfg.RingCounts {
		total += c
	}

	o, err := orb.New(orb.Config{
		RingCounts:   cfg.RingCounts,
		StatusLEDs:   cfg.StatusLEDs,
		RateLimitFPS: *fps,
	}, sim.New(total, log.Logger))
	if err != nil {
		log.Fatal().Err(err).Msg("orb init failed")
	}

	conductor := show.NewConductor(o, show.DefaultEffects(o.Geometry()), log.Logger)
	hooks := conductor.Hooks()
	// Trace clip changes on top of the conductor wiring.
	inner := hooks.SetEffect
	hooks.SetEffect = func(name, preset string) {
		log.Info().Str("effect", name).Str("preset", preset).Msg("clip")
		inner(name, preset)
	}

	player := show.NewPlayer(hooks)
	if err := player.Load(prog); err != nil {
		log.Fatal().Err(err).Msg("load program")
	}
	player.Start()

	dt := (time.Second / time.Duration(*fps)).Seconds()
	elapsed := 0.0
	for player.State() == show.Running {
		player.Tick(dt)
		if err := conductor.Step(dt); err != nil {
			log.Fatal().Err(err).Msg("frame failed")
		}
		elapsed += dt
		if *maxSeconds > 0 && elapsed >= *maxSeconds {
			player.Stop()
		}
	}
	log.Info().Float64("seconds", elapsed).Msg("program complete")
}
