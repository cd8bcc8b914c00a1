package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreelectronics/glowbit-orb/config"
	"github.com/coreelectronics/glowbit-orb/driver"
	"github.com/coreelectronics/glowbit-orb/driver/nrz"
	"github.com/coreelectronics/glowbit-orb/driver/sim"
	"github.com/coreelectronics/glowbit-orb/orb"
	"github.com/coreelectronics/glowbit-orb/preview"
	"github.com/coreelectronics/glowbit-orb/show"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		preset     = flag.String("preset", "pico", "orb preset: pico | mini")
		configPath = flag.String("config", "", "path to config.yaml (optional)")
		brightness = flag.Float64("brightness", 0, "brightness 0..255 or 0..1; zero keeps the preset value")
		fps        = flag.Int("fps", 0, "target frames per second; zero keeps the preset value")
		driverName = flag.String("driver", "", "driver: sim | spi; empty keeps the preset value")
		spiPort    = flag.String("spi-port", "", "spireg port name; empty picks the first available")
		addr       = flag.String("addr", ":8080", "HTTP listen address for the preview")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if !*debug {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// ---- Config: file if given, preset otherwise; flags override ----
	var cfg *config.Config
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with preset")
		} else {
			cfg = c
		}
	}
	if cfg == nil {
		cfg = &config.Config{Preset: *preset}
		if err := cfg.Resolve(); err != nil {
			log.Fatal().Err(err).Str("preset", *preset).Msg("bad preset")
		}
	}
	if *brightness > 0 {
		cfg.Brightness = *brightness
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *driverName != "" {
		cfg.Driver = *driverName
	}
	if *simOnly {
		cfg.Driver = "sim"
	}

	total := cfg.StatusLEDs
	for _, c := range cfg.RingCounts {
		total += c
	}

	// ---- Driver selection ----
	var drv driver.Driver
	var simDrv *sim.Driver
	switch cfg.Driver {
	case "spi":
		if _, err := host.Init(); err != nil {
			log.Warn().Err(err).Msg("periph host init failed; falling back to sim")
			simDrv = sim.New(total, log.Logger)
			drv = simDrv
			cfg.Driver = "sim"
			break
		}
		port := cfg.SPI.Port
		if *spiPort != "" {
			port = *spiPort
		}
		d, err := nrz.New(port, total, log.Logger)
		if err != nil {
			log.Warn().Err(err).Str("port", port).Msg("SPI init failed; falling back to sim")
			simDrv = sim.New(total, log.Logger)
			drv = simDrv
			cfg.Driver = "sim"
		} else {
			drv = d
			if !d.Hardware() {
				log.Info().Msg("no SPI hardware; terminal preview active")
			}
		}
	default:
		if cfg.Driver != "sim" && cfg.Driver != "" {
			log.Warn().Str("driver", cfg.Driver).Msg("unknown driver; using sim")
		}
		cfg.Driver = "sim"
		simDrv = sim.New(total, log.Logger)
		drv = simDrv
	}

	o, err := orb.New(orb.Config{
		RingCounts:   cfg.RingCounts,
		StatusLEDs:   cfg.StatusLEDs,
		Brightness:   cfg.Brightness,
		RateLimitFPS: cfg.FPS,
	}, drv)
	if err != nil {
		log.Fatal().Err(err).Msg("orb init failed")
	}

	// ---- Preview server ----
	pv := preview.NewServer(o.Geometry(), cfg.Driver, cfg.FPS, log.Logger)
	if simDrv != nil {
		simDrv.OnFrame(pv.Broadcast)
	}
	mux := http.NewServeMux()
	pv.Routes(mux)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", *addr).Str("driver", cfg.Driver).Msg("preview server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Demo show ----
	conductor := show.NewConductor(o, show.DefaultEffects(o.Geometry()), log.Logger)
	player := show.NewPlayer(conductor.Hooks())
	if err := player.Load(demoProgram()); err != nil {
		log.Fatal().Err(err).Msg("demo program rejected")
	}
	player.Start()

	stop := make(chan struct{})
	go func() {
		dt := time.Second / time.Duration(cfg.FPS)
		ticker := time.NewTicker(dt)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				player.Tick(dt.Seconds())
				if err := conductor.Step(dt.Seconds()); err != nil {
					log.Error().Err(err).Msg("frame failed")
				}
			}
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	close(stop)
	_ = srv.Close()
	if err := o.Close(); err != nil {
		log.Warn().Err(err).Msg("driver close failed")
	}
}

// demoProgram cycles the built-in effects with short crossfades.
func demoProgram() show.Program {
	return show.Program{
		Version: show.ProgramVersion,
		Loop:    true,
		Clips: []show.Clip{
			{Name: "warmup", Effect: "solid", Preset: "orange", DurationS: 4, XFadeS: 1,
				Params: map[string]show.Track{
					"level": {Keys: []show.Key{{T: 0, V: 0}, {T: 2, V: 1, Ease: "smooth"}}},
				}},
			{Name: "spectrum", Effect: "rainbow", Preset: "wave", DurationS: 10, XFadeS: 2},
			{Name: "orbits", Effect: "comets", Preset: "trio", DurationS: 12, XFadeS: 2},
			{Name: "hearth", Effect: "flame", Preset: "torch", DurationS: 12, XFadeS: 2},
		},
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
