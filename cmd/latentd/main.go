package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"latentd/internal/adapter"
	"latentd/internal/config"
	"latentd/internal/engine"
	"latentd/internal/httpapi"
	"latentd/internal/registry"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("LATENTD_ADDR"); v != "" {
		defaultAddr = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	modelsDir := flag.String("models-dir", "~/models/latent", "Directory to scan for *.model program files")
	defaultModel := flag.String("default-model", "", "Default model id when request omits model")
	maxQueueDepth := flag.Int("max-queue-depth", 0, "Maximum queued calls per model before 429 (0=default)")
	maxWaitSec := flag.Int("max-wait-sec", 0, "Maximum seconds a call may wait in queue (0=default)")
	logLevel := flag.String("log-level", "", "Log level: off, error, info, debug")
	configPath := flag.String("config", "", "Optional config file (.yaml/.json/.toml); flags override")
	flag.Parse()

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		// Flags set on the command line win over file values.
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["addr"] && cfg.Addr != "" {
			*addr = cfg.Addr
		}
		if !set["models-dir"] && cfg.ModelsDir != "" {
			*modelsDir = cfg.ModelsDir
		}
		if !set["default-model"] && cfg.DefaultModel != "" {
			*defaultModel = cfg.DefaultModel
		}
		if !set["max-queue-depth"] && cfg.MaxQueueDepth > 0 {
			*maxQueueDepth = cfg.MaxQueueDepth
		}
		if !set["max-wait-sec"] && cfg.MaxWaitSec > 0 {
			*maxWaitSec = cfg.MaxWaitSec
		}
		if !set["log-level"] && cfg.LogLevel != "" {
			*logLevel = cfg.LogLevel
		}
		if cfg.CORSEnabled {
			httpapi.SetCORSOptions(true, cfg.CORSOrigins,
				[]string{"GET", "POST", "OPTIONS"},
				[]string{"Content-Type", "X-Log-Level"})
		}
	}

	logger := newLogger(*logLevel)
	httpapi.SetLogger(logger)

	// Load registry by scanning modelsDir for *.model
	models, err := registry.LoadDir(*modelsDir)
	if err != nil {
		log.Fatalf("failed to load models: %v", err)
	}

	eng := engine.New(engine.Config{
		DefaultModel:  *defaultModel,
		MaxQueueDepth: *maxQueueDepth,
		MaxWait:       time.Duration(*maxWaitSec) * time.Second,
	})
	for _, m := range models {
		a, err := adapter.NewExternalFromFile(m.Path)
		if err != nil {
			logger.Warn().Str("model", m.ID).Err(err).Msg("skipping model")
			continue
		}
		if err := eng.Register(m.ID, m.Name, m.Source, m.Path, a); err != nil {
			logger.Warn().Str("model", m.ID).Err(err).Msg("skipping model")
		}
	}

	// Base context canceled on shutdown so in-flight calls stop too.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(eng)
	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", *addr).Str("models_dir", *modelsDir).
			Int("models", len(eng.ListModels())).Msg("latentd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "off":
		lvl = zerolog.Disabled
	case "error":
		lvl = zerolog.ErrorLevel
	case "debug":
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
