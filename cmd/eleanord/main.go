package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/everettlabs/eleanor/agent"
	"github.com/everettlabs/eleanor/agent/dispatch"
	anthropicbrain "github.com/everettlabs/eleanor/brain/anthropic"
	"github.com/everettlabs/eleanor/brain/heuristic"
	"github.com/everettlabs/eleanor/httpapi"
	"github.com/everettlabs/eleanor/tools"
)

// main launches eleanord.
func main() {
	os.Exit(run())
}

// run executes eleanord and returns an exit code.
func run() int {
	_ = godotenv.Load()

	configPath := flag.String("config", "eleanor.yaml", "path to eleanord config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	log, err := newLogger(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	reg := agent.NewRegistry()
	if err := tools.RegisterBuiltins(reg, tools.Options{Latency: cfg.toolLatency()}); err != nil {
		log.Error("tool registration failed", zap.Error(err))
		return 1
	}

	brain, err := buildBrain(cfg, reg)
	if err != nil {
		log.Error("brain setup failed", zap.Error(err))
		return 1
	}

	dispatcher, err := dispatch.New(dispatch.Config{
		Brain:  brain,
		Tools:  reg,
		Logger: log.Named("dispatch"),
	})
	if err != nil {
		log.Error("dispatcher setup failed", zap.Error(err))
		return 1
	}

	handler := httpapi.RequestLogger(log.Named("http"), httpapi.NewHandler(httpapi.Config{
		Processor: dispatcher,
		Logger:    log.Named("http"),
	}))

	server := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.ListenAddr), zap.String("brain", cfg.Brain.Kind))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	return 0
}

func buildBrain(cfg config, reg *agent.Registry) (agent.Brain, error) {
	switch cfg.Brain.Kind {
	case "anthropic":
		return anthropicbrain.New(anthropicbrain.Config{
			APIKey:       trimmedEnv("ANTHROPIC_API_KEY"),
			Model:        cfg.Brain.Model,
			MaxTokens:    cfg.Brain.MaxTokens,
			SystemPrompt: cfg.Brain.SystemPrompt,
			Tools:        reg.Definitions(),
		})
	default:
		return heuristic.New(), nil
	}
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
