package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// config describes the eleanord YAML configuration.
type config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Brain struct {
		Kind         string `yaml:"kind"`
		Model        string `yaml:"model"`
		MaxTokens    int    `yaml:"max_tokens"`
		SystemPrompt string `yaml:"system_prompt"`
	} `yaml:"brain"`
	Tools struct {
		LatencyMillis int `yaml:"latency_millis"`
	} `yaml:"tools"`
	Logging struct {
		Development bool `yaml:"development"`
	} `yaml:"logging"`
}

// loadConfig reads the configuration file, fills defaults, and applies
// environment overrides. A missing file is not an error; the defaults
// run a heuristic-brain server on :8080.
func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if addr := trimmedEnv("ELEANOR_LISTEN_ADDR"); addr != "" {
		cfg.Server.ListenAddr = addr
	}
	if kind := trimmedEnv("ELEANOR_BRAIN"); kind != "" {
		cfg.Brain.Kind = kind
	}
	if model := trimmedEnv("ANTHROPIC_MODEL"); model != "" && cfg.Brain.Model == "" {
		cfg.Brain.Model = model
	}
	if latency := trimmedEnv("ELEANOR_TOOL_LATENCY_MS"); latency != "" {
		parsed, err := strconv.Atoi(latency)
		if err != nil {
			return cfg, fmt.Errorf("config: invalid ELEANOR_TOOL_LATENCY_MS: %w", err)
		}
		cfg.Tools.LatencyMillis = parsed
	}

	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Brain.Kind == "" {
		cfg.Brain.Kind = "heuristic"
	}
	if cfg.Tools.LatencyMillis <= 0 {
		cfg.Tools.LatencyMillis = 400
	}

	switch cfg.Brain.Kind {
	case "heuristic":
	case "anthropic":
		if cfg.Brain.Model == "" {
			return cfg, fmt.Errorf("config: brain.model is required when brain.kind is anthropic")
		}
	default:
		return cfg, fmt.Errorf("config: unknown brain.kind %q", cfg.Brain.Kind)
	}

	return cfg, nil
}

func (c config) toolLatency() time.Duration {
	return time.Duration(c.Tools.LatencyMillis) * time.Millisecond
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
