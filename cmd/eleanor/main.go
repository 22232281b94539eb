package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/everettlabs/eleanor/agent"
	"github.com/everettlabs/eleanor/agent/dispatch"
	anthropicbrain "github.com/everettlabs/eleanor/brain/anthropic"
	"github.com/everettlabs/eleanor/brain/heuristic"
	"github.com/everettlabs/eleanor/tools"
)

// main launches the terminal chat client.
func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	latency := flag.Duration("latency", 400*time.Millisecond, "simulated tool latency")
	brainKind := flag.String("brain", envOr("ELEANOR_BRAIN", "heuristic"), "brain to use: heuristic or anthropic")
	noColor := flag.Bool("no-color", false, "disable styled output")
	flag.Parse()

	reg := agent.NewRegistry()
	if err := tools.RegisterBuiltins(reg, tools.Options{Latency: *latency}); err != nil {
		fmt.Fprintf(os.Stderr, "eleanor: %v\n", err)
		return 1
	}

	brain, err := buildBrain(*brainKind, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eleanor: %v\n", err)
		return 1
	}

	renderer := newRenderer(*noColor)

	dispatcher, err := dispatch.New(dispatch.Config{
		Brain: brain,
		Tools: reg,
		Steps: agent.StepSinkFunc(func(step agent.Step) {
			fmt.Println(renderer.step(step))
		}),
		Logger: zap.NewNop(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "eleanor: %v\n", err)
		return 1
	}

	fmt.Println(renderer.banner())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		result, err := dispatcher.Process(context.Background(), line)
		if err != nil {
			fmt.Println(renderer.errorLine(err))
			continue
		}

		fmt.Println(renderer.reply(result.Reply))
		for _, call := range result.ToolCalls {
			if call.Result != nil && call.Result.Success {
				fmt.Println(renderer.receipt(call))
			}
		}
	}
	return 0
}

func buildBrain(kind string, reg *agent.Registry) (agent.Brain, error) {
	switch kind {
	case "anthropic":
		return anthropicbrain.New(anthropicbrain.Config{
			APIKey: envOr("ANTHROPIC_API_KEY", ""),
			Model:  envOr("ANTHROPIC_MODEL", ""),
			Tools:  reg.Definitions(),
		})
	case "heuristic":
		return heuristic.New(), nil
	default:
		return nil, fmt.Errorf("unknown brain %q", kind)
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
