// Copyright 2025 Aloha A2A Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command dice-agent runs the A2A dice agent on gRPC, JSON-RPC and
// REST transports.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/aloha-a2a/dice-agent/pkg/agent"
	"github.com/aloha-a2a/dice-agent/pkg/config"
	"github.com/aloha-a2a/dice-agent/pkg/dice"
	"github.com/aloha-a2a/dice-agent/pkg/model/ollama"
	"github.com/aloha-a2a/dice-agent/pkg/server"
	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

// CLI defines the command-line interface.
type CLI struct {
	Version VersionCmd `cmd:"" help:"Show version information."`
	Serve   ServeCmd   `cmd:"" default:"1" help:"Start the A2A dice agent."`

	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFormat string `help:"Log format (text or json)." default:"text"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("dice-agent version %s\n", version)
	return nil
}

// ServeCmd starts the agent server.
type ServeCmd struct {
	Fallback bool `help:"Skip the chat backend and answer with pattern matching only."`
}

func (c *ServeCmd) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	registry := tool.NewRegistry()
	tools, err := dice.Tools()
	if err != nil {
		return fmt.Errorf("failed to build tools: %w", err)
	}
	for _, t := range tools {
		registry.Register(t)
	}

	var engine *agent.Engine
	if c.Fallback {
		engine = agent.NewFallback()
	} else {
		llm := ollama.New(&ollama.Config{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.Model,
			Timeout: cfg.Ollama.Timeout,
		})
		defer llm.Close()

		engine, err = agent.New(ctx, llm, registry, agent.Options{
			BackendRequired: cfg.Ollama.Required,
		})
		if err != nil {
			return err
		}
	}
	slog.Info("Dice agent initialized", "mode", engine.Mode())

	srv := server.New(cfg, server.NewExecutor(engine))
	return srv.Run(ctx)
}

func main() {
	_ = config.LoadDotEnv()

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("dice-agent"),
		kong.Description("A2A agent that rolls dice and checks primes"),
		kong.UsageOnError(),
	)

	if err := initLogger(cli.LogLevel, cli.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
