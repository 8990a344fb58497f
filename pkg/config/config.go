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

// Package config loads agent settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TransportMode names the transport the agent card advertises as
// primary. All transports are served regardless of mode.
type TransportMode string

const (
	TransportGRPC    TransportMode = "grpc"
	TransportJSONRPC TransportMode = "jsonrpc"
	TransportREST    TransportMode = "rest"
)

// Default ports for the three transports.
const (
	DefaultGRPCPort    = 12000
	DefaultJSONRPCPort = 12001
	DefaultRESTPort    = 12002
)

// Ollama holds chat backend settings.
type Ollama struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	// Required makes an unreachable backend a startup error instead
	// of selecting the fallback responder.
	Required bool
}

// Config holds the full agent configuration.
type Config struct {
	Host          string
	GRPCPort      int
	JSONRPCPort   int
	RESTPort      int
	TransportMode TransportMode

	AgentName        string
	AgentDescription string
	AgentVersion     string
	ProviderOrg      string
	ProviderURL      string

	Ollama Ollama
}

// Load reads configuration from the environment. Values not set fall
// back to defaults suitable for local development.
func Load() (*Config, error) {
	cfg := &Config{
		Host:          envString("HOST", "0.0.0.0"),
		GRPCPort:      envInt("GRPC_PORT", DefaultGRPCPort),
		JSONRPCPort:   envInt("JSONRPC_PORT", DefaultJSONRPCPort),
		RESTPort:      envInt("REST_PORT", DefaultRESTPort),
		TransportMode: TransportMode(envString("TRANSPORT_MODE", string(TransportJSONRPC))),

		AgentName:        envString("AGENT_NAME", "Dice Agent"),
		AgentDescription: envString("AGENT_DESCRIPTION", "An agent that can roll arbitrary dice and check prime numbers"),
		AgentVersion:     envString("AGENT_VERSION", "1.0.0"),
		ProviderOrg:      envString("AGENT_PROVIDER_ORG", "Aloha A2A"),
		ProviderURL:      envString("AGENT_PROVIDER_URL", "https://github.com/google/aloha-a2a"),

		Ollama: Ollama{
			BaseURL:  envString("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:    envString("OLLAMA_MODEL", "qwen2.5"),
			Timeout:  envDuration("OLLAMA_TIMEOUT", 120*time.Second),
			Required: envBool("OLLAMA_REQUIRED", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.TransportMode {
	case TransportGRPC, TransportJSONRPC, TransportREST:
	default:
		return fmt.Errorf("invalid TRANSPORT_MODE %q (want grpc, jsonrpc or rest)", c.TransportMode)
	}

	for name, port := range map[string]int{
		"GRPC_PORT":    c.GRPCPort,
		"JSONRPC_PORT": c.JSONRPCPort,
		"REST_PORT":    c.RESTPort,
	} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid %s %d", name, port)
		}
	}
	return nil
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
