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

package server

import (
	"fmt"

	"github.com/a2aproject/a2a-go/a2a"

	"github.com/aloha-a2a/dice-agent/pkg/config"
)

// NewAgentCard describes the agent and its transports. The card's
// primary URL follows the configured transport mode.
func NewAgentCard(cfg *config.Config) *a2a.AgentCard {
	grpcURL := fmt.Sprintf("localhost:%d", cfg.GRPCPort)
	jsonrpcURL := fmt.Sprintf("http://localhost:%d", cfg.JSONRPCPort)
	restURL := fmt.Sprintf("http://localhost:%d", cfg.RESTPort)

	var url string
	var preferred a2a.TransportProtocol
	switch cfg.TransportMode {
	case config.TransportGRPC:
		url = grpcURL
		preferred = a2a.TransportProtocolGRPC
	case config.TransportJSONRPC:
		url = jsonrpcURL
		preferred = a2a.TransportProtocolJSONRPC
	default:
		url = restURL
		preferred = a2a.TransportProtocolHTTPJSON
	}

	return &a2a.AgentCard{
		Name:        cfg.AgentName,
		Description: cfg.AgentDescription,
		URL:         url,
		Version:     cfg.AgentVersion,
		Provider: &a2a.AgentProvider{
			Org: cfg.ProviderOrg,
			URL: cfg.ProviderURL,
		},
		Capabilities: a2a.AgentCapabilities{
			Streaming: true,
		},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills: []a2a.AgentSkill{
			{
				ID:          "roll-dice",
				Name:        "Roll Dice",
				Description: "Rolls an N-sided dice",
				Tags:        []string{"dice", "random"},
				Examples:    []string{"Roll a 20-sided dice"},
			},
			{
				ID:          "check-prime",
				Name:        "Prime Checker",
				Description: "Checks if numbers are prime",
				Tags:        []string{"math", "prime"},
				Examples:    []string{"Is 17 prime?"},
			},
		},
		AdditionalInterfaces: []a2a.AgentInterface{
			{Transport: a2a.TransportProtocolGRPC, URL: grpcURL},
			{Transport: a2a.TransportProtocolJSONRPC, URL: jsonrpcURL},
			{Transport: a2a.TransportProtocolHTTPJSON, URL: restURL},
		},
		PreferredTransport: preferred,
	}
}
