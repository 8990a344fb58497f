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
	"testing"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aloha-a2a/dice-agent/pkg/config"
	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

func testConfig(mode config.TransportMode) *config.Config {
	return &config.Config{
		Host:             "0.0.0.0",
		GRPCPort:         config.DefaultGRPCPort,
		JSONRPCPort:      config.DefaultJSONRPCPort,
		RESTPort:         config.DefaultRESTPort,
		TransportMode:    mode,
		AgentName:        "Dice Agent",
		AgentDescription: "An agent that can roll arbitrary dice and check prime numbers",
		AgentVersion:     "1.0.0",
		ProviderOrg:      "Aloha A2A",
		ProviderURL:      "https://github.com/google/aloha-a2a",
	}
}

func TestExtractText(t *testing.T) {
	t.Run("Nil message", func(t *testing.T) {
		assert.Equal(t, "", extractText(nil))
	})

	t.Run("Concatenates text parts", func(t *testing.T) {
		msg := a2a.NewMessage(a2a.MessageRoleUser,
			a2a.TextPart{Text: "roll "},
			a2a.TextPart{Text: "a dice"},
		)
		assert.Equal(t, "roll a dice", extractText(msg))
	})

	t.Run("Skips non-text parts", func(t *testing.T) {
		msg := a2a.NewMessage(a2a.MessageRoleUser,
			a2a.TextPart{Text: "check 7"},
			a2a.DataPart{Data: map[string]any{"ignored": true}},
		)
		assert.Equal(t, "check 7", extractText(msg))
	})

	t.Run("No parts", func(t *testing.T) {
		msg := a2a.NewMessage(a2a.MessageRoleUser)
		assert.Equal(t, "", extractText(msg))
	})
}

func TestNewAgentCard(t *testing.T) {
	t.Run("JSON-RPC mode", func(t *testing.T) {
		card := NewAgentCard(testConfig(config.TransportJSONRPC))

		assert.Equal(t, "Dice Agent", card.Name)
		assert.Equal(t, a2a.TransportProtocolJSONRPC, card.PreferredTransport)
		assert.Contains(t, card.URL, "12001")
		assert.True(t, card.Capabilities.Streaming)
		require.NotNil(t, card.Provider)
		assert.Equal(t, "Aloha A2A", card.Provider.Org)
		assert.Equal(t, "https://github.com/google/aloha-a2a", card.Provider.URL)
		require.Len(t, card.Skills, 2)
		assert.Equal(t, "roll-dice", card.Skills[0].ID)
		assert.Equal(t, "check-prime", card.Skills[1].ID)
		assert.Len(t, card.AdditionalInterfaces, 3)
	})

	t.Run("gRPC mode", func(t *testing.T) {
		card := NewAgentCard(testConfig(config.TransportGRPC))
		assert.Equal(t, a2a.TransportProtocolGRPC, card.PreferredTransport)
		assert.Equal(t, "localhost:12000", card.URL)
	})

	t.Run("REST mode", func(t *testing.T) {
		card := NewAgentCard(testConfig(config.TransportREST))
		assert.Equal(t, a2a.TransportProtocolHTTPJSON, card.PreferredTransport)
		assert.Contains(t, card.URL, "12002")
	})
}

func TestFailureText(t *testing.T) {
	t.Run("Validation errors read as invalid request", func(t *testing.T) {
		err := &tool.ValidationError{Tool: "roll_dice", Reason: "'sides' must be positive, got -1"}
		assert.Equal(t, "Invalid request: 'sides' must be positive, got -1", failureText(err))
	})

	t.Run("Other errors read as processing failures", func(t *testing.T) {
		text := failureText(assert.AnError)
		assert.Contains(t, text, "Error processing your request:")
	})
}
