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

package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aloha-a2a/dice-agent/pkg/dice"
	"github.com/aloha-a2a/dice-agent/pkg/model"
	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedLLM returns canned responses in order and records the
// requests it saw.
type scriptedLLM struct {
	responses []*model.Response
	err       error
	requests  []*model.Request
}

func (s *scriptedLLM) Name() string { return "scripted" }

func (s *scriptedLLM) Chat(ctx context.Context, req *model.Request) (*model.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.requests = append(s.requests, req)
	if len(s.responses) == 0 {
		return &model.Response{Content: "done"}, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedLLM) Ping(ctx context.Context) error { return nil }
func (s *scriptedLLM) Close() error                   { return nil }

func testRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	registry := tool.NewRegistry()
	tools, err := dice.Tools()
	require.NoError(t, err)
	for _, tl := range tools {
		registry.Register(tl)
	}
	return registry
}

func toolCallResponse(name, args string) *model.Response {
	return &model.Response{
		ToolCalls: []tool.Call{
			{ID: "call_0", Name: name, Arguments: json.RawMessage(args)},
		},
	}
}

func TestLoopRun(t *testing.T) {
	t.Run("Direct answer without tools", func(t *testing.T) {
		llm := &scriptedLLM{responses: []*model.Response{{Content: "Hi there!"}}}
		loop := NewLoop(llm, testRegistry(t))

		reply, err := loop.Run(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "Hi there!", reply)
		require.Len(t, llm.requests, 1)

		messages := llm.requests[0].Messages
		require.Len(t, messages, 2)
		assert.Equal(t, model.RoleSystem, messages[0].Role)
		assert.Equal(t, model.RoleUser, messages[1].Role)
		assert.Equal(t, "hello", messages[1].Content)
		assert.Len(t, llm.requests[0].Tools, 2)
	})

	t.Run("Tool call round trip", func(t *testing.T) {
		llm := &scriptedLLM{responses: []*model.Response{
			toolCallResponse("roll_dice", `{"sides": 6}`),
			{Content: "You rolled well!"},
		}}
		loop := NewLoop(llm, testRegistry(t))

		reply, err := loop.Run(context.Background(), "roll a dice")
		require.NoError(t, err)
		assert.Equal(t, "You rolled well!", reply)

		// Second request carries the assistant turn and one tool
		// observation on top of the original two messages.
		require.Len(t, llm.requests, 2)
		messages := llm.requests[1].Messages
		require.Len(t, messages, 4)
		assert.Equal(t, model.RoleAssistant, messages[2].Role)
		require.Len(t, messages[2].ToolCalls, 1)
		assert.Equal(t, model.RoleTool, messages[3].Role)
		assert.Equal(t, "roll_dice", messages[3].ToolName)
		assert.Contains(t, messages[3].Content, "result")
	})

	t.Run("Arguments as JSON-encoded string", func(t *testing.T) {
		llm := &scriptedLLM{responses: []*model.Response{
			toolCallResponse("check_prime", `"{\"numbers\": [7, 8]}"`),
			{Content: "Seven is prime."},
		}}
		loop := NewLoop(llm, testRegistry(t))

		reply, err := loop.Run(context.Background(), "is 7 prime?")
		require.NoError(t, err)
		assert.Equal(t, "Seven is prime.", reply)

		messages := llm.requests[1].Messages
		assert.Contains(t, messages[3].Content, "7 are prime numbers.")
	})

	t.Run("Empty final content substituted", func(t *testing.T) {
		llm := &scriptedLLM{responses: []*model.Response{{Content: ""}}}
		loop := NewLoop(llm, testRegistry(t))

		reply, err := loop.Run(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "I processed your request.", reply)
	})

	t.Run("Iteration budget enforced", func(t *testing.T) {
		// Always asks for another tool call; never yields an answer.
		responses := make([]*model.Response, maxIterations+3)
		for i := range responses {
			responses[i] = toolCallResponse("roll_dice", `{"sides": 6}`)
		}
		llm := &scriptedLLM{responses: responses}
		loop := NewLoop(llm, testRegistry(t))

		reply, err := loop.Run(context.Background(), "keep rolling")
		require.NoError(t, err)
		assert.Equal(t, "Maximum iterations reached while processing request.", reply)
		assert.Len(t, llm.requests, maxIterations)
	})

	t.Run("Unknown tool becomes observation", func(t *testing.T) {
		llm := &scriptedLLM{responses: []*model.Response{
			toolCallResponse("read_palm", `{}`),
			{Content: "Sorry, I cannot do that."},
		}}
		loop := NewLoop(llm, testRegistry(t))

		reply, err := loop.Run(context.Background(), "read my palm")
		require.NoError(t, err)
		assert.Equal(t, "Sorry, I cannot do that.", reply)

		messages := llm.requests[1].Messages
		assert.Equal(t, "Error: Unknown tool 'read_palm'", messages[3].Content)
	})

	t.Run("Validation failure aborts", func(t *testing.T) {
		llm := &scriptedLLM{responses: []*model.Response{
			toolCallResponse("roll_dice", `{"sides": -2}`),
		}}
		loop := NewLoop(llm, testRegistry(t))

		_, err := loop.Run(context.Background(), "roll a -2 sided dice")
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
		assert.Len(t, llm.requests, 1)
	})

	t.Run("Backend failure propagates", func(t *testing.T) {
		llm := &scriptedLLM{err: &model.BackendUnavailableError{BaseURL: "http://localhost:11434"}}
		loop := NewLoop(llm, testRegistry(t))

		_, err := loop.Run(context.Background(), "hello")
		require.Error(t, err)
		var unavailable *model.BackendUnavailableError
		assert.ErrorAs(t, err, &unavailable)
	})

	t.Run("Canceled context stops the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		llm := &scriptedLLM{responses: []*model.Response{{Content: "never seen"}}}
		loop := NewLoop(llm, testRegistry(t))

		_, err := loop.Run(ctx, "hello")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, llm.requests)
	})
}
