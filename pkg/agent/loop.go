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

// Package agent drives a bounded tool-calling conversation between a
// chat model and the dice tools, with a pattern-matching fallback when
// no model is available.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aloha-a2a/dice-agent/pkg/model"
	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

// maxIterations bounds the number of model round trips per request.
// Each tool-call turn consumes one iteration.
const maxIterations = 5

// maxIterationsReply is returned when the model keeps requesting tools
// past the iteration budget.
const maxIterationsReply = "Maximum iterations reached while processing request."

// emptyContentReply substitutes for a blank final model turn.
const emptyContentReply = "I processed your request."

// Loop runs the model conversation until the model stops asking for
// tools or the iteration budget runs out.
type Loop struct {
	llm      model.LLM
	registry *tool.Registry
}

// NewLoop creates a conversation loop over the given model and tools.
func NewLoop(llm model.LLM, registry *tool.Registry) *Loop {
	return &Loop{llm: llm, registry: registry}
}

// Run processes one user message and returns the agent's final text.
// Tool validation failures and backend errors abort the loop.
func (l *Loop) Run(ctx context.Context, userText string) (string, error) {
	messages := []model.Message{
		{Role: model.RoleSystem, Content: systemPrompt},
		{Role: model.RoleUser, Content: userText},
	}
	definitions := l.registry.Definitions()

	for iteration := 1; iteration <= maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := l.llm.Chat(ctx, &model.Request{
			Messages: messages,
			Tools:    definitions,
		})
		if err != nil {
			slog.Error("Chat call failed", "iteration", iteration, "error", err)
			return "", err
		}

		if !resp.HasToolCalls() {
			if resp.Content == "" {
				return emptyContentReply, nil
			}
			return resp.Content, nil
		}

		messages = append(messages, model.Message{
			Role:      model.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			observation, err := l.dispatch(ctx, call)
			if err != nil {
				return "", err
			}
			messages = append(messages, model.Message{
				Role:     model.RoleTool,
				Content:  observation,
				ToolName: call.Name,
			})
		}
	}

	slog.Warn("Iteration budget exhausted", "max", maxIterations)
	return maxIterationsReply, nil
}

// dispatch runs a single tool call. An unknown tool becomes an error
// observation the model can recover from; a validation failure aborts
// the whole request.
func (l *Loop) dispatch(ctx context.Context, call tool.Call) (string, error) {
	args, err := call.DecodeArgs()
	if err != nil {
		return "", err
	}

	t, ok := l.registry.Get(call.Name)
	if !ok {
		slog.Warn("Unknown tool requested", "tool", call.Name)
		return fmt.Sprintf("Error: Unknown tool '%s'", call.Name), nil
	}

	slog.Info("Executing tool", "tool", call.Name, "args", args)

	if err := t.ValidateArgs(args); err != nil {
		slog.Error("Tool parameter validation failed", "tool", call.Name, "error", err)
		return "", err
	}

	result, err := t.Call(ctx, args)
	if err != nil {
		return "", fmt.Errorf("tool %s failed: %w", call.Name, err)
	}
	slog.Info("Tool result", "tool", call.Name, "result", result)

	observation, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result of %s: %w", call.Name, err)
	}
	return string(observation), nil
}
