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

// Package server exposes the dice agent over the A2A protocol on
// gRPC, JSON-RPC and REST transports.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"

	"github.com/aloha-a2a/dice-agent/pkg/agent"
	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

var _ a2asrv.AgentExecutor = (*Executor)(nil)

// Executor adapts the agent engine to the a2asrv.AgentExecutor
// contract: task lifecycle events in, one text artifact out.
type Executor struct {
	engine *agent.Engine
}

// NewExecutor creates an executor over the given engine.
func NewExecutor(engine *agent.Engine) *Executor {
	return &Executor{engine: engine}
}

// Execute processes an incoming message and writes lifecycle events
// and the response artifact to the queue.
func (e *Executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	taskID := reqCtx.TaskID
	slog.Info("Received new request", "task_id", taskID)

	text := extractText(reqCtx.Message)
	if strings.TrimSpace(text) == "" {
		slog.Warn("Empty message received", "task_id", taskID)
		return writeFailed(ctx, reqCtx, queue,
			"Error: Empty message received. Please provide a message.")
	}

	// New tasks are announced as submitted before any work happens.
	if reqCtx.StoredTask == nil {
		event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateSubmitted, nil)
		if err := queue.Write(ctx, event); err != nil {
			return fmt.Errorf("failed to write submitted status: %w", err)
		}
	}

	working := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, nil)
	if err := queue.Write(ctx, working); err != nil {
		return fmt.Errorf("failed to write working status: %w", err)
	}

	response, err := e.engine.Respond(ctx, text)
	if err != nil {
		slog.Error("Request processing failed", "task_id", taskID, "error", err)
		return writeFailed(ctx, reqCtx, queue, failureText(err))
	}

	slog.Info("Generated response", "task_id", taskID, "length", len(response))

	artifact := a2a.NewArtifactEvent(reqCtx, a2a.TextPart{Text: response})
	if err := queue.Write(ctx, artifact); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	completed := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCompleted, nil)
	completed.Final = true
	if err := queue.Write(ctx, completed); err != nil {
		return fmt.Errorf("failed to write completed status: %w", err)
	}

	slog.Info("Task completed", "task_id", taskID)
	return nil
}

// Cancel marks the task canceled.
func (e *Executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	slog.Info("Cancel requested", "task_id", reqCtx.TaskID)

	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCanceled, nil)
	event.Final = true
	if err := queue.Write(ctx, event); err != nil {
		return fmt.Errorf("failed to write canceled status: %w", err)
	}
	return nil
}

// failureText renders an engine error as the user-facing failure
// message. Validation problems read as request errors.
func failureText(err error) string {
	if tool.IsValidationError(err) {
		return fmt.Sprintf("Invalid request: %s", err.Error())
	}
	return fmt.Sprintf("Error processing your request: %s", err.Error())
}

// writeFailed emits a final failed status carrying an agent message.
func writeFailed(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue, text string) error {
	msg := a2a.NewMessage(a2a.MessageRoleAgent, a2a.TextPart{Text: text})
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateFailed, msg)
	event.Final = true
	if err := queue.Write(ctx, event); err != nil {
		return fmt.Errorf("failed to write failed status: %w", err)
	}
	return nil
}
