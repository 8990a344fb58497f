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
	"fmt"
	"log/slog"

	"github.com/aloha-a2a/dice-agent/pkg/model"
	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

// Mode reports how the engine answers requests.
type Mode int

const (
	// ModeLLM uses the chat backend with tool calling.
	ModeLLM Mode = iota
	// ModeFallback uses keyword matching without a backend.
	ModeFallback
)

func (m Mode) String() string {
	if m == ModeFallback {
		return "fallback"
	}
	return "llm"
}

// Options configures engine construction.
type Options struct {
	// BackendRequired turns an unreachable chat backend into a
	// construction error instead of selecting fallback mode.
	BackendRequired bool
}

// Engine answers user messages, either through the model conversation
// loop or through the fallback responder. The choice is made once at
// construction; a backend failing mid-request is a request error, not
// a trigger for fallback.
type Engine struct {
	mode     Mode
	loop     *Loop
	fallback *Fallback
}

// New probes the chat backend and builds an engine in the appropriate
// mode. With BackendRequired set, an unreachable backend is an error.
func New(ctx context.Context, llm model.LLM, registry *tool.Registry, opts Options) (*Engine, error) {
	if err := llm.Ping(ctx); err != nil {
		if opts.BackendRequired {
			return nil, fmt.Errorf("chat backend required but unreachable: %w", err)
		}
		slog.Warn("Chat backend unreachable, using fallback responder", "error", err)
		return &Engine{mode: ModeFallback, fallback: &Fallback{}}, nil
	}

	slog.Info("Chat backend connected", "model", llm.Name())
	return &Engine{
		mode:     ModeLLM,
		loop:     NewLoop(llm, registry),
		fallback: &Fallback{},
	}, nil
}

// NewFallback builds an engine that only uses the fallback responder.
func NewFallback() *Engine {
	return &Engine{mode: ModeFallback, fallback: &Fallback{}}
}

// Mode returns the engine's answering mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Respond answers one user message.
func (e *Engine) Respond(ctx context.Context, text string) (string, error) {
	if e.mode == ModeFallback {
		return e.fallback.Respond(text), nil
	}
	return e.loop.Run(ctx, text)
}
