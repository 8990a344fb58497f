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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aloha-a2a/dice-agent/pkg/model"
)

// unreachableLLM fails every call, as if no backend were running.
type unreachableLLM struct{}

func (u *unreachableLLM) Name() string { return "unreachable" }

func (u *unreachableLLM) Chat(ctx context.Context, req *model.Request) (*model.Response, error) {
	return nil, u.Ping(ctx)
}

func (u *unreachableLLM) Ping(context.Context) error {
	return &model.BackendUnavailableError{BaseURL: "http://localhost:11434"}
}

func (u *unreachableLLM) Close() error { return nil }

// flakyLLM answers the setup ping but fails all chat calls.
type flakyLLM struct{}

func (f *flakyLLM) Name() string { return "flaky" }

func (f *flakyLLM) Chat(context.Context, *model.Request) (*model.Response, error) {
	return nil, &model.BackendUnavailableError{BaseURL: "http://localhost:11434"}
}

func (f *flakyLLM) Ping(context.Context) error { return nil }
func (f *flakyLLM) Close() error               { return nil }

func TestEngineNew(t *testing.T) {
	t.Run("Reachable backend selects LLM mode", func(t *testing.T) {
		llm := &scriptedLLM{responses: []*model.Response{{Content: "hi"}}}
		engine, err := New(context.Background(), llm, testRegistry(t), Options{})
		require.NoError(t, err)
		assert.Equal(t, ModeLLM, engine.Mode())

		reply, err := engine.Respond(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "hi", reply)
	})

	t.Run("Unreachable backend selects fallback mode", func(t *testing.T) {
		engine, err := New(context.Background(), &unreachableLLM{}, testRegistry(t), Options{})
		require.NoError(t, err)
		assert.Equal(t, ModeFallback, engine.Mode())

		reply, err := engine.Respond(context.Background(), "roll the dice")
		require.NoError(t, err)
		assert.Contains(t, reply, "I rolled a 6-sided dice")
	})

	t.Run("Required backend unreachable is an error", func(t *testing.T) {
		_, err := New(context.Background(), &unreachableLLM{}, testRegistry(t), Options{
			BackendRequired: true,
		})
		require.Error(t, err)
		var unavailable *model.BackendUnavailableError
		assert.ErrorAs(t, err, &unavailable)
	})

	t.Run("Backend failure mid-request is not silent fallback", func(t *testing.T) {
		// Setup succeeds but every chat call fails. The request must
		// surface the error rather than switching to pattern matching.
		engine, err := New(context.Background(), &flakyLLM{}, testRegistry(t), Options{})
		require.NoError(t, err)
		require.Equal(t, ModeLLM, engine.Mode())

		_, err = engine.Respond(context.Background(), "roll the dice")
		require.Error(t, err)
	})
}

func TestEngineModeString(t *testing.T) {
	assert.Equal(t, "llm", ModeLLM.String())
	assert.Equal(t, "fallback", ModeFallback.String())
}

func TestNewFallback(t *testing.T) {
	engine := NewFallback()
	assert.Equal(t, ModeFallback, engine.Mode())

	reply, err := engine.Respond(context.Background(), "is 11 prime?")
	require.NoError(t, err)
	assert.Equal(t, "11 are prime numbers.", reply)
}
