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

package functiontool_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aloha-a2a/dice-agent/pkg/tool"
	"github.com/aloha-a2a/dice-agent/pkg/tool/functiontool"
)

type greetArgs struct {
	Name  *string `json:"name" jsonschema:"required,description=Who to greet"`
	Shout bool    `json:"shout,omitempty"`
}

func newGreetTool(t *testing.T) tool.Tool {
	t.Helper()

	greet, err := functiontool.New(
		functiontool.Config{Name: "greet", Description: "Greets someone by name"},
		func(ctx context.Context, args greetArgs) (map[string]any, error) {
			greeting := "hello " + *args.Name
			return map[string]any{"greeting": greeting}, nil
		},
		func(args greetArgs) error {
			if args.Name == nil {
				return fmt.Errorf("greet requires 'name' parameter")
			}
			return nil
		},
	)
	require.NoError(t, err)
	return greet
}

func TestNew(t *testing.T) {
	t.Run("Reject empty name", func(t *testing.T) {
		_, err := functiontool.New(
			functiontool.Config{Description: "no name"},
			func(ctx context.Context, args greetArgs) (map[string]any, error) { return nil, nil },
			nil,
		)
		require.Error(t, err)
	})

	t.Run("Reject empty description", func(t *testing.T) {
		_, err := functiontool.New(
			functiontool.Config{Name: "no-description"},
			func(ctx context.Context, args greetArgs) (map[string]any, error) { return nil, nil },
			nil,
		)
		require.Error(t, err)
	})
}

func TestSchema(t *testing.T) {
	greet := newGreetTool(t)
	schema := greet.Schema()

	assert.Equal(t, "object", schema["type"])

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "name")
	assert.Contains(t, properties, "shout")

	assert.Contains(t, schema["required"], "name")
	assert.NotContains(t, schema, "$schema")
}

func TestCall(t *testing.T) {
	greet := newGreetTool(t)

	t.Run("Typed args decoded from map", func(t *testing.T) {
		result, err := greet.Call(context.Background(), map[string]any{"name": "world"})
		require.NoError(t, err)
		assert.Equal(t, "hello world", result["greeting"])
	})

	t.Run("Type mismatch becomes validation error", func(t *testing.T) {
		_, err := greet.Call(context.Background(), map[string]any{"name": 42})
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
	})

	t.Run("Validator failure becomes validation error", func(t *testing.T) {
		_, err := greet.Call(context.Background(), map[string]any{})
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
		assert.Contains(t, err.Error(), "requires 'name'")
	})

	t.Run("ValidateArgs matches Call behavior", func(t *testing.T) {
		assert.NoError(t, greet.ValidateArgs(map[string]any{"name": "x"}))
		assert.Error(t, greet.ValidateArgs(map[string]any{}))
	})

	t.Run("Unknown extra fields ignored", func(t *testing.T) {
		result, err := greet.Call(context.Background(), map[string]any{"name": "x", "extra": true})
		require.NoError(t, err)
		assert.Equal(t, "hello x", result["greeting"])
	})
}
