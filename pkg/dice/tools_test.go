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

package dice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aloha-a2a/dice-agent/pkg/dice"
	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

func TestRollDiceTool(t *testing.T) {
	rollDice, err := dice.NewRollDiceTool()
	require.NoError(t, err)
	require.Equal(t, "roll_dice", rollDice.Name())

	t.Run("Schema describes sides", func(t *testing.T) {
		schema := rollDice.Schema()
		assert.Equal(t, "object", schema["type"])
		properties, ok := schema["properties"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, properties, "sides")
		assert.Contains(t, schema["required"], "sides")
	})

	t.Run("Valid call returns result in range", func(t *testing.T) {
		result, err := rollDice.Call(context.Background(), map[string]any{"sides": 20})
		require.NoError(t, err)
		n, ok := result["result"].(int)
		require.True(t, ok)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 20)
	})

	t.Run("Boundary side count accepted", func(t *testing.T) {
		err := rollDice.ValidateArgs(map[string]any{"sides": dice.MaxSides})
		assert.NoError(t, err)
	})

	t.Run("Missing sides rejected", func(t *testing.T) {
		err := rollDice.ValidateArgs(map[string]any{})
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
		assert.Contains(t, err.Error(), "requires 'sides'")
	})

	t.Run("Zero sides rejected", func(t *testing.T) {
		err := rollDice.ValidateArgs(map[string]any{"sides": 0})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Negative sides rejected", func(t *testing.T) {
		err := rollDice.ValidateArgs(map[string]any{"sides": -1})
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
	})

	t.Run("Oversized dice rejected", func(t *testing.T) {
		err := rollDice.ValidateArgs(map[string]any{"sides": dice.MaxSides + 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be <=")
	})

	t.Run("String sides rejected", func(t *testing.T) {
		err := rollDice.ValidateArgs(map[string]any{"sides": "6"})
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
	})

	t.Run("Fractional sides rejected", func(t *testing.T) {
		err := rollDice.ValidateArgs(map[string]any{"sides": 6.5})
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
	})

	t.Run("Validation failure blocks execution", func(t *testing.T) {
		_, err := rollDice.Call(context.Background(), map[string]any{"sides": -5})
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
	})
}

func TestCheckPrimeTool(t *testing.T) {
	checkPrime, err := dice.NewCheckPrimeTool()
	require.NoError(t, err)
	require.Equal(t, "check_prime", checkPrime.Name())

	t.Run("Valid call reports primes", func(t *testing.T) {
		result, err := checkPrime.Call(context.Background(), map[string]any{
			"numbers": []any{2, 4, 7},
		})
		require.NoError(t, err)
		assert.Equal(t, "2, 7 are prime numbers.", result["result"])
	})

	t.Run("Missing numbers rejected", func(t *testing.T) {
		err := checkPrime.ValidateArgs(map[string]any{})
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
		assert.Contains(t, err.Error(), "requires 'numbers'")
	})

	t.Run("Empty list rejected", func(t *testing.T) {
		err := checkPrime.ValidateArgs(map[string]any{"numbers": []any{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("Negative number rejected", func(t *testing.T) {
		err := checkPrime.ValidateArgs(map[string]any{"numbers": []any{3, -1}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-negative")
	})

	t.Run("Non-integer element rejected", func(t *testing.T) {
		err := checkPrime.ValidateArgs(map[string]any{"numbers": []any{3, "five"}})
		require.Error(t, err)
		assert.True(t, tool.IsValidationError(err))
	})

	t.Run("Oversized list rejected", func(t *testing.T) {
		numbers := make([]any, dice.MaxNumbers+1)
		for i := range numbers {
			numbers[i] = 2
		}
		err := checkPrime.ValidateArgs(map[string]any{"numbers": numbers})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("Boundary list size accepted", func(t *testing.T) {
		numbers := make([]any, dice.MaxNumbers)
		for i := range numbers {
			numbers[i] = 2
		}
		err := checkPrime.ValidateArgs(map[string]any{"numbers": numbers})
		assert.NoError(t, err)
	})
}

func TestTools(t *testing.T) {
	tools, err := dice.Tools()
	require.NoError(t, err)
	require.Len(t, tools, 2)

	names := []string{tools[0].Name(), tools[1].Name()}
	assert.Contains(t, names, "roll_dice")
	assert.Contains(t, names, "check_prime")
}
