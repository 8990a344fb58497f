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

package dice

import (
	"context"
	"errors"
	"fmt"

	"github.com/aloha-a2a/dice-agent/pkg/tool"
	"github.com/aloha-a2a/dice-agent/pkg/tool/functiontool"
)

const (
	// MaxSides caps roll_dice requests.
	MaxSides = 1_000_000

	// MaxNumbers caps the check_prime input length.
	MaxNumbers = 1000
)

// RollDiceArgs are the parameters of the roll_dice tool.
type RollDiceArgs struct {
	Sides *int `json:"sides" jsonschema:"required,description=The number of sides on the dice (must be positive)"`
}

// CheckPrimeArgs are the parameters of the check_prime tool.
type CheckPrimeArgs struct {
	Numbers []int `json:"numbers" jsonschema:"required,description=List of integers to check for primality"`
}

// NewRollDiceTool builds the roll_dice tool.
func NewRollDiceTool() (tool.Tool, error) {
	return functiontool.New(
		functiontool.Config{
			Name:        "roll_dice",
			Description: "Rolls an N-sided dice and returns a random number between 1 and N",
		},
		func(ctx context.Context, args RollDiceArgs) (map[string]any, error) {
			result, err := Roll(*args.Sides)
			if err != nil {
				return nil, err
			}
			return map[string]any{"result": result}, nil
		},
		func(args RollDiceArgs) error {
			if args.Sides == nil {
				return errors.New("roll_dice requires 'sides' parameter")
			}
			sides := *args.Sides
			if sides <= 0 {
				return fmt.Errorf("'sides' must be positive, got %d", sides)
			}
			if sides > MaxSides {
				return fmt.Errorf("'sides' must be <= %d, got %d", MaxSides, sides)
			}
			return nil
		},
	)
}

// NewCheckPrimeTool builds the check_prime tool.
func NewCheckPrimeTool() (tool.Tool, error) {
	return functiontool.New(
		functiontool.Config{
			Name:        "check_prime",
			Description: "Checks if the given numbers are prime and returns which ones are prime",
		},
		func(ctx context.Context, args CheckPrimeArgs) (map[string]any, error) {
			return map[string]any{"result": CheckPrime(args.Numbers)}, nil
		},
		func(args CheckPrimeArgs) error {
			if args.Numbers == nil {
				return errors.New("check_prime requires 'numbers' parameter")
			}
			if len(args.Numbers) == 0 {
				return errors.New("'numbers' list cannot be empty")
			}
			if len(args.Numbers) > MaxNumbers {
				return fmt.Errorf("'numbers' list too large (max %d), got %d", MaxNumbers, len(args.Numbers))
			}
			for _, n := range args.Numbers {
				if n < 0 {
					return fmt.Errorf("all numbers must be non-negative, got %d", n)
				}
			}
			return nil
		},
	)
}

// Tools builds both built-in tools.
func Tools() ([]tool.Tool, error) {
	rollDice, err := NewRollDiceTool()
	if err != nil {
		return nil, err
	}
	checkPrime, err := NewCheckPrimeTool()
	if err != nil {
		return nil, err
	}
	return []tool.Tool{rollDice, checkPrime}, nil
}
