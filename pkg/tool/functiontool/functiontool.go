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

// Package functiontool turns a typed Go function into a tool.Tool.
//
// The parameter schema is generated by reflection from the Args struct's
// json and jsonschema tags, so the declaration sent to the chat backend
// and the decoding applied to incoming arguments can never drift apart.
//
// Example:
//
//	type Args struct {
//	    Sides *int `json:"sides" jsonschema:"required,description=Number of sides"`
//	}
//
//	t, err := functiontool.New(
//	    functiontool.Config{Name: "roll_dice", Description: "Rolls an N-sided dice"},
//	    func(ctx context.Context, args Args) (map[string]any, error) { ... },
//	    func(args Args) error { ... },
//	)
package functiontool

import (
	"context"
	"fmt"

	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

// Config defines the configuration for a function tool.
type Config struct {
	// Name is the unique identifier for this tool (required).
	Name string

	// Description explains what the tool does (required).
	Description string
}

// New creates a tool.Tool from a typed function and an optional
// validation function. The validate func runs after arguments are
// decoded into Args and before fn is invoked; any error it returns is
// reported as a *tool.ValidationError and fn is never called.
func New[Args any](cfg Config, fn func(context.Context, Args) (map[string]any, error), validate func(Args) error) (tool.Tool, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("functiontool: name is required")
	}
	if cfg.Description == "" {
		return nil, fmt.Errorf("functiontool: description is required for %s", cfg.Name)
	}

	schema, err := generateSchema[Args]()
	if err != nil {
		return nil, fmt.Errorf("functiontool: schema generation for %s: %w", cfg.Name, err)
	}

	return &functionTool[Args]{
		config:   cfg,
		fn:       fn,
		validate: validate,
		schema:   schema,
	}, nil
}

type functionTool[Args any] struct {
	config   Config
	fn       func(context.Context, Args) (map[string]any, error)
	validate func(Args) error
	schema   map[string]any
}

func (t *functionTool[Args]) Name() string {
	return t.config.Name
}

func (t *functionTool[Args]) Description() string {
	return t.config.Description
}

func (t *functionTool[Args]) Schema() map[string]any {
	return t.schema
}

// ValidateArgs decodes the raw arguments into Args and applies the
// validation function. Decoding failures (wrong types, malformed
// values) are validation errors too.
func (t *functionTool[Args]) ValidateArgs(args map[string]any) error {
	_, err := t.decodeAndValidate(args)
	return err
}

// Call validates and then executes. A validation failure never reaches
// the wrapped function.
func (t *functionTool[Args]) Call(ctx context.Context, args map[string]any) (map[string]any, error) {
	decoded, err := t.decodeAndValidate(args)
	if err != nil {
		return nil, err
	}
	return t.fn(ctx, decoded)
}

func (t *functionTool[Args]) decodeAndValidate(args map[string]any) (Args, error) {
	var decoded Args
	if err := mapToStruct(args, &decoded); err != nil {
		return decoded, &tool.ValidationError{Tool: t.config.Name, Reason: err.Error()}
	}
	if t.validate != nil {
		if err := t.validate(decoded); err != nil {
			if tool.IsValidationError(err) {
				return decoded, err
			}
			return decoded, &tool.ValidationError{Tool: t.config.Name, Reason: err.Error()}
		}
	}
	return decoded, nil
}
