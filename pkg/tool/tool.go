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

// Package tool defines the interfaces for tools the agent can invoke on
// behalf of the chat backend.
//
// A Tool carries its own parameter schema (declared to the backend) and
// validates arguments before execution. Tools are registered once at
// process start in a Registry; the registry is read-only afterwards.
package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Tool is a named capability with a declared parameter schema.
type Tool interface {
	// Name returns the unique name of the tool.
	Name() string

	// Description returns a human-readable description of what the tool
	// does. Used by the chat backend to decide when to call it.
	Description() string

	// Schema returns the JSON schema for the tool's parameters in the
	// {type: "object", properties: {...}, required: [...]} shape.
	Schema() map[string]any

	// ValidateArgs checks arguments against the tool's constraints
	// without executing. Returns a *ValidationError on failure.
	ValidateArgs(args map[string]any) error

	// Call validates and executes the tool. The result map is marshaled
	// to JSON to form the observation fed back to the backend.
	Call(ctx context.Context, args map[string]any) (map[string]any, error)
}

// Definition is a tool declaration in the generic function-calling shape
// understood by chat backends.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToDefinition converts a tool to its backend-facing declaration.
func ToDefinition(t Tool) Definition {
	return Definition{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Schema(),
	}
}

// Call represents a chat backend's request to invoke a tool. Arguments
// are kept raw: backends deliver them as a JSON object, a JSON-encoded
// string, or not at all.
type Call struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// DecodeArgs normalizes raw arguments into a map. Absent or null
// arguments decode to an empty map; a JSON-encoded string is unwrapped
// first. Anything that is not an object is a *ValidationError.
func (c Call) DecodeArgs() (map[string]any, error) {
	raw := bytes.TrimSpace(c.Arguments)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string]any{}, nil
	}

	// Some backends double-encode arguments as a JSON string.
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, &ValidationError{Tool: c.Name, Reason: fmt.Sprintf("malformed tool arguments: %v", err)}
		}
		raw = bytes.TrimSpace([]byte(inner))
		if len(raw) == 0 {
			return map[string]any{}, nil
		}
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, &ValidationError{Tool: c.Name, Reason: fmt.Sprintf("tool arguments for %s must be an object", c.Name)}
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
