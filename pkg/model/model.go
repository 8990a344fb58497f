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

// Package model defines the chat backend interface the conversation
// loop drives.
//
// A backend turns a conversation plus a set of tool declarations into
// either a final text or one or more tool-call requests. The loop owns
// the conversation; the backend is stateless between calls.
package model

import (
	"context"
	"fmt"

	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one turn in a conversation. Assistant messages may carry
// tool calls; tool messages carry a single observation and name the
// tool that produced it.
type Message struct {
	Role      Role
	Content   string
	ToolCalls []tool.Call
	ToolName  string
}

// Request contains the input for one chat call.
type Request struct {
	// Messages is the conversation so far, system turn first.
	Messages []Message

	// Tools available for the model to call. Nil disables tool calling.
	Tools []tool.Definition
}

// Response is the backend's reply to one chat call.
type Response struct {
	// Content is the assistant text, possibly empty when tool calls
	// are requested.
	Content string

	// ToolCalls requested by the model, in issue order.
	ToolCalls []tool.Call
}

// HasToolCalls reports whether the response requests tool execution.
func (r *Response) HasToolCalls() bool {
	return r != nil && len(r.ToolCalls) > 0
}

// LLM is a chat-completion backend with tool-calling support.
type LLM interface {
	// Name returns the model identifier.
	Name() string

	// Chat sends the conversation and returns the backend's reply.
	Chat(ctx context.Context, req *Request) (*Response, error)

	// Ping verifies connectivity to the backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}

// BackendUnavailableError reports that the chat backend cannot be
// reached. It is never silently swallowed: at startup it selects
// fallback mode (when permitted), per request it fails that request.
type BackendUnavailableError struct {
	BaseURL string
	Err     error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("cannot reach chat backend at %s: %v", e.BaseURL, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}
