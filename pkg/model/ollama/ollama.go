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

// Package ollama implements the model.LLM interface against a local
// Ollama server's /api/chat endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aloha-a2a/dice-agent/pkg/httpclient"
	"github.com/aloha-a2a/dice-agent/pkg/model"
	"github.com/aloha-a2a/dice-agent/pkg/tool"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "qwen2.5"
	defaultTimeout = 120 * time.Second
)

// Config holds connection settings for the Ollama backend.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

func (c *Config) setDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Client talks to an Ollama server over its native HTTP API.
type Client struct {
	config Config
	http   *httpclient.Client
}

// New creates an Ollama client. A nil config uses defaults.
func New(config *Config) *Client {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.setDefaults()

	return &Client{
		config: cfg,
		http: httpclient.New(
			httpclient.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		),
	}
}

// Name returns the configured model name.
func (c *Client) Name() string {
	return c.config.Model
}

// Chat sends the conversation to /api/chat and returns the assistant
// turn, including any requested tool calls.
func (c *Client) Chat(ctx context.Context, req *model.Request) (*model.Response, error) {
	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if isConnectionError(err) {
			return nil, &model.BackendUnavailableError{BaseURL: c.config.BaseURL, Err: err}
		}
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chat backend returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}

	return parseResponse(&chatResp), nil
}

// Ping checks that the backend answers at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &model.BackendUnavailableError{BaseURL: c.config.BaseURL, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &model.BackendUnavailableError{
			BaseURL: c.config.BaseURL,
			Err:     fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	slog.Debug("Chat backend reachable", "base_url", c.config.BaseURL, "model", c.config.Model)
	return nil
}

// Close releases resources. The shared transport needs no teardown.
func (c *Client) Close() error {
	return nil
}

func (c *Client) buildRequest(req *model.Request) *chatRequest {
	out := &chatRequest{
		Model:  c.config.Model,
		Stream: false,
	}

	for _, msg := range req.Messages {
		cm := chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
		if msg.Role == model.RoleTool {
			cm.ToolName = msg.ToolName
		}
		for _, call := range msg.ToolCalls {
			cm.ToolCalls = append(cm.ToolCalls, toolCall{
				Function: functionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		out.Messages = append(out.Messages, cm)
	}

	for _, def := range req.Tools {
		out.Tools = append(out.Tools, apiTool{
			Type: "function",
			Function: functionDef{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}

	return out
}

func parseResponse(resp *chatResponse) *model.Response {
	out := &model.Response{
		Content: resp.Message.Content,
	}
	for i, call := range resp.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, tool.Call{
			ID:        fmt.Sprintf("call_%d", i),
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return out
}

// isConnectionError recognizes unreachable-backend failures so callers
// can distinguish them from protocol errors.
func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "connect:")
}
