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

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient/agentcard"
)

// restClient drives the agent's HTTP+JSON endpoints directly. The SDK
// client covers gRPC and JSON-RPC only.
type restClient struct {
	baseURL string
	http    *http.Client
	card    *a2a.AgentCard
}

func newRESTClient(ctx context.Context, baseURL, cardURL string) (*restClient, error) {
	if cardURL == "" {
		cardURL = baseURL
	}
	card, err := agentcard.DefaultResolver.Resolve(ctx, cardURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve agent card from %s: %w", cardURL, err)
	}
	return &restClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    http.DefaultClient,
		card:    card,
	}, nil
}

func (c *restClient) Card() *a2a.AgentCard {
	return c.card
}

func (c *restClient) SendMessage(ctx context.Context, params *a2a.MessageSendParams) (any, error) {
	resp, err := c.post(ctx, "/v1/message:send", params, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return decodeResult(body)
}

// SendStreamingMessage reads the server-sent event stream and hands
// each decoded event to handle, in arrival order.
func (c *restClient) SendStreamingMessage(ctx context.Context, params *a2a.MessageSendParams, handle func(any)) error {
	resp, err := c.post(ctx, "/v1/message:stream", params, "text/event-stream")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		event, err := decodeEvent([]byte(strings.TrimPrefix(line, "data: ")))
		if err != nil {
			return err
		}
		handle(event)
	}
	return scanner.Err()
}

func (c *restClient) post(ctx context.Context, path string, params *a2a.MessageSendParams, accept string) (*http.Response, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}

// decodeResult maps a message:send response to its concrete type by
// the kind discriminator.
func decodeResult(data []byte) (any, error) {
	if kindOf(data) == "message" {
		var msg a2a.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		return &msg, nil
	}
	var task a2a.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return &task, nil
}

// decodeEvent maps one server-sent event payload to its concrete type.
// An error payload terminates the stream.
func decodeEvent(data []byte) (any, error) {
	switch kindOf(data) {
	case "status-update":
		var e a2a.TaskStatusUpdateEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode status update: %w", err)
		}
		return &e, nil
	case "artifact-update":
		var e a2a.TaskArtifactUpdateEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode artifact update: %w", err)
		}
		return &e, nil
	case "message", "task":
		return decodeResult(data)
	default:
		var failure struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &failure); err == nil && failure.Error != "" {
			return nil, fmt.Errorf("stream error: %s", failure.Error)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		return raw, nil
	}
}

func kindOf(data []byte) string {
	var probe struct {
		Kind string `json:"kind"`
	}
	_ = json.Unmarshal(data, &probe)
	return probe.Kind
}

func runREST(ctx context.Context, cli *CLI, params *a2a.MessageSendParams) error {
	baseURL := fmt.Sprintf("http://%s:%d", cli.Host, cli.Port)
	client, err := newRESTClient(ctx, baseURL, cli.CardURL)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	printCard(client.Card())

	if cli.Stream {
		return client.SendStreamingMessage(ctx, params, printEvent)
	}

	result, err := client.SendMessage(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	printResult(result)
	return nil
}
