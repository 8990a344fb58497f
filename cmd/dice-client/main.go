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

// Command dice-client sends a message to the dice agent over the
// chosen A2A transport and prints the response.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient"
	"github.com/a2aproject/a2a-go/a2aclient/agentcard"
	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/aloha-a2a/dice-agent/pkg/config"
)

// CLI defines the client command-line interface.
type CLI struct {
	Transport string        `help:"Transport protocol (jsonrpc, grpc or rest)." enum:"jsonrpc,grpc,rest" default:"jsonrpc"`
	Host      string        `help:"Agent hostname." default:"localhost"`
	Port      int           `help:"Agent port (defaults to the transport's standard port)."`
	Message   string        `help:"Message to send to the agent." required:""`
	Stream    bool          `help:"Stream response events as they arrive."`
	CardURL   string        `name:"card-url" help:"Agent card URL (resolved from host and port if empty)."`
	Timeout   time.Duration `help:"Request timeout." default:"60s"`
}

func main() {
	cli := CLI{}
	kctx := kong.Parse(&cli,
		kong.Name("dice-client"),
		kong.Description("Send a message to the A2A dice agent"),
		kong.UsageOnError(),
	)

	kctx.FatalIfErrorf(run(&cli))
}

func run(cli *CLI) error {
	if cli.Port == 0 {
		switch cli.Transport {
		case "grpc":
			cli.Port = config.DefaultGRPCPort
		case "rest":
			cli.Port = config.DefaultRESTPort
		default:
			cli.Port = config.DefaultJSONRPCPort
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()

	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.TextPart{Text: cli.Message})
	msg.ContextID = uuid.NewString()
	params := &a2a.MessageSendParams{Message: msg}

	if cli.Transport == "rest" {
		return runREST(ctx, cli, params)
	}

	client, err := newClient(ctx, cli)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Destroy()

	if card, err := client.GetAgentCard(ctx); err == nil {
		printCard(card)
	}

	if cli.Stream {
		return sendStreaming(ctx, client, params)
	}
	return send(ctx, client, params)
}

func printCard(card *a2a.AgentCard) {
	fmt.Fprintf(os.Stderr, "Connected to agent: %s (v%s)\n", card.Name, card.Version)
	for _, skill := range card.Skills {
		fmt.Fprintf(os.Stderr, "  - %s: %s\n", skill.Name, skill.Description)
	}
}

// newClient resolves the agent card and builds a client on the chosen
// transport.
func newClient(ctx context.Context, cli *CLI) (*a2aclient.Client, error) {
	cardURL := cli.CardURL
	if cardURL == "" {
		// The card is served over HTTP regardless of transport mode.
		port := cli.Port
		if cli.Transport == "grpc" {
			port = config.DefaultJSONRPCPort
		}
		cardURL = fmt.Sprintf("http://%s:%d", cli.Host, port)
	}

	card, err := agentcard.DefaultResolver.Resolve(ctx, cardURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve agent card from %s: %w", cardURL, err)
	}

	if cli.Transport == "grpc" {
		return a2aclient.NewFromCard(ctx, card,
			a2aclient.WithGRPCTransport(
				grpc.WithTransportCredentials(insecure.NewCredentials()),
			),
		)
	}
	return a2aclient.NewFromCard(ctx, card,
		a2aclient.WithJSONRPCTransport(http.DefaultClient),
	)
}

func send(ctx context.Context, client *a2aclient.Client, params *a2a.MessageSendParams) error {
	result, err := client.SendMessage(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	printResult(result)
	return nil
}

func sendStreaming(ctx context.Context, client *a2aclient.Client, params *a2a.MessageSendParams) error {
	for event, err := range client.SendStreamingMessage(ctx, params) {
		if err != nil {
			return fmt.Errorf("stream error: %w", err)
		}
		printEvent(event)
	}
	return nil
}

func printResult(result any) {
	switch r := result.(type) {
	case *a2a.Task:
		fmt.Printf("Task %s finished in state %s\n", r.ID, r.Status.State)
		if r.Status.Message != nil {
			printMessage(r.Status.Message)
		}
		for _, artifact := range r.Artifacts {
			for _, part := range artifact.Parts {
				printPart(part)
			}
		}
	case *a2a.Message:
		printMessage(r)
	default:
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	}
}

func printEvent(event any) {
	switch e := event.(type) {
	case *a2a.TaskStatusUpdateEvent:
		fmt.Printf("[status] %s", e.Status.State)
		if e.Status.Message != nil {
			fmt.Print(" ")
			printMessageInline(e.Status.Message)
		}
		fmt.Println()
	case *a2a.TaskArtifactUpdateEvent:
		for _, part := range e.Artifact.Parts {
			printPart(part)
		}
	case *a2a.Message:
		printMessage(e)
	default:
		data, _ := json.Marshal(event)
		fmt.Printf("[event] %s\n", string(data))
	}
}

func printMessage(msg *a2a.Message) {
	for _, part := range msg.Parts {
		printPart(part)
	}
}

func printMessageInline(msg *a2a.Message) {
	for _, part := range msg.Parts {
		if p, ok := part.(a2a.TextPart); ok {
			fmt.Print(p.Text)
		}
	}
}

func printPart(part a2a.Part) {
	switch p := part.(type) {
	case a2a.TextPart:
		fmt.Println(p.Text)
	case a2a.DataPart:
		data, _ := json.MarshalIndent(p.Data, "", "  ")
		fmt.Println(string(data))
	case a2a.FilePart:
		fmt.Println("[file part]")
	}
}
