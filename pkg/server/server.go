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

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2agrpc"
	"github.com/a2aproject/a2a-go/a2asrv"
	"google.golang.org/grpc"

	"github.com/aloha-a2a/dice-agent/pkg/config"
)

// agentCardPath is the well-known location of the agent card.
const agentCardPath = "/.well-known/agent-card.json"

// Server runs the agent on all three A2A transports at once. The
// transport mode only selects which one the agent card advertises.
type Server struct {
	cfg     *config.Config
	card    *a2a.AgentCard
	handler a2asrv.RequestHandler
}

// New creates a server around the given executor.
func New(cfg *config.Config, executor a2asrv.AgentExecutor) *Server {
	return &Server{
		cfg:     cfg,
		card:    NewAgentCard(cfg),
		handler: a2asrv.NewHandler(executor),
	}
}

// Card returns the agent card the server advertises.
func (s *Server) Card() *a2a.AgentCard {
	return s.card
}

// Run starts all transports and blocks until ctx is canceled or a
// transport fails.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errChan := make(chan error, 3)

	start := func(name string, serve func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("%s transport: %w", name, err)
				cancel()
			}
		}()
	}

	start("grpc", s.serveGRPC)
	start("jsonrpc", s.serveJSONRPC)
	start("rest", s.serveREST)

	slog.Info("Dice agent running",
		"mode", s.cfg.TransportMode,
		"grpc", fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.GRPCPort),
		"jsonrpc", fmt.Sprintf("http://%s:%d", s.cfg.Host, s.cfg.JSONRPCPort),
		"rest", fmt.Sprintf("http://%s:%d", s.cfg.Host, s.cfg.RESTPort),
		"agent_card", fmt.Sprintf("http://%s:%d%s", s.cfg.Host, s.cfg.JSONRPCPort, agentCardPath))

	<-ctx.Done()
	wg.Wait()

	select {
	case err := <-errChan:
		return err
	default:
		return nil
	}
}

func (s *Server) serveGRPC(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.GRPCPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	a2agrpc.NewHandler(s.handler).RegisterWith(grpcServer)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	slog.Info("gRPC transport listening", "addr", addr)
	return grpcServer.Serve(listener)
}

func (s *Server) serveJSONRPC(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(agentCardPath, a2asrv.NewStaticAgentCardHandler(s.card))
	mux.Handle("/", a2asrv.NewJSONRPCHandler(s.handler))

	return s.serveHTTP(ctx, "JSON-RPC", s.cfg.JSONRPCPort, mux)
}

func (s *Server) serveREST(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(agentCardPath, a2asrv.NewStaticAgentCardHandler(s.card))
	s.registerRESTRoutes(mux)

	return s.serveHTTP(ctx, "REST", s.cfg.RESTPort, mux)
}

func (s *Server) serveHTTP(ctx context.Context, name string, port int, mux *http.ServeMux) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, port)
	httpServer := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	slog.Info(name+" transport listening", "addr", addr)
	return httpServer.ListenAndServe()
}
