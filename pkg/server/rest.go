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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
)

// The SDK ships gRPC and JSON-RPC handlers but no HTTP+JSON one, so
// the REST transport is a thin adapter over the request handler.
func (s *Server) registerRESTRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/message:send", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleMessageSend(w, r)
	})

	mux.HandleFunc("/v1/message:stream", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleMessageStream(w, r)
	})

	mux.HandleFunc("/v1/tasks/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/v1/tasks/")
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(path, ":cancel"):
			s.handleCancelTask(w, r, strings.TrimSuffix(path, ":cancel"))
		case r.Method == http.MethodGet:
			s.handleGetTask(w, r, path)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// decodeSendParams accepts either MessageSendParams or a bare Message.
func decodeSendParams(r *http.Request) (*a2a.MessageSendParams, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body")
	}

	var params a2a.MessageSendParams
	if err := json.Unmarshal(body, &params); err == nil && params.Message != nil {
		return &params, nil
	}

	var msg a2a.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("invalid request body")
	}
	return &a2a.MessageSendParams{Message: &msg}, nil
}

func (s *Server) handleMessageSend(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	params, err := decodeSendParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.handler.OnSendMessage(r.Context(), params)
	if err != nil {
		slog.Error("REST SendMessage failed", "error", err)
		http.Error(w, fmt.Sprintf("Error: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, result)
}

func (s *Server) handleMessageStream(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	params, err := decodeSendParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for event, err := range s.handler.OnSendMessageStream(r.Context(), params) {
		if err != nil {
			slog.Error("REST stream failed", "error", err)
			data, _ := json.Marshal(map[string]string{"error": err.Error()})
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
			return
		}

		data, err := json.Marshal(event)
		if err != nil {
			slog.Error("Failed to encode stream event", "error", err)
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request, taskID string) {
	if taskID == "" {
		http.Error(w, "Task ID required", http.StatusBadRequest)
		return
	}

	task, err := s.handler.OnGetTask(r.Context(), &a2a.TaskQueryParams{ID: a2a.TaskID(taskID)})
	if err != nil {
		http.Error(w, fmt.Sprintf("Error: %v", err), http.StatusNotFound)
		return
	}
	writeJSON(w, task)
}

func (s *Server) handleCancelTask(w http.ResponseWriter, r *http.Request, taskID string) {
	if taskID == "" {
		http.Error(w, "Task ID required", http.StatusBadRequest)
		return
	}

	task, err := s.handler.OnCancelTask(r.Context(), &a2a.TaskIDParams{ID: a2a.TaskID(taskID)})
	if err != nil {
		http.Error(w, fmt.Sprintf("Error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, task)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
