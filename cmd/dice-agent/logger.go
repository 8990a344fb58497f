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
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Environment variables override flag defaults but not explicit flags.
const (
	logLevelEnvVar  = "LOG_LEVEL"
	logFormatEnvVar = "LOG_FORMAT"
)

// initLogger installs the default slog logger from CLI flags and
// environment variables. Priority: CLI flags > env vars > defaults.
func initLogger(cliLevel, cliFormat string) error {
	levelName := cliLevel
	if levelName == "" || levelName == "info" {
		if env := os.Getenv(logLevelEnvVar); env != "" {
			levelName = env
		}
	}

	formatName := cliFormat
	if formatName == "" || formatName == "text" {
		if env := os.Getenv(logFormatEnvVar); env != "" {
			formatName = env
		}
	}

	var level slog.Level
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", levelName)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(formatName) {
	case "", "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format: %s", formatName)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
