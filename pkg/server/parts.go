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
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
)

// extractText concatenates the text parts of a message. File and data
// parts carry no usable text for this agent and are skipped.
func extractText(message *a2a.Message) string {
	if message == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range message.Parts {
		switch p := part.(type) {
		case a2a.TextPart:
			sb.WriteString(p.Text)
		case a2a.FilePart, a2a.DataPart:
			// Not supported as input.
		}
	}
	return sb.String()
}
