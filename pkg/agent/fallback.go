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

package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aloha-a2a/dice-agent/pkg/dice"
)

var (
	sidesPattern  = regexp.MustCompile(`(\d+)[-\s]?sided`)
	numberPattern = regexp.MustCompile(`\b\d+\b`)
)

// Fallback answers requests by keyword matching when no chat backend
// is available. Dice requests default to six sides unless the message
// names a side count.
type Fallback struct{}

// Respond produces a reply for the given user message.
func (f *Fallback) Respond(text string) string {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "roll") && strings.Contains(lower, "dice") {
		sides := 6
		if match := sidesPattern.FindStringSubmatch(lower); match != nil {
			// A side count the roller rejects is reported in the reply,
			// not swapped for the default.
			if n, err := strconv.Atoi(match[1]); err == nil {
				sides = n
			}
		}
		result, err := dice.Roll(sides)
		if err != nil {
			return fmt.Sprintf("I could not roll a %d-sided dice: %v", sides, err)
		}
		return fmt.Sprintf("I rolled a %d-sided dice and got: %d", sides, result)
	}

	if strings.Contains(lower, "prime") {
		var numbers []int
		for _, raw := range numberPattern.FindAllString(text, -1) {
			if n, err := strconv.Atoi(raw); err == nil {
				numbers = append(numbers, n)
			}
		}
		if len(numbers) == 0 {
			return "Please provide numbers to check for primality."
		}
		return dice.CheckPrime(numbers)
	}

	return "I can roll dice and check if numbers are prime. What would you like me to do?"
}
