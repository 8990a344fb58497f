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

// Package dice implements the agent's two deterministic capabilities:
// rolling an N-sided dice and checking integers for primality.
//
// The functions here are pure apart from structured logging; argument
// validation against the tool contracts lives with the tool constructors
// in tools.go.
package dice

import (
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
)

// InvalidInputError reports an input that no valid tool call can
// produce. The parameter validator rejects these before execution.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// Roll rolls an N-sided dice and returns a uniformly distributed result
// in [1, sides].
func Roll(sides int) (int, error) {
	if sides <= 0 {
		slog.Error("Invalid dice sides", "sides", sides)
		return 0, &InvalidInputError{Reason: "dice must have at least 1 side"}
	}

	result := rand.N(sides) + 1
	slog.Info("Rolled dice", "sides", sides, "result", result)
	return result, nil
}

// CheckPrime reports which of the given numbers are prime, as a
// natural-language sentence. Order and duplicates of the input are
// preserved in the output.
func CheckPrime(numbers []int) string {
	if len(numbers) == 0 {
		return "No numbers provided to check."
	}

	var primes []string
	for _, n := range numbers {
		if IsPrime(n) {
			primes = append(primes, strconv.Itoa(n))
		}
	}

	if len(primes) == 0 {
		slog.Info("No prime numbers found", "numbers", numbers)
		return "None of the numbers are prime."
	}

	result := strings.Join(primes, ", ") + " are prime numbers."
	slog.Info("Prime check complete", "numbers", numbers, "result", result)
	return result
}

// IsPrime checks primality by trial division up to the integer square root.
// Numbers ≤ 1 are not prime; 2 is prime.
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}

	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}

	return true
}
