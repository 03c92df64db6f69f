// Copyright Project GoHPC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sample provides the integrands evaluated by the integration engine
// and a lookup table that maps a small function id to its implementation.
package sample

import "math"

// Func is a pure integrand. intensity only scales the cost of an evaluation,
// never its value.
type Func func(x float64, intensity int) float64

// F1 is the identity computed the slow way: x is replaced by sqrt(x*x)
// intensity times and the sign is restored afterwards.
func F1(x float64, intensity int) float64 {
	positive := x > 0
	for i := 0; i < intensity; i++ {
		x = math.Sqrt(x * x)
	}
	if positive {
		return x
	}
	return -math.Abs(x)
}

// F2 is F1 squared.
func F2(x float64, intensity int) float64 {
	v := F1(x, intensity)
	return v * v
}

// F3 returns sin(F1(x)).
func F3(x float64, intensity int) float64 {
	return math.Sin(F1(x, intensity))
}

// F4 returns exp(cos(F1(x))).
func F4(x float64, intensity int) float64 {
	return math.Exp(math.Cos(F1(x, intensity)))
}
