/*
 * schedsim - Pseudo-random number generator
 *
 * Copyright 2026, schedsim contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package rng implements the xorshift64* generator the simulator uses for
// every source of randomness: arrival scaling, burst jitter, and memory
// request sizing. A single multiplicative constant and three shifts give
// the simulator bit-reproducible behavior for a given seed.
package rng

const multiplier = 0x2545F4914F6CDD1D

// Source is a xorshift64* generator. The zero value is not usable; build one
// with New.
type Source struct {
	state uint64
}

// New returns a Source seeded with seed. A zero seed is replaced with 1,
// since xorshift is stuck at zero forever once it reaches that state.
func New(seed uint64) *Source {
	if seed == 0 {
		seed = 1
	}
	return &Source{state: seed}
}

// Next advances the generator and returns the raw 64-bit output.
func (s *Source) Next() uint64 {
	x := s.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	s.state = x
	return x * multiplier
}

// Int31 returns a uniformly distributed value in [0, 2^31). It truncates the
// xorshift output to its low 32 bits before shifting, matching the reference
// generator's uint32_t intermediate.
func (s *Source) Int31() uint32 {
	low32 := uint32(s.Next())
	return low32 >> 1
}

// Real1 returns a uniformly distributed value in [0, 1].
func (s *Source) Real1() float64 {
	top := s.Next() >> 32
	return float64(top) / float64(^uint32(0))
}
