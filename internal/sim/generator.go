/*
 * schedsim - Job-entry system process generator
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

package sim

import (
	"github.com/dvalbada/schedsim/internal/pcb"
	"github.com/dvalbada/schedsim/internal/rng"
)

const (
	memMin    = 512
	nRequests = 4
)

// arrivalDelay holds the mean inter-arrival gap, in simulated time units,
// associated with each of the four request templates. One template is drawn
// at random for every arrival, so successive gaps range from 4 to 112 time
// units before scaling by the load factor.
var arrivalDelay = [nRequests]float64{4, 27, 112, 17}

// Generator is the job-entry system: it manufactures new processes with
// randomized CPU, I/O and memory demands, and decides when the next one
// arrives.
type Generator struct {
	rng *rng.Source

	loadFactor   float64
	ioTimeFactor float64
	memLoad      float64
	memSize      int64

	procNum     int64
	nextArrival float64
}

// NewGenerator builds a process generator. loadFactor and ioTimeFactor
// drive the arrival rate and average memory request size the way the
// -c/-i/-m flags scale them; memSize is the allocator's total word
// capacity.
func NewGenerator(source *rng.Source, loadFactor, ioTimeFactor, memLoad float64, memSize int64) *Generator {
	return &Generator{
		rng:          source,
		loadFactor:   loadFactor,
		ioTimeFactor: ioTimeFactor,
		memLoad:      memLoad,
		memSize:      memSize,
	}
}

// memRange bounds the random memory request about to be drawn. Degenerate
// combinations of -c/-i/-m can drive the reference formula to zero or
// negative; rather than inherit that as an unspecified division-by-zero
// (the reference implementation's behavior is undefined here), this
// clamps the range to at least one word and lets the caller log that the
// parameters are pushing the generator to its floor.
func (g *Generator) memRange() (int64, bool) {
	v := 5 * (g.memLoad*float64(g.memSize)/(1.25*g.loadFactor+1.75*g.ioTimeFactor) - memMin)
	r := int64(v)
	if r < 1 {
		return 1, true
	}
	return r, false
}

// Next manufactures the next process, due to arrive at now, and returns its
// linked Sim/Stu pair along with whether the memory-range clamp kicked in.
func (g *Generator) Next(now float64) (*pcb.Sim, *pcb.Stu, bool) {
	procNum := g.procNum
	g.procNum++

	sim, stu := pcb.NewPair(procNum, 0, now)

	cpuFactor := 4.0
	i := g.rng.Int31() % 32
	i >>= 3
	for ; i > 0; i-- {
		cpuFactor *= 3.0
	}
	sim.CPUNeed = cpuFactor * (0.5 + g.rng.Real1())

	sim.IOCycles = 2 * (1 + int64(g.rng.Int31()%10))
	sim.CPUBurst = sim.CPUNeed / float64(1+sim.IOCycles)
	sim.CPUBurst *= 0.8 + 0.4*g.rng.Real1()

	memRange, clamped := g.memRange()
	memNeed := int64(memMin) + int64(g.rng.Int31()%uint32(memRange))
	cap := (3 * g.memSize) / 4
	if memNeed > cap {
		memNeed = cap
	}
	sim.MemNeed = memNeed
	stu.MemNeed = memNeed
	stu.UserData = nil

	nextReq := g.rng.Int31() % nRequests
	g.nextArrival = now + arrivalDelay[nextReq]/g.loadFactor

	return sim, stu, clamped
}

// NextArrival returns the simulated time at which the process after the one
// most recently produced by Next is due.
func (g *Generator) NextArrival() float64 {
	return g.nextArrival
}
