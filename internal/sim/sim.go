/*
 * schedsim - Discrete-event simulator core
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

// Package sim implements the discrete-event simulator: a single-threaded
// event loop that advances simulated time to whichever of arrival,
// CPU-burst completion, forced time-slice expiry, or per-device I/O
// completion happens soonest, hands control to a pluggable scheduler at
// each of those points, and collects two-phase statistics once the system
// has warmed up.
package sim

import (
	"fmt"
	"log/slog"

	"github.com/dvalbada/schedsim/internal/pcb"
	"github.com/dvalbada/schedsim/internal/rng"
	"github.com/dvalbada/schedsim/internal/scheduler"
)

// maxErrors is the number of consistency-check failures the simulator will
// tolerate before giving up on the run.
const maxErrors = 150

// eps guards against a CPU burst's floating-point remainder parking just
// above zero forever.
const eps = 1.0e-12

// Config bundles the knobs a Simulator is built from.
type Config struct {
	Seed         uint64
	LoadFactor   float64 // -c: CPU load scale, strictly in (0, 1)
	IOFactor     float64 // -i: I/O load scale, strictly in (0, 1)
	MemLoad      float64 // -m: memory load scale, strictly in (0, 1)
	MemSize      int64
	ProcessCount int64 // -p: processes sampled in the measured phase
}

// Simulator owns simulated time, the four process queues, the master
// process list, and the device/CPU occupancy needed to compute the next
// event. It implements scheduler.Context, the narrow view of this state a
// Scheduler is allowed to touch.
type Simulator struct {
	rng *rng.Source
	gen *Generator
	sch scheduler.Scheduler
	log *slog.Logger

	queues scheduler.Queues
	master pcb.MasterList

	now      float64
	tSlice   float64
	tNextNew float64

	currentCPU *pcb.Sim
	currentIO  [nIODevices]*pcb.Sim
	lastReady  *pcb.Stu

	memInUse     float64
	ioTimeFactor float64

	curNewLen, curReadyLen, curDefunctLen int64
	curIOLen                              [nIODevices]int64

	nErrors       int64
	numTerminated int64
	nToCreate     int64

	stats *stats

	cur   scheduler.Event
	phase Phase
}

// Phase identifies which half of the two-phase run a Simulator is in.
type Phase int

const (
	// PhaseWarmup runs the first 100 processes with statistics disabled.
	PhaseWarmup Phase = iota
	// PhaseMeasured collects statistics over the configured process count.
	PhaseMeasured
	// PhaseDone means the run has finished, either normally or because it
	// exceeded maxErrors.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseMeasured:
		return "measured"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// New builds a Simulator wired to sch, ready to Run.
func New(cfg Config, sch scheduler.Scheduler, log *slog.Logger) *Simulator {
	ioTimeFactor := cfg.IOFactor / cfg.LoadFactor

	nToCreate := cfg.ProcessCount
	if nToCreate < 5 {
		nToCreate = 5
	}
	if nToCreate > NSamples {
		nToCreate = NSamples
	}

	source := rng.New(cfg.Seed)
	return &Simulator{
		rng:          source,
		gen:          NewGenerator(source, cfg.LoadFactor, ioTimeFactor, cfg.MemLoad, cfg.MemSize),
		sch:          sch,
		log:          log,
		queues:       scheduler.Queues{New: &pcb.Queue{}, Ready: &pcb.Queue{}, IO: &pcb.Queue{}, Defunct: &pcb.Queue{}},
		tSlice:       9.9e12,
		ioTimeFactor: ioTimeFactor,
		nToCreate:    nToCreate,
		stats:        newStats(),
		cur:          scheduler.NewProcess,
	}
}

// Queues implements scheduler.Context.
func (s *Simulator) Queues() *scheduler.Queues { return &s.queues }

// SimTime implements scheduler.Context.
func (s *Simulator) SimTime() float64 { return s.now }

// SetSlice implements scheduler.Context.
func (s *Simulator) SetSlice(slice float64) {
	if slice < 1.0 {
		slice = 1.0
	}
	s.tSlice = s.now + slice
}

// RemoveProcess implements scheduler.Context. The caller must have already
// freed the process's memory; RemoveProcess only retires its bookkeeping.
func (s *Simulator) RemoveProcess(stu *pcb.Stu) error {
	p := stu.Sim
	if p.State != pcb.StateDefunct {
		return fmt.Errorf("sim: process %d removed while not defunct", p.ProcNum)
	}

	s.stats.recordCompletion(p.TCreate, p.TMemAlloc, p.TCPU, s.now)
	s.numTerminated++
	s.memInUse -= float64(p.MemNeed)

	s.queues.Defunct.Remove(stu)
	s.master.Remove(p)
	return nil
}

// Phase reports which half of the run the simulator is currently in.
func (s *Simulator) Phase() Phase { return s.phase }

// Summary returns a snapshot of the measured-phase statistics as of the
// current simulated time. It is safe to call at any point, including
// mid-run.
func (s *Simulator) Summary() Summary { return s.stats.summary(s.now) }

// Step processes exactly one simulated event and reports whether the run
// has now finished, either because the measured phase reached its target
// process count or because too many consistency errors accumulated.
// Calling Step after it has already returned true is a no-op.
func (s *Simulator) Step() bool {
	if s.phase == PhaseDone {
		return true
	}

	s.dispatch(s.cur)
	s.cur = s.findNextEvent()

	if s.nErrors > maxErrors {
		s.log.Warn("too many consistency errors, aborting run", "errors", s.nErrors)
		s.phase = PhaseDone
		return true
	}

	switch s.phase {
	case PhaseWarmup:
		if s.gen.procNum >= 100 {
			s.stats.reset(s.now)
			if resetter, ok := s.sch.(scheduler.StatsResetter); ok {
				resetter.ResetStats()
			}
			s.phase = PhaseMeasured
		}
	case PhaseMeasured:
		if s.gen.procNum >= s.nToCreate+100 {
			if finalizer, ok := s.sch.(scheduler.Finalizer); ok {
				finalizer.Finale()
			}
			s.phase = PhaseDone
		}
	case PhaseDone:
	}
	return s.phase == PhaseDone
}

// Run drives the simulator through a 100-process warmup with statistics
// disabled, then a measured phase of ProcessCount further processes, and
// returns the measured-phase summary.
func (s *Simulator) Run() Summary {
	for !s.Step() {
	}
	return s.stats.summary(s.now)
}

// dispatch performs the simulator-side half of one event, hands the event
// to the scheduler, then reconciles queue state and restarts any idle I/O
// device.
func (s *Simulator) dispatch(event scheduler.Event) {
	switch event {
	case scheduler.NewProcess:
		s.newProcessEvent()
	case scheduler.Time:
		s.SetSlice(9.9e12)
	case scheduler.Ready:
		s.readyProcessEvent()
	case scheduler.IO:
		s.ioProcessEvent()
	case scheduler.Finish:
		s.finishProcessEvent()
	}

	s.sch.Schedule(s, event)
	s.checkAll()

	if event == scheduler.Ready || event == scheduler.IO {
		s.doIO()
	}
}

func (s *Simulator) newProcessEvent() {
	proc, stu, clamped := s.gen.Next(s.now)
	if clamped {
		s.log.Debug("memory request range clamped to its floor", "proc", proc.ProcNum)
	}
	s.queues.New.Append(stu)
	s.master.Append(proc)
	s.tNextNew = s.gen.NextArrival()
}

// readyProcessEvent moves the process findNextEvent just marked as
// returning from I/O from the I/O queue to the back of the ready queue,
// drawing a fresh CPU burst from its remaining need.
func (s *Simulator) readyProcessEvent() {
	stu := s.lastReady
	if stu == nil {
		return
	}
	p := stu.Sim
	p.CPUBurst = (p.CPUNeed - p.CPUUsed) / float64(1+p.IOCycles)
	p.CPUBurst *= 0.6 + 0.8*s.rng.Real1()

	s.queues.IO.Remove(stu)
	s.queues.Ready.Append(stu)
	s.lastReady = nil
}

func (s *Simulator) ioProcessEvent() {
	p := s.currentCPU
	if p == nil {
		return
	}
	p.State = pcb.StateIO
	s.queues.Ready.Remove(p.Stud)
	s.queues.IO.Append(p.Stud)
}

func (s *Simulator) finishProcessEvent() {
	p := s.currentCPU
	if p == nil {
		return
	}
	p.State = pcb.StateDefunct
	s.queues.Ready.Remove(p.Stud)
	s.queues.Defunct.Prepend(p.Stud)
}

// findNextEvent determines which of the next arrival, a forced time-slice
// expiry, the running process's CPU burst ending, or an I/O device
// finishing happens soonest; advances simulated time and the running
// process's progress to that point; folds the elapsed interval into the
// statistics; and, for an I/O completion, retires the device and marks the
// process ready to be picked up by readyProcessEvent.
func (s *Simulator) findNextEvent() scheduler.Event {
	nextEvent := scheduler.NewProcess
	tNext := s.tNextNew
	var nextProc *pcb.Sim

	if s.tSlice < tNext {
		nextEvent = scheduler.Time
		tNext = s.tSlice
		nextProc = s.currentCPU
	}

	if my := s.currentCPU; my != nil {
		tEvent := s.now + my.CPUBurst
		if tEvent < tNext {
			nextProc = my
			tNext = tEvent
			if my.CPUBurst+my.CPUUsed >= my.CPUNeed {
				nextEvent = scheduler.Finish
			} else {
				nextEvent = scheduler.IO
			}
		}
	}

	for i := 0; i < nIODevices; i++ {
		my := s.currentIO[i]
		if my == nil {
			continue
		}
		tEvent := my.IOBurst[i] + my.TIO
		if tEvent < tNext {
			tNext = tEvent
			nextProc = my
			nextEvent = scheduler.Ready
		}
	}

	tStep := tNext - s.now
	if s.currentCPU != nil {
		if s.currentCPU.CPUUsed == 0 {
			s.currentCPU.TCPU = s.now
		}
		s.currentCPU.CPUUsed += tStep
		s.currentCPU.CPUBurst -= tStep
		if s.currentCPU.CPUBurst < eps {
			s.currentCPU.CPUBurst = 0
		}
	}

	var ioBusy [nIODevices]bool
	for i := range s.currentIO {
		ioBusy[i] = s.currentIO[i] != nil
	}
	s.stats.step(tStep, s.curNewLen, s.curReadyLen, s.curDefunctLen, s.curIOLen, s.memInUse/float64(s.gen.memSize), s.currentCPU != nil, ioBusy)

	if nextEvent == scheduler.Ready {
		i := nextProc.IOQueue
		s.currentIO[i] = nil
		nextProc.State = pcb.StateReady
		nextProc.IOUsed[i] += nextProc.IOBurst[i]
		nextProc.IOQueue = (i + 1) % nIODevices
		s.lastReady = nextProc.Stud
	}

	s.now += tStep
	return nextEvent
}

// Errors reports the number of consistency-check failures observed so far.
func (s *Simulator) Errors() int64 { return s.nErrors }
