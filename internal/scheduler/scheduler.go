/*
 * schedsim - Scheduler callback interface
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

// Package scheduler defines the callback boundary between the simulator's
// event loop and the pluggable memory-admission/CPU-dispatch policy, and
// ships three concrete policies: fcfs, sjf and mlfq.
//
// A Scheduler is handed the Stu half of each process record (Stu.Sim links
// back to the simulator's record, from which SJF reads the remaining CPU
// need), the four process queues, and a narrow Context for querying simulated time and
// requesting a forced time-slice event. It owns its own memory allocator
// instance; the simulator core never allocates memory on a scheduler's
// behalf.
package scheduler

import "github.com/dvalbada/schedsim/internal/pcb"

// Event identifies why Schedule was invoked, mirroring the five points in
// the simulated system where the event loop yields control to the policy.
type Event int

const (
	// NewProcess fires when a process has been appended to Queues.New.
	NewProcess Event = iota
	// Time fires when the running process's requested slice has expired.
	// It is never generated on its own; a policy only sees it after
	// calling Context.SetSlice.
	Time
	// Ready fires when a process has finished an I/O burst and has been
	// appended to Queues.Ready.
	Ready
	// IO fires when the running process has been appended to Queues.IO
	// to start an I/O burst.
	IO
	// Finish fires when the running process has been placed at the front
	// of Queues.Defunct.
	Finish
)

func (e Event) String() string {
	switch e {
	case NewProcess:
		return "new_process"
	case Time:
		return "time"
	case Ready:
		return "ready"
	case IO:
		return "io"
	case Finish:
		return "finish"
	default:
		return "unknown"
	}
}

// Queues bundles the four process queues the policy is allowed to read and
// reorder: new_proc, ready_proc, io_proc and defunct_proc in the reference
// scheduler's naming.
type Queues struct {
	New     *pcb.Queue
	Ready   *pcb.Queue
	IO      *pcb.Queue
	Defunct *pcb.Queue
}

// Context is the narrow surface the simulator core exposes to a Scheduler.
// It deliberately does not expose the memory allocator: a policy that wants
// to admit a process into memory owns its own allocator instance.
type Context interface {
	// Queues returns the four process queues, live and mutable.
	Queues() *Queues

	// SimTime returns the current simulated time.
	SimTime() float64

	// SetSlice arranges for a Time event to fire slice time units from
	// now, overwriting any previously requested slice. A slice below 1.0
	// is silently raised to 1.0, matching the reference scheduler's
	// guarantee that a process always gets at least one time unit.
	SetSlice(slice float64)

	// RemoveProcess detaches proc from every queue and the master list
	// and releases its simulator-side state. Called by a policy once it
	// has freed a defunct process's memory and its own bookkeeping.
	RemoveProcess(proc *pcb.Stu) error
}

// Scheduler is the pluggable admission and dispatch policy. Schedule is
// called once per simulated event; the active Scheduler is responsible for
// moving processes between queues and for keeping the CPU and I/O devices
// supplied with work.
type Scheduler interface {
	Schedule(ctx Context, event Event)
}

// Finalizer is an optional capability a Scheduler may implement to run
// cleanup when the simulation run ends, mirroring the reference
// scheduler's finale hook.
type Finalizer interface {
	Finale()
}

// StatsResetter is an optional capability a Scheduler may implement to
// learn when the measured phase begins, mirroring the reference
// scheduler's reset_stats hook. A policy with no warmup-dependent state
// does not need to implement it.
type StatsResetter interface {
	ResetStats()
}
