/*
 * schedsim - Process control blocks and process queues
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

// Package pcb holds the two parallel process records the simulator keeps for
// every live process - a simulator-owned Sim record and a scheduler-visible
// Stu record - plus the doubly-linked queues and master list that track
// them. The split mirrors the reference scheduler's pcb.h/schedule.h split:
// Sim carries everything the event loop needs and the scheduler must not
// touch, Stu carries everything the scheduler is allowed to read and
// mutate.
package pcb

// NIODevices is the number of simulated I/O devices.
const NIODevices = 3

// State is a process's lifecycle stage, tracked on its Sim record.
type State int

const (
	StateInit State = iota
	StateReady
	StateIO
	StateDefunct
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateReady:
		return "ready"
	case StateIO:
		return "io"
	case StateDefunct:
		return "defunct"
	default:
		return "unknown"
	}
}

// Sim is the simulator-private process record: needs and progress, current
// bursts, timestamps, and master-list linkage. Schedulers are handed the
// Stu half; Stu.Sim links back to this record, and the bundled SJF policy
// reads CPUNeed and CPUUsed through it.
type Sim struct {
	CPUNeed float64
	IONeed  [NIODevices]float64
	CPUUsed float64
	IOUsed  [NIODevices]float64

	CPUBurst float64
	IOBurst  [NIODevices]float64

	TCreate, TMemAlloc, TCPU, TIO, TEnd float64

	// Master-list linkage, covering every live process regardless of queue.
	Prev, Next *Sim

	// Informational queue linkage. The consistency checker sets InQueue;
	// PrevQueue and NextQueue are not maintained and stay nil.
	PrevQueue, NextQueue *Sim
	InQueue              *Queue

	Stud *Stu

	MemNeed  int64
	MemBase  int64
	ProcNum  int64
	IOQueue  int
	IOCycles int64
	State    State
}

// Stu is the scheduler-visible process record. mem_base starts at -1 and
// must be set exactly once, by the scheduler, after a successful
// allocation.
type Stu struct {
	Sim      *Sim
	UserData any
	Prev, Next *Stu
	MemNeed  int64
	MemBase  int64
}

// NewPair creates a linked Sim/Stu pair for a freshly created process. Both
// records start detached from every queue.
func NewPair(procNum int64, memNeed int64, now float64) (*Sim, *Stu) {
	sim := &Sim{
		MemNeed: memNeed,
		MemBase: -1,
		ProcNum: procNum,
		State:   StateInit,
		TCreate: now,
	}
	stu := &Stu{
		MemNeed: memNeed,
		MemBase: -1,
	}
	sim.Stud = stu
	stu.Sim = sim
	return sim, stu
}

// Queue is a doubly-linked FIFO of Stu records. The zero value is an empty,
// ready-to-use queue.
type Queue struct {
	head, tail *Stu
}

// Head returns the first process in the queue, or nil if it is empty. The
// head of the ready queue is, by convention, the process dispatched to the
// CPU.
func (q *Queue) Head() *Stu {
	return q.head
}

// Tail returns the last process in the queue, or nil if it is empty.
func (q *Queue) Tail() *Stu {
	return q.tail
}

// Length returns the number of processes currently queued.
func (q *Queue) Length() int {
	n := 0
	for cur := q.head; cur != nil; cur = cur.Next {
		n++
	}
	return n
}

// Prepend attaches item at the front of the queue. item must not already be
// linked into any queue.
func (q *Queue) Prepend(item *Stu) {
	item.Next = q.head
	if q.head != nil {
		q.head.Prev = item
	} else {
		q.tail = item
	}
	item.Prev = nil
	q.head = item
}

// Append attaches item at the back of the queue. item must not already be
// linked into any queue.
func (q *Queue) Append(item *Stu) {
	item.Next = nil
	if q.tail != nil {
		item.Prev = q.tail
		q.tail.Next = item
	} else {
		item.Prev = nil
		q.head = item
	}
	q.tail = item
}

// Remove unlinks item from the queue. The caller must guarantee item is
// actually a member of this queue; Remove does not check.
func (q *Queue) Remove(item *Stu) {
	if item.Prev != nil {
		item.Prev.Next = item.Next
	} else {
		q.head = item.Next
	}
	if item.Next != nil {
		item.Next.Prev = item.Prev
	} else {
		q.tail = item.Prev
	}
	item.Prev = nil
	item.Next = nil
}

// Each calls fn for every process currently in the queue, head to tail.
// Removing the current (or any already-visited) item from within fn is
// safe; removing a not-yet-visited item is not.
func (q *Queue) Each(fn func(*Stu)) {
	for cur := q.head; cur != nil; {
		next := cur.Next
		fn(cur)
		cur = next
	}
}

// MasterList is the doubly-linked list of every live Sim record, used by
// the consistency checker to find processes that have fallen out of all
// four queues.
type MasterList struct {
	head, tail *Sim
}

// Head returns the first Sim in the master list, or nil if it is empty.
func (m *MasterList) Head() *Sim {
	return m.head
}

// Append attaches sim at the back of the master list.
func (m *MasterList) Append(sim *Sim) {
	sim.Next = nil
	if m.tail != nil {
		sim.Prev = m.tail
		m.tail.Next = sim
	} else {
		sim.Prev = nil
		m.head = sim
	}
	m.tail = sim
}

// Remove unlinks sim from the master list.
func (m *MasterList) Remove(sim *Sim) {
	if sim.Prev != nil {
		sim.Prev.Next = sim.Next
	} else {
		m.head = sim.Next
	}
	if sim.Next != nil {
		sim.Next.Prev = sim.Prev
	} else {
		m.tail = sim.Prev
	}
	sim.Prev = nil
	sim.Next = nil
}

// Each calls fn for every Sim currently in the master list, head to tail.
func (m *MasterList) Each(fn func(*Sim)) {
	for cur := m.head; cur != nil; cur = cur.Next {
		fn(cur)
	}
}
