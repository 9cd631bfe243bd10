package scheduler

import (
	"sort"

	"github.com/dvalbada/schedsim/internal/alloc"
	"github.com/dvalbada/schedsim/internal/pcb"
)

// sjfQuantum bounds how long the running process can hold the CPU before
// SJF gets another chance to re-evaluate the ready queue. Without a forced
// Time event, a long-running process that was shortest at dispatch time
// would keep the CPU even after shorter processes arrive behind it.
const sjfQuantum = 5.0

// SJF dispatches the process with the least remaining CPU need first. The
// ready queue is re-sorted on every admission-relevant event, and a
// recurring forced time-slice keeps a long job from holding the CPU past
// the arrival of a shorter one.
type SJF struct {
	heap *alloc.Heap
}

// NewSJF returns a shortest-job-first scheduler backed by a memory heap of
// the given size.
func NewSJF(memSize int64) *SJF {
	return &SJF{heap: alloc.New(memSize)}
}

func (s *SJF) Schedule(ctx Context, event Event) {
	switch event {
	case NewProcess:
		s.giveMemory(ctx)
	case Finish:
		s.reclaimMemory(ctx)
		s.giveMemory(ctx)
	case Ready, IO, Time:
		// re-sort below
	}
	s.resort(ctx.Queues().Ready)
	ctx.SetSlice(sjfQuantum)
}

func (s *SJF) giveMemory(ctx Context) {
	q := ctx.Queues()
	for {
		proc := q.New.Head()
		if proc == nil {
			return
		}
		idx := s.heap.Get(proc.MemNeed)
		if idx < 0 {
			return
		}
		proc.MemBase = idx
		q.New.Remove(proc)
		q.Ready.Append(proc)
	}
}

func (s *SJF) reclaimMemory(ctx Context) {
	q := ctx.Queues()
	for {
		proc := q.Defunct.Head()
		if proc == nil {
			return
		}
		s.heap.Free(proc.MemBase)
		proc.MemBase = -1
		if err := ctx.RemoveProcess(proc); err != nil {
			return
		}
	}
}

// resort reorders q ascending by remaining CPU need (cpu_need - cpu_used).
func (s *SJF) resort(q *pcb.Queue) {
	var items []*pcb.Stu
	q.Each(func(p *pcb.Stu) { items = append(items, p) })
	if len(items) < 2 {
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		return remaining(items[i]) < remaining(items[j])
	})

	for _, p := range items {
		q.Remove(p)
	}
	for _, p := range items {
		q.Append(p)
	}
}

func remaining(p *pcb.Stu) float64 {
	return p.Sim.CPUNeed - p.Sim.CPUUsed
}

// Finale reinitializes the heap once the run completes, discarding any
// outstanding allocations.
func (s *SJF) Finale() {
	s.heap.Exit()
}
