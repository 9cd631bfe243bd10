package scheduler

import "github.com/dvalbada/schedsim/internal/alloc"

// FCFS admits processes to memory in arrival order and never reorders the
// ready queue, so the CPU always runs whichever process has been ready the
// longest. It never calls SetSlice, so a process keeps the CPU until it
// blocks on I/O or finishes.
type FCFS struct {
	heap *alloc.Heap
}

// NewFCFS returns a first-come-first-served scheduler backed by a memory
// heap of the given size.
func NewFCFS(memSize int64) *FCFS {
	return &FCFS{heap: alloc.New(memSize)}
}

func (f *FCFS) Schedule(ctx Context, event Event) {
	switch event {
	case NewProcess:
		f.giveMemory(ctx)
	case Finish:
		f.reclaimMemory(ctx)
		f.giveMemory(ctx)
	case Ready, IO, Time:
		// Ready queue order never changes under FCFS; nothing to do.
	}
}

func (f *FCFS) giveMemory(ctx Context) {
	q := ctx.Queues()
	for {
		proc := q.New.Head()
		if proc == nil {
			return
		}
		idx := f.heap.Get(proc.MemNeed)
		if idx < 0 {
			return
		}
		proc.MemBase = idx
		q.New.Remove(proc)
		q.Ready.Append(proc)
	}
}

func (f *FCFS) reclaimMemory(ctx Context) {
	q := ctx.Queues()
	for {
		proc := q.Defunct.Head()
		if proc == nil {
			return
		}
		f.heap.Free(proc.MemBase)
		proc.MemBase = -1
		if err := ctx.RemoveProcess(proc); err != nil {
			return
		}
	}
}

// Finale reinitializes the heap once the run completes, discarding any
// outstanding allocations.
func (f *FCFS) Finale() {
	f.heap.Exit()
}
