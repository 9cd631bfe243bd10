package scheduler

import (
	"sort"

	"github.com/dvalbada/schedsim/internal/alloc"
	"github.com/dvalbada/schedsim/internal/pcb"
)

// mlfqLevels is the number of feedback queue levels. Level 0 is the
// highest priority; a process at the lowest level keeps it once demoted
// there.
const mlfqLevels = 3

// mlfqState is the scheduler's own per-process bookkeeping, hung off
// Stu.UserData the way the reference scheduler's userdata field is meant
// to be used.
type mlfqState struct {
	level int
}

// MLFQ is a multi-level feedback queue: newly admitted and I/O-returning
// processes start at the top level; a process that consumes a full slice
// without blocking is demoted one level; a process that blocks on I/O
// before its slice expires keeps its current level. Level N's slice is
// 2^N. Within a level, processes run in FCFS order.
type MLFQ struct {
	heap *alloc.Heap
}

// NewMLFQ returns a multi-level feedback queue scheduler backed by a
// memory heap of the given size.
func NewMLFQ(memSize int64) *MLFQ {
	return &MLFQ{heap: alloc.New(memSize)}
}

func levelOf(p *pcb.Stu) int {
	st, ok := p.UserData.(*mlfqState)
	if !ok {
		st = &mlfqState{level: 0}
		p.UserData = st
	}
	return st.level
}

func setLevel(p *pcb.Stu, level int) {
	if level < 0 {
		level = 0
	}
	if level >= mlfqLevels {
		level = mlfqLevels - 1
	}
	st, ok := p.UserData.(*mlfqState)
	if !ok {
		st = &mlfqState{}
		p.UserData = st
	}
	st.level = level
}

func sliceFor(level int) float64 {
	return float64(uint64(1) << uint(level))
}

func (m *MLFQ) Schedule(ctx Context, event Event) {
	q := ctx.Queues()

	switch event {
	case NewProcess:
		m.giveMemory(ctx)
	case Ready:
		// The process that just returned from I/O was appended to the
		// back of ready_proc by the event loop; it returns to the top
		// level.
		if returned := q.Ready.Tail(); returned != nil {
			setLevel(returned, 0)
		}
	case Time:
		if running := q.Ready.Head(); running != nil {
			setLevel(running, levelOf(running)+1)
		}
	case IO:
		// Blocked before its slice expired; level is unchanged.
	case Finish:
		m.reclaimMemory(ctx)
		m.giveMemory(ctx)
	}

	m.resort(q.Ready)
	if running := q.Ready.Head(); running != nil {
		ctx.SetSlice(sliceFor(levelOf(running)))
	}
}

func (m *MLFQ) giveMemory(ctx Context) {
	q := ctx.Queues()
	for {
		proc := q.New.Head()
		if proc == nil {
			return
		}
		idx := m.heap.Get(proc.MemNeed)
		if idx < 0 {
			return
		}
		proc.MemBase = idx
		setLevel(proc, 0)
		q.New.Remove(proc)
		q.Ready.Append(proc)
	}
}

func (m *MLFQ) reclaimMemory(ctx Context) {
	q := ctx.Queues()
	for {
		proc := q.Defunct.Head()
		if proc == nil {
			return
		}
		m.heap.Free(proc.MemBase)
		proc.MemBase = -1
		if err := ctx.RemoveProcess(proc); err != nil {
			return
		}
	}
}

// resort reorders q by ascending level, preserving relative order within a
// level so ties resolve FCFS.
func (m *MLFQ) resort(q *pcb.Queue) {
	var items []*pcb.Stu
	q.Each(func(p *pcb.Stu) { items = append(items, p) })
	if len(items) < 2 {
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		return levelOf(items[i]) < levelOf(items[j])
	})

	for _, p := range items {
		q.Remove(p)
	}
	for _, p := range items {
		q.Append(p)
	}
}

// Finale reinitializes the heap once the run completes, discarding any
// outstanding allocations.
func (m *MLFQ) Finale() {
	m.heap.Exit()
}
