package pcb

import "testing"

func TestNewPairLinksBothHalves(t *testing.T) {
	sim, stu := NewPair(7, 256, 10.5)

	if sim.Stud != stu || stu.Sim != sim {
		t.Fatalf("sim/stu not mutually linked")
	}
	if sim.State != StateInit {
		t.Fatalf("new process state = %v, want init", sim.State)
	}
	if sim.MemBase != -1 || stu.MemBase != -1 {
		t.Fatalf("new process mem_base should start at -1")
	}
	if sim.TCreate != 10.5 {
		t.Fatalf("TCreate = %f, want 10.5", sim.TCreate)
	}
}

func TestQueueFIFOOrder(t *testing.T) {
	var q Queue
	_, a := NewPair(1, 1, 0)
	_, b := NewPair(2, 1, 0)
	_, c := NewPair(3, 1, 0)

	q.Append(a)
	q.Append(b)
	q.Append(c)

	if q.Length() != 3 {
		t.Fatalf("Length = %d, want 3", q.Length())
	}

	var order []*Stu
	q.Each(func(s *Stu) { order = append(order, s) })
	if order[0] != a || order[1] != b || order[2] != c {
		t.Fatalf("Each did not visit in FIFO order")
	}
	if q.Head() != a {
		t.Fatalf("Head = %v, want a", q.Head())
	}
}

func TestQueuePrepend(t *testing.T) {
	var q Queue
	_, a := NewPair(1, 1, 0)
	_, b := NewPair(2, 1, 0)

	q.Append(a)
	q.Prepend(b)

	if q.Head() != b {
		t.Fatalf("Head after Prepend = %v, want b", q.Head())
	}
	if q.Length() != 2 {
		t.Fatalf("Length = %d, want 2", q.Length())
	}
}

func TestQueueRemoveMiddle(t *testing.T) {
	var q Queue
	_, a := NewPair(1, 1, 0)
	_, b := NewPair(2, 1, 0)
	_, c := NewPair(3, 1, 0)
	q.Append(a)
	q.Append(b)
	q.Append(c)

	q.Remove(b)

	if q.Length() != 2 {
		t.Fatalf("Length after Remove = %d, want 2", q.Length())
	}
	var order []*Stu
	q.Each(func(s *Stu) { order = append(order, s) })
	if len(order) != 2 || order[0] != a || order[1] != c {
		t.Fatalf("Remove did not unlink correctly: %v", order)
	}
	if b.Prev != nil || b.Next != nil {
		t.Fatalf("removed item still carries stale links")
	}
}

func TestQueueRemoveHeadAndTail(t *testing.T) {
	var q Queue
	_, a := NewPair(1, 1, 0)
	q.Append(a)
	q.Remove(a)

	if q.Length() != 0 || q.Head() != nil {
		t.Fatalf("queue not empty after removing only element")
	}

	_, b := NewPair(2, 1, 0)
	_, c := NewPair(3, 1, 0)
	q.Append(b)
	q.Append(c)
	q.Remove(c)
	if q.Length() != 1 || q.Head() != b {
		t.Fatalf("removing tail left queue in bad state")
	}
}

func TestMasterListTracksEveryProcess(t *testing.T) {
	var m MasterList
	sim1, _ := NewPair(1, 1, 0)
	sim2, _ := NewPair(2, 1, 0)
	sim3, _ := NewPair(3, 1, 0)

	m.Append(sim1)
	m.Append(sim2)
	m.Append(sim3)

	m.Remove(sim2)

	var seen []*Sim
	m.Each(func(s *Sim) { seen = append(seen, s) })
	if len(seen) != 2 || seen[0] != sim1 || seen[1] != sim3 {
		t.Fatalf("master list after removal = %v", seen)
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateInit:    "init",
		StateReady:   "ready",
		StateIO:      "io",
		StateDefunct: "defunct",
		State(99):    "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
