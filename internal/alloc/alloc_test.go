package alloc

import "testing"

const testMemSize = 16384

// walk verifies that every block's header tag equals its footer tag, and
// that the tags partition the whole array.
func walk(t *testing.T, h *Heap) {
	t.Helper()

	var total int64
	index := int64(0)
	for index < h.Size() {
		tag := h.mem[index]
		size := tag
		if size < 0 {
			size = -size
		}
		if size == 0 {
			t.Fatalf("zero-size block at index %d", index)
		}
		end := index + size - 1
		if end >= h.Size() {
			t.Fatalf("block at %d overruns heap: size %d", index, size)
		}
		if h.mem[end] != tag {
			t.Fatalf("header/footer mismatch at %d: %d != %d", index, tag, h.mem[end])
		}
		total += size
		index = end + 1
	}
	if total != h.Size() {
		t.Fatalf("block sizes sum to %d, want %d", total, h.Size())
	}
}

func TestEmptyHeapSingleAllocation(t *testing.T) {
	h := New(testMemSize)

	idx := h.Get(testMemSize - AdminSize)
	if idx != 1 {
		t.Fatalf("Get(full) = %d, want 1", idx)
	}
	walk(t, h)

	if h.Get(1) != -1 {
		t.Fatalf("Get(1) on a full heap should fail")
	}

	h.Free(idx)
	walk(t, h)

	empty, large, holes := h.Available()
	if holes != 1 || empty != testMemSize || large != testMemSize-AdminSize {
		t.Fatalf("Available after round trip = (%d,%d,%d), want (%d,%d,%d)",
			empty, large, holes, testMemSize, testMemSize-AdminSize, 1)
	}
}

func TestSizeValidation(t *testing.T) {
	h := New(testMemSize)

	for _, size := range []int64{0, testMemSize - 1, -1} {
		if got := h.Get(size); got != -1 {
			t.Errorf("Get(%d) = %d, want -1", size, got)
		}
	}
}

func TestCoalescing(t *testing.T) {
	h := New(testMemSize)

	a := h.Get(100)
	b := h.Get(100)
	c := h.Get(100)
	if a < 0 || b < 0 || c < 0 {
		t.Fatalf("setup allocations failed: a=%d b=%d c=%d", a, b, c)
	}
	walk(t, h)

	// Get places a left-aligned at index 0, b right-aligned at the far end
	// of the heap, and c directly after a, so a and c are neighbours with
	// the remaining free space after c.
	h.Free(c)
	walk(t, h)
	h.Free(a)
	walk(t, h)

	// a, c and the free space after c are now one free block running from
	// a's header up to b's header.
	start := a - 1
	combined := (b - 1) - start
	if h.mem[start] != -combined {
		t.Fatalf("coalesced header = %d, want %d", h.mem[start], -combined)
	}
	end := start + combined - 1
	if h.mem[end] != -combined {
		t.Fatalf("coalesced footer = %d, want %d", h.mem[end], -combined)
	}
}

func TestBidirectionalPlacementRightAligned(t *testing.T) {
	h := New(testMemSize)

	// Consume everything, then free only the most recently allocated block.
	// Allocations alternate between the two ends, so that block sits in the
	// middle beside the leftover free words; freeing it leaves a single free
	// region reachable from both the forward and backward scan.
	blockPayload := int64(100)
	stride := blockPayload + AdminSize
	nBlocks := testMemSize / stride

	var handles []int64
	for i := int64(0); i < nBlocks; i++ {
		idx := h.Get(blockPayload)
		if idx < 0 {
			break
		}
		handles = append(handles, idx)
	}
	if len(handles) < 2 {
		t.Fatalf("setup failed to allocate enough blocks")
	}

	last := handles[len(handles)-1]
	h.Free(last)
	walk(t, h)

	idx := h.Get(blockPayload - 10)
	if idx < 0 {
		t.Fatalf("Get after freeing tail block failed")
	}
	if idx < last {
		t.Fatalf("expected right-aligned placement at or after %d, got %d", last, idx)
	}
	walk(t, h)
}

func TestFreeInvalidIndexIsNoop(t *testing.T) {
	h := New(testMemSize)

	before := make([]int64, len(h.mem))
	copy(before, h.mem)

	h.Free(0)
	h.Free(-5)
	h.Free(testMemSize)
	h.Free(testMemSize + 100)

	for i := range before {
		if h.mem[i] != before[i] {
			t.Fatalf("Free on invalid index mutated heap at %d", i)
		}
	}
}

func TestInternalFragmentationZeroWhenEmpty(t *testing.T) {
	h := New(testMemSize)
	if frag := h.Internal(); frag != 0 {
		t.Fatalf("Internal() on empty heap = %f, want 0", frag)
	}
}

func TestInternalFragmentationDecreasesWithLargerBlocks(t *testing.T) {
	h1 := New(testMemSize)
	h1.Get(10)
	small := h1.Internal()

	h2 := New(testMemSize)
	h2.Get(1000)
	large := h2.Internal()

	if !(small > large) {
		t.Fatalf("fragmentation ratio should shrink for larger allocations: small=%f large=%f", small, large)
	}
}

func TestExitReinitializes(t *testing.T) {
	h := New(testMemSize)
	h.Get(500)
	h.Exit()

	empty, large, holes := h.Available()
	if holes != 1 || empty != testMemSize || large != testMemSize-AdminSize {
		t.Fatalf("Exit did not reset heap: (%d,%d,%d)", empty, large, holes)
	}
}
