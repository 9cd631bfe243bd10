package sim

import (
	"io"
	"log/slog"
	"testing"

	"github.com/dvalbada/schedsim/internal/scheduler"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFCFSSanityRun(t *testing.T) {
	cfg := Config{
		Seed:         1579,
		LoadFactor:   0.5,
		IOFactor:     0.5,
		MemLoad:      0.5,
		MemSize:      32760,
		ProcessCount: 200,
	}
	sched := scheduler.NewFCFS(cfg.MemSize)
	s := New(cfg, sched, testLogger())

	summary := s.Run()

	if summary.Completed <= 0 {
		t.Fatalf("expected at least one completed process, got %d", summary.Completed)
	}
	if summary.ErrorsFound != 0 {
		t.Fatalf("fcfs sanity run reported %d consistency errors", summary.ErrorsFound)
	}
	if summary.CPUUtil < 0 || summary.CPUUtil > 1.0001 {
		t.Fatalf("cpu utilization out of range: %f", summary.CPUUtil)
	}
	if summary.MemUtil < 0 || summary.MemUtil > 1.0001 {
		t.Fatalf("memory utilization out of range: %f", summary.MemUtil)
	}
	for i, u := range summary.IOUtil {
		if u < 0 || u > 1.0001 {
			t.Fatalf("io device %d utilization out of range: %f", i, u)
		}
	}
}

func TestSJFHeavyLoadStaysConsistent(t *testing.T) {
	cfg := Config{
		Seed:         42,
		LoadFactor:   0.9,
		IOFactor:     0.2,
		MemLoad:      0.9,
		MemSize:      32760,
		ProcessCount: 500,
	}
	sched := scheduler.NewSJF(cfg.MemSize)
	s := New(cfg, sched, testLogger())

	summary := s.Run()

	if summary.ErrorsFound != 0 {
		t.Fatalf("sjf heavy-load run reported %d consistency errors", summary.ErrorsFound)
	}
	if summary.Turnaround.Samples == 0 {
		t.Fatalf("expected turnaround samples under heavy load")
	}
	// The longest measured turnaround must be at least the mean; this
	// checks that the summary's max and mean are coherent, not how far
	// SJF's bias toward short jobs stretches the tail.
	if summary.Turnaround.Max < summary.Turnaround.Mean {
		t.Fatalf("max turnaround (%f) should be at least the mean (%f)",
			summary.Turnaround.Max, summary.Turnaround.Mean)
	}
}

func TestMLFQRunIsConsistent(t *testing.T) {
	cfg := Config{
		Seed:         7,
		LoadFactor:   0.7,
		IOFactor:     0.4,
		MemLoad:      0.6,
		MemSize:      32760,
		ProcessCount: 300,
	}
	sched := scheduler.NewMLFQ(cfg.MemSize)
	s := New(cfg, sched, testLogger())

	summary := s.Run()

	if summary.ErrorsFound != 0 {
		t.Fatalf("mlfq run reported %d consistency errors", summary.ErrorsFound)
	}
	if summary.Completed <= 0 {
		t.Fatalf("expected completed processes, got %d", summary.Completed)
	}
}

func TestRunClampsProcessCount(t *testing.T) {
	cfg := Config{
		Seed:         1,
		LoadFactor:   0.5,
		IOFactor:     0.5,
		MemLoad:      0.5,
		MemSize:      32760,
		ProcessCount: 1, // below the minimum of 5
	}
	s := New(cfg, scheduler.NewFCFS(cfg.MemSize), testLogger())
	if s.nToCreate != 5 {
		t.Fatalf("nToCreate = %d, want clamped to 5", s.nToCreate)
	}
}

func TestStepTransitionsThroughPhases(t *testing.T) {
	cfg := Config{
		Seed:         1579,
		LoadFactor:   0.5,
		IOFactor:     0.5,
		MemLoad:      0.5,
		MemSize:      32760,
		ProcessCount: 5,
	}
	s := New(cfg, scheduler.NewFCFS(cfg.MemSize), testLogger())

	if s.Phase() != PhaseWarmup {
		t.Fatalf("initial phase = %v, want PhaseWarmup", s.Phase())
	}

	done := false
	steps := 0
	for !done {
		done = s.Step()
		steps++
		if steps > 2_000_000 {
			t.Fatalf("simulation did not finish within step budget")
		}
	}

	if s.Phase() != PhaseDone {
		t.Fatalf("final phase = %v, want PhaseDone", s.Phase())
	}
	if s.Summary().ErrorsFound != 0 {
		t.Fatalf("stepped run reported consistency errors")
	}
}
