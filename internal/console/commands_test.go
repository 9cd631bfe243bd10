package console

import (
	"io"
	"log/slog"
	"testing"

	"github.com/dvalbada/schedsim/internal/scheduler"
	"github.com/dvalbada/schedsim/internal/sim"
)

func testConsole() *Console {
	cfg := sim.Config{
		Seed:         1579,
		LoadFactor:   0.5,
		IOFactor:     0.5,
		MemLoad:      0.5,
		MemSize:      32760,
		ProcessCount: 10,
	}
	s := sim.New(cfg, scheduler.NewFCFS(cfg.MemSize), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return New(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMatchListAbbreviatedPrefix(t *testing.T) {
	matches := matchList("sh")
	if len(matches) != 1 || matches[0].name != "show" {
		t.Fatalf("matchList(sh) = %v, want [show]", matches)
	}
}

func TestMatchListAmbiguous(t *testing.T) {
	// "s" is a prefix of both show and step, and both require at least two
	// characters, so the ambiguous one-letter prefix selects neither.
	matches := matchList("s")
	if len(matches) != 0 {
		t.Fatalf("matchList(s) = %v, want no match for the ambiguous prefix", matches)
	}
}

func TestProcessCommandUnknown(t *testing.T) {
	c := testConsole()
	_, err := processCommand("frobnicate", c)
	if err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestProcessCommandQuit(t *testing.T) {
	c := testConsole()
	quit, err := processCommand("quit", c)
	if err != nil || !quit {
		t.Fatalf("quit command: quit=%v err=%v", quit, err)
	}
}

func TestProcessCommandStepAdvancesSimulation(t *testing.T) {
	c := testConsole()
	before := c.s.SimTime()

	_, err := processCommand("step 3", c)
	if err != nil {
		t.Fatalf("step command failed: %v", err)
	}
	if c.s.SimTime() <= before {
		t.Fatalf("simulated time did not advance: before=%f after=%f", before, c.s.SimTime())
	}
}

func TestProcessCommandShowQueues(t *testing.T) {
	c := testConsole()
	_, err := processCommand("show queues", c)
	if err != nil {
		t.Fatalf("show queues failed: %v", err)
	}
}

func TestCompleteCmdPrefix(t *testing.T) {
	got := completeCmd("s")
	if len(got) < 2 {
		t.Fatalf("completeCmd(s) = %v, want at least show and step", got)
	}
}
