/*
 * schedsim - Main process.
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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	getopt "github.com/pborman/getopt/v2"

	"github.com/dvalbada/schedsim/internal/console"
	"github.com/dvalbada/schedsim/internal/scheduler"
	"github.com/dvalbada/schedsim/internal/sim"
	"github.com/dvalbada/schedsim/internal/simlog"
)

const memSize = 32760

const maxErrorsTolerated = 150

func main() {
	optCPU := getopt.StringLong("cpu", 'c', "0", "CPU load, strictly between 0 and 1")
	optIO := getopt.StringLong("io", 'i', "0", "IO load, strictly between 0 and 1")
	optMem := getopt.StringLong("memory", 'm', "0", "Memory load, strictly between 0 and 1")
	optProc := getopt.StringLong("proc", 'p', "0", "Number of processes to simulate")
	optSeed := getopt.StringLong("seed", 's', "0", "Seed for the random generator (0 picks the default)")
	optPolicy := getopt.StringLong("policy", 'P', "fcfs", "Scheduling policy: fcfs, sjf or mlfq")
	optInteractive := getopt.BoolLong("interactive", 'I', "Drive the run from an interactive console")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Mirror every log record to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cpu, cpuErr := strconv.ParseFloat(*optCPU, 64)
	io, ioErr := strconv.ParseFloat(*optIO, 64)
	mem, memErr := strconv.ParseFloat(*optMem, 64)
	proc, procErr := strconv.ParseInt(*optProc, 10, 64)
	seedArg, seedErr := strconv.ParseInt(*optSeed, 10, 64)

	if cpuErr != nil || ioErr != nil || memErr != nil || procErr != nil || seedErr != nil ||
		!(cpu > 0 && cpu < 1.0) ||
		!(io > 0 && io < 1.0) ||
		!(mem > 0 && mem < 1.0) ||
		proc <= 0 {
		fmt.Fprintln(os.Stderr, "cpu, io and memory must each be strictly between 0 and 1, and proc must be positive")
		getopt.Usage()
		os.Exit(1)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log file %s: %v\n", *optLogFile, err)
			os.Exit(1)
		}
		defer file.Close()
	}

	level := slog.LevelInfo
	if *optDebug {
		level = slog.LevelDebug
	}
	log := slog.New(simlog.NewHandler(file, level, *optDebug))

	sched, err := newScheduler(*optPolicy, memSize)
	if err != nil {
		log.Error("unable to build scheduler", "error", err)
		os.Exit(1)
	}

	const defaultSeed = 1579
	if seedArg == 0 {
		seedArg = defaultSeed
	}

	cfg := sim.Config{
		Seed:         uint64(seedArg),
		LoadFactor:   cpu,
		IOFactor:     io,
		MemLoad:      mem,
		MemSize:      memSize,
		ProcessCount: proc,
	}

	s := sim.New(cfg, sched, log)

	if *optInteractive {
		console.New(s, log).Run()
	} else {
		summary := s.Run()
		printSummary(summary)
	}

	if s.Errors() > maxErrorsTolerated {
		os.Exit(1)
	}
}

func newScheduler(policy string, memSize int64) (scheduler.Scheduler, error) {
	switch policy {
	case "fcfs":
		return scheduler.NewFCFS(memSize), nil
	case "sjf":
		return scheduler.NewSJF(memSize), nil
	case "mlfq":
		return scheduler.NewMLFQ(memSize), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (want fcfs, sjf or mlfq)", policy)
	}
}

func printSummary(s sim.Summary) {
	fmt.Printf("completed=%d errors=%d cpu_util=%.4f mem_util=%.4f\n",
		s.Completed, s.ErrorsFound, s.CPUUtil, s.MemUtil)
	for i, u := range s.IOUtil {
		fmt.Printf("io[%d]_util=%.4f\n", i, u)
	}
	fmt.Printf("mem_wait mean=%.2f max=%.2f (n=%d)\n",
		s.MemWait.Mean, s.MemWait.Max, s.MemWait.Samples)
	fmt.Printf("first_cpu_wait mean=%.2f max=%.2f (n=%d)\n",
		s.FirstCPU.Mean, s.FirstCPU.Max, s.FirstCPU.Samples)
	fmt.Printf("execution mean=%.2f max=%.2f (n=%d)\n",
		s.Execution.Mean, s.Execution.Max, s.Execution.Samples)
	fmt.Printf("turnaround mean=%.2f max=%.2f (n=%d)\n",
		s.Turnaround.Mean, s.Turnaround.Max, s.Turnaround.Samples)
	fmt.Printf("new_queue max=%d avg=%.2f\n", s.NewQueue.Max, s.NewQueue.Average)
	fmt.Printf("ready_queue max=%d avg=%.2f\n", s.ReadyQueue.Max, s.ReadyQueue.Average)
	fmt.Printf("defunct_queue max=%d avg=%.2f\n", s.DefunctQueue.Max, s.DefunctQueue.Average)
	for i, q := range s.IOQueue {
		fmt.Printf("io_queue[%d] max=%d avg=%.2f\n", i, q.Max, q.Average)
	}
}
