/*
 * schedsim - Console command table
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

package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dvalbada/schedsim/internal/sim"
)

func printSummary(s sim.Summary) {
	fmt.Printf("completed=%d errors=%d cpu_util=%.4f mem_util=%.4f\n",
		s.Completed, s.ErrorsFound, s.CPUUtil, s.MemUtil)
	fmt.Printf("turnaround mean=%.2f max=%.2f (n=%d)\n",
		s.Turnaround.Mean, s.Turnaround.Max, s.Turnaround.Samples)
}

// cmd is one entry in the command table: a name, the minimum prefix length
// that uniquely selects it even before the full name is typed, and the
// handler that runs once it is matched.
type cmd struct {
	name    string
	min     int
	process func(args []string, c *Console) (bool, error)
}

var cmdList = []cmd{
	{name: "show", min: 2, process: showCmd},
	{name: "step", min: 2, process: stepCmd},
	{name: "run", min: 1, process: runCmd},
	{name: "quit", min: 1, process: quitCmd},
	{name: "help", min: 1, process: helpCmd},
}

// matchCommand reports whether command is a prefix of match.name at least
// match.min characters long.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) || len(command) < match.min {
		return false
	}
	return match.name[:len(command)] == command
}

func matchList(command string) []cmd {
	var matches []cmd
	for _, c := range cmdList {
		if matchCommand(c, command) {
			matches = append(matches, c)
		}
	}
	return matches
}

// processCommand parses and executes one line of input. It returns true
// when the console should exit.
func processCommand(line string, c *Console) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	matches := matchList(fields[0])
	switch len(matches) {
	case 0:
		return false, errors.New("command not found: " + fields[0])
	case 1:
		return matches[0].process(fields[1:], c)
	default:
		return false, errors.New("ambiguous command: " + fields[0])
	}
}

// completeCmd supports liner's tab completion for command names only; it
// does not attempt to complete arguments.
func completeCmd(partial string) []string {
	fields := strings.Fields(partial)
	if len(fields) > 1 {
		return nil
	}
	prefix := ""
	if len(fields) == 1 {
		prefix = fields[0]
	}
	var names []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, prefix) {
			names = append(names, c.name)
		}
	}
	return names
}

func showCmd(args []string, c *Console) (bool, error) {
	if len(args) == 0 {
		return false, errors.New("usage: show queues|mem|stats")
	}
	switch args[0] {
	case "queues":
		q := c.s.Queues()
		fmt.Printf("new=%d ready=%d io=%d defunct=%d\n",
			q.New.Length(), q.Ready.Length(), q.IO.Length(), q.Defunct.Length())
	case "stats":
		printSummary(c.s.Summary())
	case "mem":
		fmt.Printf("simulated time: %.2f, phase: %s\n", c.s.SimTime(), c.s.Phase().String())
	default:
		return false, fmt.Errorf("unknown show target: %s", args[0])
	}
	return false, nil
}

func stepCmd(args []string, c *Console) (bool, error) {
	n := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			return false, errors.New("usage: step [n]")
		}
		n = parsed
	}
	for i := 0; i < n; i++ {
		if c.s.Step() {
			fmt.Println("run complete")
			printSummary(c.s.Summary())
			break
		}
	}
	return false, nil
}

func runCmd(_ []string, c *Console) (bool, error) {
	for !c.s.Step() {
	}
	fmt.Println("run complete")
	printSummary(c.s.Summary())
	return false, nil
}

func quitCmd(_ []string, _ *Console) (bool, error) {
	return true, nil
}

func helpCmd(_ []string, _ *Console) (bool, error) {
	fmt.Println("commands: show queues|mem|stats, step [n], run, quit")
	return false, nil
}

