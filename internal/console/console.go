/*
 * schedsim - Interactive console
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

// Package console implements an abbreviated-prefix command REPL for
// driving a simulation run step by step, backed by peterh/liner for line
// editing and history.
package console

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/peterh/liner"

	"github.com/dvalbada/schedsim/internal/sim"
)

// Console drives a sim.Simulator interactively.
type Console struct {
	s   *sim.Simulator
	log *slog.Logger
}

// New returns a Console wrapping s.
func New(s *sim.Simulator, log *slog.Logger) *Console {
	return &Console{s: s, log: log}
}

// Run starts the read-eval-print loop on stdin/stdout. It returns when the
// user quits or the input stream closes.
func (c *Console) Run() {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return completeCmd(partial)
	})

	for {
		input, err := line.Prompt("schedsim> ")
		if err == nil {
			line.AppendHistory(input)
			quit, procErr := processCommand(input, c)
			if procErr != nil {
				fmt.Println("error: " + procErr.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		c.log.Error("error reading console input", "error", err)
		return
	}
}
