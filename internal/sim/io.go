/*
 * schedsim - I/O device dispatch
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

package sim

import "github.com/dvalbada/schedsim/internal/pcb"

// doIO assigns a waiting process to any I/O device that is currently idle.
// Device 0 always takes exactly 3.0 time units; device 1 draws uniformly
// from [1,5]; device 2, the one capable of saturating, draws uniformly
// from [4,16]. Every burst is then scaled by the configured I/O time
// factor.
func (s *Simulator) doIO() {
	for i := 0; i < nIODevices; i++ {
		if s.currentIO[i] != nil {
			continue
		}

		var found *pcb.Stu
		s.queues.IO.Each(func(stu *pcb.Stu) {
			if found != nil {
				return
			}
			if stu.Sim.IOQueue == i {
				found = stu
			}
		})
		if found == nil {
			continue
		}

		proc := found.Sim
		s.currentIO[i] = proc
		proc.TIO = s.now
		if proc.IOCycles < 1 {
			proc.IOCycles = 1
		}

		switch i {
		case 0:
			proc.IOBurst[i] = 3.0
		case 1:
			proc.IOBurst[i] = 1.0 + 4.0*s.rng.Real1()
		case 2:
			proc.IOBurst[i] = 4.0 + 12.0*s.rng.Real1()
		}
		proc.IOBurst[i] *= s.ioTimeFactor
		proc.IOCycles--
	}
}
