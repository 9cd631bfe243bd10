/*
 * schedsim - Post-event consistency check
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

// checkAll reconciles the scheduler-visible mem_base with the simulator's
// own record, recomputes every queue's length, promotes newly-ready
// processes out of the init state, and recovers any process that the
// scheduler has dropped from every queue. It runs once after every call
// into the scheduler.
func (s *Simulator) checkAll() {
	s.master.Each(func(p *pcb.Sim) {
		stu := p.Stud
		if p.MemBase != stu.MemBase && p.MemBase <= 0 {
			p.MemBase = stu.MemBase
			p.TMemAlloc = s.now
			s.memInUse += float64(p.MemNeed)
		}
		p.InQueue = nil
	})

	s.curNewLen = tagQueue(s.queues.New, s.queues.New, false)
	s.curReadyLen = tagQueue(s.queues.Ready, s.queues.Ready, true)
	s.curDefunctLen = tagQueue(s.queues.Defunct, s.queues.Defunct, false)

	s.curIOLen = [3]int64{}
	s.queues.IO.Each(func(stu *pcb.Stu) {
		stu.Sim.InQueue = s.queues.IO
		if stu.Sim.IOQueue >= 0 && stu.Sim.IOQueue < len(s.curIOLen) {
			s.curIOLen[stu.Sim.IOQueue]++
		}
	})

	s.master.Each(func(p *pcb.Sim) {
		if p.InQueue != nil {
			return
		}
		s.nErrors++
		s.stats.recordError()
		s.log.Warn("process outside every queue, recovering", "proc", p.ProcNum, "state", p.State.String())

		switch p.State {
		case pcb.StateInit:
			s.queues.New.Prepend(p.Stud)
			p.InQueue = s.queues.New
		case pcb.StateReady:
			s.queues.Ready.Prepend(p.Stud)
			p.InQueue = s.queues.Ready
		case pcb.StateIO:
			s.queues.IO.Prepend(p.Stud)
			p.InQueue = s.queues.IO
		case pcb.StateDefunct:
			s.queues.Defunct.Prepend(p.Stud)
			p.InQueue = s.queues.Defunct
		}
	})

	if head := s.queues.Ready.Head(); head != nil {
		s.currentCPU = head.Sim
	} else {
		s.currentCPU = nil
	}
}

// tagQueue marks every process in q as belonging to target, optionally
// promoting it out of the init state, and returns the queue's length.
func tagQueue(q, target *pcb.Queue, promote bool) int64 {
	var n int64
	q.Each(func(stu *pcb.Stu) {
		n++
		stu.Sim.InQueue = target
		if promote && stu.Sim.State == pcb.StateInit {
			stu.Sim.State = pcb.StateReady
		}
	})
	return n
}
