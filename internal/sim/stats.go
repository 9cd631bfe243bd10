/*
 * schedsim - Simulation statistics
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

import "math"

// NSamples bounds the circular per-process sample buffers. Once a run has
// completed more than NSamples processes since the last reset, the oldest
// samples are overwritten.
const NSamples = 40960

const nIODevices = 3

// series is a fixed-capacity circular buffer of per-process timing samples,
// along with the running count needed to know how much of it is valid.
type series struct {
	data  [NSamples]float64
	count int64
}

func (s *series) push(v float64) {
	s.data[s.count%NSamples] = v
	s.count++
}

func (s *series) summarize() SeriesSummary {
	n := s.count
	if n > NSamples {
		n = NSamples
	}
	if n == 0 {
		return SeriesSummary{}
	}
	var sum, sumSq float64
	min, max := math.Inf(1), math.Inf(-1)
	for i := int64(0); i < n; i++ {
		v := s.data[i]
		sum += v
		sumSq += v * v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return SeriesSummary{
		Samples: n,
		Mean:    mean,
		StdDev:  math.Sqrt(variance),
		Min:     min,
		Max:     max,
	}
}

// SeriesSummary is the aggregate view of one of the four per-process timing
// series collected during the measured phase.
type SeriesSummary struct {
	Samples int64
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

// QueueSummary reports a queue's peak length and its time-average length
// over the measured phase.
type QueueSummary struct {
	Max     int64
	Average float64
}

// Summary is a snapshot of everything the measured phase has observed:
// per-process timing distributions, queue occupancy, and utilization
// ratios for the CPU, memory and each I/O device.
type Summary struct {
	MemWait       SeriesSummary
	FirstCPU      SeriesSummary
	Execution     SeriesSummary
	Turnaround    SeriesSummary
	NewQueue      QueueSummary
	ReadyQueue    QueueSummary
	IOQueue       [nIODevices]QueueSummary
	DefunctQueue  QueueSummary
	CPUUtil       float64
	MemUtil       float64
	IOUtil        [nIODevices]float64
	Completed     int64
	ErrorsFound   int64
	MeasuredSpan  float64
}

// stats accumulates the two-phase statistics the simulator collects:
// per-process timing samples (only once the measured phase begins) and
// continuously-integrated queue-length and utilization data (also gated on
// the measured phase).
type stats struct {
	enabled bool
	tStart  float64

	memAlloc   series
	firstCPU   series
	execution  series
	turnaround series

	maxNew, maxReady, maxDefunct int64
	maxIO                        [nIODevices]int64

	avgNewIntegral, avgReadyIntegral, avgDefunctIntegral float64
	avgIOIntegral                                        [nIODevices]float64

	cpuUtilIntegral float64
	memUtilIntegral float64
	ioUtilIntegral  [nIODevices]float64

	errorsDetected int64
}

func newStats() *stats {
	return &stats{}
}

// reset clears every accumulator and marks now as the start of a fresh
// measured phase, mirroring the driver's reset_stats callpoint.
func (s *stats) reset(now float64) {
	*s = stats{tStart: now, enabled: true}
}

// step folds one simulated time advance of tStep units into the running
// integrals, given the instantaneous queue lengths, fraction of memory in
// use, and device busy state observed during that interval.
func (s *stats) step(tStep float64, newLen, readyLen, defunctLen int64, ioLen [nIODevices]int64, memFraction float64, cpuBusy bool, ioBusy [nIODevices]bool) {
	if !s.enabled {
		return
	}
	if cpuBusy {
		s.cpuUtilIntegral += tStep
	}
	s.memUtilIntegral += tStep * memFraction

	s.avgNewIntegral += tStep * float64(newLen)
	s.avgReadyIntegral += tStep * float64(readyLen)
	s.avgDefunctIntegral += tStep * float64(defunctLen)
	if newLen > s.maxNew {
		s.maxNew = newLen
	}
	if readyLen > s.maxReady {
		s.maxReady = readyLen
	}
	if defunctLen > s.maxDefunct {
		s.maxDefunct = defunctLen
	}

	for i := 0; i < nIODevices; i++ {
		s.avgIOIntegral[i] += tStep * float64(ioLen[i])
		if ioLen[i] > s.maxIO[i] {
			s.maxIO[i] = ioLen[i]
		}
		if ioBusy[i] {
			s.ioUtilIntegral[i] += tStep
		}
	}
}

// recordCompletion pushes one finished process's timing samples, once the
// measured phase is active.
func (s *stats) recordCompletion(tCreate, tMemAlloc, tCPU, tEnd float64) {
	if !s.enabled {
		return
	}
	s.memAlloc.push(tMemAlloc - tCreate)
	s.firstCPU.push(tCPU - tCreate)
	s.execution.push(tEnd - tMemAlloc)
	s.turnaround.push(tEnd - tCreate)
}

func (s *stats) recordError() {
	s.errorsDetected++
}

func ratio(integral, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return integral / span
}

// summary materializes the Summary for the current measured phase, as of
// simulated time now.
func (s *stats) summary(now float64) Summary {
	span := now - s.tStart

	var ioQueues [nIODevices]QueueSummary
	var ioUtil [nIODevices]float64
	for i := 0; i < nIODevices; i++ {
		ioQueues[i] = QueueSummary{Max: s.maxIO[i], Average: ratio(s.avgIOIntegral[i], span)}
		ioUtil[i] = ratio(s.ioUtilIntegral[i], span)
	}

	return Summary{
		MemWait:      s.memAlloc.summarize(),
		FirstCPU:     s.firstCPU.summarize(),
		Execution:    s.execution.summarize(),
		Turnaround:   s.turnaround.summarize(),
		NewQueue:     QueueSummary{Max: s.maxNew, Average: ratio(s.avgNewIntegral, span)},
		ReadyQueue:   QueueSummary{Max: s.maxReady, Average: ratio(s.avgReadyIntegral, span)},
		IOQueue:      ioQueues,
		DefunctQueue: QueueSummary{Max: s.maxDefunct, Average: ratio(s.avgDefunctIntegral, span)},
		CPUUtil:      ratio(s.cpuUtilIntegral, span),
		MemUtil:      ratio(s.memUtilIntegral, span),
		IOUtil:       ioUtil,
		Completed:    min64(s.memAlloc.count, NSamples),
		ErrorsFound:  s.errorsDetected,
		MeasuredSpan: span,
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
