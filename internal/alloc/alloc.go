/*
 * schedsim - Boundary-tag memory allocator
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

// Package alloc implements a bidirectional first-fit allocator over a fixed
// array of signed words, using boundary tags at both ends of every block to
// support O(1) coalescing on free. A positive tag encodes an allocated
// block's size (including its two tag words); a negative tag encodes a free
// block's size. Free blocks are never left adjacent.
package alloc

// AdminSize is the per-block overhead consumed by the two boundary tags.
const AdminSize = 2

// Heap is a boundary-tag heap over a fixed-size array of words. The zero
// value is not usable; build one with New.
type Heap struct {
	mem  []int64
	size int64
}

// New allocates a heap of size words and initializes it to one free block
// spanning the whole array.
func New(size int64) *Heap {
	h := &Heap{mem: make([]int64, size), size: size}
	h.Init()
	return h
}

// Init resets the heap to a single free block covering the entire array.
func (h *Heap) Init() {
	h.mem[0] = -h.size
	h.mem[h.size-1] = -h.size
}

// Exit reinitializes the heap, discarding all outstanding allocations. It
// mirrors the reference allocator's mem_exit, called once at driver
// shutdown.
func (h *Heap) Exit() {
	h.Init()
}

// Size reports the total word capacity of the heap.
func (h *Heap) Size() int64 {
	return h.size
}

// Get requests a block able to hold size words of payload and returns the
// index of the first usable word, or -1 if no block is large enough (or
// size is out of range).
//
// The heap is scanned from both ends: forward from index 0 and backward
// from the last index, each stopping at the first free block large enough.
// The forward block's last index plus the backward block's first index is
// then compared with the heap size: if the sum is smaller, the allocation
// is placed at the forward candidate, left-aligned inside it; otherwise it
// is placed at the backward candidate, right-aligned. When both scans stop
// on the same block, that block is thus used left-aligned if its midpoint
// lies below the middle of the heap and right-aligned otherwise. This
// tends to fill the heap from both ends rather than packing everything
// against index 0.
func (h *Heap) Get(size int64) int64 {
	if size < 1 || size > h.size-AdminSize {
		return -1
	}

	m := h.mem
	index := int64(0)
	for index < h.size && size+AdminSize+m[index] > 0 {
		if m[index] > 0 {
			index += m[index]
		} else {
			index -= m[index]
		}
	}
	if index >= h.size {
		return -1
	}

	index2 := h.size - 1
	for index2 > 0 && size+AdminSize+m[index2] > 0 {
		if m[index2] > 0 {
			index2 -= m[index2]
		} else {
			index2 += m[index2]
		}
	}

	free2 := index2 + m[index2] + 1
	lastFree := index - m[index] - 1

	if lastFree+free2 < h.size {
		end := index + size + 1
		if lastFree > end {
			remainder := m[index] + size + AdminSize
			m[lastFree] = remainder
			m[end+1] = remainder
		}
		m[index] = size + AdminSize
		m[end] = size + AdminSize
		return index + 1
	}

	end2 := index2 - size - 1
	if free2 < end2 {
		remainder := m[index2] + size + AdminSize
		m[free2] = remainder
		m[end2-1] = remainder
	}
	m[index2] = size + AdminSize
	m[end2] = size + AdminSize
	return end2 + 1
}

// Free releases the block returned by a prior Get. An out-of-range index or
// a block whose boundary tags are corrupt or already free is a silent
// no-op: allocator corruption is surfaced by higher layers (the consistency
// checker), never by panicking here.
func (h *Heap) Free(index int64) {
	if index < 1 || index > h.size-AdminSize {
		return
	}

	m := h.mem
	start := index - 1
	if m[start] < AdminSize {
		return
	}
	end := start + m[start] - 1
	if end >= h.size || m[start] != m[end] {
		return
	}

	m[start] = -m[start]
	if start > 0 && m[start-1] < 0 {
		start += m[start-1]
		m[start] -= m[end]
	}
	m[end] = m[start]

	if end < h.size-1 && m[end+1] < 0 {
		end -= m[end+1]
		m[end] += m[start]
		m[start] = m[end]
	}
}

// Available walks every block once and reports the total free words
// (empty), the largest usable free block (large, with its admin overhead
// already subtracted), and the number of free blocks (holes).
func (h *Heap) Available() (empty, large, holes int64) {
	m := h.mem
	index := int64(0)
	for index < h.size {
		if m[index] < 0 {
			size := -m[index]
			empty += size
			holes++
			if large < size {
				large = size
			}
			index += size
		} else {
			index += m[index]
		}
	}
	if large > 1 {
		large -= AdminSize
	} else {
		large = 0
	}
	return empty, large, holes
}

// Internal returns the internal-fragmentation ratio: total admin overhead
// divided by total allocated payload, across every allocated block. It
// returns 0 if there are no allocated blocks (or the payload does not
// exceed the overhead), avoiding a division by zero.
func (h *Heap) Internal() float64 {
	m := h.mem
	index := int64(0)
	var nAlloc, nAdmin int64
	for index < h.size {
		if m[index] < 0 {
			index -= m[index]
		} else {
			size := m[index]
			nAlloc += size
			nAdmin += AdminSize
			index += size
		}
	}
	if nAlloc <= nAdmin {
		return 0
	}
	return float64(nAdmin) / float64(nAlloc-nAdmin)
}
