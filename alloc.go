package physics2d

import (
	"log/slog"
	"unsafe"
)

// PoolAllocator and ScratchStack are the two allocator flavors the step
// pipeline relies on: a small-object pool for persistent allocations
// (contacts, joints) and a per-step scratch stack for LIFO temporaries
// (island position/velocity buffers). PoolAllocator.Allocate/Free hand
// out real byte buffers carved from pooled chunks. The step pipeline
// uses only the accounting side of both: contacts and joints are
// counted through Track/Untrack, and islands record their buffer sizes
// through ScratchStack.Acquire/Release, while the objects and buffers
// themselves are ordinary Go-GC'd values.

const chunkSize = 16 * 1024
const maxBlockSize = 640

// blockSizes are the supported pool size classes; a request is rounded
// up to the smallest class that fits it.
var blockSizes = [...]int{16, 32, 64, 96, 128, 160, 192, 224, 256, 320, 384, 448, 512, 640}

// sizeMap maps a byte count in [0, maxBlockSize] to a blockSizes index
// in O(1), precomputed once so PoolAllocator.Allocate never scans.
var sizeMap [maxBlockSize + 1]uint8

func init() {
	j := 0
	sizeMap[0] = 0
	for i := 1; i <= maxBlockSize; i++ {
		if i > blockSizes[j] {
			j++
		}
		sizeMap[i] = uint8(j)
	}
}

type poolBlock struct {
	next *poolBlock
}

// PoolAllocator services small, persistent allocations with O(1)
// amortized Allocate and O(1) Free. Requests larger than maxBlockSize
// fall through to a plain Go allocation and are never pooled.
type PoolAllocator struct {
	freeLists [len(blockSizes)]*poolBlock
	chunks    [][]byte
	liveCount int
}

func NewPoolAllocator() *PoolAllocator {
	return &PoolAllocator{}
}

// Allocate returns a zeroed buffer of at least size bytes.
func (p *PoolAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}
	if size > maxBlockSize {
		p.liveCount++
		return make([]byte, size)
	}

	index := sizeMap[size]
	if block := p.freeLists[index]; block != nil {
		p.freeLists[index] = block.next
		p.liveCount++
		buf := unsafe.Slice((*byte)(unsafe.Pointer(block)), blockSizes[index])
		for i := range buf {
			buf[i] = 0
		}
		return buf
	}

	// Grow: carve a fresh chunkSize slab into blocks of this size class
	// and thread them onto the freelist, then hand out the first one.
	blockSize := blockSizes[index]
	chunk := make([]byte, chunkSize)
	p.chunks = append(p.chunks, chunk)
	if Debug {
		slog.Debug("physics2d: pool grew", "blockSize", blockSize, "chunks", len(p.chunks))
	}

	count := chunkSize / blockSize
	for i := 1; i < count; i++ {
		block := (*poolBlock)(unsafe.Pointer(&chunk[i*blockSize]))
		block.next = p.freeLists[index]
		p.freeLists[index] = block
	}

	p.liveCount++
	return chunk[:blockSize]
}

// Free returns a buffer previously obtained from Allocate. The exact
// size originally requested must be passed back so the buffer returns
// to the correct size class.
func (p *PoolAllocator) Free(buf []byte, size int) {
	if size <= 0 || buf == nil {
		return
	}
	p.liveCount--
	if size > maxBlockSize {
		return
	}

	index := sizeMap[size]
	block := (*poolBlock)(unsafe.Pointer(&buf[0]))
	block.next = p.freeLists[index]
	p.freeLists[index] = block
}

// Clear releases every chunk. Any outstanding buffer becomes invalid.
func (p *PoolAllocator) Clear() {
	p.chunks = nil
	for i := range p.freeLists {
		p.freeLists[i] = nil
	}
	p.liveCount = 0
}

// LiveCount reports the number of outstanding (unfreed) allocations.
func (p *PoolAllocator) LiveCount() int {
	return p.liveCount
}

// Track and Untrack raise and lower the live allocation count without
// handing out a buffer. They exist for callers whose object is already
// a normal Go value (GC-managed) but that still wants its lifetime
// counted by the pool. The size argument is not used: no size class or
// freelist is touched.
func (p *PoolAllocator) Track(size int) {
	p.liveCount++
}

func (p *PoolAllocator) Untrack(size int) {
	p.liveCount--
}

const stackInlineSize = 100 * 1024
const maxStackEntries = 32

type stackEntry struct {
	size        int
	usedOverflow bool
}

// ScratchStack keeps LIFO accounting of scratch reservations against a
// fixed-size inline buffer. A reservation that does not fit in the
// remaining inline space is marked as overflow and does not advance the
// inline index. No bytes are handed out for either kind. Acquire/Release
// pairs must nest; ScratchStack asserts on interleaved release order and
// on more than maxStackEntries open scopes.
type ScratchStack struct {
	data      [stackInlineSize]byte
	index     int
	entries   []stackEntry
	allocation int
	maxAllocation int
}

func NewScratchStack() *ScratchStack {
	return &ScratchStack{}
}

// ScratchScope is a scoped handle for one nested Acquire; call Release
// exactly once, in strict LIFO order relative to any sibling scope.
type ScratchScope struct {
	stack *ScratchStack
	size  int
}

// Acquire records a reservation of size bytes that lasts until the
// returned scope is released. The scope does not expose any bytes.
func (s *ScratchStack) Acquire(size int) *ScratchScope {
	Assert(len(s.entries) < maxStackEntries)

	entry := stackEntry{size: size}
	if s.index+size > stackInlineSize {
		entry.usedOverflow = true
	} else {
		s.index += size
	}

	s.entries = append(s.entries, entry)
	s.allocation += size
	if s.allocation > s.maxAllocation {
		s.maxAllocation = s.allocation
	}

	return &ScratchScope{stack: s, size: size}
}

// Release frees the scope. Scopes must be released in the reverse order
// they were acquired; releasing out of order is a programmer error.
func (scope *ScratchScope) Release() {
	s := scope.stack
	Assert(len(s.entries) > 0)

	entry := s.entries[len(s.entries)-1]
	Assert(entry.size == scope.size)

	if !entry.usedOverflow {
		s.index -= entry.size
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.allocation -= entry.size
}

// MaxAllocation reports the peak number of bytes concurrently reserved
// across the stack's lifetime, for telemetry.
func (s *ScratchStack) MaxAllocation() int {
	return s.maxAllocation
}
