// Package buffer implements an exclusively-owned byte buffer with
// explicit copy and move semantics.
//
// A Buffer owns storage obtained from a bufalloc.Allocator. Ownership is
// exclusive: at most one Buffer refers to a given allocation at any time,
// and the allocation is returned to its allocator exactly once, when the
// owning Buffer is released. Ownership can be duplicated only by deep copy
// (Clone, CopyFrom) and transferred without copying by move (Move,
// MoveFrom).
//
// # Moved-From State
//
// Moving out of a Buffer leaves it valid but empty: nil handle, zero
// length. A moved-from Buffer can be released (a no-op), reassigned via
// CopyFrom/MoveFrom, or inspected; it never dangles. This mirrors the
// two logical states a Buffer can be in - owning and empty - with moves
// and Release driving owning->empty, and assignment driving empty->owning.
//
// # Self-Assignment
//
// CopyFrom and MoveFrom guard on identity before touching any storage.
// Assigning a Buffer to itself must not first release the storage it is
// about to read, so both operations are no-ops when source and destination
// are the same object. The check is by pointer identity, not by content.
//
// # Thread Safety
//
// A Buffer carries no internal synchronization. Ownership transfers are
// atomic only within a single goroutine; sharing a Buffer across
// goroutines requires external synchronization by the caller.
package buffer

import (
	"fmt"
	"io"

	"github.com/marmos91/membuf/pkg/bufalloc"
)

// defaultAlloc backs buffers created without an explicit allocator.
var defaultAlloc = bufalloc.NewHeap(nil)

// Buffer exclusively owns a byte sequence allocated from an Allocator.
// The zero value is an empty buffer backed by the default heap allocator.
type Buffer struct {
	// alloc produced data and is the only allocator data may be freed to.
	alloc bufalloc.Allocator

	// data is nil in the empty state. When non-nil, len(data) is the
	// logical length; capacity may be larger for pooled storage.
	data []byte
}

// New creates an empty buffer bound to the given allocator.
// A nil allocator selects the default heap allocator.
func New(alloc bufalloc.Allocator) *Buffer {
	return &Buffer{alloc: alloc}
}

// NewFromBytes creates a buffer holding a copy of raw.
//
// The content is copied into freshly allocated storage; the caller keeps
// ownership of raw. A nil or empty raw produces an empty buffer without
// allocating. Allocation failure is returned wrapping
// bufalloc.ErrAllocFailed and yields no buffer.
func NewFromBytes(alloc bufalloc.Allocator, raw []byte) (*Buffer, error) {
	b := New(alloc)
	if len(raw) == 0 {
		return b, nil
	}

	data, err := b.allocator().Alloc(len(raw))
	if err != nil {
		return nil, fmt.Errorf("buffer: %w", err)
	}
	copy(data, raw)
	b.data = data
	return b, nil
}

// NewFromString creates a buffer holding a copy of s.
// See NewFromBytes for allocation and empty-input behavior.
func NewFromString(alloc bufalloc.Allocator, s string) (*Buffer, error) {
	b := New(alloc)
	if s == "" {
		return b, nil
	}

	data, err := b.allocator().Alloc(len(s))
	if err != nil {
		return nil, fmt.Errorf("buffer: %w", err)
	}
	copy(data, s)
	b.data = data
	return b, nil
}

// allocator resolves the buffer's allocator, falling back to the default.
func (b *Buffer) allocator() bufalloc.Allocator {
	if b.alloc == nil {
		return defaultAlloc
	}
	return b.alloc
}

// Len returns the length of the owned content in constant time.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Owning reports whether the buffer currently owns storage.
func (b *Buffer) Owning() bool {
	return b.data != nil
}

// View returns a non-owning, read-only view of the content.
//
// The view stays valid only while this buffer owns the storage: releasing,
// reassigning, or moving out of the buffer invalidates it. An empty buffer
// yields an empty view.
func (b *Buffer) View() View {
	return View{data: b.data}
}

// Bytes returns the owned storage for in-place mutation.
//
// The slice aliases the buffer's storage and must not be retained across
// Release, CopyFrom, MoveFrom, or Move. Returns nil for an empty buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// String returns a copy of the content as a string.
// An empty buffer returns "".
func (b *Buffer) String() string {
	return string(b.data)
}

// WriteTo writes the content to w. An empty buffer writes nothing.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if len(b.data) == 0 {
		return 0, nil
	}
	n, err := w.Write(b.data)
	return int64(n), err
}

// Clone returns a deep copy of the buffer, allocated from the same
// allocator. The receiver is unmodified and the clone is fully
// independent: mutating one never affects the other.
func (b *Buffer) Clone() (*Buffer, error) {
	return NewFromBytes(b.alloc, b.data)
}

// CopyFrom replaces the buffer's content with a deep copy of src's.
//
// The identity guard comes first: copying a buffer onto itself is a no-op,
// because releasing the destination's storage before reading the source
// would read freed memory when both are the same object.
//
// On allocation failure the destination is left empty (its previous
// storage has already been released) and the error wraps
// bufalloc.ErrAllocFailed. The destination is never left pointing at
// partially initialized storage.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if b == src {
		return nil
	}

	b.Release()
	if src == nil || len(src.data) == 0 {
		return nil
	}

	data, err := b.allocator().Alloc(len(src.data))
	if err != nil {
		return fmt.Errorf("buffer: copy: %w", err)
	}
	copy(data, src.data)
	b.data = data
	return nil
}

// MoveFrom transfers src's storage to the buffer in constant time.
//
// The buffer's current storage is released first, then src's handle (and
// its allocator binding, so the storage is freed to the right place) is
// taken over. src is left in the moved-from state: empty, valid, and
// reassignable. Moving a buffer onto itself is a no-op, guarded by
// identity before any storage is released.
func (b *Buffer) MoveFrom(src *Buffer) {
	if b == src || src == nil {
		return
	}

	b.Release()
	if src.data == nil {
		return
	}

	b.data = src.data
	b.alloc = src.alloc
	src.data = nil
}

// Move returns a new buffer that takes over the receiver's storage.
//
// The receiver is left in the moved-from state; releasing it afterwards
// is a no-op for the transferred storage. No allocation takes place.
func (b *Buffer) Move() *Buffer {
	moved := &Buffer{alloc: b.alloc, data: b.data}
	b.data = nil
	return moved
}

// Release returns the owned storage to its allocator and resets the
// buffer to the empty state. Releasing an empty or moved-from buffer is
// a no-op, so Release is safe to call unconditionally (and repeatedly)
// on every exit path.
func (b *Buffer) Release() {
	if b.data == nil {
		return
	}
	b.allocator().Free(b.data)
	b.data = nil
}
