package buffer

import "bytes"

// View is a non-owning, read-only window over a Buffer's content.
//
// A View never frees the storage it points at and exposes it only through
// copying accessors, so handing a View to other code cannot violate the
// owner's exclusive ownership. Its lifetime is bounded by the owner's:
// once the owning Buffer is released, reassigned, or moved from, the view
// is invalid and must not be used.
type View struct {
	data []byte
}

// Len returns the view's length in bytes.
func (v View) Len() int {
	return len(v.data)
}

// IsEmpty reports whether the view has no content.
func (v View) IsEmpty() bool {
	return len(v.data) == 0
}

// String returns the content as a string.
func (v View) String() string {
	return string(v.data)
}

// ByteSlice returns a defensive copy of the content.
// The returned slice is independent of the underlying buffer.
func (v View) ByteSlice() []byte {
	c := make([]byte, len(v.data))
	copy(c, v.data)
	return c
}

// Equal reports whether two views hold the same content.
func (v View) Equal(other View) bool {
	return bytes.Equal(v.data, other.data)
}
