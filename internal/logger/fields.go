package logger

import "log/slog"

// Standard field keys for structured logging. Use these consistently so
// log lines stay queryable across the library and the CLI.
const (
	KeyOp         = "op"           // operation name: alloc, free, clone, move, copy
	KeyAllocator  = "allocator"    // allocator kind: heap, pool, arena
	KeySize       = "size"         // byte size of the operation
	KeyBytesInUse = "bytes_in_use" // bytes currently owned by live buffers
	KeyDurationMs = "duration_ms"  // operation duration in milliseconds
	KeyError      = "error"        // error message
	KeyRequestID  = "request_id"   // HTTP request identifier
)

// Op returns a slog.Attr for an operation name.
func Op(name string) slog.Attr {
	return slog.String(KeyOp, name)
}

// AllocatorKind returns a slog.Attr for an allocator kind.
func AllocatorKind(kind string) slog.Attr {
	return slog.String(KeyAllocator, kind)
}

// Size returns a slog.Attr for a byte size.
func Size(n int) slog.Attr {
	return slog.Int(KeySize, n)
}

// BytesInUse returns a slog.Attr for the bytes currently in use.
func BytesInUse(n int64) slog.Attr {
	return slog.Int64(KeyBytesInUse, n)
}

// DurationMs returns a slog.Attr for a duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error. A nil error yields an empty attr.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
