package driver

import (
	"fmt"
	"unsafe"
)

// Handle is a small integer index into an Arena. Handle 0 is the
// reserved sentinel for arenas that need a "null" value (src-loc,
// token-type, token-data); those arenas allocate and discard it once
// during Context initialization so it is never handed out again.
type Handle uint32

// NoHandle is the zero handle, used by arenas that don't reserve it
// (callers who never compare against it are free to ignore this).
const NoHandle Handle = 0

// Arena is a typed, append-only pool with monotonic growth. Allocations
// return a stable Handle; the handle stays valid for the arena's
// lifetime until FreeAll is called, which invalidates every handle
// simultaneously.
//
// Records are zero-initialized on allocation, per the spec's contract.
// Growth is geometric (Go's append growth); because records are stored in
// a slice of pointers rather than a slice of values, growth never
// invalidates a previously returned *T.
type Arena[T any] struct {
	records []*T
	freed   bool
}

// NewArena allocates the backing slice with capacityHint pre-reserved.
func NewArena[T any](capacityHint int) *Arena[T] {
	if capacityHint < 1 {
		capacityHint = 1
	}
	return &Arena[T]{records: make([]*T, 0, capacityHint)}
}

// AllocZeroed appends a new zero-valued record and returns its handle.
func (a *Arena[T]) AllocZeroed() Handle {
	if a.freed {
		panic("arena: alloc after FreeAll")
	}
	var zero T
	a.records = append(a.records, &zero)
	return Handle(len(a.records) - 1)
}

// Deref returns the record for handle. It panics on an out-of-range
// handle or on a handle into a freed arena — both are programming
// errors in this driver, never a user-facing condition.
func (a *Arena[T]) Deref(h Handle) *T {
	if a.freed {
		panic("arena: deref after FreeAll")
	}
	if int(h) >= len(a.records) {
		panic(fmt.Sprintf("arena: handle %d out of range (len=%d)", h, len(a.records)))
	}
	return a.records[h]
}

// Len returns the number of allocated records, including any discarded
// sentinel at handle 0.
func (a *Arena[T]) Len() int { return len(a.records) }

// BytesAllocated reports an approximate byte count for front-end memory
// statistics (§4.E step 4). It is a rough accounting, not exact: each
// record is counted at its static size plus pointer overhead.
func (a *Arena[T]) BytesAllocated() uintptr {
	var zero T
	return uintptr(len(a.records)) * (unsafe.Sizeof(zero) + unsafe.Sizeof(uintptr(0)))
}

// FreeAll releases every record in the arena. All outstanding handles
// become invalid; dereferencing one after this call panics.
func (a *Arena[T]) FreeAll() {
	a.records = nil
	a.freed = true
}

// DiscardSentinel allocates and throws away handle 0, so later
// allocations never return it. Called once during Context init for the
// three arenas that use 0 as a "null" sentinel (src-loc, token-type,
// token-data).
func (a *Arena[T]) DiscardSentinel() {
	h := a.AllocZeroed()
	if h != NoHandle {
		panic("arena: sentinel discard produced non-zero handle, arena wasn't empty")
	}
}
