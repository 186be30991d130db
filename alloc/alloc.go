package alloc

import (
	"math"
	"unsafe"

	"github.com/zeebo/errs/v2"
)

// AllocationFailure is wrapped by every error an Allocator returns when it
// cannot provide the requested number of slots.
const AllocationFailure = errs.Tag("allocation failure")

const slotSize = unsafe.Sizeof(int(0))

// Allocator hands out contiguous blocks of integer slots.
//
// Reallocate returns a block of n slots whose prefix holds the contents of
// buf. After a successful Reallocate the old block belongs to the allocator
// again and must not be used. Reallocate(nil, n) is the same as Allocate(n).
// Free of an empty block does nothing.
type Allocator interface {
	Allocate(n int) ([]int, error)
	Reallocate(buf []int, n int) ([]int, error)
	Free(buf []int)
}

// Default is the allocator used by arrays that were not given one.
var Default Allocator = new(Go)

// Go allocates blocks from the Go heap. Freed blocks are left to the garbage
// collector.
type Go struct {
	// Limit is the largest block in slots that will be handed out. Zero
	// means no limit beyond what fits in the address space.
	Limit int
}

func (g *Go) check(n int) error {
	switch {
	case n <= 0:
		return errs.Errorf("%w: invalid block size %d", AllocationFailure, n)
	case uint64(n) > math.MaxInt/uint64(slotSize):
		return errs.Errorf("%w: block of %d slots overflows", AllocationFailure, n)
	case g.Limit > 0 && n > g.Limit:
		return errs.Errorf("%w: block of %d slots exceeds limit %d", AllocationFailure, n, g.Limit)
	}
	return nil
}

func (g *Go) Allocate(n int) ([]int, error) {
	if err := g.check(n); err != nil {
		return nil, err
	}
	return make([]int, n), nil
}

func (g *Go) Reallocate(buf []int, n int) ([]int, error) {
	if err := g.check(n); err != nil {
		return nil, err
	}
	if n == len(buf) {
		return buf, nil
	}
	next := make([]int, n)
	copy(next, buf)
	return next, nil
}

func (g *Go) Free(buf []int) {}
