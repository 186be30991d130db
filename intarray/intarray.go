package intarray

import (
	"fmt"
	"slices"
	"unsafe"

	"github.com/zeebo/errs/v2"
	"github.com/zeebo/xxh3"

	"github.com/histdb/intarray/alloc"
)

// MinCapacity is the number of slots allocated by the first append.
const MinCapacity = 8

// Grow returns the capacity an array of the given capacity grows to. It
// starts at MinCapacity and doubles from there so that n appends cost O(n)
// in total copying.
func Grow(capacity int) int {
	if capacity == 0 {
		return MinCapacity
	}
	return capacity * 2
}

// T is a growable contiguous array of ints. The zero value is an empty array
// that allocates from alloc.Default. A T owns its block exclusively and is
// not safe for concurrent use.
type T struct {
	_ [0]func() // no equality

	buf   []int // len(buf) is the capacity; nil iff capacity is zero
	count int
	a     alloc.Allocator
}

// New returns an empty array that allocates from a.
func New(a alloc.Allocator) T {
	return T{a: a}
}

func (t *T) allocator() alloc.Allocator {
	if t.a == nil {
		return alloc.Default
	}
	return t.a
}

// Init puts the array in the zero state without releasing anything. Calling
// it on an array that holds a block leaks that block; use Release instead.
func (t *T) Init() {
	t.buf = nil
	t.count = 0
}

// Append adds v as the last element, growing the block if it is full. If the
// allocator cannot satisfy the growth the error wraps alloc.AllocationFailure
// and the array is unchanged.
//
// Growth may move the block, so slices returned by Values before the call no
// longer alias the array after it.
func (t *T) Append(v int) error {
	if len(t.buf) < t.count+1 {
		if err := t.grow(); err != nil {
			return err
		}
	}
	t.buf[t.count] = v
	t.count++
	return nil
}

//go:noinline
func (t *T) grow() error {
	next, err := t.allocator().Reallocate(t.buf, Grow(len(t.buf)))
	if err != nil {
		return errs.Wrap(err)
	}
	t.buf = next
	return nil
}

// Release frees the block, if any, and returns the array to the zero state.
// It is safe to call on an empty array and to call more than once.
func (t *T) Release() {
	if len(t.buf) > 0 {
		t.allocator().Free(t.buf)
	}
	t.Init()
}

func (t *T) Len() int { return t.count }
func (t *T) Cap() int { return len(t.buf) }

// At returns the element at index i. It panics if i is out of range.
func (t *T) At(i int) int { return t.buf[:t.count][i] }

// Last returns the most recently appended element. It panics if the array
// is empty.
func (t *T) Last() int { return t.At(t.count - 1) }

// Values returns the valid elements. The slice aliases the block and is only
// valid until the next Append that grows or the next Release.
func (t *T) Values() []int { return t.buf[:t.count:t.count] }

func (t *T) Size() uint64 {
	return 0 +
		/* buf   */ 24 + uint64(unsafe.Sizeof(int(0)))*uint64(len(t.buf)) +
		/* count */ 8 +
		/* a     */ 16 +
		0
}

// Digest hashes the valid elements. Arrays with equal contents have equal
// digests regardless of capacity.
func (t *T) Digest() uint64 {
	vs := t.Values()
	if len(vs) == 0 {
		return xxh3.Hash(nil)
	}
	return xxh3.Hash(unsafe.Slice(
		(*byte)(unsafe.Pointer(unsafe.SliceData(vs))),
		uintptr(len(vs))*unsafe.Sizeof(int(0)),
	))
}

// Equal reports if both arrays hold the same elements in the same order.
func (t *T) Equal(u *T) bool {
	return slices.Equal(t.Values(), u.Values())
}

func (t *T) String() string {
	return fmt.Sprintf("(intarray len=%d cap=%d %v)", t.count, len(t.buf), t.Values())
}
