package alloc

import (
	"fmt"
	"unsafe"

	"github.com/zeebo/errs/v2"
)

// Stats counts the calls a Tracking allocator has served.
type Stats struct {
	Allocs   int
	Reallocs int
	Frees    int
	Failures int
}

// Tracking wraps an Allocator and records which blocks are live. Freeing a
// block it did not hand out, or freeing one twice, panics.
type Tracking struct {
	_ [0]func() // no equality

	// Under is the allocator blocks come from. Nil means Default.
	Under Allocator

	// Budget is the most slots that may be live at once. Zero means no
	// budget.
	Budget int

	live  map[*int]int
	slots int
	stats Stats
}

func (t *Tracking) under() Allocator {
	if t.Under == nil {
		return Default
	}
	return t.Under
}

// Live returns the number of slots currently handed out.
func (t *Tracking) Live() int { return t.slots }

// Blocks returns the number of blocks currently handed out.
func (t *Tracking) Blocks() int { return len(t.live) }

func (t *Tracking) Stats() Stats { return t.stats }

func (t *Tracking) Allocate(n int) ([]int, error) {
	return t.Reallocate(nil, n)
}

func (t *Tracking) Reallocate(buf []int, n int) ([]int, error) {
	old := 0
	if len(buf) > 0 {
		old = t.owned(buf)
	}

	if t.Budget > 0 && t.slots-old+n > t.Budget {
		t.stats.Failures++
		return nil, errs.Errorf("%w: %d slots would exceed budget %d",
			AllocationFailure, t.slots-old+n, t.Budget)
	}

	next, err := t.under().Reallocate(buf, n)
	if err != nil {
		t.stats.Failures++
		return nil, err
	}

	if len(buf) > 0 {
		t.forget(buf)
		t.stats.Reallocs++
	} else {
		t.stats.Allocs++
	}
	t.remember(next)

	return next, nil
}

func (t *Tracking) Free(buf []int) {
	if len(buf) == 0 {
		return
	}
	t.owned(buf)
	t.forget(buf)
	t.stats.Frees++
	t.under().Free(buf)
}

func (t *Tracking) owned(buf []int) int {
	n, ok := t.live[unsafe.SliceData(buf)]
	if !ok {
		panic(fmt.Sprintf("alloc: block %p of %d slots is not live", unsafe.SliceData(buf), len(buf)))
	}
	return n
}

func (t *Tracking) remember(buf []int) {
	if t.live == nil {
		t.live = make(map[*int]int)
	}
	t.live[unsafe.SliceData(buf)] = len(buf)
	t.slots += len(buf)
}

func (t *Tracking) forget(buf []int) {
	p := unsafe.SliceData(buf)
	t.slots -= t.live[p]
	delete(t.live, p)
}
