package engine

import "fmt"

// CellPool supplies and reclaims visual handles for cells.
// The engine borrows handles and never owns the pool.
type CellPool interface {
	// Acquire returns a free handle, or an error wrapping ErrPoolExhausted.
	Acquire() (Handle, error)
	// Release returns a handle to the pool.
	Release(h Handle)
}

// BoundedPool is a CellPool with a hard cap on live handles.
// Released handles are reused before new ones are minted.
type BoundedPool struct {
	free    []Handle
	live    map[Handle]bool
	next    Handle
	maxLive int
}

// NewBoundedPool creates a pool with prewarm handles ready and at most
// maxLive handles outstanding. maxLive <= 0 means unbounded.
func NewBoundedPool(prewarm, maxLive int) *BoundedPool {
	p := &BoundedPool{
		live:    make(map[Handle]bool),
		maxLive: maxLive,
	}
	if maxLive > 0 && prewarm > maxLive {
		prewarm = maxLive
	}
	for i := 0; i < prewarm; i++ {
		p.free = append(p.free, p.mint())
	}
	return p
}

// mint creates a fresh handle. Handle 0 is never issued.
func (p *BoundedPool) mint() Handle {
	p.next++
	return p.next
}

// Acquire implements CellPool.
func (p *BoundedPool) Acquire() (Handle, error) {
	if p.maxLive > 0 && len(p.live) >= p.maxLive {
		return 0, fmt.Errorf("%w: %d handles live", ErrPoolExhausted, len(p.live))
	}

	var h Handle
	if n := len(p.free); n > 0 {
		h = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		h = p.mint()
	}
	p.live[h] = true
	return h, nil
}

// Release implements CellPool. Unknown or already released handles are ignored.
func (p *BoundedPool) Release(h Handle) {
	if !p.live[h] {
		return
	}
	delete(p.live, h)
	p.free = append(p.free, h)
}

// Live returns the number of handles currently acquired.
func (p *BoundedPool) Live() int {
	return len(p.live)
}

// Free returns the number of handles ready for reuse.
func (p *BoundedPool) Free() int {
	return len(p.free)
}

var _ CellPool = (*BoundedPool)(nil)
