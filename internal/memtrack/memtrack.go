// Package memtrack is a minimal heap-accounting aid for the decode hot
// path: pixel-data buffers and decoded-image output buffers. It tracks
// current and high-water bytes in use with atomic counters so a caller can
// assert zero bytes remain in use after a successful run.
package memtrack

import "sync/atomic"

// Counter tracks current and high-water allocation bytes for one logical
// pool (e.g. "pixel buffers"). The zero value is ready to use.
type Counter struct {
	current int64
	high    int64
}

// Alloc records n newly allocated bytes.
func (c *Counter) Alloc(n int64) {
	cur := atomic.AddInt64(&c.current, n)
	for {
		h := atomic.LoadInt64(&c.high)
		if cur <= h || atomic.CompareAndSwapInt64(&c.high, h, cur) {
			return
		}
	}
}

// Free records n freed bytes.
func (c *Counter) Free(n int64) {
	atomic.AddInt64(&c.current, -n)
}

// Current returns the current bytes in use.
func (c *Counter) Current() int64 { return atomic.LoadInt64(&c.current) }

// HighWater returns the highest current value Alloc has ever produced.
func (c *Counter) HighWater() int64 { return atomic.LoadInt64(&c.high) }

// Scope allocates n bytes against c and returns a function that frees them;
// callers defer the release so mismatched alloc/free pairs are impossible
// to introduce by a missed early return.
func (c *Counter) Scope(n int) func() {
	c.Alloc(int64(n))
	return func() { c.Free(int64(n)) }
}
