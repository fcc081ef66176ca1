package idgen

import "sync/atomic"

// Generator issues process-wide unique entity ids. The zero value is ready
// to use and starts issuing at 1.
type Generator struct {
	last atomic.Int64
}

// New returns a generator whose first id is 1.
func New() *Generator {
	return &Generator{}
}

// Next returns a fresh id strictly greater than every id returned before.
func (g *Generator) Next() int64 {
	return g.last.Add(1)
}

// AdvanceTo moves the counter up to max so that later ids exceed every id of
// a freshly loaded dataset. It never moves the counter backwards.
func (g *Generator) AdvanceTo(max int64) {
	for {
		cur := g.last.Load()
		if max <= cur {
			return
		}
		if g.last.CompareAndSwap(cur, max) {
			return
		}
	}
}

// Current returns the last issued (or advanced-to) value.
func (g *Generator) Current() int64 {
	return g.last.Load()
}
