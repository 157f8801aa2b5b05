package pathutil

import "sync"

const (
	defaultPointerCap = 16  // Most refs sit fewer than 16 segments deep
	maxPointerCap     = 128 // Don't pool excessively deep builders
)

var pointerBuilderPool = sync.Pool{
	New: func() any {
		return &PointerBuilder{
			segments: make([]string, 0, defaultPointerCap),
		}
	},
}

// Get retrieves a PointerBuilder from the pool, reset and ready to use.
func Get() *PointerBuilder {
	p := pointerBuilderPool.Get().(*PointerBuilder)
	p.Reset()
	return p
}

// Put returns a PointerBuilder to the pool if not oversized.
func Put(p *PointerBuilder) {
	if p == nil || cap(p.segments) > maxPointerCap {
		return
	}
	pointerBuilderPool.Put(p)
}
