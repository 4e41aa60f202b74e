package builder

import "sync"

// Pool recycles TagHelper builders across decode calls to avoid per-descriptor
// allocation of the accumulator and its slices. Concurrent borrow/return is safe;
// each borrowed builder is exclusively owned by its caller until released.
type Pool struct {
	pool sync.Pool
}

// NewPool creates a builder pool.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &TagHelper{}
			},
		},
	}
}

// Acquire borrows a builder scoped to the descriptor's identity triplet.
func (p *Pool) Acquire(kind, name, assemblyName string) *TagHelper {
	b := p.pool.Get().(*TagHelper)
	b.kind = kind
	b.name = name
	b.assemblyName = assemblyName
	return b
}

// Release resets the builder and returns it to the pool. Callers must not retain
// the builder afterwards.
func (p *Pool) Release(b *TagHelper) {
	if b == nil {
		return
	}
	b.reset()
	p.pool.Put(b)
}
