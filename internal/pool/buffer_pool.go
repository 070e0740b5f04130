package pool

import (
	"strings"
	"sync"
)

// CandidatePool implements a pool of string slices used as per-call candidate lists
type CandidatePool struct {
	pool sync.Pool
	size int
}

// NewCandidatePool creates a new pool of candidate lists with the specified capacity
func NewCandidatePool(size int) *CandidatePool {
	return &CandidatePool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]string, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves an empty candidate list from the pool or creates a new one if none are available
func (cp *CandidatePool) Get() *[]string {
	return cp.pool.Get().(*[]string)
}

// Put returns a candidate list to the pool for reuse
func (cp *CandidatePool) Put(buffer *[]string) {
	// Drop string references so pooled lists do not pin old tokens
	clear(*buffer)
	*buffer = (*buffer)[:0]
	cp.pool.Put(buffer)
}

// BuilderPool implements a pool of strings.Builder for efficient string building
type BuilderPool struct {
	pool sync.Pool
}

// NewBuilderPool creates a new strings.Builder pool
func NewBuilderPool() *BuilderPool {
	return &BuilderPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(strings.Builder)
			},
		},
	}
}

// Get retrieves a reset builder from the pool
func (bp *BuilderPool) Get() *strings.Builder {
	return bp.pool.Get().(*strings.Builder)
}

// Put returns a builder to the pool for reuse
func (bp *BuilderPool) Put(sb *strings.Builder) {
	sb.Reset()
	bp.pool.Put(sb)
}

// SetPool implements a pool of string sets used to track visited forms
type SetPool struct {
	pool sync.Pool
}

// NewSetPool creates a new string set pool
func NewSetPool() *SetPool {
	return &SetPool{
		pool: sync.Pool{
			New: func() interface{} {
				return make(map[string]struct{})
			},
		},
	}
}

// Get retrieves an empty set from the pool
func (sp *SetPool) Get() map[string]struct{} {
	return sp.pool.Get().(map[string]struct{})
}

// Put empties a set and returns it to the pool
func (sp *SetPool) Put(set map[string]struct{}) {
	clear(set)
	sp.pool.Put(set)
}
