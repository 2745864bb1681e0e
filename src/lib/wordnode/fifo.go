package wordnode

import (
	"sync"

	"gitlab.com/pnathan/trieit/src/lib/wordapi"
)

// Pool is a bounded FIFO of batches waiting to be flushed into the index.
type Pool struct {
	r      []*wordapi.WordBatch
	start  int
	length int
	sync.Mutex
}

func NewPool(size int) *Pool {
	return &Pool{r: make([]*wordapi.WordBatch, size)}
}

func (f *Pool) Put(b *wordapi.WordBatch) error {
	f.Lock()
	defer f.Unlock()
	if f.length >= len(f.r) {
		return wordapi.ErrPoolFull
	}

	f.r[(f.start+f.length)%len(f.r)] = b
	f.length++
	return nil
}

func (f *Pool) Length() int {
	f.Lock()
	defer f.Unlock()
	return f.length
}

func (f *Pool) Capacity() int {
	return len(f.r)
}

// Pop returns the oldest batch, or false when the pool is empty.
func (f *Pool) Pop() (*wordapi.WordBatch, bool) {
	f.Lock()
	defer f.Unlock()
	return f.pop()
}

func (f *Pool) pop() (*wordapi.WordBatch, bool) {
	if f.length <= 0 {
		return nil, false
	}
	b := f.r[f.start]
	f.r[f.start] = nil
	f.start = (f.start + 1) % len(f.r)
	f.length--

	return b, true
}

// Drain empties the pool in one step, oldest batch first.
func (f *Pool) Drain() []*wordapi.WordBatch {
	f.Lock()
	defer f.Unlock()
	out := make([]*wordapi.WordBatch, 0, f.length)
	for {
		b, ok := f.pop()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}
