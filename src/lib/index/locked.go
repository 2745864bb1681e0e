package index

import "sync"

// Locked serialises writers and lets readers share the index.
type Locked struct {
	WordIndex
	sync.RWMutex
}

func NewLocked(idx WordIndex) *Locked {
	return &Locked{WordIndex: idx}
}

func (l *Locked) Add(word string) error {
	l.Lock()
	defer l.Unlock()
	return l.WordIndex.Add(word)
}

// AddAll adds words under one lock and returns how many were accepted and
// the errors for those that were not.
func (l *Locked) AddAll(words []string) (int, []error) {
	l.Lock()
	defer l.Unlock()
	added := 0
	var errs []error
	for _, w := range words {
		if err := l.WordIndex.Add(w); err != nil {
			errs = append(errs, err)
			continue
		}
		added++
	}
	return added, errs
}

func (l *Locked) ContainsPrefix(prefix string) bool {
	l.RLock()
	defer l.RUnlock()
	return l.WordIndex.ContainsPrefix(prefix)
}

func (l *Locked) IsWord(word string) bool {
	l.RLock()
	defer l.RUnlock()
	return l.WordIndex.IsWord(word)
}

func (l *Locked) WordCount() int {
	l.RLock()
	defer l.RUnlock()
	return l.WordIndex.WordCount()
}

// BranchCount returns -1 when the wrapped index does not count branches.
func (l *Locked) BranchCount() int {
	l.RLock()
	defer l.RUnlock()
	if b, ok := l.WordIndex.(Brancher); ok {
		return b.BranchCount()
	}
	return -1
}

// CountPrefix returns -1 when the wrapped index cannot count under a prefix.
func (l *Locked) CountPrefix(prefix string) int {
	l.RLock()
	defer l.RUnlock()
	if c, ok := l.WordIndex.(interface{ CountPrefix(string) int }); ok {
		return c.CountPrefix(prefix)
	}
	return -1
}
