package wordnode

import (
	"fmt"
	"sync"

	"gitlab.com/pnathan/trieit/src/lib/radix"
	"gitlab.com/pnathan/trieit/src/lib/utility"
	"gitlab.com/pnathan/trieit/src/lib/wordapi"
)

// seenSet remembers batch keys. Keys are hex digests, so the radix tree
// shares their common leading digits.
type seenSet struct {
	keys *radix.Tree
	sync.RWMutex
}

func newSeenSet() *seenSet {
	return &seenSet{keys: radix.New()}
}

func (s *seenSet) Has(key string) bool {
	s.RLock()
	defer s.RUnlock()
	return s.keys.IsWord(key)
}

// Admit runs accept for a key not seen before and remembers the key only
// if accept succeeds. Nothing changes when it returns an error.
func (s *seenSet) Admit(key string, accept func() error) error {
	normalized, err := utility.Normalize(key)
	if err != nil {
		return fmt.Errorf("batch key: %w", err)
	}

	s.Lock()
	defer s.Unlock()
	if s.keys.IsWord(key) {
		return wordapi.ErrSeen
	}
	if err := accept(); err != nil {
		return err
	}
	// normalized is terminated and terminator free, which is all AddRunes checks
	_ = s.keys.AddRunes(normalized)
	return nil
}

func (s *seenSet) Len() int {
	s.RLock()
	defer s.RUnlock()
	return s.keys.WordCount()
}
