package wordnode

import (
	"sync"

	"gitlab.com/pnathan/trieit/src/lib/wordapi"
)

type InternalPeers struct {
	wordapi.Peerage
	sync.Mutex
}

func NewPeers(peers []string) *InternalPeers {
	p := wordapi.Peerage{Peers: append([]string{}, peers...)}
	return &InternalPeers{Peerage: p}
}

func (r *InternalPeers) GetPeers() []string {
	r.Lock()
	defer r.Unlock()
	return append([]string{}, r.Peers...)
}

func (r *InternalPeers) SetPeers(peers []string) {
	r.Lock()
	defer r.Unlock()
	r.Peers = append([]string{}, peers...)
}
