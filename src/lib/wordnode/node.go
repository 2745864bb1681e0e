// Package wordnode serves one word index over HTTP. Submitted batches wait
// in a bounded pool until the processor flushes them into the index.
package wordnode

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	"gitlab.com/pnathan/trieit/src/lib/index"
	"gitlab.com/pnathan/trieit/src/lib/log"
	"gitlab.com/pnathan/trieit/src/lib/wordapi"
)

type Node struct {
	kind  index.Kind
	index *index.Locked
	pool  *Pool
	seen  *seenSet
	peers *InternalPeers

	full chan struct{}
	// relay forwards an accepted batch to peers; replaced in tests.
	relay func(b *wordapi.WordBatch, peer string) error
}

func New(kind index.Kind, poolSize int, peers []string) (*Node, error) {
	idx, err := index.New(kind)
	if err != nil {
		return nil, err
	}
	return &Node{
		kind:  kind,
		index: index.NewLocked(idx),
		pool:  NewPool(poolSize),
		seen:  newSeenSet(),
		peers: NewPeers(peers),
		full:  make(chan struct{}, 1),
		relay: wordapi.PutWords,
	}, nil
}

// Index exposes the locked index for in-process readers.
func (n *Node) Index() *index.Locked {
	return n.index
}

// Flush moves every pending batch into the index and returns the number
// of words added.
func (n *Node) Flush() int {
	batches := n.pool.Drain()
	total := 0
	for _, b := range batches {
		added, errs := n.index.AddAll(b.Words)
		for _, err := range errs {
			log.Warn("word refused", zap.String("batch", b.Uuid.String()), zap.Error(err))
		}
		total += added
	}
	if len(batches) > 0 {
		log.Info("flushed pool", zap.Int("batches", len(batches)), zap.Int("words", total))
	}
	return total
}

// Submit queues b unless it was seen before or the pool is full.
func (n *Node) Submit(b *wordapi.WordBatch) error {
	if err := n.seen.Admit(b.Key(), func() error { return n.pool.Put(b) }); err != nil {
		return err
	}

	if n.pool.Length() >= (n.pool.Capacity()+1)/2 {
		select {
		case n.full <- struct{}{}:
		default:
		}
	}
	return nil
}

func (n *Node) fanOut(b *wordapi.WordBatch) {
	for _, peer := range n.peers.GetPeers() {
		err := n.relay(b, peer)
		switch {
		case err == nil:
			log.Info("relayed batch", zap.String("host", peer))
		case errors.Is(err, wordapi.ErrSeen):
			log.Debug("peer already had batch", zap.String("host", peer))
		default:
			log.Warn("unable to relay batch to peer", zap.String("host", peer), zap.Error(err))
		}
	}
}

func (n *Node) enterWords(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)

	batch := &wordapi.WordBatch{}
	if err := decoder.Decode(batch); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("couldn't decode"))
		return
	}
	if len(batch.Words) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("empty batch"))
		return
	}

	switch err := n.Submit(batch); {
	case err == nil:
	case errors.Is(err, wordapi.ErrSeen):
		log.Info("Attempted double-send of batch", zap.String("batch", batch.Uuid.String()))
		w.WriteHeader(http.StatusNotAcceptable)
		return
	case errors.Is(err, wordapi.ErrPoolFull):
		log.Warn("pool full, refusing batch", zap.Int("capacity", n.pool.Capacity()))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("pool full"))
		return
	default:
		log.Error("Failure storing the batch", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("error"))
		return
	}

	log.Info("batch queued", zap.String("batch", batch.Uuid.String()), zap.Int("words", len(batch.Words)))
	go n.fanOut(batch)

	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	if err != nil {
		log.Printf("error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(bytes)
}

func (n *Node) prefix(w http.ResponseWriter, r *http.Request) {
	p := mux.Vars(r)["prefix"]
	writeJSON(w, &wordapi.PrefixResult{
		Prefix: p,
		Found:  n.index.ContainsPrefix(p),
		Count:  n.index.CountPrefix(p),
	})
}

func (n *Node) word(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	writeJSON(w, &wordapi.WordResult{Word: word, Found: n.index.IsWord(word)})
}

func (n *Node) Statistics() *wordapi.Statistics {
	return &wordapi.Statistics{
		Index:          n.kind.String(),
		Words:          n.index.WordCount(),
		Branches:       n.index.BranchCount(),
		PendingBatches: n.pool.Length(),
		PoolHeadroom:   n.pool.Capacity() - n.pool.Length(),
	}
}

func (n *Node) statistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, n.Statistics())
}

func (n *Node) flush(w http.ResponseWriter, r *http.Request) {
	added := n.Flush()
	fmt.Fprintf(w, "flushed %d", added)
}

func (n *Node) putPeers(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)

	peers := wordapi.Peerage{}
	if err := decoder.Decode(&peers); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("couldn't decode"))
		return
	}
	n.peers.SetPeers(peers.Peers)
	_, _ = w.Write([]byte("ok"))
}

func (n *Node) getPeers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, &wordapi.Peerage{Peers: n.peers.GetPeers()})
}

func Default(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "ok")
}

func Wut(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, "your content is in another url")
}

func loggerHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		log.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Duration("took", time.Since(start)))
	})
}

// Handler routes the node API.
func (n *Node) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", Default)
	r.HandleFunc("/api/words", n.enterWords).Methods("PUT")
	r.HandleFunc("/api/prefix/{prefix}", n.prefix).Methods("GET")
	r.HandleFunc("/api/word/{word}", n.word).Methods("GET")
	r.HandleFunc("/api/statistics", n.statistics).Methods("GET")
	r.HandleFunc("/api/flush", n.flush).Methods("POST")
	r.HandleFunc("/api/peers", n.putPeers).Methods("PUT")
	r.HandleFunc("/api/peers", n.getPeers).Methods("GET")
	r.NotFoundHandler = http.HandlerFunc(Wut)

	return alice.New(loggerHandler).Then(r)
}
