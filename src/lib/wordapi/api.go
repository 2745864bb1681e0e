package wordapi

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"gitlab.com/pnathan/trieit/src/lib/log"
	"gitlab.com/pnathan/trieit/src/lib/utility"
)

// WordBatch is a set of words submitted to a node in one request.
type WordBatch struct {
	// Uuid should be randomly generated for each batch.
	Uuid uuid.UUID `json:"uuid"`
	// Timestamp should be the time the batch is assembled.
	Timestamp int64    `json:"unixtime"`
	Words     []string `json:"words"`

	hash []byte
}

func NewBatch(words []string) *WordBatch {
	return &WordBatch{
		Uuid:      uuid.New(),
		Timestamp: time.Now().Unix(),
		Words:     words,
	}
}

// GetHash identifies the batch across nodes, so a batch relayed back to
// its sender is recognised.
func (b *WordBatch) GetHash() []byte {
	if b.hash == nil {
		// MarshalBinary on a UUID never fails
		bin, _ := b.Uuid.MarshalBinary()
		buf := utility.Concat(utility.IntToBytes(b.Timestamp), bin)
		for _, w := range b.Words {
			buf = utility.Concat(buf, utility.UintToBytes(uint64(len(w))), []byte(w))
		}
		h := make([]byte, 64)
		// Compute a 64-byte Hash of buf and put it in h.
		sha3.ShakeSum256(h, buf)
		b.hash = h
	}
	return b.hash
}

// Key is the hex form of GetHash.
func (b *WordBatch) Key() string {
	return hex.EncodeToString(b.GetHash())
}

type PrefixResult struct {
	Prefix string `json:"prefix"`
	Found  bool   `json:"found"`
	// Count is the number of words under Prefix, -1 if the index cannot tell.
	Count int `json:"count"`
}

type WordResult struct {
	Word  string `json:"word"`
	Found bool   `json:"found"`
}

type Statistics struct {
	Index          string `json:"index"`
	Words          int    `json:"words"`
	Branches       int    `json:"branches"`
	PendingBatches int    `json:"pending_batches"`
	PoolHeadroom   int    `json:"pool_headroom"`
}

type Peerage struct {
	Peers []string `json:"peers"`
}

var (
	ErrSeen     = errors.New("batch already seen")
	ErrPoolFull = errors.New("word pool full")
)

const (
	http_put  = "PUT"
	http_post = "POST"
)

func httpPut(addr string, text []byte) (*http.Response, error) {
	return httpMethod(http_put, addr, text)
}

func httpPost(addr string, text []byte) (*http.Response, error) {
	return httpMethod(http_post, addr, text)
}

func httpMethod(method, addr string, text []byte) (*http.Response, error) {
	log.Debug("calling node", zap.String("method", method), zap.String("endpoint", addr))
	buf := bytes.NewBuffer(text)
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequest(method, addr, buf)
	if err != nil {
		log.Warn("http error", zap.Error(err), zap.String("host", addr))
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		log.Warn("http error", zap.Error(err), zap.String("host", addr))
		return nil, err
	}

	return resp, nil
}

// PutWords submits b to the node at addr.
func PutWords(b *WordBatch, addr string) error {
	text, err := json.Marshal(b)
	if err != nil {
		return err
	}
	formulatedAddress := fmt.Sprintf("%v/api/words", addr)

	resp, err := httpPut(formulatedAddress, text)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	case http.StatusBadRequest:
		return fmt.Errorf("bad request")
	case http.StatusNotAcceptable:
		return ErrSeen
	case http.StatusServiceUnavailable:
		return ErrPoolFull
	}
	return fmt.Errorf("bad status code: %d", resp.StatusCode)
}

func getJSON(formulatedAddress string, into any) error {
	resp, err := http.Get(formulatedAddress)
	if err != nil {
		log.Warn("http error", zap.Error(err))
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(into); err != nil {
		log.Warn("decoding error", zap.Error(err), zap.String("address", formulatedAddress))
		return err
	}
	return nil
}

func GetPrefix(prefix, addr string) (*PrefixResult, error) {
	r := &PrefixResult{}
	if err := getJSON(fmt.Sprintf("%v/api/prefix/%s", addr, url.PathEscape(prefix)), r); err != nil {
		return nil, err
	}
	return r, nil
}

func GetWord(word, addr string) (*WordResult, error) {
	r := &WordResult{}
	if err := getJSON(fmt.Sprintf("%v/api/word/%s", addr, url.PathEscape(word)), r); err != nil {
		return nil, err
	}
	return r, nil
}

func GetStatistics(addr string) (*Statistics, error) {
	s := &Statistics{}
	if err := getJSON(fmt.Sprintf("%v/api/statistics", addr), s); err != nil {
		return nil, err
	}
	return s, nil
}

// PostFlush asks the node to move its pending batches into the index now.
func PostFlush(addr string) error {
	resp, err := httpPost(fmt.Sprintf("%v/api/flush", addr), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code: %d", resp.StatusCode)
	}
	return nil
}

func PutPeers(data *Peerage, addr string) error {
	text, err := json.Marshal(data)
	if err != nil {
		return err
	}
	formulatedAddress := fmt.Sprintf("%v/api/peers", addr)
	resp, err := httpPut(formulatedAddress, text)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("bad request made, erroring")
	case http.StatusOK:
	}
	return nil
}

func GetPeers(addr string) (*Peerage, error) {
	s := &Peerage{}
	if err := getJSON(fmt.Sprintf("%v/api/peers", addr), s); err != nil {
		return nil, err
	}
	return s, nil
}
