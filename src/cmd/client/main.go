package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	"gitlab.com/pnathan/trieit/src/lib/log"
	"gitlab.com/pnathan/trieit/src/lib/wordapi"
)

func MustMarshal(v any) []byte {
	b := new(bytes.Buffer)
	encoder := json.NewEncoder(b)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(v)
	if err != nil {
		panic(err)
	}

	return b.Bytes()
}

func Moan(complaint error) {
	log.Fatal("", zap.Error(complaint))
	os.Exit(1)
}

func readWords(r io.Reader) ([]string, error) {
	words := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			words = append(words, w)
		}
	}
	return words, scanner.Err()
}

func main() {
	parser := argparse.NewParser("trieit client", "trieit client code")

	endpoint := parser.String("e", "endpoint", &argparse.Options{Required: false, Help: "endpoint to address", Default: "http://localhost:1337"})

	putWordsCmd := parser.NewCommand("words-put", "submits a batch of words, one per line")
	fileData := putWordsCmd.String("f", "file", &argparse.Options{Required: false, Help: "file with the words; if not present, reads from stdin"})

	prefixCmd := parser.NewCommand("prefix-get", "asks whether a prefix is indexed")
	prefix := prefixCmd.String("s", "prefix", &argparse.Options{Required: true, Help: "prefix to look up"})
	wordCmd := parser.NewCommand("word-get", "asks whether a full word is indexed")
	word := wordCmd.String("s", "word", &argparse.Options{Required: true, Help: "word to look up"})
	statsCmd := parser.NewCommand("stats-get", "gets the node statistics")
	flushCmd := parser.NewCommand("flush", "flushes pending batches into the index")

	peerPut := parser.NewCommand("peer-put", "puts the peer list")
	peerFile := peerPut.String("f", "file", &argparse.Options{Required: true, Help: "list of the peers"})
	peerGet := parser.NewCommand("peer-get", "gets the peer list")

	// Parse input
	err := parser.Parse(os.Args)
	if err != nil {
		// In case of error print error and print usage
		// This can also be done by passing -h or --help flags
		fmt.Print(parser.Usage(err))
		return
	}

	if putWordsCmd.Happened() {
		in := io.Reader(os.Stdin)
		if *fileData != "" {
			f, err := os.Open(*fileData)
			if err != nil {
				log.Fatal("unable to read file", zap.String("filename", *fileData), zap.Error(err))
			}
			defer f.Close()
			in = f
		}
		words, err := readWords(in)
		if err != nil {
			Moan(err)
		}
		batch := wordapi.NewBatch(words)
		if err := wordapi.PutWords(batch, *endpoint); err != nil {
			Moan(err)
		}
		fmt.Printf("queued %d words as %v\n", len(words), batch.Uuid)
	} else if prefixCmd.Happened() {
		r, err := wordapi.GetPrefix(*prefix, *endpoint)
		if err != nil {
			Moan(err)
		}
		fmt.Println(string(MustMarshal(r)))
	} else if wordCmd.Happened() {
		r, err := wordapi.GetWord(*word, *endpoint)
		if err != nil {
			Moan(err)
		}
		fmt.Println(string(MustMarshal(r)))
	} else if statsCmd.Happened() {
		s, err := wordapi.GetStatistics(*endpoint)
		if err != nil {
			Moan(err)
		}
		fmt.Println(string(MustMarshal(s)))
	} else if flushCmd.Happened() {
		if err := wordapi.PostFlush(*endpoint); err != nil {
			Moan(err)
		}
	} else if peerPut.Happened() {
		filedata, err := os.ReadFile(*peerFile)
		if err != nil {
			Moan(err)
		}
		peers := &wordapi.Peerage{}
		if err := json.Unmarshal(filedata, peers); err != nil {
			Moan(err)
		}
		if err := wordapi.PutPeers(peers, *endpoint); err != nil {
			Moan(err)
		}
	} else if peerGet.Happened() {
		peers, err := wordapi.GetPeers(*endpoint)
		if err != nil {
			Moan(err)
		}
		fmt.Println(string(MustMarshal(peers)))
	} else {
		Moan(fmt.Errorf("can't happen"))
	}
}
