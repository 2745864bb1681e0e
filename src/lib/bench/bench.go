// Package bench loads a word list into an index and reports what it cost.
package bench

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gitlab.com/pnathan/trieit/src/lib/index"
	"gitlab.com/pnathan/trieit/src/lib/log"
	"gitlab.com/pnathan/trieit/src/lib/utility"
)

const maxLine = 10 * 1024 * 1024

type Options struct {
	// Latin1 decodes the input as ISO-8859-1 instead of UTF-8.
	Latin1 bool
}

type Report struct {
	Kind      index.Kind
	Words     int
	Skipped   int
	Took      time.Duration
	Allocated uint64
	HeapInUse uint64
	Sys       uint64
	GCs       uint32
	Distinct  int
	// Branches is -1 for indexes that do not count branches.
	Branches int
	Digest   []byte
}

// Run adds every line of r to idx. Lines the normalizer refuses are
// skipped and logged; read failures end the run.
func Run(r io.Reader, kind index.Kind, idx index.WordIndex, opts Options) (*Report, error) {
	if opts.Latin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024), maxLine)

	digest := sha3.NewShake256()
	report := &Report{Kind: kind, Branches: -1}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		_, _ = digest.Write([]byte(line))
		_, _ = digest.Write([]byte{'\n'})

		if err := idx.Add(line); err != nil {
			var invalid *utility.InvalidInputError
			if !errors.As(err, &invalid) {
				return nil, fmt.Errorf("adding line %d: %w", report.Words+report.Skipped+1, err)
			}
			log.Warn("skipping word", zap.Int("line", report.Words+report.Skipped+1), zap.Error(err))
			report.Skipped++
			continue
		}
		report.Words++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading words: %w", err)
	}

	report.Took = time.Since(start)
	runtime.ReadMemStats(&after)
	report.Allocated = after.TotalAlloc - before.TotalAlloc
	report.HeapInUse = after.HeapInuse
	report.Sys = after.Sys
	report.GCs = after.NumGC - before.NumGC

	report.Distinct = idx.WordCount()
	if b, ok := idx.(index.Brancher); ok {
		report.Branches = b.BranchCount()
	}
	report.Digest = make([]byte, 32)
	_, _ = digest.Read(report.Digest)

	log.Info("load finished",
		zap.Stringer("index", kind),
		zap.Int("words", report.Words),
		zap.Int("skipped", report.Skipped),
		zap.Duration("took", report.Took))
	return report, nil
}

type reportLine struct {
	format string
	args   []any
}

// Fprint writes the report with thousands separators.
func (r *Report) Fprint(w io.Writer) error {
	p := message.NewPrinter(language.English)
	lines := []reportLine{
		{"Index: %v\n", []any{r.Kind}},
		{"Words: %d\n", []any{r.Words}},
		{"Skipped: %d\n", []any{r.Skipped}},
		{"Distinct: %d\n", []any{r.Distinct}},
		{"Took: %d ms\n", []any{r.Took.Milliseconds()}},
		{"Allocated: %d kb\n", []any{r.Allocated / 1024}},
		{"Heap in use: %d kb\n", []any{r.HeapInUse / 1024}},
		{"Sys: %d kb\n", []any{r.Sys / 1024}},
		{"GC cycles: %d\n", []any{r.GCs}},
	}
	if r.Branches >= 0 {
		lines = append(lines, reportLine{"Branches: %d\n", []any{r.Branches}})
	}
	for _, l := range lines {
		if _, err := p.Fprintf(w, l.format, l.args...); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Digest: %s\n", hex.EncodeToString(r.Digest))
	return err
}

// Query answers each prefix against idx, one line per prefix.
func Query(w io.Writer, idx index.WordIndex, prefixes []string) error {
	p := message.NewPrinter(language.English)
	for _, q := range prefixes {
		line := fmt.Sprintf("%q prefix=%v word=%v", q, idx.ContainsPrefix(q), idx.IsWord(q))
		if c, ok := idx.(interface{ CountPrefix(string) int }); ok {
			line += p.Sprintf(" count=%d", c.CountPrefix(q))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
