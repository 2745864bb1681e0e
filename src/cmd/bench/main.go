package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	"gitlab.com/pnathan/trieit/src/lib/bench"
	"gitlab.com/pnathan/trieit/src/lib/config"
	"gitlab.com/pnathan/trieit/src/lib/index"
	"gitlab.com/pnathan/trieit/src/lib/log"
)

func main() {
	parser := argparse.NewParser("trieit-bench", "loads a word list into an index and reports the cost")

	configFile := parser.String("c", "config", &argparse.Options{Required: false, Help: "yaml config file"})
	kind := parser.String("x", "index", &argparse.Options{Required: false, Help: "index kind:\n" + index.Usage()})
	file := parser.String("f", "file", &argparse.Options{Required: false, Help: "word list, one word per line; stdin if absent"})
	latin1 := parser.Flag("", "latin1", &argparse.Options{Help: "decode the word list as ISO-8859-1"})
	queries := parser.StringList("q", "query", &argparse.Options{Required: false, Help: "prefix to look up after loading; repeatable"})
	// Parse input
	err := parser.Parse(os.Args)
	if err != nil {
		// In case of error print error and print usage
		// This can also be done by passing -h or --help flags
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal("unable to load config", zap.Error(err))
	}
	if *kind != "" {
		cfg.Bench.Index = *kind
	}
	if *latin1 {
		cfg.Bench.Latin1 = true
	}
	if err := log.Configure(cfg.Log.Development); err != nil {
		log.Fatal("unable to configure logging", zap.Error(err))
	}
	defer log.Sync()

	k, err := index.ParseKind(cfg.Bench.Index)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, index.Usage())
		os.Exit(1)
	}
	idx, err := index.New(k)
	if err != nil {
		log.Fatal("unable to build index", zap.Error(err))
	}

	in := io.Reader(os.Stdin)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("unable to open word list", zap.String("filename", *file), zap.Error(err))
		}
		defer f.Close()
		in = f
	}

	report, err := bench.Run(in, k, idx, bench.Options{Latin1: cfg.Bench.Latin1})
	if err != nil {
		log.Fatal("load failed", zap.Error(err))
	}
	if err := report.Fprint(os.Stdout); err != nil {
		log.Fatal("unable to print report", zap.Error(err))
	}
	if err := bench.Query(os.Stdout, idx, *queries); err != nil {
		log.Fatal("unable to print queries", zap.Error(err))
	}
}
