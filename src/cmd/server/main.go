package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	"gitlab.com/pnathan/trieit/src/lib/config"
	"gitlab.com/pnathan/trieit/src/lib/index"
	"gitlab.com/pnathan/trieit/src/lib/log"
	"gitlab.com/pnathan/trieit/src/lib/wordapi"
	"gitlab.com/pnathan/trieit/src/lib/wordnode"
)

func readPeers(filename string) ([]string, error) {
	log.Info("Peers file provided...reading", zap.String("filename", filename))
	filedata, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading peer file: %w", err)
	}
	peers := &wordapi.Peerage{}
	if err := json.Unmarshal(filedata, peers); err != nil {
		return nil, fmt.Errorf("decoding peer file: %w", err)
	}
	return peers.Peers, nil
}

func main() {
	parser := argparse.NewParser("trieit-server", "serves a word index")

	configFile := parser.String("c", "config", &argparse.Options{Required: false, Help: "yaml config file"})
	host := parser.String("i", "ip", &argparse.Options{Required: false, Help: "ip to bind to"})
	port := parser.Int("p", "port", &argparse.Options{Required: false, Help: "port to bind to"})
	kind := parser.String("x", "index", &argparse.Options{Required: false, Help: "index kind: naive, letters or compressed"})
	peers := parser.String("q", "peers", &argparse.Options{Required: false, Help: "json file with the peers to relay batches to"})
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
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *kind != "" {
		cfg.Server.Index = *kind
	}
	if *peers != "" {
		list, err := readPeers(*peers)
		if err != nil {
			log.Fatal("unable to use peer file", zap.String("filename", *peers), zap.Error(err))
		}
		cfg.Server.Peers = list
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}
	if err := log.Configure(cfg.Log.Development); err != nil {
		log.Fatal("unable to configure logging", zap.Error(err))
	}
	defer log.Sync()

	k, err := index.ParseKind(cfg.Server.Index)
	if err != nil {
		log.Fatal("bad index kind", zap.Error(err))
	}
	node, err := wordnode.New(k, cfg.Server.MaxPool, cfg.Server.Peers)
	if err != nil {
		log.Fatal("unable to build node", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		log.Fatal("unable to listen", zap.String("addr", cfg.Server.Addr()), zap.Error(err))
	}

	log.Info("listening", zap.String("addr", l.Addr().String()), zap.Stringer("index", k), zap.Strings("peers", cfg.Server.Peers))
	if err := node.Serve(ctx, l, cfg.Server.FlushInterval); err != nil {
		log.Fatal("server failure", zap.Error(err))
	}
	log.Info("pool flushed, bye")
}
