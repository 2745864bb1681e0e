package wordnode

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"gitlab.com/pnathan/trieit/src/lib/log"
)

// Serve runs the API on l and the processor until ctx ends or the server
// fails. It returns only after the server has shut down and the processor
// has made its last flush.
func (n *Node) Serve(ctx context.Context, l net.Listener, interval time.Duration) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	srv := &http.Server{
		Handler:      n.Handler(),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	processed := make(chan struct{})
	go func() {
		defer close(processed)
		if err := n.Process(ctx, interval); !errors.Is(err, context.Canceled) {
			log.Error("processor stopped", zap.Error(err))
		}
	}()

	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(l)
	}()

	var err error
	select {
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := srv.Shutdown(shutdown); serr != nil {
			log.Warn("shutdown", zap.Error(serr))
		}
		if serr := <-served; !errors.Is(serr, http.ErrServerClosed) {
			err = serr
		}
	case err = <-served:
	}

	stop()
	<-processed
	return err
}
