package metrics

import (
	"context"
	"net/http"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/xerrors"
)

// Handler returns an http.Handler serving every registered view in the
// prometheus text format, with metric names prefixed by namespace. Go runtime
// and process collectors are registered alongside.
func Handler(namespace string) (http.Handler, error) {
	registry := prom.NewRegistry()
	if err := registry.Register(prom.NewGoCollector()); err != nil {
		return nil, xerrors.Errorf("registering go collector: %w", err)
	}
	if err := registry.Register(prom.NewProcessCollector(prom.ProcessCollectorOpts{})); err != nil {
		return nil, xerrors.Errorf("registering process collector: %w", err)
	}

	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: namespace,
		Registry:  registry,
		OnError: func(err error) {
			log.Errorw("prometheus exporter", "error", err)
		},
	})
	if err != nil {
		return nil, xerrors.Errorf("creating prometheus exporter: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", pe)
	return mux, nil
}

// Serve serves h on addr until ctx is done.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Infow("serving metrics", "address", addr)

	select {
	case err := <-errCh:
		return xerrors.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return xerrors.Errorf("stopping metrics server: %w", err)
		}
		return nil
	}
}
