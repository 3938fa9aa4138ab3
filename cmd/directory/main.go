// Command directory serves a local Onionoo details document so the client
// can be exercised without reaching the public network.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ikedadada/go-onionoo/internal/logging"
)

// detailsStorage holds the raw document; it is served byte for byte.
type detailsStorage struct {
	body []byte
}

func loadDetails(path string) (detailsStorage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return detailsStorage{}, err
	}
	var probe struct {
		Relays json.RawMessage `json:"relays"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return detailsStorage{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(probe.Relays) == 0 {
		return detailsStorage{}, fmt.Errorf("parse %s: missing relays field", path)
	}
	return detailsStorage{body: b}, nil
}

func newMux(d detailsStorage, log logrus.FieldLogger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/details", func(w http.ResponseWriter, r *http.Request) {
		entry := log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": r.Header.Get("X-Request-ID"),
		})
		entry.Info("request")
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			entry.WithField("status", http.StatusMethodNotAllowed).Info("response")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(d.body)
		entry.WithField("status", http.StatusOK).Info("response")
	})
	return mux
}

func newRootCmd() *cobra.Command {
	var (
		listen   string
		file     string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:          "directory",
		Short:        "Serve an Onionoo details document at /details",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(cmd.ErrOrStderr(), logLevel, logging.FormatText)
			if err != nil {
				return err
			}
			storage, err := loadDetails(file)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              listen,
				Handler:           newMux(storage, log),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return serve(cmd.Context(), srv, log)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8081", "listen address")
	cmd.Flags().StringVar(&file, "file", "details.json", "details document to serve")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	return cmd
}

func serve(ctx context.Context, srv *http.Server, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.WithField("addr", srv.Addr).Info("directory server listening")

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			log.WithError(err).Warn("graceful shutdown failed")
			_ = srv.Close()
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
