package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	adapthttp "weightlog/internal/adapter/http"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = LeafCommand{
	Use:   "serve",
	Short: "Serve the JSON API",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "addr", Usage: "listen address (overrides ADDR)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		addrFlag, _ := cmd.Flags().GetString("addr")
		return withSession(func(s *session) error {
			if addrFlag != "" {
				s.cfg.HTTP.Addr = addrFlag
			}
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, s)
		})
	},
}.Build()

// runServe serves the API until ctx is done, then shuts down gracefully.
func runServe(ctx context.Context, s *session) error {
	if _, firstRun, err := s.entries.Load(ctx); err != nil {
		return err
	} else if firstRun {
		log.Printf("no saved entries under %q", s.cfg.Store.Key)
	}

	server := &http.Server{
		Addr:         s.cfg.HTTP.Addr,
		Handler:      adapthttp.New(s.entries, s.charts).Handler(),
		ReadTimeout:  s.cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: s.cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  s.cfg.HTTP.IdleTimeout.Duration(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (store: %s)", server.Addr, s.cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Printf("server stopped")
	return <-errCh
}
