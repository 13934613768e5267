package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"trip-suggester/internal/server"
	"trip-suggester/worker"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveNoWarm bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the cache warmer",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if cfg.App.LogLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := &server.Server{Suggester: a.aggregator}
		ws := []worker.Worker{
			&worker.HTTPServer{Addr: cfg.Server.Addr, Handler: srv.Router()},
		}
		if !serveNoWarm && len(cfg.Warmer.Queries) > 0 {
			slog.Info("starting cache warmer", "queries", cfg.Warmer.Queries, "schedule", cfg.Warmer.Schedule)
			ws = append(ws, &worker.Warmer{
				Aggregator: a.aggregator,
				Cache:      a.cache,
				Schedule:   cfg.Warmer.Schedule,
				Queries:    cfg.Warmer.Queries,
			})
		}

		mgr := worker.NewManager(ws...)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveNoWarm, "no-warm", false, "do not start the cache warmer")
	rootCmd.AddCommand(serveCmd)
}
