package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"kwaigrab/internal/server"
)

var (
	flagPort int
	flagAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(c *cobra.Command) {
	c.Flags().IntVarP(&flagPort, "port", "p", 3000, "Port to listen on (env PORT)")
	c.Flags().StringVar(&flagAddr, "addr", "", "Interface to bind (default: all)")
}

func serveRun(cmd *cobra.Command, args []string) error {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newClient()
	srv := server.New(newProvider(client), client)

	log.Info().
		Strs("allowed_hosts", cfg.AllowedHosts).
		Dur("timeout", cfg.Timeout).
		Msg("starting kwaigrab " + Version)

	return srv.Run(ctx, cfg.ListenAddr())
}
