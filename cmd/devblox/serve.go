package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devblox/relay/internal/server"
)

// ServeCmd creates the serve command (explicit alias for the default run mode)
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the relay server",
		Run: func(cmd *cobra.Command, args []string) {
			RunServer()
		},
	}
}

// RunServer starts the relay server and blocks until SIGINT/SIGTERM.
func RunServer() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal: %v - shutting down...\n", sig)
		cancel()
	}()

	c := *ServerConfig
	if portFlag > 0 {
		c.Port = portFlag
	}

	if err := server.Run(ctx, c, server.ServerOptions{Quiet: quiet}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
