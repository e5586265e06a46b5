package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"carecircle/internal/config"
	"carecircle/internal/logger"

	"go.uber.org/zap"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:   "carecircle",
		Short: "carecircle — caregiving coordination backend",
		Long:  "carecircle stores memories, tasks, check-ins, and alerts for care recipients and serves them to caregivers and family through a REST API.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		seedCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	return logger.New(cfg.Log.Level, cfg.Log.Format, "carecircle")
}
