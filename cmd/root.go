package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridsteel/steelflex/app"
	"github.com/gridsteel/steelflex/config"
	"github.com/gridsteel/steelflex/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "steelflex",
	Short: "Flexible steel plant scheduling service",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	runID, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	logger.New("main").Infof("finished run %s", runID)
	return nil
}
