// Package cmd wires the CLI commands of the replay tool.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/courierlab/dispatchsim/app"
	"github.com/courierlab/dispatchsim/config"
	"github.com/courierlab/dispatchsim/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "dispatchsim",
	Short: "Replay historical dispatch cycles against an assignment strategy",
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
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	totals, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"cycles=%d orders=%d proposed=%d accepted=%d rejected=%d matches=%d total_cost=%.3f\n",
		totals.Cycles, totals.Orders, totals.Proposed, totals.Accepted,
		totals.Rejected, totals.Matches, totals.TotalCost)
	return nil
}
