package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dayti/agribot/internal/domain"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run a single farming session and exit",
	RunE:  runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := waitStartup(ctx, a); err != nil {
		return nil
	}

	if err := a.driver.Run(ctx); err != nil {
		if errors.Is(err, domain.ErrMaintenanceWindow) {
			a.log.Warn("maintenance window open, try again after 06:30")
			return nil
		}
		if ctx.Err() != nil {
			a.log.Info("session interrupted")
			return nil
		}
		return err
	}
	return nil
}
