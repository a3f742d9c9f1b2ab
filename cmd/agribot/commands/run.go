package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayti/agribot/internal/chat"
	"github.com/dayti/agribot/internal/reply"
	"github.com/dayti/agribot/internal/scheduler"
	"github.com/dayti/agribot/internal/server"
	"github.com/dayti/agribot/internal/worker"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run farming sessions continuously",
	Long:  "Runs sessions back to back with a pause derived from the selected plant's growth time, until interrupted. Also starts the chat auto-reply loop and the status server when configured.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := worker.NewRunner(a.log)
	loop := scheduler.NewLoop(a.cfg, a.driver, nil, a.log)

	if a.cfg.StatusAddr != "" {
		srv := server.NewServer(a.cfg.StatusAddr, statusFunc(a, runner, loop), a.log)
		go func() {
			if err := srv.Start(); err != nil {
				a.log.Error("status server failed", "error", err)
			}
		}()
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(shutCtx)
		}()
	}

	if a.cfg.AutoReply.Enabled {
		svc, err := buildAutoReply(a)
		if err != nil {
			return err
		}
		if svc != nil {
			go func() {
				if err := svc.Run(ctx); err != nil && ctx.Err() == nil {
					a.log.Error("auto-reply stopped", "error", err)
				}
			}()
		}
	}

	if err := waitStartup(ctx, a); err != nil {
		return nil
	}

	if err := runner.Start(ctx, "farming", loop.Run); err != nil {
		return err
	}
	done := runner.Done()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown requested")
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return runner.Stop(stopCtx)
	case <-done:
		return nil
	}
}

// buildAutoReply wires the chat loop, or returns nil when the API key is
// missing.
func buildAutoReply(a *app) (*chat.Service, error) {
	if a.cfg.AutoReply.APIKey == "" {
		a.log.Warn("auto-reply enabled but MISTRAL_API_KEY is not set, skipping")
		return nil, nil
	}
	responder := reply.NewResponder(a.cfg.AutoReply.APIKey, a.cfg.AutoReply.Pseudo, a.log)
	return chat.NewService(a.cfg.AutoReply, a.cfg.LogPath, responder, a.client, a.log)
}

// waitStartup gives the operator time to focus the game window.
func waitStartup(ctx context.Context, a *app) error {
	delay := time.Duration(a.cfg.Delays.StartupDelay) * time.Second
	if delay <= 0 {
		return nil
	}
	a.log.Info("focus the game window", "starting_in", delay.String())
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func statusFunc(a *app, runner *worker.Runner, loop *scheduler.Loop) server.StatusFunc {
	return func() server.Status {
		name, running := runner.Running()
		st := a.machine.State()
		return server.Status{
			Running:    running,
			Task:       name,
			BucketMode: string(st.LastMode),
			BucketSlot: st.Slot,
			FullCount:  st.FullInSlot,
			Stations:   len(a.cfg.Stations),
			PlantType:  a.cfg.PlantSettings.PlantType,
			Pause:      loop.Pause().String(),
		}
	}
}
