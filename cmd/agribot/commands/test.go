package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayti/agribot/internal/bucket"
	"github.com/dayti/agribot/internal/chat"
	"github.com/dayti/agribot/internal/logtail"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Exercise one part of the bot in isolation",
}

var testTeleportCmd = &cobra.Command{
	Use:   "teleport",
	Short: "Connect and teleport through every station without touching them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			return a.driver.RunTeleportCircuit(ctx)
		})
	},
}

var testStationCmd = &cobra.Command{
	Use:   "station <name>",
	Short: "Process a single named station end to end",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			return a.driver.RunSingle(ctx, args[0])
		})
	},
}

var testMorningCmd = &cobra.Command{
	Use:   "morning",
	Short: "Force the drop-window transition (discard surplus buckets)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			return a.driver.RunTransition(ctx, bucket.ModeDrop)
		})
	},
}

var testAfternoonCmd = &cobra.Command{
	Use:   "afternoon",
	Short: "Force the retrieve transition (take a bucket stack from the chest)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			return a.driver.RunTransition(ctx, bucket.ModeRetrieve)
		})
	},
}

var testChatDuration time.Duration

var testChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Tail the game log and print parsed chat messages",
	Long:  "Watches the log without sending any input, printing every line the chat parser accepts. Useful for checking the log path and the parsing of a server's chat layout.",
	RunE:  runTestChat,
}

func init() {
	testChatCmd.Flags().DurationVar(&testChatDuration, "duration", 30*time.Second, "how long to watch the log")

	testCmd.AddCommand(testTeleportCmd, testStationCmd, testMorningCmd, testAfternoonCmd, testChatCmd)
	rootCmd.AddCommand(testCmd)
}

// withApp runs an input-sending operation with the standard signal handling
// and startup countdown.
func withApp(op func(ctx context.Context, a *app) error) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := waitStartup(ctx, a); err != nil {
		return nil
	}
	if err := op(ctx, a); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runTestChat(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, testChatDuration)
	defer cancel()

	tailer := logtail.NewTailer(a.cfg.LogPath)
	if err := tailer.SeekEnd(); err != nil {
		a.log.Warn("failed to seek log end", "error", err)
	}
	parser := chat.NewParser()

	fmt.Printf("watching %s for %s...\n", a.cfg.LogPath, testChatDuration)
	ticker := time.NewTicker(logtail.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			lines, _, err := tailer.ReadNewLines()
			if err != nil {
				a.log.Warn("log read failed", "error", err)
				continue
			}
			for _, line := range lines {
				if msg, ok := parser.Parse(line); ok {
					fmt.Printf("%s: %s\n", msg.Sender, msg.Body)
				}
			}
		}
	}
}
