package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/halovoc/internal/config"
	"github.com/example/halovoc/internal/notify"
	"github.com/example/halovoc/internal/scheduler"
)

// newServeCommand runs the review-reminder scheduler until interrupted.
func newServeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daily review reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
				return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set")
			}
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.close()

			notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
			if err != nil {
				return err
			}
			sched := scheduler.New(notifier, a.words, cfg.ReminderStartHour, cfg.ReminderEndHour)
			sched.Start()
			defer sched.Stop()
			slog.Info("reminder scheduler started", "startHour", cfg.ReminderStartHour, "endHour", cfg.ReminderEndHour)

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			sig := <-sigChan
			slog.Info("shutting down", "signal", sig.String())
			return nil
		},
	}
}
