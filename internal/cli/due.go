package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/halovoc/internal/config"
	"github.com/example/halovoc/internal/review"
)

// newDueCommand reports how large a review session would be right now.
func newDueCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "Show today's review queue and quota usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.close()

			now := time.Now()
			session, err := review.NewBuilder(a.words, a.quota).Build(cmd.Context(), now)
			if err != nil {
				return err
			}
			stats, err := a.quota.Stats(cmd.Context(), now)
			if err != nil {
				return err
			}
			limits, err := a.quota.Limits(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("queued cards: %d\n", session.Remaining())
			fmt.Printf("today: %d/%d new, %d/%d reviews\n",
				stats.NewUsed, limits.DailyNewLimit,
				stats.ReviewUsed, limits.DailyReviewLimit)
			return nil
		},
	}
}
