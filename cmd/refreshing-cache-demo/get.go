package main

import (
	"context"
	"time"

	"github.com/karupanerura/refreshing-cache/cache/intervalrefresher"
	"github.com/karupanerura/refreshing-cache/cache/singleflightcache"
	"github.com/karupanerura/refreshing-cache/expiration"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newGetCommand(cfg Config) *cobra.Command {
	var (
		rounds   int
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read the cached values from many goroutines at once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rounds < 1 {
				return errors.Errorf("rounds must be at least 1: %d", rounds)
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg)
			query := &slowQuery{delay: cfg.FetchDelay}
			cache := singleflightcache.New[string](query, cfg.CacheDuration,
				singleflightcache.WithExpirationPolicy[string](&expiration.EarlyRefresh{
					Window:      cfg.EarlyRefreshWindow,
					Probability: cfg.EarlyRefreshProbability,
				}),
			)

			if cfg.RefreshInterval > 0 {
				ctx, cancel := context.WithCancel(cmd.Context())
				done := intervalrefresher.New(cache, cfg.RefreshInterval, func(err error) {
					logger.WithError(err).Warn("background refresh failed")
				}).LaunchBackgroundRefresher(ctx)
				defer func() {
					cancel()
					<-done
				}()
				logger.WithField("interval", cfg.RefreshInterval).Debug("background refresher launched")
			}

			for round := 1; round <= rounds; round++ {
				if round > 1 {
					select {
					case <-time.After(interval):
					case <-cmd.Context().Done():
						return cmd.Context().Err()
					}
				}

				start := time.Now()
				var eg errgroup.Group
				var first []string
				for i := range cfg.Concurrency {
					eg.Go(func() error {
						values, err := cache.Get(cmd.Context())
						if err != nil {
							return err
						}
						if i == 0 {
							first = values
						}
						return nil
					})
				}
				if err := eg.Wait(); err != nil {
					return errors.Wrapf(err, "error getting values in round %d", round)
				}

				logger.WithFields(log.Fields{
					"round":   round,
					"readers": cfg.Concurrency,
					"queries": query.queries.Load(),
					"values":  first,
					"elapsed": time.Since(start).Round(time.Millisecond),
				}).Info("round finished")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 1, "number of read rounds")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "pause between read rounds")
	return cmd
}
