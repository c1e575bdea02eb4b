package main

import (
	"fmt"

	"github.com/karupanerura/refreshing-cache/repository"
	"github.com/karupanerura/refreshing-cache/saver/retrysaver"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSaveCommand(cfg Config) *cobra.Command {
	var (
		items    int
		failures int
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save items through the retrying saver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if items < 0 || failures < 0 {
				return errors.Errorf("items and failures must not be negative: items=%d failures=%d", items, failures)
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg)
			store := newFlakyStore(cfg.SaveDelay, failures)
			repo := &repository.ObservedRepository[string]{
				Repository: store,
				OnError: func(item string, err error) {
					logger.WithFields(log.Fields{
						"item":     item,
						"attempts": store.attemptsOf(item),
					}).WithError(err).Warn("save attempt failed")
				},
			}
			saver := retrysaver.New[string](repo,
				retrysaver.WithMaxAttempts[string](cfg.MaxAttempts),
				retrysaver.WithOnRetry[string](func(attempt int, err error) {
					logger.WithField("next_attempt", attempt+1).Debug("retrying save")
				}),
			)

			names := make([]string, items)
			for i := range names {
				names[i] = fmt.Sprintf("item-%d", i+1)
			}

			err := saver.SaveMulti(cmd.Context(), names)
			var multiErr *retrysaver.MultiError
			if errors.As(err, &multiErr) {
				for i, itemErr := range multiErr.Errors {
					if itemErr != nil {
						logger.WithField("item", names[i]).WithError(itemErr).Error("item was not saved")
					}
				}
			}
			if err != nil {
				return errors.Wrap(err, "error saving items")
			}

			logger.WithFields(log.Fields{
				"items":        items,
				"max_attempts": cfg.MaxAttempts,
			}).Info("all items saved")
			return nil
		},
	}
	cmd.Flags().IntVar(&items, "items", 3, "number of items to save")
	cmd.Flags().IntVar(&failures, "failures", 1, "number of failed attempts per item before it is saved")
	return cmd
}
