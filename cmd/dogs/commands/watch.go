package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/events"
)

func newWatchCommand() *cobra.Command {
	var fromGroup bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print dog change events from Kafka until interrupted",
		Long: `watch tails the configured change topic (kafka.topic) and prints each
dog.registered, dog.updated and dog.table.dropped event.

By default it starts at the newest offset. With --group it joins the
consumer group kafka.group_id and resumes from the committed offset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.KafkaConfig.Enabled() {
				return fmt.Errorf("no kafka brokers configured (set DOGS_KAFKA_BROKERS)")
			}

			groupID := ""
			if fromGroup {
				groupID = cfg.KafkaConfig.GroupID
			}
			consumer := events.NewDogEventConsumer(cfg.KafkaConfig.Brokers, groupID, cfg.KafkaConfig.Topic, log)
			defer func() { _ = consumer.Close() }()

			log.Info("watching dog events", zap.String("topic", cfg.KafkaConfig.Topic))
			err = consumer.Start(cmd.Context(), func(_ context.Context, ce events.CloudEvent) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					ce.Time.Format(time.RFC3339), ce.Type, string(ce.Data))
				return nil
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&fromGroup, "group", false, "consume as part of kafka.group_id")
	return cmd
}
