package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tubenotes/config"
	"tubenotes/events"
	"tubenotes/logging"
	"tubenotes/types"
)

func main() {
	groupID := flag.String("group", "tubenotes-runlog", "Kafka consumer group id")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Level)

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Error("KAFKA_BOOTSTRAP_SERVERS is not set")
		os.Exit(1)
	}

	consumer, err := events.NewConsumer(events.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: *groupID,
		Logger:  logger,
		Handler: func(_ context.Context, ev types.RunEvent) error {
			logger.Info("run finished",
				slog.String("run_id", ev.RunID),
				slog.String("video_id", string(ev.VideoID)),
				slog.String("state", string(ev.State)),
				slog.String("language", ev.Language),
				slog.Int("summary_chars", ev.SummaryChars),
				slog.String("error", ev.Error))
			return nil
		},
	})
	if err != nil {
		logger.Error("failed to create Kafka consumer", slog.Any("err", err))
		os.Exit(1)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("consuming run events", slog.String("topic", cfg.Kafka.Topic), slog.String("group", *groupID))
	if err := consumer.Run(ctx); err != nil {
		logger.Error("consumer stopped", slog.Any("err", err))
	}
}
