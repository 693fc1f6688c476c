package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"tubenotes/artifacts"
	"tubenotes/config"
	"tubenotes/events"
	"tubenotes/summarizer"
	"tubenotes/translation"
	"tubenotes/youtube"
)

// Wire builds the production collaborators selected in cfg. The returned
// cleanup closes the Kafka producer when one was created.
func Wire(ctx context.Context, cfg config.Config, logger *slog.Logger) (Deps, func(), error) {
	noop := func() {}

	generator, err := summarizer.New(ctx, cfg.Generator)
	if err != nil {
		return Deps{}, noop, fmt.Errorf("failed to initialize generator: %w", err)
	}

	translator, err := translation.New(ctx, cfg.Translator, logger)
	if err != nil {
		return Deps{}, noop, fmt.Errorf("failed to initialize translator: %w", err)
	}

	store, err := artifacts.New(ctx, cfg.Artifacts)
	if err != nil {
		return Deps{}, noop, fmt.Errorf("failed to initialize artifact store: %w", err)
	}

	deps := Deps{
		Transcripts: youtube.NewTranscriptClient(youtube.TranscriptOptions{
			Languages:         cfg.YouTube.Languages,
			RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
			Logger:            logger,
		}),
		Generator:  generator,
		Translator: translator,
		Artifacts:  store,
		Logger:     logger,
	}

	if len(cfg.Kafka.Brokers) == 0 {
		return deps, noop, nil
	}

	publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		logger.Warn("Kafka unavailable, run events disabled", slog.Any("err", err))
		return deps, noop, nil
	}
	deps.Events = publisher
	return deps, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close Kafka producer", slog.Any("err", err))
		}
	}, nil
}
