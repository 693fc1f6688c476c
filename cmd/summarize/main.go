package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"tubenotes/artifacts"
	"tubenotes/config"
	"tubenotes/logging"
	"tubenotes/pipeline"
	"tubenotes/types"
	"tubenotes/youtube"
)

func main() {
	videoURL := flag.String("url", "", "YouTube video URL (watch?v= or youtu.be/)")
	difficulty := flag.String("difficulty", "Simple", "Summary difficulty: Simple, Medium or Hard")
	lang := flag.String("lang", types.DefaultLanguage.Name, "Target language name or code")
	out := flag.String("out", types.ArtifactFilename, "Where to write the summary (empty to skip)")
	channel := flag.String("channel", "", "List recent uploads of this channel id instead")
	count := flag.Int("n", 10, "Number of uploads listed with -channel")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *channel != "" {
		if err := listChannel(ctx, *channel, *count); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *videoURL == "" {
		flag.Usage()
		os.Exit(2)
	}

	language, ok := types.LookupLanguage(*lang)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unsupported language %q\n", *lang)
		os.Exit(2)
	}

	if err := summarize(ctx, cfg, logger, types.Request{
		URL:        *videoURL,
		Difficulty: types.ParseDifficulty(*difficulty),
		Language:   language,
	}, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func summarize(ctx context.Context, cfg config.Config, logger *slog.Logger, req types.Request, out string) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout)
	defer cancel()

	deps, cleanup, err := pipeline.Wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	run, err := pipeline.NewRunner(deps).Summarize(ctx, req)
	if err != nil {
		return err
	}

	artifact, _ := run.Artifact()
	fmt.Println(artifact.Body)

	if out == "" {
		return nil
	}
	artifact.Filename = filepath.Base(out)
	path, err := artifacts.WriteFile(filepath.Dir(out), artifact)
	if err != nil {
		return err
	}
	logger.Info("summary written", slog.String("path", path), slog.String("run_id", run.ID()))
	return nil
}

func listChannel(ctx context.Context, channelID string, count int) error {
	feed := youtube.NewFeedClient(&http.Client{Timeout: 15 * time.Second}, "")
	entries, err := feed.Latest(ctx, channelID, count)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %s\n", e.Published, e.URL, e.Title)
	}
	return nil
}
