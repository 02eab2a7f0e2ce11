// Command linkctl is a command-line client for the content-analytics API.
//
//	linkctl login -u me -p secret
//	linkctl classify https://youtu.be/abc123
//	linkctl ingest https://www.instagram.com/reel/Cx9/
//	linkctl platforms --stats
//	linkctl contents --limit 10
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	level := log.InfoLevel
	if os.Getenv("LINKCTL_DEBUG") != "" {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "linkctl",
	})
	logger := slog.New(handler)

	runner := NewRunner(RunnerOpts{Logger: logger, Output: os.Stdout})
	if err := runner.App().Run(context.Background(), os.Args); err != nil {
		handler.Error(err.Error())
		os.Exit(1)
	}
}
