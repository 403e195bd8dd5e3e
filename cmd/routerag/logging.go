package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileMetadataKey = "logFile"

func parseLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
}

func setupLogger(c *cli.Context, stderr io.Writer) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	out := stderr
	if path := c.String("log-file"); path != "" {
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			Compress:   true,
		}
		if c.App.Metadata == nil {
			c.App.Metadata = map[string]any{}
		}
		c.App.Metadata[logFileMetadataKey] = file
		out = file
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func closeLogger(c *cli.Context) error {
	if file, ok := c.App.Metadata[logFileMetadataKey].(*lumberjack.Logger); ok {
		return file.Close()
	}
	return nil
}
