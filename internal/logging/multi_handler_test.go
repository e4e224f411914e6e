package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandlerFansOutRecords(t *testing.T) {
	t.Parallel()

	var text, jsonOut bytes.Buffer
	logger := slog.New(MultiHandler(
		slog.NewTextHandler(&text, nil),
		slog.NewJSONHandler(&jsonOut, nil),
	))

	logger.Info("catalog resolved", "source", "detail-api")

	if !strings.Contains(text.String(), "catalog resolved") {
		t.Fatalf("text handler missed record: %q", text.String())
	}
	if !strings.Contains(jsonOut.String(), `"source":"detail-api"`) {
		t.Fatalf("json handler missed record: %q", jsonOut.String())
	}
}

func TestMultiHandlerRespectsPerHandlerLevels(t *testing.T) {
	t.Parallel()

	var verbose, quiet bytes.Buffer
	logger := slog.New(MultiHandler(
		slog.NewTextHandler(&verbose, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelWarn}),
	))

	logger.Debug("cache miss")

	if !strings.Contains(verbose.String(), "cache miss") {
		t.Fatalf("debug handler missed record: %q", verbose.String())
	}
	if quiet.Len() != 0 {
		t.Fatalf("warn handler should drop debug records, got %q", quiet.String())
	}
}

func TestMultiHandlerWithNoHandlersDiscards(t *testing.T) {
	t.Parallel()

	logger := slog.New(MultiHandler())
	logger.Info("dropped")
}

func TestWithLoggerRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx, nil).Info("scoped")

	if !strings.Contains(buf.String(), "scoped") {
		t.Fatalf("context logger missed record: %q", buf.String())
	}
}

func TestFromContextFallsBack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fallback := slog.New(slog.NewTextHandler(&buf, nil))

	FromContext(context.Background(), fallback).Info("fallback")

	if !strings.Contains(buf.String(), "fallback") {
		t.Fatalf("fallback logger missed record: %q", buf.String())
	}

	// No logger anywhere must still be safe to use.
	FromContext(context.Background(), nil).Info("noop")
}
