package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokstream/internal/config"
	"tokstream/internal/trace"
)

// setupTracing builds the tracer described by cfg and attaches it to cmd's
// context. It returns a cleanup function that flushes and closes it.
func setupTracing(cmd *cobra.Command, cfg config.TraceConfig) (func(), error) {
	level, err := trace.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	format, err := trace.ParseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: cfg.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	root := trace.Begin(tracer, trace.ScopeDriver, "cmd:"+cmd.Name(), 0)
	ctx := trace.WithParent(trace.WithTracer(cmd.Context(), tracer), root.ID())
	cmd.SetContext(ctx)

	cleanup := func() {
		root.End("")
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
