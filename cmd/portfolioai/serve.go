package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/hrygo/portfolioai/ai/session"
	"github.com/hrygo/portfolioai/internal/profile"
	"github.com/hrygo/portfolioai/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and chat page",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	prof, err := loadProfile()
	if err != nil {
		return err
	}

	// Trigger graceful shutdown on SIGINT or SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), terminationSignals...)
	defer stop()

	a, err := newApp(ctx, prof, true)
	if err != nil {
		return err
	}
	a.warmup()

	sessions := session.NewManager(a.kb, a.provider(),
		session.WithSessionConfig(a.sessionConfig()),
		session.WithTurnRecorder(a.metrics),
		session.WithActiveGauge(a.metrics),
	)
	s, err := server.NewServer(ctx, prof, server.Dependencies{
		Registry: a.registry,
		Sessions: sessions,
		Metrics:  a.metrics,
	})
	if err != nil {
		return err
	}
	if err := s.Start(ctx); err != nil {
		return err
	}
	printGreetings(cmd.OutOrStdout(), prof, s.Addr())

	<-ctx.Done()
	s.Shutdown(context.Background())
	return nil
}

func printGreetings(w io.Writer, prof *profile.Profile, addr string) {
	fmt.Fprintf(w, "portfolioai %s started successfully!\n", prof.Version)
	if prof.IsDev() {
		fmt.Fprintf(w, "Development mode is enabled\n")
	}
	fmt.Fprintf(w, "Data directory: %s\n", prof.Data)
	if prof.Rules != "" {
		fmt.Fprintf(w, "Routing rules: %s\n", prof.Rules)
	}
	fmt.Fprintf(w, "Model: %s (%s)\n", prof.LLMModel, prof.LLMProvider)
	fmt.Fprintf(w, "Chat page: http://%s/\n", addr)
	fmt.Fprintf(w, "Metrics: http://%s/metrics\n", addr)
}
