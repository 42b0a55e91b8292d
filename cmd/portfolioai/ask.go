package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	agent "github.com/hrygo/portfolioai/ai/agents"
	"github.com/hrygo/portfolioai/ai/agents/orchestrator"
)

var traceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

func newAskCmd() *cobra.Command {
	var (
		raw       bool
		showTrace bool
	)
	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Ask one question and print the routed answer",
		Example: `  portfolioai ask --workflow events "Analyze the events by city"
  portfolioai ask --workflow celebrations "What KPIs should we track?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), prof, true)
			if err != nil {
				return err
			}
			o, err := a.registry.New(prof.Workflow)
			if err != nil {
				return err
			}

			res := o.Handle(cmd.Context(), orchestrator.Input{
				Message:   strings.Join(args, " "),
				Knowledge: a.kb,
			})
			if err := printResult(cmd.OutOrStdout(), res, raw, showTrace); err != nil {
				return err
			}
			if res.Failed() {
				return errors.New("the agent could not answer")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal rendering")
	cmd.Flags().BoolVar(&showTrace, "trace", true, "print the agent activity trace")
	return cmd
}

func printResult(w io.Writer, res *agent.Result, raw, showTrace bool) error {
	if showTrace {
		for _, line := range res.Trace {
			fmt.Fprintln(w, traceStyle.Render("› "+line))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s\n\n", res.Agent)

	content := res.Content
	if !raw {
		rendered, err := renderTerminal(content)
		if err != nil {
			return err
		}
		content = rendered
	}
	_, err := fmt.Fprintln(w, content)
	return err
}

func renderTerminal(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
