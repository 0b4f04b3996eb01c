package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/minelog/minelog-go/pkg/minelog"
)

func newMatchesCmd(g *globalOptions) *cobra.Command {
	var (
		pattern string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Print raw matches with their source and offsets",
		Long: `Print every match of a pattern together with the file it came from,
its byte offsets in the decompressed content and its named groups.

Matches are output as JSON Lines by default, which makes it easy to
process them with tools like jq.

Examples:
  # Every error with the archive it was found in
  minelog matches -p '^\[[0-9:]+\] \[[^]]+/ERROR\]: (?P<msg>.*)$'

  # Human-readable output
  minelog matches -p 'Connecting to (?P<host>[\w.]+)' --format pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			pat, err := minelog.Compile([]byte(pattern))
			if err != nil {
				return err
			}
			s, err := openSession(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			names := pat.SubexpNames()
			out := bufio.NewWriter(cmd.OutOrStdout())
			for m, err := range s.Matches(ctx, pat) {
				if err != nil {
					out.Flush()
					return interrupted(err)
				}
				if err := OutputMatch(format, m, names, out); err != nil {
					return fmt.Errorf("output error: %w", err)
				}
			}
			return out.Flush()
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", defaultPattern,
		"Regular expression, ^ and $ match at line boundaries")
	cmd.Flags().StringVarP(&format, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	return cmd
}
