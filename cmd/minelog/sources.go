package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSourcesCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the log files a search would read",
		Long: `List the archives and the live log in the order a search visits them.

Examples:
  minelog sources --format pretty
  minelog sources -d ./logs | jq -r .path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			s, err := openSession(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sources, err := s.Sources()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, src := range sources {
				if err := OutputSource(format, src, out); err != nil {
					return fmt.Errorf("output error: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	return cmd
}
