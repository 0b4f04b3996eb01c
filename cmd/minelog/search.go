package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/minelog/minelog-go/pkg/minelog"
	"github.com/minelog/minelog-go/pkg/minelog/query"
)

const defaultPattern = `^.*$`

// searchOptions holds the root command's search flags.
type searchOptions struct {
	pattern   string
	repl      string
	unique    bool
	sort      bool
	queryFile string
	queryID   string
}

func (o *searchOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.pattern, "pattern", "p", defaultPattern,
		"Regular expression, ^ and $ match at line boundaries")
	f.StringVarP(&o.repl, "repl", "r", "",
		`Replacement for each match (\1, \g<name>)`)
	f.BoolVarP(&o.unique, "unique", "u", false,
		"Drop repeated results")
	f.BoolVarP(&o.sort, "sort", "s", false,
		"Sort results in byte order")
	f.StringVar(&o.queryFile, "queries", "",
		"YAML file of saved queries")
	f.StringVarP(&o.queryID, "query", "q", "",
		"Id of the saved query to run (requires --queries)")

	cmd.MarkFlagsMutuallyExclusive("pattern", "query")
	cmd.MarkFlagsMutuallyExclusive("repl", "query")
	cmd.MarkFlagsRequiredTogether("queries", "query")
}

// resolve turns the flags into a pattern and search options.
func (o *searchOptions) resolve(cmd *cobra.Command) ([]byte, []minelog.SearchOption, error) {
	var (
		pattern []byte
		opts    []minelog.SearchOption
	)

	if o.queryID != "" {
		qf, err := query.Load(o.queryFile)
		if err != nil {
			return nil, nil, err
		}
		q, ok := qf.Find(o.queryID)
		if !ok {
			return nil, nil, fmt.Errorf("query %q not found in %s", o.queryID, o.queryFile)
		}
		pattern = q.PatternBytes()
		opts = q.SearchOptions()
	} else {
		pattern = []byte(o.pattern)
		if cmd.Flags().Changed("repl") {
			opts = append(opts, minelog.WithReplacement([]byte(o.repl)))
		}
	}

	// Flags can only turn these on, never override a saved query's true.
	if o.unique {
		opts = append(opts, minelog.WithUnique(true))
	}
	if o.sort {
		opts = append(opts, minelog.WithSort(true))
	}
	return pattern, opts, nil
}

func runSearch(cmd *cobra.Command, g *globalOptions, o *searchOptions) error {
	pattern, opts, err := o.resolve(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(g, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := bufio.NewWriter(cmd.OutOrStdout())
	for record, err := range s.Search(ctx, pattern, opts...) {
		if err != nil {
			out.Flush()
			return interrupted(err)
		}
		if err := writeRecord(out, record); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	return nil
}

// writeRecord writes one record followed by a newline.
func writeRecord(out *bufio.Writer, record []byte) error {
	if _, err := out.Write(record); err != nil {
		return err
	}
	return out.WriteByte('\n')
}

// interrupted maps a cancelled search to a clean exit.
func interrupted(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
