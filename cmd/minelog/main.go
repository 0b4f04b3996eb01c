// Command minelog searches Minecraft client log directories.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// globalOptions holds the flags shared by every subcommand.
type globalOptions struct {
	directory string
	encoding  string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	s := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "minelog",
		Short: "Search Minecraft client logs",
		Long: `Search every Minecraft client log at once.

The log directory holds latest.log and the rotated archives
YYYY-MM-DD-N.log.gz. Archives are decompressed on the fly and visited
in name order, followed by latest.log. Each match is printed on its own
line.

The directory is taken from --directory, then the MINELOG_LOGDIR
environment variable, then the default game directory for this OS.

Examples:
  # Print every line of every log
  minelog

  # Chat messages as "player: message"
  minelog -p '^\[[0-9:]+\] \[Server thread/INFO\]: <(\w+)> (.*)$' -r '\1: \2'

  # Players that ever joined, sorted and deduplicated
  minelog -p '(\w+) joined the game' -r '\1' -u -s

  # Run a saved query
  minelog --queries queries.yaml -q chat`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, g, s)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.directory, "directory", "d", "",
		"Log directory (auto-detected if not specified)")
	pf.StringVarP(&g.encoding, "encoding", "e", "utf-8",
		"Encoding the logs were written in (utf-8 matches raw bytes)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false,
		"Log progress to stderr")

	s.register(cmd)

	cmd.AddCommand(
		newMatchesCmd(g),
		newSourcesCmd(g),
	)
	return cmd
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
