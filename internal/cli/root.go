// Package cli wires the stackforge commands: flag parsing, interactive
// prompting and the scaffold invocation. All generation logic lives in
// the internal packages; this package only collects a RawConfig.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the stackforge CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stackforge",
		Short: "Scaffold a web backend from a resolved stack configuration",
		Long: `stackforge resolves a set of stack choices (frontends, database
engine, host, ORM, auth, plugins, code quality tooling) into a consistent
generated project: server entrypoint, schema, handlers, dependency
manifest, env file and container definition.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if opts.Verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewNewCommand(opts))

	return cmd
}
