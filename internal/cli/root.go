package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stacklattice/pkg/buildinfo"
	"github.com/matzehuels/stacklattice/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// When the logger is at debug level, pipeline, cache and API events are
// logged through observability hooks.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stacklattice places and routes lattice-surgery blocks",
		Long: `Stacklattice is the placement and routing core of a ZX-diagram to lattice-surgery compiler.
It proposes positions for new blocks, checks which exits stay reachable, and
assembles routed edge paths into a lattice of blocks and pipes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.Logger.GetLevel() <= LogDebug {
				h := &logHooks{logger: c.Logger}
				observability.SetPipelineHooks(h)
				observability.SetCacheHooks(h)
				observability.SetAPIHooks(h)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.assembleCommand())
	root.AddCommand(c.candidatesCommand())
	root.AddCommand(c.exitsCommand())
	root.AddCommand(c.rotateCommand())
	root.AddCommand(c.flipCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
