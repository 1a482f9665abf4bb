package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stacklattice/pkg/lattice/symmetry"
)

// rotateCommand creates the rotate command.
func (c *CLI) rotateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rotate <pipe-kind>",
		Short:   "Rotate a pipe kind by swapping its two closed axes",
		Example: "  stacklattice rotate zxo    # xzo\n  stacklattice rotate oxzh   # ozxh",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := symmetry.RotateName(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), k)
			return nil
		},
	}
}

// flipCommand creates the flip command.
func (c *CLI) flipCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "flip <hadamard-pipe-kind>",
		Short:   "Swap the end bases of a Hadamard pipe kind",
		Example: "  stacklattice flip zxoh     # xzoh",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := symmetry.FlipHadamardName(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), k)
			return nil
		},
	}
}
