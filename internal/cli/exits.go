package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stacklattice/pkg/lattice"
	"github.com/matzehuels/stacklattice/pkg/lattice/placement"
	"github.com/matzehuels/stacklattice/pkg/pipeline"
)

// exitsCommand creates the exits command.
func (c *CLI) exitsCommand() *cobra.Command {
	var (
		at, kind, occupied string
		toward             string
		beamLength         int
		jsonOut            bool
	)

	cmd := &cobra.Command{
		Use:   "exits",
		Short: "Count the unobstructed exits of a block or pipe",
		Long: `Exits checks every face of the element at --at that its kind allows leaving
through, and reports the faces whose beam does not run into an occupied cell.

With --toward, it only reports whether the face towards that position is an
exit of the kind, without looking at occupied cells.`,
		Example: `  stacklattice exits --at 0,0,0 --kind zzx --occupied "5,0,0"
  stacklattice exits --at 0,0,0 --kind zxo --toward 0,0,3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := parseCoord(at)
			if err != nil {
				return err
			}
			if toward != "" {
				return faceIsExit(cmd, node, kind, toward, jsonOut)
			}
			k, err := lattice.ParseKind(kind)
			if err != nil {
				return err
			}
			cells, err := parseCoords(occupied)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			res, err := runner.Exits(pipeline.ExitsRequest{At: node, Kind: k, Occupied: cells},
				pipeline.Options{BeamLength: beamLength})
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			printSuccess("%s at %s has %s unobstructed exits", k, node, StyleNumber.Render(fmt.Sprint(res.Count)))
			for _, b := range res.Beams {
				if len(b) == 0 {
					continue
				}
				printDetail("%s → %s (%d cells)", b[0], b[len(b)-1], len(b))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "element position x,y,z (required)")
	cmd.Flags().StringVar(&kind, "kind", "", "element kind, e.g. zzx or ozxh (required)")
	cmd.Flags().StringVar(&toward, "toward", "", "only classify the face towards x,y,z")
	cmd.Flags().StringVar(&occupied, "occupied", "", "occupied cells as x,y,z;x,y,z;...")
	cmd.Flags().IntVar(&beamLength, "beam-length", pipeline.DefaultBeamLength, "cells per exit beam")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("at")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)

	return cmd
}

// faceIsExit prints whether the face of the element at node facing the
// position in toward is an exit of kind.
func faceIsExit(cmd *cobra.Command, node lattice.Coord, kind, toward string, jsonOut bool) error {
	dst, err := parseCoord(toward)
	if err != nil {
		return err
	}
	ok, err := placement.IsExitName(node, kind, dst)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return json.NewEncoder(out).Encode(map[string]bool{"exit": ok})
	}
	if ok {
		fmt.Fprintf(out, "%s at %s exits towards %s\n", kind, node, dst)
	} else {
		fmt.Fprintf(out, "%s at %s has no exit towards %s\n", kind, node, dst)
	}
	return nil
}
