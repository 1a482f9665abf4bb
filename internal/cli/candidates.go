package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stacklattice/pkg/lattice"
	"github.com/matzehuels/stacklattice/pkg/lattice/placement"
	"github.com/matzehuels/stacklattice/pkg/pipeline"
)

// candidatesOpts holds the command-line flags for the candidates command.
type candidatesOpts struct {
	from        string
	step        int
	occupied    string
	kind        string // block kind to place; enables the exits column
	seed        uint64
	maxAttempts int
	targetCount int
	beamLength  int
	config      string
	pick        bool
	jsonOut     bool
	cache       cacheFlags
}

// candidatesCommand creates the candidates command.
func (c *CLI) candidatesCommand() *cobra.Command {
	var opts candidatesOpts

	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Propose positions for the next block",
		Long: `Candidates lists positions at exactly --step grid units from --from that are
not occupied. Steps of 3, 6 and 9 are enumerated exhaustively; longer steps are
sampled with a seeded random search.

With --kind, each candidate also shows how many exits a block of that kind
would have there. With --pick, an interactive list lets you choose one.`,
		Example: `  stacklattice candidates --from 0,0,0 --step 3 --occupied "3,0,0"
  stacklattice candidates --from 0,0,0 --step 15 --seed 7 --kind zzx --pick`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCandidates(cmd.Context(), cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "source position x,y,z (required)")
	cmd.Flags().IntVar(&opts.step, "step", 0, "Manhattan distance in grid units, a positive multiple of 3 (required)")
	cmd.Flags().StringVar(&opts.occupied, "occupied", "", "occupied cells as x,y,z;x,y,z;...")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "kind of the block to place, e.g. zzx")
	cmd.Flags().Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "random seed for long moves")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", pipeline.DefaultMaxAttempts, "random splits tried for long moves")
	cmd.Flags().IntVar(&opts.targetCount, "target-count", pipeline.DefaultTargetCount, "stop long-move search after this many candidates")
	cmd.Flags().IntVar(&opts.beamLength, "beam-length", pipeline.DefaultBeamLength, "cells per exit beam")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML options file")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose a candidate interactively")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	addCacheFlags(cmd, &opts.cache)
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("step")
	cmd.MarkFlagsMutuallyExclusive("pick", "json")
	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)

	return cmd
}

func (c *CLI) runCandidates(ctx context.Context, cmd *cobra.Command, o *candidatesOpts) error {
	from, err := parseCoord(o.from)
	if err != nil {
		return err
	}
	occupied, err := parseCoords(o.occupied)
	if err != nil {
		return err
	}
	var kind lattice.Kind
	if o.kind != "" {
		if kind, err = lattice.ParseKind(o.kind); err != nil {
			return err
		}
	}

	opts, err := loadOptions(o.config)
	if err != nil {
		return err
	}
	applyIntFlag(cmd, "seed", &opts.Seed, o.seed)
	applyIntFlag(cmd, "max-attempts", &opts.MaxAttempts, o.maxAttempts)
	applyIntFlag(cmd, "target-count", &opts.TargetCount, o.targetCount)
	applyIntFlag(cmd, "beam-length", &opts.BeamLength, o.beamLength)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, o.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Search(ctx, pipeline.SearchRequest{From: from, Step: o.step, Occupied: occupied}, opts)
	if err != nil {
		return err
	}

	if o.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	rows := candidateRows(res.Candidates, kind, lattice.NewOccupiedSet(occupied...), opts.BeamLength)
	if len(rows) == 0 {
		printWarning("No free positions %d units from %s", o.step, from)
		return nil
	}

	if !o.pick {
		printInfo("%d candidates from %s (step %d, %d attempts)", len(rows), from, o.step, res.Attempts)
		fmt.Println(candidateTable(rows, -1, 0, len(rows)))
		return nil
	}

	final, err := tea.NewProgram(NewCandidateListModel(rows), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	m, ok := final.(CandidateListModel)
	if !ok || m.Selected == nil {
		printDetail("No selection made")
		return nil
	}
	printSuccess("Selected %s", StyleHighlight.Render(m.Selected.Coord.String()))
	if m.Selected.Exits >= 0 {
		printKeyValue("exits", fmt.Sprint(m.Selected.Exits))
	}
	return nil
}

// candidateRows pairs each candidate with the exit count a block of kind
// would have there. The exits column is omitted when kind is zero.
func candidateRows(candidates []lattice.Coord, kind lattice.Kind, occupied *lattice.OccupiedSet, beamLength int) []candidateRow {
	rows := make([]candidateRow, len(candidates))
	for i, cand := range candidates {
		rows[i] = candidateRow{Coord: cand, Exits: -1}
		if !kind.IsZero() {
			rows[i].Exits, _ = placement.CheckForExits(cand, kind, occupied, nil, beamLength)
		}
	}
	return rows
}

// applyIntFlag copies a flag value over a config value when the flag was
// set explicitly or the config left it empty.
func applyIntFlag[T int | uint64](cmd *cobra.Command, name string, dst *T, v T) {
	if cmd.Flags().Changed(name) || *dst == 0 {
		*dst = v
	}
}
