package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/graph"
	"github.com/matzehuels/stacklattice/pkg/pipeline"
)

// assembleOpts holds the command-line flags for the assemble command.
type assembleOpts struct {
	output   string // output file (single format) or base path
	formats  string // comma-separated output formats
	config   string // TOML options file
	detailed bool   // coordinates in diagram labels
	refresh  bool   // ignore cached results
	cache    cacheFlags
}

// assembleCommand creates the assemble command.
func (c *CLI) assembleCommand() *cobra.Command {
	var opts assembleOpts

	cmd := &cobra.Command{
		Use:   "assemble [paths.json]",
		Short: "Assemble routed edge paths into a lattice",
		Long: `Assemble reads a JSON array of routed edge paths, assigns ids to every
intermediate block, and writes the resulting lattice of nodes and edges.

Each edge path alternates blocks and pipes:

  [{"src_tgt_ids": [0, 1], "path_nodes": [
      {"coord": [0, 0, 0], "kind": "zzx"},
      {"coord": [1, 0, 0], "kind": "ozx"},
      {"coord": [3, 0, 0], "kind": "zzx"}]}]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAssemble(cmd.Context(), args[0], cmd.Flags().Changed("format"), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json (default), dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML options file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show block coordinates in diagrams")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	addCacheFlags(cmd, &opts.cache)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func addCacheFlags(cmd *cobra.Command, f *cacheFlags) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "", "use a Redis cache (redis://host:port/db)")
	cmd.Flags().StringVar(&f.prefix, "cache-prefix", "", "namespace cache keys, e.g. per deployment sharing one Redis")
}

func (c *CLI) runAssemble(ctx context.Context, input string, formatSet bool, o *assembleOpts) error {
	if err := errors.ValidatePath(input); err != nil {
		return err
	}

	opts, err := loadOptions(o.config)
	if err != nil {
		return err
	}
	if formatSet || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(o.formats)
	}
	opts.Detailed = opts.Detailed || o.detailed
	opts.Refresh = o.refresh
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if o.output == "-" && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format, got %d", len(opts.Formats))
	}

	paths, err := graph.ReadEdgePathsFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, o.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, paths, opts)
	if err != nil {
		return err
	}

	if o.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	written, err := writeArtifacts(result.Artifacts, opts.Formats, o.output, input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d artifacts", len(written)))

	printSuccess("Assembled lattice %s", StyleHighlight.Render(result.RunID))
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.AssembleHit)
	for _, p := range written {
		printFile(p)
	}
	if !slices.Contains(opts.Formats, pipeline.FormatSVG) {
		printNextStep("Draw it", fmt.Sprintf("%s assemble %s -f svg", appName, input))
	}
	return nil
}

// writeArtifacts writes each format to disk and returns the paths in
// format order. A single format with an explicit output is written to
// exactly that path; otherwise files are named base.<format>.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	if len(formats) == 1 && output != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		return []string{output}, nil
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input)) + ".lattice"
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var written []string
	for _, f := range formats {
		path := base + "." + f
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
