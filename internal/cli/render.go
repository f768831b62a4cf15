package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

// renderCommand creates the render command: records in, chart files out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr   string
		output       string
		variantsFile string
		pick         bool
		graceDays    int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [data]",
		Short: "Render a skyline chart from work-session records",
		Long: `Render a skyline chart from work-session records.

The data file may be CSV, JSON, Parquet, or SQLite (.db, or
sqlite://path?table=name). Deadlines come from the registry entry named by
--term and --assignment, or chosen interactively with --pick.

By default sessions starting more than 4 days after the due time, and every
session after the first such one, are left out. Use --grace-days to change
the tolerance or --no-window to keep every session.`,
		Example: `  skyline render ws-14475-p4.csv --term "Fall 2016" --assignment assignment3
  skyline render sessions.db --pick --variant skyline-launches -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Data = args[0]
			opts.Formats = parseFormats(formatsStr)
			if cmd.Flags().Changed("grace-days") {
				opts.GraceDays = &graceDays
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if pick {
				table, err := loadRegistry(opts.Registry)
				if err != nil {
					return err
				}
				key, err := pickDeadline(table)
				if err != nil {
					return err
				}
				opts.Term, opts.Assignment = key.Term, key.Assignment
				opts.Deadlines = table
			}
			variants, err := c.loadVariants(variantsFile)
			if err != nil {
				return err
			}
			opts.Variants = variants
			return c.runRender(cmd.Context(), opts, output)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")

	// Deadline flags
	cmd.Flags().StringVarP(&opts.Term, "term", "t", "", `term, e.g. "Fall 2016" or fall2016`)
	cmd.Flags().StringVarP(&opts.Assignment, "assignment", "a", "", "assignment, e.g. assignment3")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose term and assignment interactively")
	cmd.Flags().StringVar(&opts.Registry, registryFlag, "", "registry file merged over the built-in table (.json or .toml)")

	// Source flags
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input format: csv, json, parquet, sqlite (default: from extension)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "SQLite table holding the sessions")

	// Chart flags
	cmd.Flags().StringVar(&opts.Variant, "variant", pipeline.DefaultVariant, "chart variant (see 'skyline variants')")
	cmd.Flags().StringVar(&variantsFile, "variants", "", "TOML file with user variants")
	cmd.Flags().IntVar(&graceDays, "grace-days", 0, "days after the due time a session may start (default from variant)")
	cmd.Flags().BoolVar(&opts.NoWindow, "no-window", false, "keep sessions long after the due time")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width (default from variant)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height (default from variant)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title (default derived from the records)")
	cmd.Flags().BoolVar(&opts.NoTitle, "no-title", false, "omit the chart title")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")

	_ = cmd.RegisterFlagCompletionFunc("term", completeTerms)
	_ = cmd.RegisterFlagCompletionFunc("assignment", completeAssignments)
	_ = cmd.RegisterFlagCompletionFunc("variant", c.completeVariants)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	if opts.Term == "" || opts.Assignment == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--term and --assignment are required (or use --pick)")
	}
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Data))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Data, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleValue.Render(result.Plan.Variant.Name))
	printKeyValue("Deadlines", opts.Term+" / "+opts.Assignment)
	switch {
	case result.Plan.Title != "":
		printDetail("%s", result.Plan.Title)
	case !opts.NoTitle:
		printWarning("records carry no userId, chart left untitled")
	}
	printStats(result.Stats.Loaded, result.Stats.Drawn, len(result.Plan.Markers))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each artifact next to the input, or to output.
// A single format is written to output verbatim; several formats share
// output as a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	base := basePath(output, input)
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if slices.Contains(paths, path) {
			continue
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
