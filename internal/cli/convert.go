package cli

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/source"
)

// convertCommand creates the command that rewrites records as Parquet.
func (c *CLI) convertCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "convert [data]",
		Short: "Convert work-session records to Parquet",
		Long: `Convert work-session records to Parquet.

Records are read like 'render' reads them, normalized, and written with the
canonical column names. Converting a directory of CSV exports once makes
repeated renders faster.`,
		Example: `  skyline convert ws-14475-p4.csv
  skyline convert "sqlite://sessions.db?table=fall2016" -o fall2016.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Data = args[0]
			if output == "" {
				output = basePath("", opts.Data) + ".parquet"
			}
			return c.runConvert(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .parquet)")
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input format: csv, json, parquet, sqlite (default: from extension)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "SQLite table holding the sessions")

	return cmd
}

// runConvert loads and normalizes records, then writes them to output.
func (c *CLI) runConvert(ctx context.Context, opts pipeline.Options, output string) error {
	if !strings.EqualFold(filepath.Ext(output), ".parquet") {
		output += ".parquet"
	}
	st := startStage(c.Logger, "convert")

	raw, err := c.newRunner().Load(ctx, opts)
	if err != nil {
		return err
	}
	records, err := activity.Normalize(raw)
	if err != nil {
		return err
	}
	sub := activity.SubjectOf(raw)
	if err := source.WriteParquet(output, source.ParquetRows(records, sub)); err != nil {
		return err
	}

	st.done(len(records))
	printSuccess("Wrote %s records", StyleNumber.Render(strconv.Itoa(len(records))))
	printFile(output)
	printNextStep("Render it", "skyline render "+output+" --term <term> --assignment <assignment>")
	return nil
}
