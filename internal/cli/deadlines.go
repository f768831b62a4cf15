package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/errors"
)

// deadlineTimeFormat renders deadline instants in listings.
const deadlineTimeFormat = "Jan 02 15:04"

// deadlinesCommand creates the command listing the deadline registry.
func (c *CLI) deadlinesCommand() *cobra.Command {
	var (
		registry string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "deadlines [term]",
		Short: "List assignment deadlines",
		Long: `List the deadlines known to the registry.

The built-in registry covers the spring and fall 2016 terms. Use --registry
to add or replace entries from a JSON or TOML file. Times are shown in UTC.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeTerms(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadRegistry(registry)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				term := deadline.NormalizeTerm(args[0])
				if _, ok := table[term]; !ok {
					return errors.New(errors.ErrCodeDeadlineNotFound, "no deadlines for term %s", args[0])
				}
				table = deadline.Table{term: table[term]}
			}
			if asJSON {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(table)
			}
			fmt.Fprintln(c.Out, renderTable(deadlineHeaders, deadlineRows(table, table.Keys())))
			return nil
		},
	}

	cmd.Flags().StringVar(&registry, registryFlag, "", "registry file merged over the built-in table (.json or .toml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the registry as JSON")

	return cmd
}

// loadRegistry returns the built-in table, merged with path when given.
func loadRegistry(path string) (deadline.Table, error) {
	table := deadline.Default()
	if path == "" {
		return table, nil
	}
	extra, err := deadline.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return table.Merge(extra), nil
}

var deadlineHeaders = []string{"Term", "Assignment", "M1", "M2", "M3", "Early", "Due"}

// deadlineRows formats one row per key.
func deadlineRows(table deadline.Table, keys []deadline.Key) [][]string {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		e, _ := table.Lookup(k.Term, k.Assignment)
		d := deadline.FromEntry(e)
		row := []string{k.Term, k.Assignment}
		for _, kind := range deadline.Kinds {
			row = append(row, formatInstant(d.Get(kind)))
		}
		rows = append(rows, row)
	}
	return rows
}

func formatInstant(in deadline.Instant) string {
	if !in.Valid {
		return "—"
	}
	return in.Time.UTC().Format(deadlineTimeFormat)
}
