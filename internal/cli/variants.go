package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/render/chart"
)

// variantsCommand creates the command listing chart variants.
func (c *CLI) variantsCommand() *cobra.Command {
	var (
		file   string
		asTOML bool
	)

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List chart variants",
		Long: `List the built-in chart variants and any user variants.

User variants are read from --variants or from variants.toml in the config
directory (~/.config/skyline). A user variant may set base to inherit from
another variant:

  [variant.tall]
  base = "skyline"
  height = 600`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.loadVariants(file)
			if err != nil {
				return err
			}
			all := chart.DefaultVariants().Merge(user)
			if asTOML {
				return writeVariantsTOML(c, all)
			}
			fmt.Fprintln(c.Out, renderTable(variantHeaders, variantRows(all)))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "variants", "", "TOML file with user variants")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print variants as TOML")

	return cmd
}

var variantHeaders = []string{"Name", "Series", "Curve", "Window", "Labels", "Size"}

func variantRows(vs chart.Variants) [][]string {
	names := vs.Names()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		v := vs[name]
		window := "off"
		if v.Window {
			window = fmt.Sprintf("%dd grace", v.GraceDays)
		}
		rows = append(rows, []string{
			name,
			strings.Join(v.Series, ", "),
			string(v.Curve),
			window,
			string(v.Labels),
			fmt.Sprintf("%gx%g", v.Width, v.Height),
		})
	}
	return rows
}

// writeVariantsTOML prints variants in the format ReadVariants accepts.
func writeVariantsTOML(c *CLI, vs chart.Variants) error {
	doc := struct {
		Variant chart.Variants `toml:"variant"`
	}{Variant: vs}
	return toml.NewEncoder(c.Out).Encode(doc)
}
