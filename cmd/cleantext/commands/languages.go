package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/translit"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages whose letters survive ASCII conversion",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LANG\tKEEPS")
		for _, l := range translit.Languages() {
			var glyphs []string
			for _, letter := range translit.Letters(l) {
				glyphs = append(glyphs, letter[0])
			}
			fmt.Fprintf(tw, "%s\t%s\n", l, strings.Join(glyphs, " "))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
