package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gbsyi/swagger-codegen-bin/language"
	"github.com/Gbsyi/swagger-codegen-bin/ui"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages known for each generation type",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printLanguages(ui.Default())
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func printLanguages(p *ui.Printer) {
	for _, t := range language.Types {
		names := language.ByType(t)
		if len(names) == 0 {
			continue
		}
		p.Printf("%s\n", p.Bold.Render(string(t)))
		p.Printf("  %s\n", strings.Join(names, ", "))
	}
}
