package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gbsyi/swagger-codegen-bin/config"
	"github.com/Gbsyi/swagger-codegen-bin/language"
	"github.com/Gbsyi/swagger-codegen-bin/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the parsed codegen.config without contacting any server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(ui.Default(), opts.ConfigPath)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func showConfig(p *ui.Printer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		p.ErrorMsg(err)
		return err
	}

	p.Step("Config file " + p.Primary.Render(path))
	p.Detail("Api Url", cfg.APIURL)
	p.Detail("Language", cfg.Lang)
	p.Detail("Type", cfg.GenType)
	p.Detail("Folder", cfg.Folder)

	if missing := cfg.Missing(); len(missing) > 0 {
		p.WarnMsg("config file has no value for " + strings.Join(missing, ", "))
	}
	for _, w := range language.Check(cfg.Lang, cfg.GenType) {
		p.WarnMsg(w)
	}
	return nil
}
