package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Gbsyi/swagger-codegen-bin/pipeline"
	"github.com/Gbsyi/swagger-codegen-bin/ui"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fetch the API spec, generate code and extract it into the output folder",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	for _, c := range []*cobra.Command{rootCmd, generateCmd} {
		c.Flags().StringVar(&opts.Endpoint, "endpoint", opts.Endpoint, "generator service URL")
		c.Flags().DurationVar(&opts.FetchTimeout, "timeout", opts.FetchTimeout, "timeout for downloading the API spec")
		c.Flags().DurationVar(&opts.GenTimeout, "generate-timeout", opts.GenTimeout, "timeout for the generate request")
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p := ui.Default()

	res, err := pipeline.Run(cmd.Context(), pipeline.Options{
		ConfigPath:      opts.ConfigPath,
		Endpoint:        opts.Endpoint,
		FetchTimeout:    opts.FetchTimeout,
		GenerateTimeout: opts.GenTimeout,
		UserAgent:       userAgent(),
	}, p)
	if err != nil {
		// already reported by the pipeline
		return err
	}

	printSummary(p, res)
	return nil
}

func printSummary(p *ui.Printer, res *pipeline.Result) {
	if res.Install == nil {
		return
	}
	p.Println()
	p.Printf("  Output: %s\n", p.Primary.Render(res.Install.Folder))
	p.Printf("  %s %d files, %s in %s\n",
		p.Dim.Render("Wrote"),
		res.Install.Files,
		ui.FormatBytes(res.Install.Bytes),
		ui.FormatDuration(res.Duration))
}
