package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gbsyi/swagger-codegen-bin/apperr"
	"github.com/Gbsyi/swagger-codegen-bin/logger"
	"github.com/Gbsyi/swagger-codegen-bin/pipeline"
	"github.com/Gbsyi/swagger-codegen-bin/ui"
)

// Version information set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Options holds the flag values shared by all commands
type Options struct {
	ConfigPath   string
	Endpoint     string
	FetchTimeout time.Duration
	GenTimeout   time.Duration
	Verbose      bool
}

var opts = defaultOptions()

func defaultOptions() Options {
	d := pipeline.DefaultOptions()
	return Options{
		ConfigPath:   d.ConfigPath,
		Endpoint:     d.Endpoint,
		FetchTimeout: d.FetchTimeout,
		GenTimeout:   d.GenerateTimeout,
	}
}

var rootCmd = &cobra.Command{
	Use:   "swagger-codegen-bin",
	Short: "Generate API client code from a remote OpenAPI spec",
	Long: `Reads codegen.config, downloads the API spec from api_url, sends it to the
Swagger generator and extracts the generated archive into folder.

Running without a subcommand is the same as "generate".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if opts.Verbose {
			logger.SetLogger(logger.New(true))
		}
	},
	RunE: runGenerate,
}

// Execute runs the root command and exits non-zero on failure
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(ui.Default(), err)
		os.Exit(1)
	}
}

// reportError prints errors cobra produced itself, such as unknown flags or
// commands. Pipeline and config errors were already printed by the command.
func reportError(p *ui.Printer, err error) {
	var stageErr *pipeline.StageError
	var appErr *apperr.Error
	if errors.As(err, &stageErr) || errors.As(err, &appErr) {
		return
	}
	p.ErrorMsg(err, "run 'swagger-codegen-bin --help' for usage")
}

func userAgent() string {
	return "swagger-codegen-bin/" + version
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("swagger-codegen-bin {{.Version}} (" + commit + ", " + date + ")\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "path to the codegen.config file")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "show debug logs on stderr")
}
