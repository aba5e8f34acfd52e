package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gbsyi/swagger-codegen-bin/config"
	"github.com/Gbsyi/swagger-codegen-bin/generator"
	"github.com/Gbsyi/swagger-codegen-bin/injector"
	"github.com/Gbsyi/swagger-codegen-bin/language"
	"github.com/Gbsyi/swagger-codegen-bin/logger"
	"github.com/Gbsyi/swagger-codegen-bin/retriever"
)

// Stage is a position in the pipeline state machine
type Stage int

const (
	Idle Stage = iota
	ConfigLoaded
	SpecFetched
	ArchiveFetched
	Extracted
	Done
	Failed
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case ConfigLoaded:
		return "config_loaded"
	case SpecFetched:
		return "spec_fetched"
	case ArchiveFetched:
		return "archive_fetched"
	case Extracted:
		return "extracted"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Reporter receives human-readable progress. ui.Printer implements it.
type Reporter interface {
	Step(msg string)
	Detail(label, value string)
	WarnMsg(msg string)
	Progress(title string, action func() error) error
	SuccessMsg(msg string)
	ErrorMsg(err error, hints ...string)
}

// Options configures a run
type Options struct {
	ConfigPath      string
	Endpoint        string
	FetchTimeout    time.Duration
	GenerateTimeout time.Duration
	UserAgent       string
}

// DefaultOptions returns the options used by the CLI without flags
func DefaultOptions() Options {
	fetch := retriever.DefaultOptions()
	return Options{
		ConfigPath:      config.DefaultPath,
		Endpoint:        generator.DefaultEndpoint,
		FetchTimeout:    fetch.HTTPTimeout,
		GenerateTimeout: generator.DefaultTimeout,
		UserAgent:       fetch.UserAgent,
	}
}

// Result describes how far a run got
type Result struct {
	Stage    Stage // Done or Failed
	Reached  Stage // last stage completed
	Config   *config.Config
	Install  *injector.Result
	Duration time.Duration
}

// StageError is returned when the stage after Reached fails
type StageError struct {
	Reached Stage
	Err     error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Run loads the config, fetches the api info, requests the generated
// archive and extracts it. It stops at the first failure without cleanup.
func Run(ctx context.Context, opts Options, rep Reporter) (*Result, error) {
	start := time.Now()
	res := &Result{Stage: Idle, Reached: Idle}
	log := logger.With("config", opts.ConfigPath)

	fail := func(err error) (*Result, error) {
		log.Debug("pipeline failed", "reached", res.Reached.String(), "error", err)
		res.Stage = Failed
		res.Duration = time.Since(start)
		rep.ErrorMsg(err)
		return res, &StageError{Reached: res.Reached, Err: err}
	}
	advance := func(s Stage) {
		log.Debug("pipeline stage", "stage", s.String())
		res.Stage = s
		res.Reached = s
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fail(err)
	}
	res.Config = cfg
	advance(ConfigLoaded)

	rep.Step("Successfully got config data")
	rep.Detail("Api Url", cfg.APIURL)
	rep.Detail("Language", cfg.Lang)
	rep.Detail("Type", cfg.GenType)
	if missing := cfg.Missing(); len(missing) > 0 {
		rep.WarnMsg("config file has no value for " + strings.Join(missing, ", "))
	}
	for _, w := range language.Check(cfg.Lang, cfg.GenType) {
		rep.WarnMsg(w)
	}

	var doc retriever.Document
	err = rep.Progress("Trying to get api info from server", func() error {
		var fetchErr error
		doc, fetchErr = retriever.Fetch(ctx, cfg.APIURL, fetchOptions(opts))
		return fetchErr
	})
	if err != nil {
		return fail(err)
	}
	advance(SpecFetched)
	rep.Step("Successfully got api info")

	var archive []byte
	err = rep.Progress("Trying to download generated code", func() error {
		req, reqErr := generator.NewRequest(cfg.Lang, cfg.GenType, doc.Body)
		if reqErr != nil {
			return reqErr
		}
		var genErr error
		archive, genErr = newGeneratorClient(opts).Generate(ctx, req)
		return genErr
	})
	if err != nil {
		return fail(err)
	}
	advance(ArchiveFetched)
	rep.Step("Successfully downloaded archive")

	rep.Step("Trying to extract archive to folder")
	installed, err := injector.Install(archive, cfg.Folder)
	if err != nil {
		return fail(err)
	}
	res.Install = installed
	advance(Extracted)

	advance(Done)
	res.Duration = time.Since(start)
	rep.SuccessMsg("")
	return res, nil
}

func fetchOptions(opts Options) retriever.Options {
	fo := retriever.DefaultOptions()
	if opts.FetchTimeout > 0 {
		fo.HTTPTimeout = opts.FetchTimeout
	}
	if opts.UserAgent != "" {
		fo.UserAgent = opts.UserAgent
	}
	return fo
}

func newGeneratorClient(opts Options) *generator.Client {
	var gopts []generator.Option
	if opts.Endpoint != "" {
		gopts = append(gopts, generator.WithEndpoint(opts.Endpoint))
	}
	if opts.GenerateTimeout > 0 {
		gopts = append(gopts, generator.WithTimeout(opts.GenerateTimeout))
	}
	if opts.UserAgent != "" {
		gopts = append(gopts, generator.WithUserAgent(opts.UserAgent))
	}
	return generator.NewClient(gopts...)
}
