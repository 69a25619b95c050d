package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/assetopt/internal/check"
	"github.com/backmassage/assetopt/internal/config"
	"github.com/backmassage/assetopt/internal/display"
	"github.com/backmassage/assetopt/internal/logging"
	"github.com/backmassage/assetopt/internal/pipeline"
	"github.com/backmassage/assetopt/internal/report"
	"github.com/backmassage/assetopt/internal/tool"
)

// ErrRunFailed is returned when at least one target ended in Failure. The
// summary has already been printed; the error only sets the exit status.
var ErrRunFailed = errors.New("one or more targets failed")

// jobKind selects one of the two pipelines.
type jobKind int

const (
	jobImages jobKind = iota
	jobModels
)

func (k jobKind) tool(cfg *config.Config) check.Tool {
	if k == jobImages {
		return check.Tool{Name: "image encoder", Command: cfg.ImageTool}
	}
	return check.Tool{Name: "model compressor", Command: cfg.ModelTool}
}

func (k jobKind) job(cfg *config.Config, r tool.Runner) pipeline.Job {
	if k == jobImages {
		return pipeline.ImageJob(cfg, &tool.WebPConverter{Runner: r, Command: cfg.ImageTool, Options: cfg.WebP})
	}
	return pipeline.ModelJob(cfg, &tool.DracoConverter{Runner: r, Command: cfg.ModelTool})
}

// session is the resolved configuration plus the logger and runner built
// from it. Close the logger when done.
type session struct {
	cfg    config.Config
	log    *logging.Logger
	runner *tool.ExecRunner
}

// newSession layers defaults, the YAML file, the environment and the flags
// the user set, validates the result, and opens the logger.
func newSession(cmd *cobra.Command, flags *config.FlagValues) (*session, error) {
	cfg := config.DefaultConfig()

	path := flags.ConfigFile
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	if path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(&cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := config.ApplyFlags(cmd.Flags(), &cfg, flags); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	runner := &tool.ExecRunner{Timeout: cfg.ToolTimeout}
	if cfg.Verbose {
		runner.Echo = cmd.ErrOrStderr()
	}
	return &session{cfg: cfg, log: log, runner: runner}, nil
}

func runPipeline(cmd *cobra.Command, flags *config.FlagValues, kinds ...jobKind) error {
	s, err := newSession(cmd, flags)
	if err != nil {
		return err
	}
	defer s.log.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return s.run(ctx, kinds)
}

func (s *session) run(ctx context.Context, kinds []jobKind) error {
	cfg, log := &s.cfg, s.log
	display.PrintBanner(log.Writer())

	if !cfg.DryRun {
		tools := make([]check.Tool, 0, len(kinds))
		for _, k := range kinds {
			tools = append(tools, k.tool(cfg))
		}
		if err := check.CheckDeps(tools...); err != nil {
			log.Error("%v", err)
			return err
		}
	}
	log.Debug("Skip policy: %s, tool timeout: %s", cfg.SkipPolicy, cfg.ToolTimeout)

	rep := report.New(cfg.DryRun)
	var total pipeline.Summary
	for _, k := range kinds {
		res := pipeline.Run(ctx, k.job(cfg, s.runner), log)
		rep.AddJob(res)
		total.Merge(res.Summary)
		log.Blank()
	}
	if len(kinds) > 1 {
		log.Info("Overall: %s", total.String())
	}

	var reportErr error
	if cfg.ReportFile != "" {
		if err := rep.Write(cfg.ReportFile); err != nil {
			log.Error("Cannot write report: %v", err)
			reportErr = err
		} else {
			log.Info("Report written to %s (run %s)", cfg.ReportFile, rep.RunID)
		}
	}

	if total.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrRunFailed, total.Failed, total.Total)
	}
	return reportErr
}
