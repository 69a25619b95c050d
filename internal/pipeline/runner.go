package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/assetopt/internal/config"
	"github.com/backmassage/assetopt/internal/display"
	"github.com/backmassage/assetopt/internal/logging"
	"github.com/backmassage/assetopt/internal/tool"
)

// Converter performs the conversion of one target through an external tool.
// It returns the path it actually produced ("" when the tool exited cleanly
// without the expected file) or an error for a failed invocation.
type Converter interface {
	Name() string
	Convert(ctx context.Context, src, dst string) (tool.Output, error)
}

// Group is one enumerated unit of a job (an image directory, the model list).
type Group struct {
	Label  string
	Source Source
}

// Job is a complete batch: its groups, the shared converter, and policy.
type Job struct {
	Name       string // "images" or "models"; used in logs and reports.
	Noun       string // Plural item noun for "Found N <noun>".
	Groups     []Group
	Converter  Converter
	SkipPolicy config.SkipPolicy
	DryRun     bool
}

// GroupResult holds the ordered results of one group.
type GroupResult struct {
	Label   string
	Results []Result
	Summary Summary
	Err     error // Enumeration failure; Results is empty when set.
}

// RunResult is everything one Run produced.
type RunResult struct {
	Job        string
	Groups     []GroupResult
	Summary    Summary
	StartedAt  time.Time
	FinishedAt time.Time
}

// Results returns all results in processing order.
func (r *RunResult) Results() []Result {
	var all []Result
	for _, g := range r.Groups {
		all = append(all, g.Results...)
	}
	return all
}

// Run is the batch entry point. It processes every group and target
// sequentially, isolating per-target failures, and always logs a summary.
// Once ctx is done the remaining targets are recorded as failures without
// being attempted.
func Run(ctx context.Context, job Job, log *logging.Logger) *RunResult {
	res := &RunResult{Job: job.Name, StartedAt: time.Now()}

	log.Info("Starting %s optimization (%s)", job.Name, job.Converter.Name())
	if job.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
	log.Blank()

	for _, g := range job.Groups {
		gr := runGroup(ctx, job, g, log)
		res.Summary.Merge(gr.Summary)
		res.Groups = append(res.Groups, gr)
	}

	res.FinishedAt = time.Now()
	logSummary(job, log, res)
	return res
}

func runGroup(ctx context.Context, job Job, g Group, log *logging.Logger) GroupResult {
	gr := GroupResult{Label: g.Label}

	targets, err := g.Source.Targets()
	if err != nil {
		log.Error("Cannot read %s: %v", g.Label, err)
		gr.Err = err
		log.Blank()
		return gr
	}

	log.Info("Processing %s", g.Label)
	log.Info("  Found %d %s", len(targets), job.Noun)

	interrupted := false
	for i, t := range targets {
		var r Result
		if ctx.Err() != nil {
			if !interrupted {
				log.Warn("Interrupted, not starting remaining %s", job.Noun)
				interrupted = true
			}
			r = failedResult(t, fmt.Errorf("interrupted: %w", ctx.Err()))
		} else {
			log.Info("[%d/%d] %s", i+1, len(targets), filepath.Base(t.Source))
			r = processTarget(ctx, job, log, t)
		}
		gr.Results = append(gr.Results, r)
		gr.Summary.Add(r)
	}

	log.Info("  %s: %s", g.Label, gr.Summary.String())
	log.Blank()
	return gr
}

// processTarget handles one target: skip check, stat source, convert,
// measure. Every path returns exactly one Result.
func processTarget(ctx context.Context, job Job, log *logging.Logger, t Target) Result {
	if skip, reason := ShouldSkip(job.SkipPolicy, t); skip {
		log.Warn("  Skip (%s): %s", reason, filepath.Base(t.Destination))
		return skippedResult(t, reason)
	}

	fi, err := os.Stat(t.Source)
	if err != nil {
		log.Error("  Cannot read source: %v", err)
		return failedResult(t, err)
	}
	srcSize := fi.Size()
	log.Info("  Original size: %s", display.FormatBytes(srcSize))

	if job.DryRun {
		log.Success("  [DRY] Would convert -> %s", filepath.Base(t.Destination))
		return Result{Target: t, Outcome: Success, SourceBytes: srcSize}
	}

	start := time.Now()
	out, err := job.Converter.Convert(ctx, t.Source, t.Destination)
	elapsed := time.Since(start)
	if err != nil {
		log.Error("  Error converting %s: %v", t.Source, err)
		r := failedResult(t, err)
		r.SourceBytes = srcSize
		r.Elapsed = elapsed
		return r
	}
	if out.Warnings != "" {
		log.Warn("  Warning: %s", out.Warnings)
	}

	r := Result{
		Target:      t,
		Outcome:     Success,
		Output:      out.Path,
		SourceBytes: srcSize,
		Elapsed:     elapsed,
	}
	r.Reduction, r.OutputBytes = Measure(srcSize, out.Path)
	if !r.Reduction.Known {
		log.Success("  Converted with %s (size check failed)", job.Converter.Name())
		return r
	}
	log.Success("  %s size: %s (%s reduction) in %s",
		job.Converter.Name(), display.FormatBytes(r.OutputBytes), r.Reduction, elapsed.Round(time.Millisecond))
	return r
}

func logSummary(job Job, log *logging.Logger, res *RunResult) {
	s := &res.Summary
	log.Info("==============================")
	log.Info("Optimization summary (%s)", job.Name)
	printResultTable(log.Writer(), res.Results())

	if s.Succeeded > 0 {
		log.Success("Succeeded: %d %s", s.Succeeded, job.Noun)
	} else {
		log.Info("Succeeded: 0 %s", job.Noun)
	}
	if s.Failed > 0 {
		log.Error("Failed:    %d %s", s.Failed, job.Noun)
	} else {
		log.Info("Failed:    0 %s", job.Noun)
	}
	log.Info("Skipped:   %d %s", s.Skipped, job.Noun)
	log.Info("Average size reduction: %s", display.FormatPercent(s.MeanReduction()))

	if job.DryRun || s.Measured == 0 {
		return
	}
	saved := s.SpaceSaved()
	if saved >= 0 {
		log.Success("Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(s.TotalInputBytes),
			display.FormatBytes(s.TotalOutputBytes))
	} else {
		log.Warn("Total space saved: %s (overall output is larger)",
			display.FormatBytesWithSign(saved))
	}
}
