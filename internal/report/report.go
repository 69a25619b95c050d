package report

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/assetopt/internal/pipeline"
)

// Report is the serialized record of one invocation. A single invocation
// may run several jobs ("all" runs images then models).
type Report struct {
	RunID      string      `yaml:"run_id"`
	StartedAt  time.Time   `yaml:"started_at"`
	FinishedAt time.Time   `yaml:"finished_at"`
	DryRun     bool        `yaml:"dry_run"`
	Jobs       []JobReport `yaml:"jobs"`
	Totals     Totals      `yaml:"totals"`

	summary pipeline.Summary
}

// JobReport is one pipeline run.
type JobReport struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
	Totals  Totals  `yaml:"totals"`
}

// Entry is one target's row. Reduction is nil when unknown or when the
// target was not converted.
type Entry struct {
	Source      string   `yaml:"source"`
	Destination string   `yaml:"destination"`
	Outcome     string   `yaml:"outcome"`
	Reduction   *float64 `yaml:"reduction,omitempty"`
	Message     string   `yaml:"message,omitempty"`
	Output      string   `yaml:"output,omitempty"`
	Blake3      string   `yaml:"blake3,omitempty"`
	SourceBytes int64    `yaml:"source_bytes,omitempty"`
	OutputBytes int64    `yaml:"output_bytes,omitempty"`
	Elapsed     string   `yaml:"elapsed,omitempty"`
}

// Totals mirrors pipeline.Summary. MeanReduction is nil when nothing was
// measured.
type Totals struct {
	Total         int      `yaml:"total"`
	Succeeded     int      `yaml:"succeeded"`
	Failed        int      `yaml:"failed"`
	Skipped       int      `yaml:"skipped"`
	MeanReduction *float64 `yaml:"mean_reduction,omitempty"`
	BytesSaved    int64    `yaml:"bytes_saved"`
}

// New starts a report with a fresh random run ID.
func New(dryRun bool) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		DryRun:    dryRun,
	}
}

// AddJob appends a finished pipeline run and folds it into the totals.
// Outputs are hashed here; a file that cannot be read gets no digest.
func (r *Report) AddJob(res *pipeline.RunResult) {
	jr := JobReport{Name: res.Job, Totals: totalsOf(&res.Summary)}
	for _, pr := range res.Results() {
		jr.Entries = append(jr.Entries, entryOf(pr))
	}
	r.Jobs = append(r.Jobs, jr)

	r.summary.Merge(res.Summary)
	r.Totals = totalsOf(&r.summary)
	r.FinishedAt = res.FinishedAt
}

func entryOf(pr pipeline.Result) Entry {
	e := Entry{
		Source:      pr.Target.Source,
		Destination: pr.Target.Destination,
		Outcome:     pr.Outcome.String(),
		Message:     pr.Message,
		Output:      pr.Output,
		SourceBytes: pr.SourceBytes,
		OutputBytes: pr.OutputBytes,
	}
	if pr.Elapsed > 0 {
		e.Elapsed = pr.Elapsed.Round(time.Millisecond).String()
	}
	if pr.Outcome == pipeline.Success && pr.Reduction.Known {
		p := pr.Reduction.Percent
		e.Reduction = &p
	}

	hashPath := pr.Output
	if pr.Outcome == pipeline.Skipped {
		hashPath = pr.Target.Destination
	}
	if hashPath != "" {
		if d, err := FileDigest(hashPath); err == nil {
			e.Blake3 = d
		}
	}
	return e
}

func totalsOf(s *pipeline.Summary) Totals {
	return Totals{
		Total:         s.Total,
		Succeeded:     s.Succeeded,
		Failed:        s.Failed,
		Skipped:       s.Skipped,
		MeanReduction: meanOf(s),
		BytesSaved:    s.SpaceSaved(),
	}
}

func meanOf(s *pipeline.Summary) *float64 {
	m := s.MeanReduction()
	if math.IsNaN(m) {
		return nil
	}
	m = math.Round(m*10) / 10
	return &m
}

// Marshal renders the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the report and writes it to path, creating parent
// directories as needed. The file is replaced atomically.
func (r *Report) Write(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
