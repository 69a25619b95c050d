// Package check provides the dependency report (the check command) and the
// pre-run validation (CheckDeps) for the configured external tools.
package check

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/assetopt/internal/config"
	"github.com/backmassage/assetopt/internal/tool"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// stays testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// lookPath is exec.LookPath, replaced in tests.
var lookPath = exec.LookPath

// Tool is one configured external command prefix.
type Tool struct {
	Name    string
	Command []string
}

// Tools returns the image and model tools from cfg.
func Tools(cfg *config.Config) []Tool {
	return []Tool{
		{Name: "image encoder", Command: cfg.ImageTool},
		{Name: "model compressor", Command: cfg.ModelTool},
	}
}

// CheckDeps verifies that the program of every given tool resolves on PATH.
// It does not start anything. The first missing program is returned as an
// error matching tool.ErrToolNotFound.
func CheckDeps(tools ...Tool) error {
	for _, t := range tools {
		if len(t.Command) == 0 || t.Command[0] == "" {
			return fmt.Errorf("%w: %s: empty command", tool.ErrToolNotFound, t.Name)
		}
		if _, err := lookPath(t.Command[0]); err != nil {
			return fmt.Errorf("%w: %s (%s): %w", tool.ErrToolNotFound, t.Name, t.Command[0], err)
		}
	}
	return nil
}

// RunCheck logs availability of each tool: PATH resolution, then a
// --version probe through runner. It is informational and does not stop
// on failure; the return value reports whether every tool responded.
func RunCheck(ctx context.Context, tools []Tool, log Logger, runner tool.Runner) bool {
	log.Info("=== Dependency Check ===")
	ok := true
	for _, t := range tools {
		if !checkTool(ctx, t, log, runner) {
			ok = false
		}
	}
	if ok {
		log.Success("All tools available")
	} else {
		log.Error("Some tools are unavailable")
	}
	return ok
}

func checkTool(ctx context.Context, t Tool, log Logger, runner tool.Runner) bool {
	if err := CheckDeps(t); err != nil {
		log.Error("%s: not found: %v", t.Name, err)
		return false
	}
	inv, err := tool.VersionInvocation(t.Command)
	if err != nil {
		log.Error("%s: %v", t.Name, err)
		return false
	}
	log.Info("Probing %s: %s", t.Name, inv)
	res, err := runner.Run(ctx, inv)
	if err != nil {
		log.Error("%s: version probe failed: %v", t.Name, err)
		return false
	}
	version := firstLine(res.Stdout)
	if version == "" {
		version = firstLine(res.Stderr)
	}
	if version == "" {
		log.Warn("%s: found, but reported no version", t.Name)
		return true
	}
	log.Success("%s: %s", t.Name, version)
	return true
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}
	return s
}
