package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/assetopt/internal/config"
)

func newTestLogger(t *testing.T, cfg config.Config) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	var out, errOut bytes.Buffer
	l.SetOutput(&out, &errOut)
	return l, &out, &errOut
}

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	l, out, _ := newTestLogger(t, cfg)
	l.Info("test message")
	if !strings.Contains(out.String(), "[INFO] test message") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(dir, "logs", "assetopt.log")
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	l.Info("to file")
	l.Error("boom")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("[INFO] to file")) || !bytes.Contains(b, []byte("[ERROR] boom")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestLogger_ErrorGoesToStderr(t *testing.T) {
	l, out, errOut := newTestLogger(t, config.DefaultConfig())
	l.Error("bad thing")
	l.Warn("careful")
	if strings.Contains(out.String(), "bad thing") {
		t.Errorf("ERROR line leaked to stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[ERROR] bad thing") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if !strings.Contains(out.String(), "[WARN] careful") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestLogger_DebugOnlyWhenVerbose(t *testing.T) {
	quiet, out, _ := newTestLogger(t, config.DefaultConfig())
	quiet.Debug("hidden")
	if out.Len() != 0 {
		t.Errorf("Debug wrote without verbose: %q", out.String())
	}

	cfg := config.DefaultConfig()
	cfg.Verbose = true
	loud, out2, _ := newTestLogger(t, cfg)
	loud.Debug("shown %d", 1)
	if !strings.Contains(out2.String(), "[DEBUG] shown 1") {
		t.Errorf("stdout = %q", out2.String())
	}
}
