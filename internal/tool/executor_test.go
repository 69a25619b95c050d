package tool

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func sh(script string) Invocation {
	return Invocation{Program: "sh", Args: []string{"-c", script}}
}

func TestExecRunner_SuccessCapturesStreams(t *testing.T) {
	requireSh(t)
	var echo bytes.Buffer
	r := &ExecRunner{Timeout: 10 * time.Second, Echo: &echo}

	res, err := r.Run(context.Background(), sh("echo out; echo warn >&2"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stdout != "out\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if res.Stderr != "warn\n" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
	if echo.String() != "warn\n" {
		t.Errorf("Echo = %q", echo.String())
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d", res.ExitCode)
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireSh(t)
	r := &ExecRunner{Timeout: 10 * time.Second}

	res, err := r.Run(context.Background(), sh("echo 'Error: invalid glTF' >&2; exit 3"))
	if !errors.Is(err, ErrToolFailed) {
		t.Fatalf("err = %v, want ErrToolFailed", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	var te *Error
	if !errors.As(err, &te) || te.ExitCode != 3 {
		t.Fatalf("err is not a *Error with exit code 3: %#v", err)
	}
	if !strings.HasSuffix(err.Error(), ": Error: invalid glTF") {
		t.Errorf("Error() should end with the tool's stderr verbatim: %q", err.Error())
	}
}

func TestExecRunner_NotFound(t *testing.T) {
	r := &ExecRunner{}
	res, err := r.Run(context.Background(), Invocation{Program: "assetopt-no-such-tool-xyz"})
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("err = %v, want ErrToolNotFound", err)
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}

	_, err = r.Run(context.Background(), Invocation{Program: "/nonexistent/dir/tool"})
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("absolute path: err = %v, want ErrToolNotFound", err)
	}
}

func TestExecRunner_Exit127IsNotFound(t *testing.T) {
	requireSh(t)
	r := &ExecRunner{}
	_, err := r.Run(context.Background(), sh("exit 127"))
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("err = %v, want ErrToolNotFound", err)
	}
}

func TestExecRunner_Timeout(t *testing.T) {
	requireSh(t)
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	r := &ExecRunner{Timeout: 100 * time.Millisecond}

	start := time.Now()
	_, err := r.Run(context.Background(), sh("exec sleep 5"))
	if !errors.Is(err, ErrToolTimeout) {
		t.Fatalf("err = %v, want ErrToolTimeout", err)
	}
	if errors.Is(err, ErrToolFailed) {
		t.Error("timeout must not also match ErrToolFailed")
	}
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Errorf("Run took %v; the process was not killed on timeout", elapsed)
	}
}

func TestExecRunner_Canceled(t *testing.T) {
	requireSh(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &ExecRunner{Timeout: time.Minute}
	_, err := r.Run(ctx, sh("true"))
	if !errors.Is(err, ErrToolCanceled) {
		t.Errorf("err = %v, want ErrToolCanceled", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, should wrap context.Canceled", err)
	}
}

func TestMatchNotFound(t *testing.T) {
	tests := []struct {
		stderr string
		want   bool
	}{
		{"sh: 1: gltf-transform: not found", true},
		{"bash: squoosh-cli: command not found", true},
		{"npm ERR! 404 Not Found - GET https://registry.npmjs.org/@squoosh%2fclii", true},
		{"npm error could not determine executable to run", true},
		{"Error: Unexpected token in JSON", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := MatchNotFound(tt.stderr); got != tt.want {
			t.Errorf("MatchNotFound(%q) = %v, want %v", tt.stderr, got, tt.want)
		}
	}
}
