package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/assetopt/internal/config"
)

func TestPaint(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorNever)
	if got := Paint(Error, "failure"); got != "failure" {
		t.Errorf("disabled: Paint = %q", got)
	}
	if Reset() != "" || Code(Info) != "" {
		t.Error("disabled: codes should be empty")
	}

	Configure(config.ColorAlways)
	if got := Paint(Error, "failure"); got != "\033[1;91mfailure\033[0m" {
		t.Errorf("enabled: Paint = %q", got)
	}
	if got := Paint(Plain, "x"); got != "x" {
		t.Errorf("Plain should not be wrapped: %q", got)
	}
	if Code(numRoles) != "" {
		t.Error("out-of-range role should have no code")
	}
}

func TestResolve_Auto(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if resolve(config.ColorAuto) {
		t.Error("NO_COLOR must disable auto colours")
	}
	if !resolve(config.ColorAlways) {
		t.Error("always must win over NO_COLOR")
	}
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("regular file reported as terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil file reported as terminal")
	}
}
