package cli

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/assetopt/internal/report"
	"github.com/backmassage/assetopt/internal/tool"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"ASSETOPT_CONFIG", "ASSETOPT_LOG", "ASSETOPT_TIMEOUT", "ASSETOPT_NPX"} {
		t.Setenv(k, "")
	}
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()
	want := map[string]bool{"images": false, "models": false, "all": false, "check": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
	for _, f := range []string{"config", "skip", "force", "timeout", "dry-run", "report", "log", "color", "no-color", "verbose"} {
		if root.PersistentFlags().Lookup(f) == nil {
			t.Errorf("missing persistent flag --%s", f)
		}
	}
}

func TestImages_DryRun(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "hero.jpg"), make([]byte, 2048), 0o644)
	os.WriteFile(filepath.Join(dir, "side.png"), make([]byte, 1024), 0o644)
	os.WriteFile(filepath.Join(dir, "side.webp"), make([]byte, 100), 0o644)

	out, _, err := execute(t, "images", "--dry-run", "--no-color", "--dir", dir)
	if err != nil {
		t.Fatalf("images --dry-run: %v", err)
	}
	for _, want := range []string{"Found 2 images", "Would convert -> hero.webp", "Skip (exists): side.webp", "Average size reduction: n/a"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "hero.webp")); err == nil {
		t.Error("dry run wrote hero.webp")
	}
}

func TestModels_MissingSourceFailsRun(t *testing.T) {
	dir := t.TempDir()
	pair := filepath.Join(dir, "car.glb") + "=" + filepath.Join(dir, "car_opt.glb")

	_, errOut, err := execute(t, "models", "--dry-run", "--no-color", "--pair", pair)
	if !errors.Is(err, ErrRunFailed) {
		t.Fatalf("err = %v, want ErrRunFailed", err)
	}
	if !strings.Contains(errOut, "Cannot read source") {
		t.Errorf("stderr missing source error:\n%s", errOut)
	}
}

func TestInvalidFlagValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad pair", []string{"models", "--dry-run", "--pair", "only-source"}},
		{"bad skip", []string{"images", "--dry-run", "--skip", "sometimes"}},
		{"bad quality", []string{"images", "--dry-run", "--quality", "150"}},
		{"missing config", []string{"images", "--dry-run", "--config", "/nonexistent/assetopt.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestImages_MissingToolFailsFast(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.jpg"), make([]byte, 10), 0o644)
	cfgPath := filepath.Join(dir, "assetopt.yaml")
	os.WriteFile(cfgPath, []byte("image_tool: [\"/nonexistent/squoosh\"]\n"), 0o644)

	_, _, err := execute(t, "images", "--no-color", "--config", cfgPath, "--dir", dir)
	if !errors.Is(err, tool.ErrToolNotFound) {
		t.Errorf("err = %v, want ErrToolNotFound", err)
	}
}

// shTools writes a config whose tools are sh scripts standing in for the
// real encoders.
func shTools(t *testing.T, dir, imageScript, modelScript string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	doc := map[string]any{
		"image_tool": []string{"sh", "-c", imageScript, "squoosh"},
		"model_tool": []string{"sh", "-c", modelScript, "gltf-transform"},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "assetopt.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAll_WithStandInTools(t *testing.T) {
	dir := t.TempDir()
	imgDir := filepath.Join(dir, "static")
	os.MkdirAll(imgDir, 0o755)
	os.WriteFile(filepath.Join(imgDir, "a.jpg"), make([]byte, 1000), 0o644)
	model := filepath.Join(dir, "car.glb")
	os.WriteFile(model, make([]byte, 1000), 0o644)

	// Image args: --webp <json> <src> -d <outDir>. Write 400 bytes to
	// <outDir>/a.webp. Model args: draco <src> <dst>. Write 250 bytes.
	cfgPath := shTools(t, dir,
		`head -c 400 /dev/zero > "$5/a.webp"`,
		`head -c 250 /dev/zero > "$3"`)
	reportPath := filepath.Join(dir, "out", "report.yaml")

	out, _, err := execute(t, "all", "--no-color",
		"--config", cfgPath,
		"--dir", imgDir,
		"--pair", model+"="+filepath.Join(dir, "car_opt.glb"),
		"--report", reportPath)
	if err != nil {
		t.Fatalf("all: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Overall: 2 succeeded, 0 failed, 0 skipped, reduction 67.5%") {
		t.Errorf("missing overall summary:\n%s", out)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var rep report.Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		t.Fatal(err)
	}
	if len(rep.Jobs) != 2 || rep.Totals.Succeeded != 2 {
		t.Errorf("report = %+v", rep)
	}
	for _, j := range rep.Jobs {
		for _, e := range j.Entries {
			if len(e.Blake3) != 64 {
				t.Errorf("%s: blake3 = %q", e.Source, e.Blake3)
			}
		}
	}

	// Second run skips everything.
	out, _, err = execute(t, "all", "--no-color", "--config", cfgPath, "--dir", imgDir,
		"--pair", model+"="+filepath.Join(dir, "car_opt.glb"))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !strings.Contains(out, "Overall: 0 succeeded, 0 failed, 2 skipped") {
		t.Errorf("second run did not skip:\n%s", out)
	}
}

func TestCheck_WithStandInTools(t *testing.T) {
	dir := t.TempDir()
	cfgPath := shTools(t, dir, `echo "squoosh 0.7.3"`, `echo "gltf-transform 4.1.0"`)

	out, _, err := execute(t, "check", "--no-color", "--config", cfgPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "image encoder: squoosh 0.7.3") || !strings.Contains(out, "All tools available") {
		t.Errorf("unexpected check output:\n%s", out)
	}
}

func TestCheck_FailingTool(t *testing.T) {
	dir := t.TempDir()
	cfgPath := shTools(t, dir, `echo ok`, `echo "boom" >&2; exit 3`)

	_, errOut, err := execute(t, "check", "--no-color", "--config", cfgPath)
	if !errors.Is(err, ErrCheckFailed) {
		t.Errorf("err = %v, want ErrCheckFailed", err)
	}
	if !strings.Contains(errOut, "model compressor: version probe failed") {
		t.Errorf("stderr:\n%s", errOut)
	}
}
