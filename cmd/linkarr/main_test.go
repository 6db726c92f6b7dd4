package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	sourceDir  string
	libraryDir string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		sourceDir:  filepath.Join(base, "source"),
		libraryDir: filepath.Join(base, "library"),
	}

	content := fmt.Sprintf(`[paths]
source_dir = %q
library_dir = %q
log_dir = %q

[scan]
workers = 2
`, env.sourceDir, env.libraryDir, filepath.Join(base, "logs"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	if err := os.MkdirAll(env.sourceDir, 0o755); err != nil {
		t.Fatalf("create source dir: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, needle string) {
	t.Helper()
	if !strings.Contains(output, needle) {
		t.Fatalf("output missing %q:\n%s", needle, output)
	}
}

func TestScanCommandOrganizesSource(t *testing.T) {
	env := setupCLITestEnv(t)
	source := filepath.Join(env.sourceDir, "Movie.Name.2020.mkv")
	if err := os.WriteFile(source, []byte("media"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	out, err := runCLI(t, []string{"scan"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v\n%s", err, out)
	}
	requireContains(t, out, "Links created")

	link := filepath.Join(env.libraryDir, "movies", "Movie Name (2020)", "Movie Name (2020).mkv")
	target, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if target != source {
		t.Errorf("link target = %q, want %q", target, source)
	}
}

func TestScanCommandDryRun(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(filepath.Join(env.sourceDir, "Movie.Name.2020.mkv"), []byte("media"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	out, err := runCLI(t, []string{"scan", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("scan --dry-run: %v\n%s", err, out)
	}
	requireContains(t, out, "Dry run")

	if _, err := os.Stat(filepath.Join(env.libraryDir, "movies")); !os.IsNotExist(err) {
		t.Error("dry run provisioned the library")
	}
}

func TestSweepCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	staleDir := filepath.Join(env.libraryDir, "movies", "Gone (2001)")
	if err := os.MkdirAll(staleDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	broken := filepath.Join(staleDir, "Gone (2001).mkv")
	if err := os.Symlink(filepath.Join(env.sourceDir, "gone.mkv"), broken); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	out, err := runCLI(t, []string{"sweep"}, env.configPath)
	if err != nil {
		t.Fatalf("sweep: %v\n%s", err, out)
	}
	requireContains(t, out, "Removed 1 broken links")

	if _, err := os.Lstat(broken); !os.IsNotExist(err) {
		t.Error("broken link survived sweep command")
	}
}
