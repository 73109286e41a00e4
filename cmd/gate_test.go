package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/initializ/preflight/config"
	"github.com/initializ/preflight/pipeline"
)

func writeGateYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "preflight.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func setConfigPath(t *testing.T, path string) {
	t.Helper()
	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })
}

func TestRunGate_AllPass(t *testing.T) {
	dir := t.TempDir()
	path := writeGateYAML(t, dir, `
stages:
  - name: fmt
    command: ["true"]
  - name: lint
    command: ["true"]
  - name: test
    command: ["true"]
`)
	setConfigPath(t, path)

	if err := runGate(nil, nil); err != nil {
		t.Fatalf("runGate() error: %v", err)
	}
}

func TestRunGate_FailFast(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran-after-failure")
	path := writeGateYAML(t, dir, `
stages:
  - name: fmt
    command: ["sh", "-c", "exit 7"]
  - name: lint
    command: ["touch", "`+marker+`"]
`)
	setConfigPath(t, path)

	err := runGate(nil, nil)
	if err == nil {
		t.Fatal("expected error for failing fmt stage")
	}

	var stageErr *pipeline.StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error %T is not *StageError", err)
	}
	if stageErr.Stage != "fmt" || stageErr.ExitCode != 7 {
		t.Errorf("StageError = %+v, want stage fmt exit 7", stageErr)
	}

	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("lint stage ran after fmt failed")
	}
}

func TestRunGate_MissingTool(t *testing.T) {
	dir := t.TempDir()
	path := writeGateYAML(t, dir, `
stages:
  - name: fmt
    command: ["preflight-no-such-tool-52a1"]
`)
	setConfigPath(t, path)

	err := runGate(nil, nil)
	var stageErr *pipeline.StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error %v is not *StageError", err)
	}
	if stageErr.ExitCode != 127 {
		t.Errorf("ExitCode = %d, want 127 for unstartable tool", stageErr.ExitCode)
	}
}

func TestRunGate_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeGateYAML(t, dir, "stages: []\n")
	setConfigPath(t, path)

	err := runGate(nil, nil)
	if err == nil {
		t.Fatal("expected configuration error for empty stage list")
	}
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		t.Errorf("config error must not be a StageError: %v", err)
	}
}

func TestLoadConfig_DefaultsWhenFileAbsent(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})
	setConfigPath(t, config.DefaultFile)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if len(cfg.Stages) != 3 {
		t.Fatalf("got %d stages, want built-in gate of 3", len(cfg.Stages))
	}
	if cfg.Stages[0].Name != "fmt" || cfg.Stages[2].Name != "test" {
		t.Errorf("unexpected default stages: %+v", cfg.Stages)
	}
}

func TestLoadConfig_ExplicitPathMustExist(t *testing.T) {
	setConfigPath(t, filepath.Join(t.TempDir(), "custom.yaml"))

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}
