package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chapterize/internal/services"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.workDir)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
}

func TestInvalidLogLevelIsConfigurationError(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"--log-level", "loud", "check"}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if services.ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d", services.ExitCode(err))
	}
}

func TestCheckReportsTools(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "FFmpeg:")
	requireContains(t, out, "[OK]")
	if strings.Contains(out, "[ERROR]") {
		t.Fatalf("unexpected failing check:\n%s", out)
	}
}

func TestCheckFailsWhenToolMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("CHAPTERIZE_FFPROBE", filepath.Join(env.baseDir, "missing", "ffprobe"))

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, out, "[ERROR]")
}

func TestPlanPrintsChapters(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addTracks(t, "10.mp3", "2.mp3", "1.mp3")

	out, _, err := runCLI(t, []string{"plan", filepath.Join(env.tracksDir, "*.mp3")}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "Title:  Test Book")
	requireContains(t, out, "Chapter 3")
	requireContains(t, out, "0:01:30")
	requireContains(t, strings.ToLower(out), "3 chapters")
	if strings.Index(out, "2.mp3") > strings.Index(out, "10.mp3") {
		t.Fatalf("expected natural ordering:\n%s", out)
	}
}

func TestPlanWithoutMatchesFails(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"plan", filepath.Join(env.tracksDir, "*.mp3")}, env.configPath)
	if !errors.Is(err, services.ErrNoInputFiles) {
		t.Fatalf("expected ErrNoInputFiles, got %v", err)
	}
}

func TestMergeAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addTracks(t, "1.mp3", "2.mp3")
	output := filepath.Join(env.baseDir, "book.m4b")

	out, _, err := runCLI(t, []string{"merge", output, filepath.Join(env.tracksDir, "*.mp3")}, env.configPath)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	requireContains(t, out, "Progress: [=============            ] (50%)")
	requireContains(t, out, "(100%)")
	requireContains(t, out, "Done\n")
	requireContains(t, out, "with 2 chapters")
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output at %s: %v", output, err)
	}
	if docs, _ := filepath.Glob(filepath.Join(env.workDir, "metadata-*.txt")); len(docs) != 0 {
		t.Fatalf("expected metadata documents to be cleaned up, found %v", docs)
	}

	_, _, err = runCLI(t, []string{"merge", output, filepath.Join(env.tracksDir, "*.mp3")}, env.configPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for existing output, got %v", err)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "completed")
	requireContains(t, out, output)

	out, _, err = runCLI(t, []string{"history", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Removed 1 history entries")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No merges recorded")
}

func TestMergeRequiresTwoArgs(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"merge", "only-output.m4b"}, env.configPath); err == nil {
		t.Fatal("expected argument error")
	}
}
