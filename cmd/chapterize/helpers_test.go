package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const ffprobeStub = `#!/bin/sh
case "$*" in
  *show_entries*) printf '[FORMAT]\nduration=30.4\n[/FORMAT]\n' ;;
  *) printf '{"streams":[],"chapters":[],"format":{"duration":"60.0","size":"2048"}}\n' ;;
esac
`

const ffmpegStub = `#!/bin/sh
case "$*" in
  *ffmetadata*) printf ';FFMETADATA1\nalbum=Test Book\nartist=Someone\n' ;;
  *)
    for last; do :; done
    printf 'size=       1kB time=00:00:30.00 bitrate=1.0kbits/s\r'
    printf 'size=       2kB time=00:01:00.00 bitrate=1.0kbits/s\n'
    : > "$last"
    ;;
esac
`

type cliTestEnv struct {
	baseDir    string
	configPath string
	workDir    string
	logDir     string
	tracksDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("CHAPTERIZE_FFMPEG", "")
	t.Setenv("CHAPTERIZE_FFPROBE", "")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		workDir:    filepath.Join(base, "work"),
		logDir:     filepath.Join(base, "logs"),
		tracksDir:  filepath.Join(base, "tracks"),
	}
	binDir := filepath.Join(base, "bin")
	for _, dir := range []string{binDir, env.tracksDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	ffmpeg := writeScript(t, filepath.Join(binDir, "ffmpeg"), ffmpegStub)
	ffprobe := writeScript(t, filepath.Join(binDir, "ffprobe"), ffprobeStub)

	content := fmt.Sprintf(`[paths]
work_dir = %q
log_dir = %q

[ffmpeg]
ffmpeg_binary = %q
ffprobe_binary = %q

[logging]
level = "error"
`, env.workDir, env.logDir, ffmpeg, ffprobe)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) addTracks(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(e.tracksDir, name), []byte("ID3"), 0o644); err != nil {
			t.Fatalf("write track: %v", err)
		}
	}
}

func writeScript(t *testing.T, path, body string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
