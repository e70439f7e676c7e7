package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"chapterize/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryAccess_Empty(t *testing.T) {
	if result := CheckDirectoryAccess("test", " "); result.Passed {
		t.Fatal("expected failure for unconfigured dir")
	}
}

func TestCheckBinaries(t *testing.T) {
	testsupport.NewConfig(t, testsupport.WithStubbedBinaries("fake-ffmpeg"))

	results := CheckBinaries(
		Requirement{Name: "present", Command: "fake-ffmpeg"},
		Requirement{Name: "missing", Command: "definitely-not-installed-xyz", Description: "needed"},
		Requirement{Name: "blank"},
	)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Passed {
		t.Fatalf("expected stubbed binary to resolve: %s", results[0].Detail)
	}
	if results[1].Passed || results[1].Detail != `binary "definitely-not-installed-xyz" not found (needed)` {
		t.Fatalf("unexpected missing result %+v", results[1])
	}
	if results[2].Passed || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank result %+v", results[2])
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_StubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	results := RunAll(cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAll_MissingWorkDir(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	cfg.Paths.WorkDir = filepath.Join(t.TempDir(), "missing")

	failed := Failed(RunAll(cfg))
	if len(failed) != 1 || failed[0].Name != "Work directory" {
		t.Fatalf("expected only the work directory to fail, got %+v", failed)
	}
}
