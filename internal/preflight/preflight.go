package preflight

import (
	"chapterize/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := CheckBinaries(
		Requirement{Name: "FFmpeg", Command: cfg.FFmpegBinary(), Description: "Required for tag dumps and merging"},
		Requirement{Name: "FFprobe", Command: cfg.FFprobeBinary(), Description: "Required for duration queries"},
	)
	results = append(results, CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
