package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	c.normalizeMerge()
	c.normalizeHistory()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.FFmpegBinary = strings.TrimSpace(c.FFmpeg.FFmpegBinary)
	if value, ok := os.LookupEnv("CHAPTERIZE_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.FFmpegBinary = strings.TrimSpace(value)
	}
	if c.FFmpeg.FFmpegBinary == "" {
		c.FFmpeg.FFmpegBinary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if value, ok := os.LookupEnv("CHAPTERIZE_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.FFprobeBinary = strings.TrimSpace(value)
	}
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
	c.FFmpeg.AudioEncoder = strings.TrimSpace(c.FFmpeg.AudioEncoder)
	if c.FFmpeg.AudioEncoder == "" {
		c.FFmpeg.AudioEncoder = defaultAudioEncoder
	}
	c.FFmpeg.AACCoder = strings.ToLower(strings.TrimSpace(c.FFmpeg.AACCoder))
	if c.FFmpeg.AACCoder == "" {
		c.FFmpeg.AACCoder = defaultAACCoder
	}
	if c.FFmpeg.TimeoutSeconds < 0 {
		c.FFmpeg.TimeoutSeconds = 0
	}
}

func (c *Config) normalizeMerge() {
	if c.Merge.ProgressBucket <= 0 {
		c.Merge.ProgressBucket = defaultProgressBucket
	}
}

func (c *Config) normalizeHistory() {
	if c.History.ListLimit <= 0 {
		c.History.ListLimit = defaultHistoryListLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
