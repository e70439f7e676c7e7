package config

import (
	"errors"
	"fmt"
	"strings"
)

var validAACCoders = map[string]struct{}{
	"fast":    {},
	"twoloop": {},
	"anmr":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		return errors.New("paths.work_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if strings.TrimSpace(c.FFmpeg.FFmpegBinary) == "" {
		return errors.New("ffmpeg.ffmpeg_binary must be set")
	}
	if strings.TrimSpace(c.FFmpeg.FFprobeBinary) == "" {
		return errors.New("ffmpeg.ffprobe_binary must be set")
	}
	if strings.ContainsAny(c.FFmpeg.AudioEncoder, " \t") {
		return fmt.Errorf("ffmpeg.audio_encoder must be a single encoder name, got %q", c.FFmpeg.AudioEncoder)
	}
	if _, ok := validAACCoders[c.FFmpeg.AACCoder]; !ok {
		return fmt.Errorf("ffmpeg.aac_coder must be one of fast, twoloop, anmr; got %q", c.FFmpeg.AACCoder)
	}
	if c.FFmpeg.TimeoutSeconds < 0 {
		return errors.New("ffmpeg.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateMerge() error {
	if c.Merge.ProgressBucket <= 0 || c.Merge.ProgressBucket > 100 {
		return errors.New("merge.progress_bucket must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
