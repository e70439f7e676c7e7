package config

const (
	defaultWorkDir          = "~/.cache/chapterize/work"
	defaultLogDir           = "~/.local/share/chapterize/logs"
	defaultFFmpegBinary     = "ffmpeg"
	defaultFFprobeBinary    = "ffprobe"
	defaultAudioEncoder     = "aac"
	defaultAACCoder         = "fast"
	defaultProgressBucket   = 10
	defaultHistoryEnabled   = true
	defaultHistoryListLimit = 20
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		FFmpeg: FFmpeg{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			AudioEncoder:  defaultAudioEncoder,
			AACCoder:      defaultAACCoder,
		},
		Merge: Merge{
			ProgressBucket: defaultProgressBucket,
		},
		History: History{
			Enabled:   defaultHistoryEnabled,
			ListLimit: defaultHistoryListLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
