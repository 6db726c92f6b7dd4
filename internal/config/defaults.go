package config

const (
	defaultSourceDir       = "~/downloads/media"
	defaultLibraryDir      = "~/library"
	defaultLogDir          = "~/.local/share/linkarr/logs"
	defaultMoviesDir       = "movies"
	defaultTVDir           = "tvshows"
	defaultRecencyHours    = 0
	defaultWorkers         = 4
	defaultIntervalMinutes = 15
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

func defaultMediaExtensions() []string {
	return []string{".mkv", ".mp4", ".avi", ".m4v", ".mov", ".ts", ".wmv"}
}

func defaultSubtitleExtensions() []string {
	return []string{".srt", ".sub", ".ass", ".ssa", ".vtt"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:  defaultSourceDir,
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Library: Library{
			MoviesDir: defaultMoviesDir,
			TVDir:     defaultTVDir,
		},
		Scan: Scan{
			MediaExtensions:    defaultMediaExtensions(),
			SubtitleExtensions: defaultSubtitleExtensions(),
			RecencyWindowHours: defaultRecencyHours,
			Workers:            defaultWorkers,
			IntervalMinutes:    defaultIntervalMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
