package httpparser

import "go.uber.org/zap"

const (
	defaultMaxLineLength = 64 << 10
	defaultMaxHeaders    = 256
)

// Settings configures a Parser. The zero value is ready to use.
type Settings struct {
	// MaxLineLength bounds a start line, header line or chunk-size line,
	// terminator excluded.
	MaxLineLength int

	// MaxHeaders bounds the number of header and trailer lines per message.
	MaxHeaders int

	// Logger receives debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

func prepareSettings(settings Settings) Settings {
	if settings.MaxLineLength < 1 {
		settings.MaxLineLength = defaultMaxLineLength
	}
	if settings.MaxHeaders < 1 {
		settings.MaxHeaders = defaultMaxHeaders
	}
	if settings.Logger == nil {
		settings.Logger = zap.NewNop()
	}

	return settings
}
