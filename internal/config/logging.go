package config

import (
	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

var logFormats = normalization.NewNormalizer(map[string]LogFormat{
	"text": LogFormatText,
	"json": LogFormatJSON,
}, LogFormatText)

// ParseLogFormat folds raw and rejects unknown formats.
func ParseLogFormat(raw string) (LogFormat, error) {
	return logFormats.Parse(raw)
}

// UnmarshalText accepts any casing. Unknown values are kept verbatim so
// validation can report them.
func (f *LogFormat) UnmarshalText(text []byte) error {
	parsed, err := ParseLogFormat(string(text))
	if err != nil {
		*f = LogFormat(text)
		return nil
	}
	*f = parsed
	return nil
}

// Valid reports whether f is a known format.
func (f LogFormat) Valid() bool {
	return logFormats.Contains(f)
}
