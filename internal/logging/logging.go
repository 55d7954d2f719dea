// Package logging builds the process-wide diagnostic logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// maxLogSize is the ceiling above which the log file is truncated at startup.
const maxLogSize = 10 << 20

// New creates the diagnostic logger: a console writer on stderr, plus an
// append-only JSON-line file when path is non-empty. stdout is never used;
// in stream mode it carries protocol frames.
func New(path string) (zerolog.Logger, error) {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}}
	if path != "" {
		if err := truncateOversize(path); err != nil {
			return zerolog.Nop(), err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), err
		}
		writers = append(writers, file)
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger(), nil
}

func truncateOversize(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() <= maxLogSize {
		return nil
	}
	return os.Truncate(path, 0)
}
