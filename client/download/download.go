package download

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Write stores body at path, creating the file or truncating an existing one.
// The file is closed on every return path. No cleanup is attempted on
// failure, so an interrupted write may leave a truncated file behind.
func Write(path string, body []byte, logger *slog.Logger, optFns ...Option) (err error) {
	opts := options{mode: defaultFileMode}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return fmt.Errorf("applying option: %w", err)
		}
	}

	if opts.skipExisting {
		if _, err := os.Stat(path); err == nil {
			logger.Info("skipping existing file", "path", path)
			return nil
		}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, opts.mode)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	defer func() {
		cerr := file.Close()
		if cerr == nil || errors.Is(cerr, os.ErrClosed) {
			return
		}
		if err == nil {
			err = fmt.Errorf("closing file: %w", cerr)
			return
		}
		logger.Error("defer closing file", "path", path, "error", cerr)
	}()

	if _, err := file.Write(body); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
