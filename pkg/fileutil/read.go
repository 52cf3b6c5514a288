package fileutil

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/thoreinstein/bundlecheck/internal/errors"
)

// MaxFileSize is the default read limit (1MB). Bundle files are small;
// anything larger is almost certainly the wrong file.
const MaxFileSize = 1024 * 1024

var (
	// ErrFileTooLarge indicates that a file exceeded the read limit.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrInvalidEncoding indicates the file content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")

	// ErrIsDirectory indicates a directory was passed where a file was expected.
	ErrIsDirectory = errors.New("path is a directory")
)

// ReadFileWithLimit reads a file up to limit bytes. A limit <= 0 uses MaxFileSize.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast on stat when possible
	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, ErrIsDirectory
		}
		if info.Size() > limit {
			return nil, errors.Wrapf(ErrFileTooLarge, "%d bytes, limit %d", info.Size(), limit)
		}
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "limit %d", limit)
	}

	return data, nil
}

// ReadText reads a size-limited file and verifies it is UTF-8 text.
func ReadText(path string, limit int64) (string, error) {
	data, err := ReadFileWithLimit(path, limit)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}
