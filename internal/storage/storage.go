// Package storage holds the backends that uploaded order files are written
// to. Every backend addresses files by their generated storage filename.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Open and Remove when no file has the given name.
var ErrNotExist = errors.New("file does not exist")

type FileStore interface {
	// Save writes r under name and returns the path recorded on the file row.
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}
