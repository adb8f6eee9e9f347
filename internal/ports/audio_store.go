package ports

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("file not found")

// Плоская папка с аудио: входящие .wav и синтезированные .mp3.
type AudioStore interface {
	SaveUpload(ctx context.Context, r io.Reader) (name string, err error)
	Create(ctx context.Context, label string) (name string, w io.WriteCloser, err error)
	Path(name string) (string, error)
}
