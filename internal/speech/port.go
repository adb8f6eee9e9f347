package speech

import (
	"context"
	"io"
)

// голос → текст
type Transcriber interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
}

// текст → голос, аудио пишется в w по мере поступления
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, w io.Writer) error
}
