package ports

import (
	"context"
	"io"
)

// AudioFile: синтезированный файл для одного языка.
type AudioFile struct {
	Label    string
	FileName string
}

type VoiceResult struct {
	Transcript string
	Audio      []AudioFile
}

// VoiceService: загрузка → распознавание → перевод (×N) → синтез (×N).
type VoiceService interface {
	Process(ctx context.Context, upload io.Reader) (*VoiceResult, error)
}
