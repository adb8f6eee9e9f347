package infra

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Vovarama1992/voice_translator/internal/ports"
)

type localAudioStore struct {
	dir    string
	create func(name string) (io.WriteCloser, error)
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// NewLocalAudioStore создаёт папку, если её нет. Файлы никогда не удаляются.
func NewLocalAudioStore(dir string) (ports.AudioStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &localAudioStore{dir: dir, create: createFile}, nil
}

func (s *localAudioStore) SaveUpload(ctx context.Context, r io.Reader) (string, error) {
	name := uuid.NewString() + ".wav"
	full := filepath.Join(s.dir, name)

	out, err := s.create(full)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	// недописанный файл не должен уйти на распознавание
	n, err := io.Copy(out, r)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	log.Printf("[store] upload saved %s (%s)", full, humanize.Bytes(uint64(n)))
	return name, nil
}

func (s *localAudioStore) Create(ctx context.Context, label string) (string, io.WriteCloser, error) {
	name := fmt.Sprintf("%s_%s.mp3", sanitizeLabel(label), uuid.NewString())

	out, err := s.create(filepath.Join(s.dir, name))
	if err != nil {
		return "", nil, fmt.Errorf("create audio file: %w", err)
	}
	return name, out, nil
}

// Path: только голое имя файла внутри папки, без подкаталогов.
func (s *localAudioStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ports.ErrNotFound
	}

	full := filepath.Join(s.dir, name)
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ports.ErrNotFound
		}
		return "", err
	}
	if info.IsDir() {
		return "", ports.ErrNotFound
	}
	return full, nil
}

func sanitizeLabel(label string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, label)
	if clean == "" {
		return "audio"
	}
	return clean
}
