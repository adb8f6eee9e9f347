package domain

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Vovarama1992/voice_translator/internal/config"
	"github.com/Vovarama1992/voice_translator/internal/infra"
	"github.com/Vovarama1992/voice_translator/internal/translate"
)

type fakeSTT struct {
	text  string
	err   error
	paths []string
}

func (f *fakeSTT) Transcribe(_ context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	return f.text, f.err
}

type fakeTranslator struct {
	mu     sync.Mutex
	calls  []string
	failOn string
}

func (f *fakeTranslator) Translate(_ context.Context, text, from, to string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, to)
	f.mu.Unlock()
	if to == f.failOn {
		return "", errors.New("translation failed for " + to)
	}
	return to + ":" + text, nil
}

type fakeTTS struct {
	mu     sync.Mutex
	texts  []string
	failOn string
}

func (f *fakeTTS) Synthesize(_ context.Context, text string, w io.Writer) error {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	if f.failOn != "" && strings.HasPrefix(text, f.failOn) {
		_, _ = w.Write([]byte("partial"))
		return errors.New("elevenlabs error: quota_exceeded")
	}
	_, err := w.Write([]byte("mp3:" + text))
	return err
}

type fakeNotifier struct {
	sent    chan string
	release chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 8)}
}

func (f *fakeNotifier) Notify(_ context.Context, err error, details string) error {
	if f.release != nil {
		<-f.release
	}
	f.sent <- details + ": " + err.Error()
	return nil
}

func (f *fakeNotifier) next(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-f.sent:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no notification sent")
		return ""
	}
}

var testLangs = []config.Language{
	{Label: "Spanish", Code: "es"},
	{Label: "Turkish", Code: "tr"},
	{Label: "Japanese", Code: "ja"},
}

type fixture struct {
	dir   string
	stt   *fakeSTT
	tr    *fakeTranslator
	tts   *fakeTTS
	notes *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		dir:   t.TempDir(),
		stt:   &fakeSTT{text: "Hello world"},
		tr:    &fakeTranslator{},
		tts:   &fakeTTS{},
		notes: newFakeNotifier(),
	}
}

func (f *fixture) service(t *testing.T, parallel bool) *voiceService {
	t.Helper()
	store, err := infra.NewLocalAudioStore(f.dir)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewVoiceService(f.stt, f.tts, translate.NewService(f.tr, "en"), store, testLangs, parallel, f.notes)
	return svc.(*voiceService)
}

func (f *fixture) files(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestProcessHappyPath(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		f := newFixture(t)
		svc := f.service(t, parallel)

		res, err := svc.Process(context.Background(), strings.NewReader("RIFF"))
		if err != nil {
			t.Fatalf("parallel=%v: Process: %v", parallel, err)
		}

		if res.Transcript != "Hello world" {
			t.Errorf("transcript = %q", res.Transcript)
		}
		if len(f.tr.calls) != len(testLangs) {
			t.Errorf("translate calls = %v", f.tr.calls)
		}
		if len(res.Audio) != len(testLangs) {
			t.Fatalf("audio = %+v", res.Audio)
		}

		for i, a := range res.Audio {
			if a.Label != testLangs[i].Label {
				t.Errorf("audio[%d].Label = %q, want %q", i, a.Label, testLangs[i].Label)
			}
			if !strings.HasPrefix(a.FileName, a.Label+"_") || !strings.HasSuffix(a.FileName, ".mp3") {
				t.Errorf("file name %q", a.FileName)
			}
			got, err := os.ReadFile(filepath.Join(f.dir, a.FileName))
			if err != nil {
				t.Fatalf("read %s: %v", a.FileName, err)
			}
			want := "mp3:" + testLangs[i].Code + ":Hello world"
			if string(got) != want {
				t.Errorf("%s = %q, want %q", a.FileName, got, want)
			}
		}

		if len(f.stt.paths) != 1 || !strings.HasSuffix(f.stt.paths[0], ".wav") {
			t.Errorf("stt paths = %v", f.stt.paths)
		}
		if n := len(f.notes.sent); n != 0 {
			t.Errorf("unexpected notifications: %d", n)
		}
	}
}

func TestProcessTranscriptionError(t *testing.T) {
	f := newFixture(t)
	f.stt.err = errors.New("Audio file is too short")
	svc := f.service(t, false)

	_, err := svc.Process(context.Background(), strings.NewReader("RIFF"))
	if err == nil || err.Error() != "Audio file is too short" {
		t.Fatalf("err = %v", err)
	}
	if len(f.tr.calls) != 0 || len(f.tts.texts) != 0 {
		t.Errorf("no translation or synthesis expected: tr=%v tts=%v", f.tr.calls, f.tts.texts)
	}
	if msg := f.notes.next(t); !strings.Contains(msg, "transcribe") {
		t.Errorf("notification = %q", msg)
	}
}

func TestProcessFailureDoesNotWaitForAlert(t *testing.T) {
	f := newFixture(t)
	f.stt.err = errors.New("Audio file is too short")
	f.notes.release = make(chan struct{})
	svc := f.service(t, false)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Process(context.Background(), strings.NewReader("RIFF"))
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Process blocked on the alert")
	}

	close(f.notes.release)
	if msg := f.notes.next(t); !strings.Contains(msg, "Audio file is too short") {
		t.Errorf("notification = %q", msg)
	}
}

func TestProcessTranslationErrorSkipsSynthesis(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		f := newFixture(t)
		f.tr.failOn = "ja"
		svc := f.service(t, parallel)

		_, err := svc.Process(context.Background(), strings.NewReader("RIFF"))
		if err == nil || !strings.Contains(err.Error(), "translation failed for ja") {
			t.Fatalf("parallel=%v: err = %v", parallel, err)
		}
		if len(f.tts.texts) != 0 {
			t.Errorf("parallel=%v: synthesis must not start, got %v", parallel, f.tts.texts)
		}
		for _, name := range f.files(t) {
			if strings.HasSuffix(name, ".mp3") {
				t.Errorf("parallel=%v: unexpected mp3 %s", parallel, name)
			}
		}
	}
}

func TestProcessSynthesisErrorLeavesOrphan(t *testing.T) {
	f := newFixture(t)
	f.tts.failOn = "tr:"
	svc := f.service(t, false)

	_, err := svc.Process(context.Background(), strings.NewReader("RIFF"))
	if err == nil || !strings.Contains(err.Error(), "quota_exceeded") {
		t.Fatalf("err = %v", err)
	}

	// es готов, tr оборван, ja не начинался
	if len(f.tts.texts) != 2 {
		t.Errorf("tts calls = %v", f.tts.texts)
	}

	var mp3 []string
	for _, name := range f.files(t) {
		if strings.HasSuffix(name, ".mp3") {
			mp3 = append(mp3, name)
		}
	}
	if len(mp3) != 2 {
		t.Errorf("expected 2 mp3 files on disk (one orphaned), got %v", mp3)
	}
}

func TestProcessUploadIsPersisted(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t, false)

	if _, err := svc.Process(context.Background(), strings.NewReader("RIFFdata")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(f.stt.paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "RIFFdata" {
		t.Errorf("upload = %q", got)
	}
}
