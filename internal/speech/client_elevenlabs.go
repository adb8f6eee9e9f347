package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vovarama1992/voice_translator/internal/config"
)

const chunkSize = 4096

type ElevenLabsClient struct {
	cfg    config.ElevenLabsConfig
	client *http.Client
}

func NewElevenLabsClient(cfg config.ElevenLabsConfig) *ElevenLabsClient {
	return &ElevenLabsClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// TEXT → SPEECH
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string, w io.Writer) error {
	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.VoiceID))

	q := url.Values{}
	q.Set("output_format", c.cfg.OutputFormat)
	q.Set("optimize_streaming_latency", "0")

	payload, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: c.cfg.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       c.cfg.Settings.Stability,
			SimilarityBoost: c.cfg.Settings.SimilarityBoost,
			Style:           c.cfg.Settings.Style,
			UseSpeakerBoost: c.cfg.Settings.SpeakerBoost,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal tts payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+q.Encode(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("xi-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("elevenlabs error: %s", string(b))
	}

	return copyChunks(w, resp.Body)
}

// пустые чанки пропускаем
func copyChunks(w io.Writer, r io.Reader) error {
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write audio: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read audio stream: %w", err)
		}
	}
}
