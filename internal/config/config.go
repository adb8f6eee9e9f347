package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultLanguages = "Spanish:es,Turkish:tr,Japanese:ja,Hindi:hi,Tamil:ta,Telugu:te"
	DefaultVoiceID   = "Qggl4b0xRMiqOwhPtVWT"
)

// Language: метка для ответа и код для сервиса перевода.
type Language struct {
	Label string
	Code  string
}

type AssemblyAIConfig struct {
	APIKey       string
	BaseURL      string
	PollInterval time.Duration
}

type DeepgramConfig struct {
	APIKey  string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type MyMemoryConfig struct {
	BaseURL string
	Email   string
}

// VoiceSettings фиксируются на деплой, из запроса не меняются.
type VoiceSettings struct {
	Stability       float64
	SimilarityBoost float64
	Style           float64
	SpeakerBoost    bool
}

type ElevenLabsConfig struct {
	APIKey       string
	BaseURL      string
	VoiceID      string
	ModelID      string
	OutputFormat string
	Settings     VoiceSettings
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

type Config struct {
	Port              string
	OutputDir         string
	PublicBaseURL     string
	SourceLanguage    string
	Languages         []Language
	IncludeTranscript bool
	Parallel          bool
	CORSOrigins       []string

	STTProvider       string
	TranslateProvider string

	AssemblyAI AssemblyAIConfig
	Deepgram   DeepgramConfig
	OpenAI     OpenAIConfig
	MyMemory   MyMemoryConfig
	ElevenLabs ElevenLabsConfig
	Telegram   TelegramConfig
}

// Load читает .env (если есть) и окружение.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		OutputDir:         getEnv("OUTPUT_DIR", "audio_output"),
		PublicBaseURL:     strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		SourceLanguage:    getEnv("SOURCE_LANGUAGE", "en"),
		STTProvider:       strings.ToLower(getEnv("STT_PROVIDER", "assemblyai")),
		TranslateProvider: strings.ToLower(getEnv("TRANSLATE_PROVIDER", "mymemory")),
		CORSOrigins:       splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AssemblyAI: AssemblyAIConfig{
			APIKey:  os.Getenv("ASSEMBLYAI_API_KEY"),
			BaseURL: getEnv("ASSEMBLYAI_BASE_URL", "https://api.assemblyai.com"),
		},
		Deepgram: DeepgramConfig{
			APIKey:  os.Getenv("DEEPGRAM_API_KEY"),
			BaseURL: getEnv("DEEPGRAM_BASE_URL", "https://api.deepgram.com"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		MyMemory: MyMemoryConfig{
			BaseURL: getEnv("MYMEMORY_BASE_URL", "https://api.mymemory.translated.net"),
			Email:   os.Getenv("MYMEMORY_EMAIL"),
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:       os.Getenv("ELEVENLABS_API_KEY"),
			BaseURL:      getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
			VoiceID:      getEnv("ELEVENLABS_VOICE_ID", DefaultVoiceID),
			ModelID:      getEnv("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),
			OutputFormat: getEnv("ELEVENLABS_OUTPUT_FORMAT", "mp3_22050_32"),
		},
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_ALERT_TOKEN"),
		},
	}

	var err error

	if cfg.Languages, err = ParseLanguages(getEnv("TARGET_LANGUAGES", DefaultLanguages)); err != nil {
		return nil, err
	}
	if cfg.IncludeTranscript, err = getBool("INCLUDE_TRANSCRIPT", true); err != nil {
		return nil, err
	}
	if cfg.Parallel, err = getBool("PIPELINE_PARALLEL", false); err != nil {
		return nil, err
	}
	if cfg.AssemblyAI.PollInterval, err = getDuration("ASSEMBLYAI_POLL_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}

	s := &cfg.ElevenLabs.Settings
	if s.Stability, err = getFloat("ELEVENLABS_STABILITY", 0.5); err != nil {
		return nil, err
	}
	if s.SimilarityBoost, err = getFloat("ELEVENLABS_SIMILARITY", 0.8); err != nil {
		return nil, err
	}
	if s.Style, err = getFloat("ELEVENLABS_STYLE", 0.5); err != nil {
		return nil, err
	}
	if s.SpeakerBoost, err = getBool("ELEVENLABS_SPEAKER_BOOST", true); err != nil {
		return nil, err
	}

	if raw := os.Getenv("TELEGRAM_ALERT_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ALERT_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ElevenLabs.APIKey == "" {
		return fmt.Errorf("ELEVENLABS_API_KEY is not set")
	}

	switch c.STTProvider {
	case "assemblyai":
		if c.AssemblyAI.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is not set")
		}
	case "deepgram":
		if c.Deepgram.APIKey == "" {
			return fmt.Errorf("DEEPGRAM_API_KEY is not set")
		}
	case "whisper":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", c.STTProvider)
	}

	switch c.TranslateProvider {
	case "mymemory":
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unknown TRANSLATE_PROVIDER %q", c.TranslateProvider)
	}

	if c.AssemblyAI.PollInterval <= 0 {
		return fmt.Errorf("ASSEMBLYAI_POLL_INTERVAL must be positive")
	}
	return nil
}

// ParseLanguages разбирает "Spanish:es,Turkish:tr" с сохранением порядка.
func ParseLanguages(raw string) ([]Language, error) {
	var out []Language
	seen := make(map[string]bool)

	for _, item := range splitList(raw) {
		label, code, ok := strings.Cut(item, ":")
		label = strings.TrimSpace(label)
		code = strings.TrimSpace(code)
		if !ok || label == "" || code == "" {
			return nil, fmt.Errorf("invalid language entry %q, want Label:code", item)
		}
		if strings.EqualFold(label, "transcript") {
			return nil, fmt.Errorf("language label %q collides with transcript key", label)
		}
		if seen[label] {
			return nil, fmt.Errorf("duplicate language label %q", label)
		}
		seen[label] = true
		out = append(out, Language{Label: label, Code: code})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no target languages configured")
	}
	return out, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
