package error_notificator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/voice_translator/internal/config"
)

type telegramStub struct {
	mu   sync.Mutex
	sent []string
	chat []string
}

func (s *telegramStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"alerts","username":"alerts_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		s.mu.Lock()
		s.sent = append(s.sent, r.FormValue("text"))
		s.chat = append(s.chat, r.FormValue("chat_id"))
		s.mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func TestNotifySendsToAdminChat(t *testing.T) {
	stub := &telegramStub{}
	ts := httptest.NewServer(stub)
	defer ts.Close()

	bot, err := tgbotapi.NewBotAPIWithClient("123:abc", ts.URL+"/bot%s/%s", ts.Client())
	if err != nil {
		t.Fatalf("bot: %v", err)
	}

	svc := NewService(NewInfra(bot, 42))
	if err := svc.Notify(context.Background(), errors.New("deepgram error: 401"), "POST /translate"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(stub.sent))
	}
	if stub.chat[0] != "42" {
		t.Errorf("chat_id = %q", stub.chat[0])
	}
	if !strings.Contains(stub.sent[0], "deepgram error: 401") || !strings.Contains(stub.sent[0], "POST /translate") {
		t.Errorf("text = %q", stub.sent[0])
	}
}

func TestNotifyTruncatesDetails(t *testing.T) {
	stub := &telegramStub{}
	ts := httptest.NewServer(stub)
	defer ts.Close()

	bot, err := tgbotapi.NewBotAPIWithClient("123:abc", ts.URL+"/bot%s/%s", ts.Client())
	if err != nil {
		t.Fatalf("bot: %v", err)
	}

	long := strings.Repeat("я", maxDetails+100)
	if err := NewInfra(bot, 42).Notify(context.Background(), errors.New("boom"), long); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if n := len([]rune(stub.sent[0])); n > maxDetails+200 {
		t.Errorf("message has %d runes, expected truncation", n)
	}
}

func TestNotifyDisabled(t *testing.T) {
	infra, err := NewTelegramInfra(config.TelegramConfig{})
	if err != nil {
		t.Fatalf("NewTelegramInfra: %v", err)
	}
	if err := infra.Notify(context.Background(), errors.New("boom"), "details"); err != nil {
		t.Errorf("log-only notifier must not fail: %v", err)
	}
}
