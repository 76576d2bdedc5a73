package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger(true, "")
	os.Exit(m.Run())
}

func telegramTestConfig(base string) *config.TelegramConfig {
	return &config.TelegramConfig{
		Enabled:  true,
		BotToken: "123:abc",
		ChatID:   "-100555",
		APIBase:  base,
		Timeout:  5,
	}
}

func TestSendMessageSuccess(t *testing.T) {
	var gotPath string
	var gotMsg TelegramMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotMsg)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(telegramTestConfig(server.URL))

	if err := n.SendMessage(context.Background(), "<b>hello</b>"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("Unexpected path: %s", gotPath)
	}
	if gotMsg.ChatID != "-100555" {
		t.Errorf("Expected chat id -100555, got %s", gotMsg.ChatID)
	}
	if gotMsg.ParseMode != "HTML" {
		t.Errorf("Expected HTML parse mode, got %s", gotMsg.ParseMode)
	}
	if gotMsg.Text != "<b>hello</b>" {
		t.Errorf("Unexpected text: %s", gotMsg.Text)
	}
}

func TestSendMessageForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"ok":false,"description":"Forbidden: bot was blocked","error_code":403}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(telegramTestConfig(server.URL))

	err := n.SendMessage(context.Background(), "hello")
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("Expected ErrDeliveryFailed, got %v", err)
	}
}

func TestSendMessageAPIErrorEnvelope(t *testing.T) {
	// HTTP 200 but ok:false still counts as not delivered
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found","error_code":400}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(telegramTestConfig(server.URL))

	err := n.SendMessage(context.Background(), "hello")
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("Expected ErrDeliveryFailed, got %v", err)
	}
}

func TestSendMessageDisabledSkips(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	cfg := telegramTestConfig(server.URL)
	cfg.Enabled = false
	n := NewTelegramNotifier(cfg)

	if err := n.SendMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("Disabled channel must not error, got %v", err)
	}
	if called {
		t.Error("Disabled channel must not call the API")
	}
}

func TestSendMessageMissingCredentials(t *testing.T) {
	cfg := &config.TelegramConfig{Enabled: true, Timeout: 5}
	n := NewTelegramNotifier(cfg)

	err := n.SendMessage(context.Background(), "hello")
	if !errors.Is(err, ErrChannelMisconfigured) {
		t.Fatalf("Expected ErrChannelMisconfigured, got %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	n := NewTelegramNotifier(&config.TelegramConfig{Enabled: true, BotToken: "t", ChatID: "c"})
	if err := n.ValidateConfig(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	n = NewTelegramNotifier(&config.TelegramConfig{Enabled: true, BotToken: "t"})
	if err := n.ValidateConfig(); !errors.Is(err, ErrChannelMisconfigured) {
		t.Errorf("Expected ErrChannelMisconfigured, got %v", err)
	}

	n = NewTelegramNotifier(&config.TelegramConfig{Enabled: false})
	if err := n.ValidateConfig(); err != nil {
		t.Errorf("Disabled channel must validate, got %v", err)
	}
}
