package captcha

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger(true, "")
	os.Exit(m.Run())
}

func testClient(serverURL string) *TwoCaptchaClient {
	c := NewTwoCaptchaClient(&config.CaptchaConfig{
		Provider:     "2captcha",
		APIKey:       "test-key",
		PollInterval: 10,
		MaxPolls:     30,
	})
	c.submitURL = serverURL + "/in.php"
	c.resultURL = serverURL + "/res.php"
	c.pollInterval = 5 * time.Millisecond
	return c
}

func TestSolveRecaptchaSubmitPollSolve(t *testing.T) {
	var polls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/in.php":
			if err := r.ParseForm(); err != nil {
				t.Fatalf("Failed to parse submit form: %v", err)
			}
			if got := r.FormValue("method"); got != "userrecaptcha" {
				t.Errorf("Expected method userrecaptcha, got %s", got)
			}
			if got := r.FormValue("key"); got != "test-key" {
				t.Errorf("Expected api key test-key, got %s", got)
			}
			if got := r.FormValue("googlekey"); got != "site-key-123" {
				t.Errorf("Expected googlekey site-key-123, got %s", got)
			}
			if got := r.FormValue("pageurl"); got != "https://portal.example/login" {
				t.Errorf("Expected pageurl, got %s", got)
			}
			if got := r.FormValue("json"); got != "1" {
				t.Errorf("Expected json=1, got %s", got)
			}
			fmt.Fprint(w, `{"status":1,"request":"captcha-42"}`)
		case "/res.php":
			if got := r.URL.Query().Get("id"); got != "captcha-42" {
				t.Errorf("Expected poll for captcha-42, got %s", got)
			}
			if got := r.URL.Query().Get("action"); got != "get" {
				t.Errorf("Expected action get, got %s", got)
			}
			if atomic.AddInt32(&polls, 1) < 3 {
				fmt.Fprint(w, `{"status":0,"request":"CAPCHA_NOT_READY"}`)
				return
			}
			fmt.Fprint(w, `{"status":1,"request":"g-token-abc"}`)
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	token, err := testClient(server.URL).SolveRecaptcha(context.Background(), "site-key-123", "https://portal.example/login")
	if err != nil {
		t.Fatalf("SolveRecaptcha failed: %v", err)
	}
	if token != "g-token-abc" {
		t.Errorf("Expected token g-token-abc, got %s", token)
	}
	if got := atomic.LoadInt32(&polls); got != 3 {
		t.Errorf("Expected 3 polls, got %d", got)
	}
}

func TestSolveRecaptchaSubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":0,"request":"ERROR_WRONG_USER_KEY","error_text":"wrong user key"}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).SolveRecaptcha(context.Background(), "site-key", "https://portal.example")
	if !errors.Is(err, ErrServiceError) {
		t.Fatalf("Expected ErrServiceError, got %v", err)
	}
	if !strings.Contains(err.Error(), "wrong user key") {
		t.Errorf("Expected service message in error, got %v", err)
	}
}

func TestSolveRecaptchaTerminalPollError(t *testing.T) {
	var polls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/in.php" {
			fmt.Fprint(w, `{"status":1,"request":"captcha-9"}`)
			return
		}
		atomic.AddInt32(&polls, 1)
		fmt.Fprint(w, `{"status":0,"request":"ERROR_CAPTCHA_UNSOLVABLE"}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).SolveRecaptcha(context.Background(), "k", "u")
	if !errors.Is(err, ErrServiceError) {
		t.Fatalf("Expected ErrServiceError, got %v", err)
	}
	if got := atomic.LoadInt32(&polls); got != 1 {
		t.Errorf("Expected polling to stop on a terminal error, got %d polls", got)
	}
}

func TestSolveRecaptchaPollBudgetExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/in.php" {
			fmt.Fprint(w, `{"status":1,"request":"captcha-7"}`)
			return
		}
		fmt.Fprint(w, `{"status":0,"request":"CAPCHA_NOT_READY"}`)
	}))
	defer server.Close()

	client := testClient(server.URL)
	client.maxPolls = 3

	_, err := client.SolveRecaptcha(context.Background(), "k", "u")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
}

func TestSolveRecaptchaHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/in.php" {
			fmt.Fprint(w, `{"status":1,"request":"captcha-1"}`)
			return
		}
		fmt.Fprint(w, `{"status":0,"request":"CAPCHA_NOT_READY"}`)
	}))
	defer server.Close()

	client := testClient(server.URL)
	client.pollInterval = 5 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.SolveRecaptcha(ctx, "k", "u")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Expected cancellation to interrupt polling, took %v", elapsed)
	}
}

func TestSolveRecaptchaMissingKey(t *testing.T) {
	client := NewTwoCaptchaClient(&config.CaptchaConfig{Provider: "2captcha"})
	_, err := client.SolveRecaptcha(context.Background(), "k", "u")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestRecognizeSpeech(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer wit-key" {
			t.Errorf("Expected bearer auth, got %s", got)
		}
		if got := r.Header.Get("Content-Type"); got != "audio/wav" {
			t.Errorf("Expected audio/wav content type, got %s", got)
		}
		fmt.Fprint(w, `{"text":"seven four two nine"}`)
	}))
	defer server.Close()

	client := NewWitClient(&config.CaptchaConfig{Provider: "witai", APIKey: "wit-key"})
	client.endpoint = server.URL

	text, err := client.RecognizeSpeech(context.Background(), []byte("RIFF-audio"), "audio/wav")
	if err != nil {
		t.Fatalf("RecognizeSpeech failed: %v", err)
	}
	if text != "seven four two nine" {
		t.Errorf("Expected transcript, got %q", text)
	}
}

func TestRecognizeSpeechLegacyEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"_text":"three one five"}`)
	}))
	defer server.Close()

	client := NewWitClient(&config.CaptchaConfig{Provider: "witai", APIKey: "wit-key"})
	client.endpoint = server.URL

	text, err := client.RecognizeSpeech(context.Background(), []byte("audio"), "")
	if err != nil {
		t.Fatalf("RecognizeSpeech failed: %v", err)
	}
	if text != "three one five" {
		t.Errorf("Expected legacy transcript, got %q", text)
	}
}

func TestRecognizeSpeechStreamedChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"text":"seven"}`+"\n"+`{"text":"seven four two"}`)
	}))
	defer server.Close()

	client := NewWitClient(&config.CaptchaConfig{Provider: "witai", APIKey: "wit-key"})
	client.endpoint = server.URL

	text, err := client.RecognizeSpeech(context.Background(), []byte("audio"), "audio/mpeg")
	if err != nil {
		t.Fatalf("RecognizeSpeech failed: %v", err)
	}
	if text != "seven four two" {
		t.Errorf("Expected final chunk transcript, got %q", text)
	}
}

func TestNewSolverSelection(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.CaptchaConfig
		wantNil   bool
		wantError bool
	}{
		{"disabled", &config.CaptchaConfig{Provider: ""}, true, false},
		{"two captcha", &config.CaptchaConfig{Provider: "2captcha", APIKey: "k"}, false, false},
		{"two captcha without key", &config.CaptchaConfig{Provider: "2captcha"}, true, true},
		{"wit audio only", &config.CaptchaConfig{Provider: "witai", APIKey: "k"}, true, false},
		{"unknown", &config.CaptchaConfig{Provider: "solveforme"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solver, err := NewSolver(tt.cfg)
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if tt.wantNil && solver != nil {
				t.Error("Expected nil solver")
			}
			if !tt.wantNil && solver == nil {
				t.Error("Expected a solver")
			}
		})
	}
}
