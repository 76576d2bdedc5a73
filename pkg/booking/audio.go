package booking

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"visawatch/pkg/logger"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"go.uber.org/zap"
)

// AudioTranscriber turns CAPTCHA challenge audio into text. The Wit.ai
// speech client satisfies it.
type AudioTranscriber interface {
	RecognizeSpeech(ctx context.Context, audio []byte, contentType string) (string, error)
}

// Selector cascades for the reCAPTCHA frames. The anchor frame holds
// the checkbox, the challenge frame holds the audio controls.
var (
	anchorFrameSelectors = []string{
		"iframe[src*='recaptcha/api2/anchor']",
		"iframe[src*='recaptcha']",
		"iframe[title*='reCAPTCHA']",
		".g-recaptcha iframe",
	}
	challengeFrameSelectors = []string{
		"iframe[src*='recaptcha/api2/bframe']",
		"iframe[title*='challenge' i]",
	}
	checkboxSelectors = []string{
		".recaptcha-checkbox-border",
		".recaptcha-checkbox",
		"#recaptcha-anchor",
	}
	audioButtonSelectors = []string{
		"#recaptcha-audio-button",
		".rc-audiochallenge-tdownload-link",
		"button[title*='audio']",
	}
	audioLinkSelectors = []string{
		".rc-audiochallenge-tdownload-link",
		"a[href*='audio']",
		"button[title*='download']",
	}
	audioResponseSelectors = []string{
		"#audio-response",
		".rc-audiochallenge-response-field",
		"input[type='text']",
	}
	verifySelectors = []string{
		"#recaptcha-verify-button",
		"button[id*='verify']",
	}
)

// solveAudioChallenge works the checkbox and, when a challenge comes
// up, the audio path: download the clip, transcribe it, type the
// answer, verify. Success is the response token appearing on the host
// page.
func (b *Bot) solveAudioChallenge(ctx context.Context) error {
	var anchor *cdp.Node
	if err := chromedp.Run(ctx, b.locator.FrameNode(anchorFrameSelectors, &anchor)); err != nil {
		return fmt.Errorf("anchor frame: %w", err)
	}
	if err := chromedp.Run(ctx, b.locator.ClickInFrame(anchor, checkboxSelectors)); err != nil {
		return fmt.Errorf("checkbox: %w", err)
	}

	// Low-risk sessions pass on the checkbox alone.
	if b.waitForToken(ctx, 3*time.Second) == nil {
		logger.Info("CAPTCHA passed on checkbox alone")
		return nil
	}

	var challenge *cdp.Node
	if err := chromedp.Run(ctx, b.locator.FrameNode(challengeFrameSelectors, &challenge)); err != nil {
		return fmt.Errorf("challenge frame: %w", err)
	}
	if err := chromedp.Run(ctx, b.locator.ClickInFrame(challenge, audioButtonSelectors)); err != nil {
		return fmt.Errorf("audio button: %w", err)
	}

	var audioURL string
	if err := chromedp.Run(ctx, b.locator.AttrInFrame(challenge, audioLinkSelectors, "href", &audioURL)); err != nil {
		return fmt.Errorf("audio link: %w", err)
	}
	if audioURL == "" {
		return fmt.Errorf("audio link carries no href")
	}

	audio, contentType, err := downloadAudio(ctx, audioURL)
	if err != nil {
		return err
	}
	logger.Info("Downloaded challenge audio",
		zap.Int("bytes", len(audio)),
		zap.String("content_type", contentType))

	answer, err := b.transcriber.RecognizeSpeech(ctx, audio, contentType)
	if err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return fmt.Errorf("transcript came back empty")
	}
	logger.Info("Transcribed challenge audio", zap.String("answer", answer))

	if err := chromedp.Run(ctx,
		b.locator.FillInFrame(challenge, audioResponseSelectors, answer),
		b.locator.ClickInFrame(challenge, verifySelectors),
	); err != nil {
		return fmt.Errorf("answer submit: %w", err)
	}

	if err := b.waitForToken(ctx, b.locator.Timeout); err != nil {
		return fmt.Errorf("no response token after verify: %w", err)
	}

	logger.Info("Audio challenge passed")
	return nil
}

// waitForToken polls the host page for the reCAPTCHA response token.
func (b *Bot) waitForToken(ctx context.Context, budget time.Duration) error {
	tokenCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	return waitForOutcome(tokenCtx, func() bool {
		token, err := b.captchaToken(ctx)
		return err == nil && token != ""
	})
}

// captchaToken reads the response token from the host page. Empty
// means unsolved.
func (b *Bot) captchaToken(ctx context.Context) (string, error) {
	var token string
	err := chromedp.Run(ctx, chromedp.Evaluate(
		`document.querySelector('textarea[name="g-recaptcha-response"]')?.value || ''`, &token))
	return token, err
}

// downloadAudio fetches the challenge clip. The reported content type
// rides along so the transcriber knows the encoding.
func downloadAudio(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("audio request: %v", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("audio download: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("audio download returned %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, "", fmt.Errorf("audio read: %v", err)
	}
	if len(audio) == 0 {
		return nil, "", fmt.Errorf("audio download was empty")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return audio, contentType, nil
}
