package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"visawatch/pkg/captcha"
	"visawatch/pkg/config"
	"visawatch/pkg/logger"
	"visawatch/pkg/slots"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"go.uber.org/zap"
)

// portalURLs maps country codes to their scheduling portal roots.
var portalURLs = map[string]string{
	"in": "https://ais.usvisa-info.com/en-in/niv/",
	"ca": "https://ais.usvisa-info.com/en-ca/niv/",
	"us": "https://ustraveldocs.com/",
}

// Selector cascades for the portal pages. The markup shifts between
// deployments, so every lookup carries alternates.
var (
	emailSelectors = []string{
		"input[name='email']",
		"input[type='email']",
		"#email",
		"input[placeholder*='email' i]",
	}
	passwordSelectors = []string{
		"input[name='password']",
		"input[type='password']",
		"#password",
		"input[placeholder*='password' i]",
	}
	submitSelectors = []string{
		"input[type='submit']",
		"button[type='submit']",
		".login-button",
		"input[value*='Login' i]",
		"input[value*='Sign In' i]",
	}
	consulateSelectors = []string{
		"select[name='consulate']",
		"select[name='consular_id']",
		"#consulate",
		"#consular_id",
		"select[class*='consulate']",
		"select[class*='consular']",
	}
	dateSelectors = []string{
		"input[type='date']",
		"input[name='date']",
		"#date",
		".date-picker",
		"input[placeholder*='date' i]",
	}
	timeSlotSelectors = []string{
		".time-slot",
		".appointment-time",
		"input[type='radio'][name*='time']",
		".slot-available",
		"button[class*='time']",
	}
	captchaSelectors = []string{
		"iframe[src*='recaptcha']",
		".g-recaptcha",
		"#recaptcha",
		"iframe[title*='reCAPTCHA']",
		".captcha",
		"img[src*='captcha']",
	}
	confirmSelectors = []string{
		".book-button",
		".confirm-button",
		"input[type='submit'][value*='Book' i]",
		"input[type='submit'][value*='Confirm' i]",
		"button[type='submit']",
	}
	successSelectors = []string{
		".success-message",
		".confirmation-message",
		".alert-success",
		"[class*='confirmation']",
	}
)

// Bot runs best-effort booking attempts: login, schedule page, CAPTCHA,
// slot pick, confirm. Any failed step aborts the attempt; retrying is
// the caller's decision.
type Bot struct {
	config      *config.BookingConfig
	locator     *Locator
	solver      captcha.Solver
	transcriber AudioTranscriber
	sink        AttemptSink
	stepTimeout time.Duration
}

// NewBot creates a booking bot. solver may be nil; without a solver or
// an audio transcriber, a CAPTCHA on the page aborts the attempt.
func NewBot(cfg *config.BookingConfig, solver captcha.Solver) *Bot {
	stepTimeout := time.Duration(cfg.StepTimeout) * time.Second
	if stepTimeout <= 0 {
		stepTimeout = 60 * time.Second
	}

	return &Bot{
		config:      cfg,
		locator:     NewLocator(),
		solver:      solver,
		stepTimeout: stepTimeout,
	}
}

// SetSink wires an attempt journal.
func (b *Bot) SetSink(s AttemptSink) {
	b.sink = s
}

// SetTranscriber wires a speech client for the audio challenge path.
func (b *Bot) SetTranscriber(t AudioTranscriber) {
	b.transcriber = t
}

// BookFirstAvailable walks the detected main-consulate records and
// attempts each until one books. It satisfies the monitor's
// book-on-slot hook.
func (b *Bot) BookFirstAvailable(ctx context.Context, records []slots.SlotRecord) (bool, error) {
	var lastErr error

	for _, rec := range records {
		if rec.IsVAC {
			continue
		}
		if slots.FacilityID(rec.Location) == "" {
			logger.Warn("No facility id for location, skipping", zap.String("location", rec.Location))
			continue
		}

		attempt, err := b.Attempt(ctx, rec.Location, "")
		if attempt != nil && attempt.Booked {
			return true, nil
		}
		if err != nil {
			lastErr = err
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
	}

	return false, lastErr
}

// Attempt runs the full booking flow against one consulate. targetDate
// is optional (YYYY-MM-DD); empty lets the portal offer its earliest.
// The returned attempt always carries the step trail, also on failure.
func (b *Bot) Attempt(ctx context.Context, consulate, targetDate string) (*Attempt, error) {
	attempt := &Attempt{
		ID:         uuid.New().String(),
		Consulate:  consulate,
		FacilityID: slots.FacilityID(consulate),
		StartedAt:  time.Now(),
	}
	if attempt.FacilityID == "" {
		attempt.FacilityID = b.config.Portal.ConsularID
	}

	log := logger.WithAttempt(logger.Logger, attempt.ID)
	log.Info("🎫 Starting booking attempt",
		zap.String("consulate", consulate),
		zap.String("facility_id", attempt.FacilityID))

	defer func() {
		attempt.FinishedAt = time.Now()
		b.deliver(attempt)
	}()

	sessionStart := time.Now()
	session, err := NewSession(b.config)
	attempt.record(StepStartBrowser, sessionStart, err)
	if err != nil {
		attempt.fail(StepStartBrowser, err)
		return attempt, err
	}
	defer session.Close()

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{StepLogin, b.login},
		{StepAppointmentPage, b.openAppointmentPage},
		{StepCaptcha, b.handleCaptcha},
		{StepSelectSlot, func(c context.Context) error {
			return b.selectSlot(c, attempt.FacilityID, targetDate)
		}},
		{StepConfirm, b.confirmBooking},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			attempt.fail(s.name, err)
			return attempt, err
		}

		started := time.Now()
		stepCtx, cancel := context.WithTimeout(session.Context(), b.stepTimeout)
		err := s.fn(stepCtx)
		cancel()

		attempt.record(s.name, started, err)
		if err != nil {
			attempt.fail(s.name, err)
			log.Error("Booking step failed, aborting attempt",
				zap.String("step", s.name),
				zap.Error(err))
			return attempt, fmt.Errorf("%s: %w", s.name, err)
		}
	}

	attempt.Booked = true
	log.Info("🎉 Appointment booked",
		zap.String("consulate", consulate),
		zap.Duration("duration", attempt.Duration()))
	return attempt, nil
}

func (b *Bot) login(ctx context.Context) error {
	loginURL := portalBaseURL(b.config.Portal) + "login"
	logger.Info("Navigating to login page", zap.String("url", loginURL))

	err := chromedp.Run(ctx,
		chromedp.Navigate(loginURL),
		b.locator.WaitForPageLoad(),
		b.locator.FillFirst(emailSelectors, b.config.Portal.Username),
		b.locator.FillFirst(passwordSelectors, b.config.Portal.Password),
		b.locator.ClickFirst(submitSelectors),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	var landedURL string
	err = waitForOutcome(ctx, func() bool {
		if err := chromedp.Run(ctx, chromedp.Location(&landedURL)); err != nil {
			return false
		}
		lowered := strings.ToLower(landedURL)
		return !strings.Contains(lowered, "login") && strings.Contains(lowered, "dashboard")
	})
	if err != nil {
		return fmt.Errorf("%w: landed at %s", ErrLoginFailed, landedURL)
	}

	logger.Info("Login successful")
	return nil
}

func (b *Bot) openAppointmentPage(ctx context.Context) error {
	appointmentURL := portalBaseURL(b.config.Portal) + "appointment/schedule"
	logger.Info("Navigating to appointment page", zap.String("url", appointmentURL))

	err := chromedp.Run(ctx,
		chromedp.Navigate(appointmentURL),
		b.locator.WaitForPageLoad(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNavigationFailed, err)
	}

	var currentURL string
	if err := chromedp.Run(ctx, chromedp.Location(&currentURL)); err != nil {
		return fmt.Errorf("%w: %v", ErrNavigationFailed, err)
	}
	lowered := strings.ToLower(currentURL)
	if !strings.Contains(lowered, "schedule") && !strings.Contains(lowered, "appointment") {
		return fmt.Errorf("%w: landed at %s", ErrNavigationFailed, currentURL)
	}
	return nil
}

// handleCaptcha detects a reCAPTCHA and clears it, preferring the
// token service and falling back to the audio transcriber. A page
// without a CAPTCHA passes.
func (b *Bot) handleCaptcha(ctx context.Context) error {
	var present bool
	if err := chromedp.Run(ctx, b.locator.AnyPresent(captchaSelectors, &present)); err != nil {
		return err
	}
	if !present {
		logger.Debug("No CAPTCHA on page")
		return nil
	}

	if b.solver != nil {
		err := b.solveWithTokenService(ctx)
		if err == nil || b.transcriber == nil {
			return err
		}
		logger.Warn("Token service failed, trying audio challenge", zap.Error(err))
	}

	if b.transcriber == nil {
		return fmt.Errorf("%w: no solver configured", ErrCaptchaUnsolved)
	}

	if err := b.solveAudioChallenge(ctx); err != nil {
		return fmt.Errorf("%w: audio challenge: %v", ErrCaptchaUnsolved, err)
	}
	return nil
}

// solveWithTokenService asks the solving service for a response token
// and injects it into the page.
func (b *Bot) solveWithTokenService(ctx context.Context) error {
	var siteKey, pageURL string
	err := chromedp.Run(ctx,
		chromedp.Location(&pageURL),
		chromedp.Evaluate(`document.querySelector('.g-recaptcha')?.getAttribute('data-sitekey') ||
			document.querySelector('[data-sitekey]')?.getAttribute('data-sitekey') || ''`, &siteKey),
	)
	if err != nil {
		return fmt.Errorf("%w: site key lookup: %v", ErrCaptchaUnsolved, err)
	}
	if siteKey == "" {
		return fmt.Errorf("%w: no site key on page", ErrCaptchaUnsolved)
	}

	logger.Info("CAPTCHA detected, delegating to solver", zap.String("site_key", siteKey))
	token, err := b.solver.SolveRecaptcha(ctx, siteKey, pageURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptchaUnsolved, err)
	}

	inject := fmt.Sprintf(`(function() {
		const area = document.querySelector('textarea[name="g-recaptcha-response"]');
		if (!area) return false;
		area.style.display = '';
		area.value = %q;
		return true;
	})()`, token)

	var ok bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(inject, &ok)); err != nil {
		return fmt.Errorf("%w: token injection: %v", ErrCaptchaUnsolved, err)
	}
	if !ok {
		return fmt.Errorf("%w: response field not found", ErrCaptchaUnsolved)
	}

	logger.Info("CAPTCHA token injected")
	return nil
}

func (b *Bot) selectSlot(ctx context.Context, facilityID, targetDate string) error {
	if err := chromedp.Run(ctx, b.locator.SelectValue(consulateSelectors, facilityID)); err != nil {
		return err
	}
	logger.Info("Selected consulate", zap.String("facility_id", facilityID))

	if targetDate != "" {
		if err := chromedp.Run(ctx, b.locator.FillFirst(dateSelectors, targetDate)); err != nil {
			return err
		}
		logger.Info("Filled preferred date", zap.String("date", targetDate))
	}

	var matched string
	if err := chromedp.Run(ctx, b.locator.WaitForAny(timeSlotSelectors, &matched)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoSlotAvailable, err)
	}
	if err := chromedp.Run(ctx, chromedp.Click(matched, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("%w: slot click: %v", ErrNoSlotAvailable, err)
	}

	logger.Info("Picked first available time slot")
	return nil
}

// confirmBooking clicks the confirm control and accepts either a
// confirmation banner or a success/confirmation URL as the outcome.
func (b *Bot) confirmBooking(ctx context.Context) error {
	if err := chromedp.Run(ctx, b.locator.ClickFirst(confirmSelectors)); err != nil {
		return fmt.Errorf("%w: %v", ErrBookingUnconfirmed, err)
	}

	err := waitForOutcome(ctx, func() bool {
		var found bool
		if err := chromedp.Run(ctx, b.locator.AnyPresent(successSelectors, &found)); err == nil && found {
			return true
		}

		var url string
		if err := chromedp.Run(ctx, chromedp.Location(&url)); err != nil {
			return false
		}
		lowered := strings.ToLower(url)
		return strings.Contains(lowered, "success") || strings.Contains(lowered, "confirmation")
	})
	if err != nil {
		return fmt.Errorf("%w: no confirmation before timeout", ErrBookingUnconfirmed)
	}

	return nil
}

// deliver hands the finished attempt to the sink, best effort.
func (b *Bot) deliver(attempt *Attempt) {
	if b.sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.sink.RecordAttempt(ctx, attempt); err != nil {
		logger.Warn("Failed to journal booking attempt",
			zap.String("attempt_id", attempt.ID),
			zap.Error(err))
	}
}

// waitForOutcome polls check until it approves or the context expires.
func waitForOutcome(ctx context.Context, check func() bool) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if check() {
				return nil
			}
		}
	}
}

// portalBaseURL returns the portal root for the configured country,
// with a trailing slash.
func portalBaseURL(cfg *config.PortalConfig) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/") + "/"
	}
	if u, ok := portalURLs[cfg.CountryCode]; ok {
		return u
	}
	return portalURLs["in"]
}
