package booking

import "errors"

var (
	// ErrBrowserStart indicates Chrome could not be launched.
	ErrBrowserStart = errors.New("failed to start browser")

	// ErrElementNotFound means no selector in a cascade matched.
	ErrElementNotFound = errors.New("element not found")

	// ErrLoginFailed means the portal did not land on the dashboard.
	ErrLoginFailed = errors.New("portal login failed")

	// ErrNavigationFailed means a page did not arrive where expected.
	ErrNavigationFailed = errors.New("portal navigation failed")

	// ErrCaptchaUnsolved means a CAPTCHA blocked the flow and no
	// solver was available or the solver failed.
	ErrCaptchaUnsolved = errors.New("captcha unsolved")

	// ErrNoSlotAvailable means the schedule page offered no bookable
	// time slot.
	ErrNoSlotAvailable = errors.New("no time slot available")

	// ErrBookingUnconfirmed means the confirm click produced no
	// recognizable confirmation.
	ErrBookingUnconfirmed = errors.New("booking not confirmed")
)
