package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// Locator resolves the portal's unstable markup through ordered
// selector cascades: try each selector in turn, poll until one matches
// or the budget runs out. All waits are condition based.
type Locator struct {
	Timeout time.Duration
	Poll    time.Duration
}

// NewLocator creates a locator with the default budget.
func NewLocator() *Locator {
	return &Locator{
		Timeout: 10 * time.Second,
		Poll:    200 * time.Millisecond,
	}
}

// WaitForAny blocks until one of the selectors matches an element and
// stores the winning selector in matched.
func (l *Locator) WaitForAny(selectors []string, matched *string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		timeoutCtx, cancel := context.WithTimeout(ctx, l.Timeout)
		defer cancel()

		ticker := time.NewTicker(l.Poll)
		defer ticker.Stop()

		for {
			select {
			case <-timeoutCtx.Done():
				return fmt.Errorf("%w: none of %d selectors appeared within %v",
					ErrElementNotFound, len(selectors), l.Timeout)
			case <-ticker.C:
				for _, selector := range selectors {
					var nodes []*cdp.Node
					err := chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)).Do(ctx)
					if err == nil && len(nodes) > 0 {
						if matched != nil {
							*matched = selector
						}
						return nil
					}
				}
			}
		}
	})
}

// FillFirst locates a field through the cascade, clears it and types
// the value.
func (l *Locator) FillFirst(selectors []string, value string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var matched string
		if err := l.WaitForAny(selectors, &matched).Do(ctx); err != nil {
			return err
		}
		return chromedp.Tasks{
			chromedp.Clear(matched, chromedp.ByQuery),
			chromedp.SendKeys(matched, value, chromedp.ByQuery),
		}.Do(ctx)
	})
}

// ClickFirst locates a control through the cascade and clicks it,
// scrolling it into view when the first click misses.
func (l *Locator) ClickFirst(selectors []string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var matched string
		if err := l.WaitForAny(selectors, &matched).Do(ctx); err != nil {
			return err
		}

		if err := chromedp.Click(matched, chromedp.ByQuery).Do(ctx); err == nil {
			return nil
		}

		scroll := fmt.Sprintf(
			`document.querySelector(%q)?.scrollIntoView({block: 'center'})`, matched)
		if err := chromedp.Evaluate(scroll, nil).Do(ctx); err != nil {
			return err
		}
		return chromedp.Click(matched, chromedp.ByQuery).Do(ctx)
	})
}

// AnyPresent sweeps the cascade once without waiting and reports
// whether anything matched. Used for CAPTCHA and confirmation checks
// where absence is a valid answer.
func (l *Locator) AnyPresent(selectors []string, found *bool) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		*found = false
		for _, selector := range selectors {
			var nodes []*cdp.Node
			err := chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)).Do(ctx)
			if err == nil && len(nodes) > 0 {
				*found = true
				return nil
			}
		}
		return nil
	})
}

// SelectValue locates a dropdown through the cascade, sets its value
// and fires a change event so the page reacts.
func (l *Locator) SelectValue(selectors []string, value string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var matched string
		if err := l.WaitForAny(selectors, &matched).Do(ctx); err != nil {
			return err
		}

		script := fmt.Sprintf(`(function() {
			const el = document.querySelector(%q);
			if (!el) return false;
			el.value = %q;
			el.dispatchEvent(new Event('change', {bubbles: true}));
			return el.value === %q;
		})()`, matched, value, value)

		var ok bool
		if err := chromedp.Evaluate(script, &ok).Do(ctx); err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: option %q not selectable via %s", ErrElementNotFound, value, matched)
		}
		return nil
	})
}

// WaitForPageLoad blocks until the document reports complete.
func (l *Locator) WaitForPageLoad() chromedp.Action {
	return chromedp.Tasks{
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.Poll(`document.readyState === "complete"`, nil),
	}
}

// FrameNode polls the cascade until an iframe matches and stores its
// node. Later queries pass the node through chromedp.FromNode to run
// inside that frame's document.
func (l *Locator) FrameNode(selectors []string, frame **cdp.Node) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		timeoutCtx, cancel := context.WithTimeout(ctx, l.Timeout)
		defer cancel()

		ticker := time.NewTicker(l.Poll)
		defer ticker.Stop()

		for {
			select {
			case <-timeoutCtx.Done():
				return fmt.Errorf("%w: no iframe matched %d selectors within %v",
					ErrElementNotFound, len(selectors), l.Timeout)
			case <-ticker.C:
				for _, selector := range selectors {
					var nodes []*cdp.Node
					err := chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)).Do(ctx)
					if err == nil && len(nodes) > 0 {
						*frame = nodes[0]
						return nil
					}
				}
			}
		}
	})
}

// waitInFrame polls the cascade inside the frame until one selector
// matches and returns it.
func (l *Locator) waitInFrame(ctx context.Context, frame *cdp.Node, selectors []string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	ticker := time.NewTicker(l.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-timeoutCtx.Done():
			return "", fmt.Errorf("%w: none of %d selectors appeared in frame within %v",
				ErrElementNotFound, len(selectors), l.Timeout)
		case <-ticker.C:
			for _, selector := range selectors {
				var nodes []*cdp.Node
				err := chromedp.Nodes(selector, &nodes, chromedp.ByQuery,
					chromedp.FromNode(frame), chromedp.AtLeast(0)).Do(ctx)
				if err == nil && len(nodes) > 0 {
					return selector, nil
				}
			}
		}
	}
}

// ClickInFrame locates a control through the cascade inside the frame
// and clicks it.
func (l *Locator) ClickInFrame(frame *cdp.Node, selectors []string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		matched, err := l.waitInFrame(ctx, frame, selectors)
		if err != nil {
			return err
		}
		return chromedp.Click(matched, chromedp.ByQuery, chromedp.FromNode(frame)).Do(ctx)
	})
}

// FillInFrame locates a field through the cascade inside the frame,
// clears it and types the value.
func (l *Locator) FillInFrame(frame *cdp.Node, selectors []string, value string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		matched, err := l.waitInFrame(ctx, frame, selectors)
		if err != nil {
			return err
		}
		return chromedp.Tasks{
			chromedp.Clear(matched, chromedp.ByQuery, chromedp.FromNode(frame)),
			chromedp.SendKeys(matched, value, chromedp.ByQuery, chromedp.FromNode(frame)),
		}.Do(ctx)
	})
}

// AttrInFrame reads an attribute from the first cascade match inside
// the frame. Missing attributes leave value empty.
func (l *Locator) AttrInFrame(frame *cdp.Node, selectors []string, name string, value *string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		matched, err := l.waitInFrame(ctx, frame, selectors)
		if err != nil {
			return err
		}
		var ok bool
		return chromedp.AttributeValue(matched, name, value, &ok,
			chromedp.ByQuery, chromedp.FromNode(frame)).Do(ctx)
	})
}
