package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

const loginPollInterval = time.Second

// CaptureLogin opens a headed browser on the login page and polls the live
// context until every required cookie shows up, i.e. until the user has
// logged in by hand. Returns all cookies the context holds at that point.
func CaptureLogin(ctx context.Context, loginURL string, required []string, timeout time.Duration) (map[string]string, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	defer pw.Stop()

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	defer b.Close()

	browserCtx, err := b.NewContext()
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not open page: %w", err)
	}
	if _, err := page.Goto(loginURL); err != nil {
		return nil, fmt.Errorf("could not open %s: %w", loginURL, err)
	}

	log.Printf("🌐 Waiting for manual login at %s (up to %s)...", loginURL, timeout)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := browserCtx.Cookies(loginURL)
		if err != nil {
			return nil, fmt.Errorf("could not read context cookies: %w", err)
		}

		cookies := make(map[string]string, len(raw))
		for _, c := range raw {
			cookies[c.Name] = c.Value
		}
		if hasAll(cookies, required) {
			log.Println("✅ Login detected, session cookies captured")
			return cookies, nil
		}
		time.Sleep(loginPollInterval)
	}
	return nil, fmt.Errorf("login was not completed within %s", timeout)
}

func hasAll(cookies map[string]string, names []string) bool {
	for _, name := range names {
		if cookies[name] == "" {
			return false
		}
	}
	return true
}
