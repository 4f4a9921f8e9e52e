package superjob

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"go-superjob-automation/internal/browser"
)

// cookies that identify a logged-in session, everything else is optional
var requiredCookies = []string{"uat", "sat", "sask"}

const (
	interactiveSelector = "interactive"
	loginTimeout        = 5 * time.Minute
)

// CheckAuth probes a login-required page without following redirects. A
// redirect to the login page means the session cookies no longer work.
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/user/resume/", nil)
	if err != nil {
		return false, err
	}

	resp, err := c.probeClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		location := resp.Header.Get("Location")
		if strings.Contains(location, "login") {
			return false, nil
		}
		log.Printf("⚠️ Unexpected redirect during auth check: %s", location)
		return false, nil
	}
	if resp.StatusCode == http.StatusOK {
		return true, nil
	}
	log.Printf("⚠️ Unexpected status during auth check: %d", resp.StatusCode)
	return false, nil
}

// AuthWithCookies installs the given cookies and verifies them against the
// site. All identity cookies must be present before any request goes out.
func (c *Client) AuthWithCookies(ctx context.Context, cookies map[string]string) error {
	var missing []string
	for _, name := range requiredCookies {
		if cookies[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required cookies: %s", strings.Join(missing, ", "))
	}

	if err := c.SetCookies(cookies); err != nil {
		return err
	}

	ok, err := c.CheckAuth(ctx)
	if err != nil {
		return fmt.Errorf("auth check failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("cookies were rejected, session is not authenticated")
	}
	log.Println("✅ Authenticated with provided cookies")
	return nil
}

// AuthFromFile authenticates with cookies read from a name=value text file.
func (c *Client) AuthFromFile(ctx context.Context, path string) error {
	cookies, err := browser.LoadCookieFile(path)
	if err != nil {
		return err
	}
	log.Printf("🍪 Loaded %d cookies from %s", len(cookies), path)
	return c.AuthWithCookies(ctx, cookies)
}

// AuthFromBrowser authenticates with cookies pulled from a local browser.
// Cookies cached by a previous run are tried first unless forceRefresh is
// set, and fresh cookies are cached only after they pass the auth check.
func (c *Client) AuthFromBrowser(ctx context.Context, selector string, forceRefresh bool) error {
	if !forceRefresh && c.cache != nil {
		if cached, ok := c.cache.Load(); ok {
			log.Println("🍪 Trying cached cookies...")
			if err := c.AuthWithCookies(ctx, cached); err == nil {
				return nil
			}
			log.Println("Cached cookies expired, extracting fresh ones")
		}
	}

	if strings.EqualFold(strings.TrimSpace(selector), interactiveSelector) {
		return c.authInteractive(ctx)
	}

	names, err := browser.Candidates(selector)
	if err != nil {
		return err
	}

	var lastErr error
	for _, name := range names {
		log.Printf("🔍 Extracting cookies from %s...", name)
		cookies, err := c.extract(ctx, name, c.baseURL)
		if err != nil {
			log.Printf("⚠️ %v", err)
			lastErr = err
			continue
		}
		if err := c.AuthWithCookies(ctx, cookies); err != nil {
			log.Printf("⚠️ [%s] %v", name, err)
			lastErr = err
			continue
		}
		if c.cache != nil {
			c.cache.Save(cookies)
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("no browser produced a working session: %w", lastErr)
	}
	return fmt.Errorf("no browser produced a working session")
}

// authInteractive opens a headed browser for a manual login and adopts the
// cookies it ends up with.
func (c *Client) authInteractive(ctx context.Context) error {
	cookies, err := browser.CaptureLogin(ctx, c.baseURL+"/auth/login/", requiredCookies, loginTimeout)
	if err != nil {
		return err
	}
	if err := c.AuthWithCookies(ctx, cookies); err != nil {
		return err
	}
	if c.cache != nil {
		c.cache.Save(cookies)
	}
	return nil
}
