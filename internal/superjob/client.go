// Cookie-session client for the superjob.ru JSON:API backend.
// The session is borrowed from a real browser login, never from credentials,
// so every request has to look like it comes from that browser.

package superjob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"go-superjob-automation/internal/browser"
	"go-superjob-automation/internal/cookiecache"
)

const (
	defaultBaseURL = "https://www.superjob.ru"
	defaultAPIURL  = "https://www.superjob.ru/jsapi3/0.1"
)

// browser-equivalent headers sent on every request
var defaultHeaders = map[string]string{
	"User-Agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/144.0.0.0 Safari/537.36",
	"Accept":             "application/json",
	"Accept-Language":    "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7",
	"Content-Type":       "application/json",
	"X-Frontend-Project": "desktop",
	"X-Requested-With":   "XMLHttpRequest",
	"X-Subdomain":        "www",
}

// region and UI preference cookies a logged-in browser session carries;
// only set when the source session did not provide them
var regionalDefaults = map[string]string{
	"geo":                        "1687",
	"geoConfirmed":               "1",
	"geoSet":                     "1",
	"loginAuthType":              "applicant",
	"initialGeoConfirmationShow": "1",
}

// Client talks to superjob.ru with a borrowed browser session.
type Client struct {
	httpClient  *http.Client
	probeClient *http.Client // never follows redirects, used for auth probes
	baseURL     string
	apiURL      string
	cache       *cookiecache.Cache

	// swapped out in tests so no real browser store is touched
	extract func(ctx context.Context, name, siteURL string) (map[string]string, error)
}

// NewClient returns an unauthenticated client. Pass a nil cache to disable
// cookie caching between runs.
func NewClient(cache *cookiecache.Cache) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		httpClient: &http.Client{Jar: jar, Timeout: 30 * time.Second},
		probeClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL: defaultBaseURL,
		apiURL:  defaultAPIURL,
		cache:   cache,
		extract: browser.Extract,
	}
}

// SetCookies replaces the whole session with the given cookies, topped up
// with the regional defaults the site expects from a returning visitor.
func (c *Client) SetCookies(cookies map[string]string) error {
	site, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}

	all := make([]*http.Cookie, 0, len(cookies)+len(regionalDefaults))
	for name, value := range cookies {
		all = append(all, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	for name, value := range regionalDefaults {
		if _, ok := cookies[name]; ok {
			continue
		}
		all = append(all, &http.Cookie{Name: name, Value: value, Path: "/"})
	}

	jar, _ := cookiejar.New(nil)
	jar.SetCookies(site, all)
	c.httpClient.Jar = jar
	c.probeClient.Jar = jar
	return nil
}

// newRequest builds a request carrying the browser-equivalent header set.
func (c *Client) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	for name, value := range defaultHeaders {
		req.Header.Set(name, value)
	}
	return req, nil
}

// doAPI performs one API call and returns the status code and response body.
func (c *Client) doAPI(ctx context.Context, method, path string, query url.Values, payload any) (int, []byte, error) {
	rawURL := c.apiURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, rawURL, body)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
