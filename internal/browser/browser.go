// Cookie source adapters: read session cookies out of locally installed
// browsers without driving them.

package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/steipete/sweetcookie"
)

// autoOrder is what the "auto" selector expands to. Firefox first: its cookie
// store is plain sqlite with no OS keychain in the way.
var autoOrder = []string{"firefox", "chrome", "edge", "safari"}

var adapters = map[string]sweetcookie.Browser{
	"firefox": sweetcookie.BrowserFirefox,
	"chrome":  sweetcookie.BrowserChrome,
	"edge":    sweetcookie.BrowserEdge,
	"safari":  sweetcookie.BrowserSafari,
}

// Candidates expands the BROWSER selector into an ordered adapter list:
// "auto", a single browser name, or a comma-separated list tried in order.
func Candidates(selector string) ([]string, error) {
	selector = strings.ToLower(strings.TrimSpace(selector))
	if selector == "" || selector == "auto" {
		return autoOrder, nil
	}

	var out []string
	for _, name := range strings.Split(selector, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := adapters[name]; !ok {
			return nil, fmt.Errorf("unknown browser %q (available: firefox, chrome, edge, safari)", name)
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty browser selector %q", selector)
	}
	return out, nil
}

// Extract reads the named browser's cookie store and returns the site's
// cookies as a name→value map.
func Extract(ctx context.Context, name, siteURL string) (map[string]string, error) {
	b, ok := adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown browser %q", name)
	}

	res, err := sweetcookie.Get(ctx, sweetcookie.Options{
		URL:      siteURL,
		Browsers: []sweetcookie.Browser{b},
		Mode:     sweetcookie.ModeMerge,
		Timeout:  5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("[%s] %w", name, err)
	}
	if len(res.Cookies) == 0 {
		if len(res.Warnings) > 0 {
			return nil, fmt.Errorf("[%s] %s", name, res.Warnings[len(res.Warnings)-1])
		}
		return nil, fmt.Errorf("[%s] no cookies found for %s", name, siteURL)
	}

	cookies := make(map[string]string, len(res.Cookies))
	for _, c := range res.Cookies {
		cookies[c.Name] = c.Value
	}
	return cookies, nil
}
