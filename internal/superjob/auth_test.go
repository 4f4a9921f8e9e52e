package superjob

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-superjob-automation/internal/cookiecache"
)

// authServer fakes the login-gated resume page: 200 when the uat cookie
// matches, otherwise a redirect to the login page.
func authServer(wantUAT string, probes *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/resume/" {
			http.NotFound(w, r)
			return
		}
		if probes != nil {
			atomic.AddInt32(probes, 1)
		}
		if c, err := r.Cookie("uat"); err == nil && c.Value == wantUAT {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Location", "https://www.superjob.ru/auth/login/?returnUrl=/user/resume/")
		w.WriteHeader(http.StatusFound)
	}))
}

func newTestClient(srv *httptest.Server, cache *cookiecache.Cache) *Client {
	c := NewClient(cache)
	c.baseURL = srv.URL
	c.apiURL = srv.URL + "/jsapi3/0.1"
	return c
}

func validCookies() map[string]string {
	return map[string]string{"uat": "u-token", "sat": "s-token", "sask": "k-token"}
}

func TestAuthWithCookiesMissingRequired(t *testing.T) {
	var probes int32
	srv := authServer("u-token", &probes)
	defer srv.Close()

	cookies := validCookies()
	delete(cookies, "sask")

	err := newTestClient(srv, nil).AuthWithCookies(context.Background(), cookies)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sask")
	assert.EqualValues(t, 0, atomic.LoadInt32(&probes), "must not hit the network without identity cookies")
}

func TestAuthFromFileMissingRequired(t *testing.T) {
	var probes int32
	srv := authServer("u-token", &probes)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "cookies.txt")
	assert.NoError(t, os.WriteFile(path, []byte("uat=u-token\nsat=s-token\n"), 0600))

	err := newTestClient(srv, nil).AuthFromFile(context.Background(), path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sask")
	assert.EqualValues(t, 0, atomic.LoadInt32(&probes), "must not hit the network without identity cookies")
}

func TestAuthWithCookiesAccepted(t *testing.T) {
	srv := authServer("u-token", nil)
	defer srv.Close()

	assert.NoError(t, newTestClient(srv, nil).AuthWithCookies(context.Background(), validCookies()))
}

func TestAuthWithCookiesRejected(t *testing.T) {
	srv := authServer("someone-else", nil)
	defer srv.Close()

	err := newTestClient(srv, nil).AuthWithCookies(context.Background(), validCookies())
	assert.Error(t, err)
}

func TestSetCookiesAddsRegionalDefaults(t *testing.T) {
	var gotGeo, gotLoginType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("geo"); err == nil {
			gotGeo = c.Value
		}
		if c, err := r.Cookie("loginAuthType"); err == nil {
			gotLoginType = c.Value
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv, nil)
	assert.NoError(t, c.SetCookies(map[string]string{"uat": "x", "geo": "42"}))

	ok, err := c.CheckAuth(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", gotGeo, "provided cookies win over defaults")
	assert.Equal(t, "applicant", gotLoginType)
}

func TestCheckAuth(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		location string
		want     bool
	}{
		{"ok", http.StatusOK, "", true},
		{"redirect to login", http.StatusFound, "/auth/login/", false},
		{"redirect elsewhere", http.StatusMovedPermanently, "/somewhere/", false},
		{"server error", http.StatusInternalServerError, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.location != "" {
					w.Header().Set("Location", tt.location)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			got, err := newTestClient(srv, nil).CheckAuth(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthFromFile(t *testing.T) {
	srv := authServer("u-token", nil)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "cookies.txt")
	assert.NoError(t, os.WriteFile(path, []byte("uat=u-token\nsat=s-token\nsask=k-token\n"), 0600))

	assert.NoError(t, newTestClient(srv, nil).AuthFromFile(context.Background(), path))
}

func TestAuthFromBrowserUsesCacheFirst(t *testing.T) {
	srv := authServer("u-token", nil)
	defer srv.Close()

	cache := cookiecache.New(filepath.Join(t.TempDir(), "cookies.json"))
	cache.Save(validCookies())

	c := newTestClient(srv, cache)
	c.extract = func(ctx context.Context, name, siteURL string) (map[string]string, error) {
		t.Fatal("extractor must not run when cached cookies still work")
		return nil, nil
	}

	assert.NoError(t, c.AuthFromBrowser(context.Background(), "auto", false))
}

func TestAuthFromBrowserForceRefreshSkipsCache(t *testing.T) {
	srv := authServer("u-token", nil)
	defer srv.Close()

	cache := cookiecache.New(filepath.Join(t.TempDir(), "cookies.json"))
	cache.Save(map[string]string{"uat": "stale", "sat": "stale", "sask": "stale"})

	var asked []string
	c := newTestClient(srv, cache)
	c.extract = func(ctx context.Context, name, siteURL string) (map[string]string, error) {
		asked = append(asked, name)
		return validCookies(), nil
	}

	assert.NoError(t, c.AuthFromBrowser(context.Background(), "firefox", true))
	assert.Equal(t, []string{"firefox"}, asked)
}

func TestAuthFromBrowserFallsThroughAdapters(t *testing.T) {
	srv := authServer("u-token", nil)
	defer srv.Close()

	cache := cookiecache.New(filepath.Join(t.TempDir(), "cookies.json"))

	var asked []string
	c := newTestClient(srv, cache)
	c.extract = func(ctx context.Context, name, siteURL string) (map[string]string, error) {
		asked = append(asked, name)
		if name == "chrome" {
			return nil, fmt.Errorf("no chrome store")
		}
		return validCookies(), nil
	}

	assert.NoError(t, c.AuthFromBrowser(context.Background(), "chrome,firefox", false))
	assert.Equal(t, []string{"chrome", "firefox"}, asked)

	cached, ok := cache.Load()
	assert.True(t, ok, "working cookies must be cached for the next run")
	assert.Equal(t, validCookies(), cached)
}

func TestAuthFromBrowserRejectedCookiesNotCached(t *testing.T) {
	srv := authServer("u-token", nil)
	defer srv.Close()

	cache := cookiecache.New(filepath.Join(t.TempDir(), "cookies.json"))
	c := newTestClient(srv, cache)
	c.extract = func(ctx context.Context, name, siteURL string) (map[string]string, error) {
		return map[string]string{"uat": "wrong", "sat": "wrong", "sask": "wrong"}, nil
	}

	err := c.AuthFromBrowser(context.Background(), "firefox", false)
	assert.Error(t, err)

	_, ok := cache.Load()
	assert.False(t, ok, "rejected cookies must not be cached")
}

func TestAuthFromBrowserUnknownSelector(t *testing.T) {
	srv := authServer("u-token", nil)
	defer srv.Close()

	err := newTestClient(srv, nil).AuthFromBrowser(context.Background(), "netscape", false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown browser")
}
