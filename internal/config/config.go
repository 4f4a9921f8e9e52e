// Load envs from .env
// Merge with process environment (env wins)
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Browser        string   // cookie source selector: auto, a browser name, a comma list, or "interactive"
	ResumeID       string   // resume to apply with
	SearchKeywords []string // one search pass per keyword
	SearchLimit    int      // vacancies per page
	MaxPages       int      // pages per keyword
	CoverLetter    string   // default message sent into the response chat

	// Vacancy filters
	ExcludeKeywords []string
	MinSalary       int

	// Paths
	CookiesFile     string // optional name=value cookie file; set => used instead of cache/browsers
	CookieCacheFile string
	ResultsFile     string

	ForceRefresh bool // skip the cookie cache and re-extract from the browser

	// Telegram reporting (optional)
	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from ./.env plus the process environment.
func Load() *Config {
	return LoadFrom(".env")
}

func LoadFrom(path string) *Config {
	values, err := godotenv.Read(path)
	if err != nil {
		log.Printf("⚠️ Could not read %s: %v", path, err)
		values = map[string]string{}
	}

	//env vars override file values
	get := func(key, fallback string) string {
		v := os.Getenv(key)
		if v == "" {
			v = values[key]
		}
		if v == "" {
			return fallback
		}
		//multiline values (cover letter) arrive as literal \n sequences
		return strings.ReplaceAll(strings.TrimSpace(v), `\n`, "\n")
	}

	cfg := &Config{
		Browser:         get("BROWSER", "auto"),
		ResumeID:        get("RESUME_ID", ""),
		SearchKeywords:  splitList(get("SEARCH_KEYWORDS", "")),
		CoverLetter:     get("COVER_LETTER", ""),
		ExcludeKeywords: splitList(get("EXCLUDE_KEYWORDS", "")),
		CookiesFile:     get("COOKIES_FILE", ""),
		CookieCacheFile: get("COOKIE_CACHE_FILE", ".superjob_cookies.json"),
		ResultsFile:     get("RESULTS_FILE", "results.json"),
		TelegramToken:   get("TELEGRAM_BOT_TOKEN", ""),
	}

	cfg.SearchLimit, err = strconv.Atoi(get("SEARCH_LIMIT", "20"))
	if err != nil {
		log.Fatalf("Invalid SEARCH_LIMIT: %v", err)
	}

	cfg.MaxPages, err = strconv.Atoi(get("MAX_PAGES", "1"))
	if err != nil {
		log.Fatalf("Invalid MAX_PAGES: %v", err)
	}

	cfg.MinSalary, err = strconv.Atoi(get("MIN_SALARY", "0"))
	if err != nil {
		log.Fatalf("Invalid MIN_SALARY: %v", err)
	}

	cfg.ForceRefresh, err = strconv.ParseBool(get("FORCE_COOKIE_REFRESH", "false"))
	if err != nil {
		log.Fatalf("Invalid FORCE_COOKIE_REFRESH: %v", err)
	}

	if chatID := get("TELEGRAM_CHAT_ID", ""); chatID != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
	}

	return cfg
}

// TelegramEnabled reports whether both reporting credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
