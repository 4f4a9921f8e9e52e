// Search-and-apply driver: walks search pages for every configured keyword
// and applies to each vacancy at most once per run.

package autoapply

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"go-superjob-automation/internal/config"
	"go-superjob-automation/internal/filter"
	"go-superjob-automation/internal/superjob"
)

// API is the slice of the site client the runner drives.
type API interface {
	SearchVacancies(ctx context.Context, keywords string, limit, offset int) (*superjob.SearchResult, error)
	Apply(ctx context.Context, vacancyID, resumeID string, opts superjob.ApplyOptions) superjob.ApplyResult
}

// ApplicationRecord is the outcome of one application attempt. Skipped and
// filtered vacancies get no record, only a counter bump.
type ApplicationRecord struct {
	VacancyID       string `json:"vacancy_id"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	URL             string `json:"url"`
	Success         bool   `json:"success"`
	ChatURL         string `json:"chat_url,omitempty"`
	CoverLetterSent bool   `json:"cover_letter_sent"`
	Error           string `json:"error,omitempty"`
}

// RunStats aggregates a whole search-and-apply run.
type RunStats struct {
	TotalFound int                 `json:"total_found"`
	Applied    int                 `json:"applied"`
	Failed     int                 `json:"failed"`
	Skipped    int                 `json:"skipped"`
	Excluded   int                 `json:"excluded"`
	Results    []ApplicationRecord `json:"results"`
}

// WriteFile saves the stats as indented JSON.
func (s *RunStats) WriteFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Runner drives the loop. One vacancy can show up under several keywords,
// so a run-wide set keeps it from being applied to twice.
type Runner struct {
	api        API
	cfg        *config.Config
	applyDelay time.Duration
}

func NewRunner(api API, cfg *config.Config) *Runner {
	return &Runner{api: api, cfg: cfg, applyDelay: time.Second}
}

// Run executes the whole search-and-apply loop. Configuration problems are
// reported as an error before any request goes out; per-vacancy failures
// only bump the counters.
func (r *Runner) Run(ctx context.Context) (*RunStats, error) {
	if r.cfg.ResumeID == "" {
		return nil, fmt.Errorf("RESUME_ID is not set")
	}
	if len(r.cfg.SearchKeywords) == 0 {
		return nil, fmt.Errorf("SEARCH_KEYWORDS is not set")
	}

	stats := &RunStats{Results: []ApplicationRecord{}}
	handled := mapset.NewSet[string]()

	for _, keyword := range r.cfg.SearchKeywords {
		log.Printf("🔎 Searching %q...", keyword)
		r.runKeyword(ctx, keyword, handled, stats)
	}
	return stats, nil
}

func (r *Runner) runKeyword(ctx context.Context, keyword string, handled mapset.Set[string], stats *RunStats) {
	limit := r.cfg.SearchLimit
	for page := 0; page < r.cfg.MaxPages; page++ {
		if ctx.Err() != nil {
			return
		}
		offset := page * limit

		result, err := r.api.SearchVacancies(ctx, keyword, limit, offset)
		if err != nil {
			log.Printf("⚠️ Search %q page %d failed: %v", keyword, page+1, err)
			return
		}
		if len(result.Vacancies) == 0 {
			return
		}
		stats.TotalFound += len(result.Vacancies)
		log.Printf("📋 %q page %d: %d vacancies of %d total", keyword, page+1, len(result.Vacancies), result.Total)

		for _, vacancy := range result.Vacancies {
			r.processVacancy(ctx, vacancy, handled, stats)
		}

		if offset+limit >= result.Total {
			return
		}
	}
}

func (r *Runner) processVacancy(ctx context.Context, vacancy superjob.Vacancy, handled mapset.Set[string], stats *RunStats) {
	if handled.Contains(vacancy.ID) {
		stats.Skipped++
		return
	}
	if filter.Excluded(vacancy, r.cfg.ExcludeKeywords) || filter.BelowMinSalary(vacancy, r.cfg.MinSalary) {
		handled.Add(vacancy.ID)
		stats.Excluded++
		log.Printf("🚫 Filtered out: %s (%s)", vacancy.Title, vacancy.Company)
		return
	}
	handled.Add(vacancy.ID)

	log.Printf("📨 Applying: %s (%s)", vacancy.Title, vacancy.Company)
	result := r.api.Apply(ctx, vacancy.ID, r.cfg.ResumeID, superjob.ApplyOptions{
		CoverLetter: r.cfg.CoverLetter,
	})

	stats.Results = append(stats.Results, ApplicationRecord{
		VacancyID:       vacancy.ID,
		Title:           vacancy.Title,
		Company:         vacancy.Company,
		URL:             vacancy.URL,
		Success:         result.Success,
		ChatURL:         result.ChatURL,
		CoverLetterSent: result.CoverLetterSent,
		Error:           result.Error,
	})

	if result.Success {
		stats.Applied++
		log.Printf("✅ Applied to %s", vacancy.Title)
	} else {
		stats.Failed++
		log.Printf("❌ Failed to apply to %s: %s", vacancy.Title, result.Error)
	}

	if r.applyDelay > 0 {
		time.Sleep(r.applyDelay)
	}
}
