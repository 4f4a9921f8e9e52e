package autoapply

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-superjob-automation/internal/config"
	"go-superjob-automation/internal/superjob"
)

// fakeAPI serves canned search pages keyed by "keyword:offset" and records
// every call.
type fakeAPI struct {
	pages    map[string]*superjob.SearchResult
	searches []string
	applied  []string
	fail     map[string]string
}

func (f *fakeAPI) SearchVacancies(ctx context.Context, keywords string, limit, offset int) (*superjob.SearchResult, error) {
	key := fmt.Sprintf("%s:%d", keywords, offset)
	f.searches = append(f.searches, key)
	if page, ok := f.pages[key]; ok {
		return page, nil
	}
	return &superjob.SearchResult{}, nil
}

func (f *fakeAPI) Apply(ctx context.Context, vacancyID, resumeID string, opts superjob.ApplyOptions) superjob.ApplyResult {
	f.applied = append(f.applied, vacancyID)
	if msg, ok := f.fail[vacancyID]; ok {
		return superjob.ApplyResult{StatusCode: 409, Error: msg}
	}
	return superjob.ApplyResult{
		Success:         true,
		StatusCode:      201,
		ChatID:          "chat-" + vacancyID,
		ChatURL:         "https://www.superjob.ru/chat/?chatId=chat-" + vacancyID,
		CoverLetterSent: opts.CoverLetter != "",
	}
}

func newTestRunner(api API, cfg *config.Config) *Runner {
	r := NewRunner(api, cfg)
	r.applyDelay = 0
	return r
}

func vacancy(id, title string) superjob.Vacancy {
	return superjob.Vacancy{ID: id, Title: title, Company: "Acme", URL: "https://www.superjob.ru/vakansii/" + id + ".html"}
}

func TestRunDedupsAcrossKeywords(t *testing.T) {
	api := &fakeAPI{pages: map[string]*superjob.SearchResult{
		"python:0": {Total: 2, Vacancies: []superjob.Vacancy{vacancy("V1", "Python dev"), vacancy("V2", "DevOps")}},
		"devops:0": {Total: 2, Vacancies: []superjob.Vacancy{vacancy("V2", "DevOps"), vacancy("V3", "SRE")}},
	}}
	cfg := &config.Config{
		ResumeID:       "r-1",
		SearchKeywords: []string{"python", "devops"},
		SearchLimit:    2,
		MaxPages:       1,
		CoverLetter:    "Hi",
	}

	stats, err := newTestRunner(api, cfg).Run(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 4, stats.TotalFound)
	assert.Equal(t, 3, stats.Applied)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 0, stats.Excluded)

	assert.Equal(t, []string{"V1", "V2", "V3"}, api.applied, "the duplicate must be applied to only once")
	if assert.Len(t, stats.Results, 3) {
		for _, record := range stats.Results {
			assert.True(t, record.Success)
			assert.True(t, record.CoverLetterSent)
			assert.Contains(t, record.ChatURL, record.VacancyID)
		}
	}
}

func TestRunStopsOnEmptyPage(t *testing.T) {
	api := &fakeAPI{pages: map[string]*superjob.SearchResult{
		"go:0": {Total: 10, Vacancies: []superjob.Vacancy{vacancy("V1", "Go dev"), vacancy("V2", "Go dev")}},
	}}
	cfg := &config.Config{ResumeID: "r-1", SearchKeywords: []string{"go"}, SearchLimit: 2, MaxPages: 5}

	stats, err := newTestRunner(api, cfg).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"go:0", "go:2"}, api.searches, "an empty page ends the keyword")
	assert.Equal(t, 2, stats.TotalFound)
}

func TestRunStopsAtReportedTotal(t *testing.T) {
	api := &fakeAPI{pages: map[string]*superjob.SearchResult{
		"go:0": {Total: 3, Vacancies: []superjob.Vacancy{vacancy("V1", "Go dev"), vacancy("V2", "Go dev")}},
		"go:2": {Total: 3, Vacancies: []superjob.Vacancy{vacancy("V3", "Go dev")}},
	}}
	cfg := &config.Config{ResumeID: "r-1", SearchKeywords: []string{"go"}, SearchLimit: 2, MaxPages: 5}

	stats, err := newTestRunner(api, cfg).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"go:0", "go:2"}, api.searches, "no page past the reported total")
	assert.Equal(t, 3, stats.TotalFound)
	assert.Equal(t, 3, stats.Applied)
}

func TestRunValidatesConfig(t *testing.T) {
	api := &fakeAPI{}

	_, err := newTestRunner(api, &config.Config{SearchKeywords: []string{"go"}}).Run(context.Background())
	assert.ErrorContains(t, err, "RESUME_ID")

	_, err = newTestRunner(api, &config.Config{ResumeID: "r-1"}).Run(context.Background())
	assert.ErrorContains(t, err, "SEARCH_KEYWORDS")

	assert.Empty(t, api.searches, "invalid config must not reach the network")
}

func TestRunExcludesByKeyword(t *testing.T) {
	api := &fakeAPI{pages: map[string]*superjob.SearchResult{
		"go:0": {Total: 2, Vacancies: []superjob.Vacancy{vacancy("V1", "Senior Go developer"), vacancy("V2", "Go developer")}},
	}}
	cfg := &config.Config{
		ResumeID:        "r-1",
		SearchKeywords:  []string{"go"},
		SearchLimit:     20,
		MaxPages:        1,
		ExcludeKeywords: []string{"senior"},
	}

	stats, err := newTestRunner(api, cfg).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Excluded)
	assert.Equal(t, 1, stats.Applied)
	assert.Equal(t, []string{"V2"}, api.applied)
	assert.Len(t, stats.Results, 1, "filtered vacancies get no result record")
}

func TestRunCountsFailures(t *testing.T) {
	api := &fakeAPI{
		pages: map[string]*superjob.SearchResult{
			"go:0": {Total: 2, Vacancies: []superjob.Vacancy{vacancy("V1", "Go dev"), vacancy("V2", "Go dev")}},
		},
		fail: map[string]string{"V2": "already applied"},
	}
	cfg := &config.Config{ResumeID: "r-1", SearchKeywords: []string{"go"}, SearchLimit: 20, MaxPages: 1}

	stats, err := newTestRunner(api, cfg).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Applied)
	assert.Equal(t, 1, stats.Failed)

	var failed *ApplicationRecord
	for i := range stats.Results {
		if !stats.Results[i].Success {
			failed = &stats.Results[i]
		}
	}
	if assert.NotNil(t, failed) {
		assert.Equal(t, "V2", failed.VacancyID)
		assert.Contains(t, failed.Error, "already applied")
	}
}

func TestWriteFile(t *testing.T) {
	stats := &RunStats{
		TotalFound: 2,
		Applied:    1,
		Failed:     1,
		Results: []ApplicationRecord{
			{VacancyID: "V1", Title: "Go dev", Success: true, ChatURL: "https://www.superjob.ru/chat/?chatId=c1"},
			{VacancyID: "V2", Title: "Go dev", Error: "already applied"},
		},
	}

	path := filepath.Join(t.TempDir(), "results.json")
	assert.NoError(t, stats.WriteFile(path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 2, decoded["total_found"])
	assert.EqualValues(t, 1, decoded["applied"])
	assert.Len(t, decoded["results"], 2)
}
