package superjob

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Vacancy is one search hit with its joined display fields. Salaries are 0
// when the posting does not state them.
type Vacancy struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	SalaryMin int    `json:"salary_min,omitempty"`
	SalaryMax int    `json:"salary_max,omitempty"`
	URL       string `json:"url"`
}

// SearchResult is one page of hits plus the site's total match count.
type SearchResult struct {
	Total     int
	Vacancies []Vacancy
}

type mainInfoAttrs struct {
	Profession string `json:"profession"`
	MinSalary  int    `json:"minSalary"`
	MaxSalary  int    `json:"maxSalary"`
}

// SearchVacancies runs a keyword search and joins every hit with its
// mainInfo and companyInfo includes. Hits with missing joins keep zero
// values instead of being dropped.
func (c *Client) SearchVacancies(ctx context.Context, keywords string, limit, offset int) (*SearchResult, error) {
	query := url.Values{
		"page[limit]":       {strconv.Itoa(limit)},
		"page[offset]":      {strconv.Itoa(offset)},
		"filters[keywords]": {keywords},
		"include":           {"mainInfo,companyInfo"},
	}

	status, body, err := c.doAPI(ctx, http.MethodGet, "/vacancy/", query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("vacancy search returned status %d: %s", status, truncate(string(body), 200))
	}

	var doc inDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	idx := doc.index()
	rows := doc.dataMany()
	result := &SearchResult{
		Total:     doc.Meta.Total,
		Vacancies: make([]Vacancy, 0, len(rows)),
	}
	for _, row := range rows {
		v := Vacancy{
			ID:  row.ID,
			URL: fmt.Sprintf("%s/vakansii/%s.html", c.baseURL, row.ID),
		}
		if info, ok := idx.resolve(row, "mainInfo"); ok {
			var a mainInfoAttrs
			decodeAttrs(info.Attributes, &a)
			v.Title = a.Profession
			v.SalaryMin = a.MinSalary
			v.SalaryMax = a.MaxSalary
		}
		if info, ok := idx.resolve(row, "companyInfo"); ok {
			var a companyAttrs
			decodeAttrs(info.Attributes, &a)
			v.Company = a.Name
		}
		result.Vacancies = append(result.Vacancies, v)
	}
	return result, nil
}
