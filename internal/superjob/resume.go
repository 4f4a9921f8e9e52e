package superjob

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Resume is one of the account's CVs, enough to pick a resume id from.
type Resume struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type resumeAttrs struct {
	Profession string `json:"profession"`
}

// GetMyResumes lists the account's own resumes.
func (c *Client) GetMyResumes(ctx context.Context) ([]Resume, error) {
	query := url.Values{
		"page[limit]":   {"15"},
		"filters[mine]": {"1"},
		"include":       {"resumeBirthDate,totalExperience,town,photo,detail,workType,publishedStatus,person"},
	}

	status, body, err := c.doAPI(ctx, http.MethodGet, "/resume/", query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("resume list request returned status %d", status)
	}

	var doc inDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resume list: %w", err)
	}

	rows := doc.dataMany()
	resumes := make([]Resume, 0, len(rows))
	for _, row := range rows {
		var a resumeAttrs
		decodeAttrs(row.Attributes, &a)
		resumes = append(resumes, Resume{ID: row.ID, Title: a.Profession})
	}
	return resumes, nil
}
