package superjob

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
)

// join directive the web client sends with an application POST
const applyInclude = "vacancyResponse," +
	"vacancyResponse.vacancy.resumeInteractions.status," +
	"vacancyResponse.vacancy.resumeInteractions.resume," +
	"vacancyResponse.vacancy.resumeInteractions.vacancyResponse," +
	"vacancyResponse.vacancy.detailInfo," +
	"vacancyResponse.vacancy.contactInfo," +
	"vacancyResponse.chat.resume," +
	"vacancyResponse.chat.company," +
	"vacancyResponse.resume," +
	"vacancyResponse.cvApplicationType.responseType," +
	"vacancyResponse.responseSource.sourceName"

// ApplyOptions tweaks a single application.
type ApplyOptions struct {
	CoverLetter      string
	NoWorkExperience bool
}

// ApplyResult reports one application attempt. Success covers the
// application itself; the cover letter is best effort on top of it.
type ApplyResult struct {
	Success         bool
	StatusCode      int
	Body            string
	ChatID          string
	ChatURL         string
	CoverLetterSent bool
	Error           string
}

// Apply submits an application for the vacancy with the given resume. When
// the response carries a chat and a cover letter is set, the letter is
// posted into that chat as a first message.
func (c *Client) Apply(ctx context.Context, vacancyID, resumeID string, opts ApplyOptions) ApplyResult {
	payload := newApplicationDocument(vacancyID, resumeID, opts.NoWorkExperience)

	query := url.Values{"include": {applyInclude}}
	status, body, err := c.doAPI(ctx, http.MethodPost, "/cvApplication/", query, payload)
	if err != nil {
		return ApplyResult{Error: err.Error()}
	}

	result := ApplyResult{StatusCode: status, Body: string(body)}
	if status != http.StatusOK && status != http.StatusCreated {
		result.Error = truncate(string(body), 500)
		return result
	}
	result.Success = true

	chatID := extractChatID(body)
	if chatID == "" {
		log.Printf("⚠️ Applied to %s but no chat came back", vacancyID)
		return result
	}
	result.ChatID = chatID
	result.ChatURL = fmt.Sprintf("%s/chat/?chatId=%s", c.baseURL, chatID)

	if opts.CoverLetter != "" {
		sent := c.SendMessage(ctx, chatID, opts.CoverLetter)
		result.CoverLetterSent = sent.Success
		if !sent.Success {
			log.Printf("⚠️ Applied to %s but cover letter failed: %s", vacancyID, sent.Error)
		}
	}
	return result
}

// extractChatID digs the chat id out of an application response. Fast path
// is a chat resource in the included set; fallback walks the relationship
// graph data → vacancyResponse → chat. Returns "" when neither works.
func extractChatID(body []byte) string {
	var doc inDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}

	for _, res := range doc.Included {
		if res.Type == "chat" {
			return res.ID
		}
	}

	data, ok := doc.dataOne()
	if !ok {
		return ""
	}
	responseID := data.relatedID("vacancyResponse")
	if responseID == "" {
		return ""
	}
	for _, res := range doc.Included {
		if res.Type == "vacancyResponse" && res.ID == responseID {
			return res.relatedID("chat")
		}
	}
	return ""
}
