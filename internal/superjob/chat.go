package superjob

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// join directive the web client sends when posting a chat message
const messageInclude = "chat,hr,messageType,simpleMessage," +
	"inviteMessage.vacancy.mainInfo,inviteMessage.vacancy.companyInfo," +
	"vacancyResponseMessage.vacancy.mainInfo,vacancyResponseMessage.vacancy.companyInfo"

// SendResult reports a chat message attempt.
type SendResult struct {
	Success    bool
	StatusCode int
	Body       string
	Error      string
}

// SendMessage posts a plain text message into an application chat.
func (c *Client) SendMessage(ctx context.Context, chatID, message string) SendResult {
	payload := newChatMessageDocument(chatID, message, time.Now().Format(time.RFC3339))

	query := url.Values{"include": {messageInclude}}
	status, body, err := c.doAPI(ctx, http.MethodPost, "/chatMessage/", query, payload)
	if err != nil {
		return SendResult{Error: err.Error()}
	}
	result := SendResult{StatusCode: status, Body: string(body)}
	if status != http.StatusOK && status != http.StatusCreated {
		result.Error = truncate(string(body), 500)
		return result
	}
	result.Success = true
	return result
}

// Chat is one conversation row from the chat list.
type Chat struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Vacancy     string `json:"vacancy"`
	LastMessage string `json:"last_message"`
	URL         string `json:"url"`
}

type companyAttrs struct {
	Name string `json:"name"`
}

type messageAttrs struct {
	Message string `json:"message"`
}

// GetChats lists the account's most recent conversations, joined with
// company, vacancy and last message includes.
func (c *Client) GetChats(ctx context.Context, limit int) ([]Chat, error) {
	query := url.Values{
		"page[limit]":  {strconv.Itoa(limit)},
		"page[offset]": {"0"},
		"include":      {"company,vacancy.mainInfo,lastMessage"},
	}
	status, body, err := c.doAPI(ctx, http.MethodGet, "/chat/", query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("chat list request returned status %d", status)
	}

	var doc inDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse chat list: %w", err)
	}

	idx := doc.index()
	rows := doc.dataMany()
	chats := make([]Chat, 0, len(rows))
	for _, row := range rows {
		chat := Chat{
			ID:  row.ID,
			URL: fmt.Sprintf("%s/chat/?chatId=%s", c.baseURL, row.ID),
		}
		if company, ok := idx.resolve(row, "company"); ok {
			var a companyAttrs
			decodeAttrs(company.Attributes, &a)
			chat.Company = a.Name
		}
		if vacancy, ok := idx.resolve(row, "vacancy"); ok {
			if info, ok := idx.resolve(vacancy, "mainInfo"); ok {
				var a mainInfoAttrs
				decodeAttrs(info.Attributes, &a)
				chat.Vacancy = a.Profession
			}
		}
		if last, ok := idx.resolve(row, "lastMessage"); ok {
			var a messageAttrs
			decodeAttrs(last.Attributes, &a)
			chat.LastMessage = a.Message
		}
		chats = append(chats, chat)
	}
	return chats, nil
}
