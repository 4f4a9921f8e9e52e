package reporter

import (
	"fmt"
	"html"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-superjob-automation/internal/autoapply"
	"go-superjob-automation/internal/config"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/links
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendApplication(record autoapply.ApplicationRecord) error {
	return t.SendMessage(formatApplication(record))
}

func (t *TelegramReporter) SendSummary(stats *autoapply.RunStats) error {
	return t.SendMessage(formatSummary(stats))
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>Auto-apply error</b>:\n%s", html.EscapeString(errReq.Error())))
}

// SendRunReport sends one message per successful application plus a totals
// summary, paced a second apart to stay under the bot API rate limit.
func (t *TelegramReporter) SendRunReport(stats *autoapply.RunStats) error {
	for _, record := range stats.Results {
		if !record.Success {
			continue
		}
		if err := t.SendApplication(record); err != nil {
			return err
		}
		time.Sleep(time.Second)
	}
	return t.SendSummary(stats)
}

func formatApplication(record autoapply.ApplicationRecord) string {
	text := fmt.Sprintf(
		"📨 <b>%s</b>\n🏢 %s\n🔗 <a href=\"%s\">Vacancy</a>",
		html.EscapeString(record.Title),
		html.EscapeString(record.Company),
		record.URL,
	)
	if record.ChatURL != "" {
		text += fmt.Sprintf("\n💬 <a href=\"%s\">Chat</a>", record.ChatURL)
	}
	if record.CoverLetterSent {
		text += "\n✉️ Cover letter sent"
	}
	return text
}

func formatSummary(stats *autoapply.RunStats) string {
	return fmt.Sprintf(
		"📊 <b>Run finished</b>\n"+
			"🔎 Found: %d\n"+
			"✅ Applied: %d\n"+
			"❌ Failed: %d\n"+
			"⏭ Skipped: %d\n"+
			"🚫 Excluded: %d",
		stats.TotalFound,
		stats.Applied,
		stats.Failed,
		stats.Skipped,
		stats.Excluded,
	)
}
