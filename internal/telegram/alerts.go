package telegram

import (
	"fmt"
	"log/slog"

	"ai-trip-planner/internal/shared"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefaultBloatThreshold is the prompt size above which the admin is warned.
const DefaultBloatThreshold = 4000

// AdminAlerter warns the admin chat about oversized LLM prompts.
type AdminAlerter struct {
	api       Sender
	adminID   int64
	threshold int
	logger    *slog.Logger
}

func NewAdminAlerter(api Sender, adminID int64, threshold int, logger *slog.Logger) *AdminAlerter {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminAlerter{api: api, adminID: adminID, threshold: threshold, logger: logger}
}

// Observe matches app.MetaObserver.
func (a *AdminAlerter) Observe(runID string, meta shared.AgentMeta) {
	if a == nil || a.adminID == 0 || !meta.Exceeds(a.threshold) {
		return
	}
	text := fmt.Sprintf("⚠️ *Context Bloat Alert*\nAgent: %s\nModel: %s\nPrompt Tokens: %d\nRun: `%s`",
		meta.AgentName, meta.Usage.Model, meta.Usage.PromptTokens, runID)
	msg := tgbotapi.NewMessage(a.adminID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := a.api.Send(msg); err != nil {
		a.logger.Warn("failed to send admin alert", "error", err)
	}
}
