package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"ai-trip-planner/internal/app"
	"ai-trip-planner/internal/calendar"
	"ai-trip-planner/internal/config"
	"ai-trip-planner/internal/extract"
	"ai-trip-planner/internal/metrics"
	"ai-trip-planner/internal/trip"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	startButton    = "🚀 Начать"
	calendarButton = "📅 Сохранить в календарь"

	welcomeText      = "Нажмите кнопку ниже, чтобы начать 👇"
	instructionsText = "Привет! Введи: Город, даты (например, 15-16 июня), бюджет (число)"
	planningText     = "⏳ Планирую ваш отдых..."
	badRequestText   = "Не удалось распознать параметры поездки. Пример:\n• Москва, 15-16 июня, 5000"
	timeoutText      = "⌛ Планирование заняло слишком много времени. Попробуйте ещё раз."
	failureText      = "❌ Что-то пошло не так. Попробуйте позже."
	noSessionText    = "Сначала спланируйте поездку: отправьте город, даты и бюджет."
	nothingText      = "В плане нет мест, которые можно добавить в календарь."
	calendarFailText = "❌ Не удалось сохранить поездку в календарь."
)

// Sender is the part of the Telegram API the bot talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Planner plans trips and exports them.
type Planner interface {
	PlanTrip(ctx context.Context, text string) (*trip.Itinerary, error)
	CalendarEvents(it *trip.Itinerary) []calendar.Event
	ExportCalendar(ctx context.Context, sink calendar.EventSink, sinkName, userID string, it *trip.Itinerary) (int, error)
}

// Deps holds the bot's collaborators. MetricsStore, GoogleSink and Links are
// optional; without GoogleSink itineraries are exported as .ics files.
type Deps struct {
	Planner      Planner
	Sessions     *SessionStore
	MetricsStore *metrics.Store
	GoogleSink   calendar.EventSink
	Links        *calendar.LinkSigner
	Logger       *slog.Logger
}

// Bot routes Telegram updates to the trip planner.
type Bot struct {
	api          Sender
	cfg          *config.Config
	planner      Planner
	sessions     *SessionStore
	metricsStore *metrics.Store
	googleSink   calendar.EventSink
	links        *calendar.LinkSigner
	logger       *slog.Logger
	startedAt    time.Time
	inflight     sync.WaitGroup
}

// NewAPI authorizes against Telegram and points the webhook at
// cfg.TelegramWebhookURL.
func NewAPI(cfg *config.Config, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized on telegram", "account", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("webhook set", "description", resp.Description)
	return api, nil
}

// New creates a Bot around an authorized API.
func New(api Sender, cfg *config.Config, d Deps) *Bot {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Sessions == nil {
		d.Sessions = NewSessionStore(cfg.SessionTTL)
	}
	return &Bot{
		api:          api,
		cfg:          cfg,
		planner:      d.Planner,
		sessions:     d.Sessions,
		metricsStore: d.MetricsStore,
		googleSink:   d.GoogleSink,
		links:        d.Links,
		logger:       d.Logger,
		startedAt:    time.Now(),
	}
}

// Routes mounts the webhook and the calendar download endpoint.
func (b *Bot) Routes(r chi.Router) {
	r.Post("/webhook", b.handleWebhook)
	r.Get("/calendar/{token}", b.handleCalendarDownload)
}

// Wait blocks until every message being processed has been answered.
func (b *Bot) Wait() {
	b.inflight.Wait()
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		b.logger.Warn("error parsing update", "error", err)
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		b.HandleUpdate(context.Background(), update)
	}()
}

// HandleUpdate processes one update synchronously.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}
	if !b.cfg.UserAllowed(msg.From.ID) {
		b.logger.Warn("unauthorized access attempt", "user_id", msg.From.ID, "username", msg.From.UserName)
		return
	}

	switch {
	case msg.IsCommand() && msg.Command() == "start":
		b.handleStart(msg)
	case msg.IsCommand() && msg.Command() == "metrics":
		b.handleMetricsRequest(ctx, msg)
	case strings.TrimSpace(msg.Text) == startButton:
		b.reply(msg.Chat.ID, instructionsText)
	case strings.TrimSpace(msg.Text) == calendarButton:
		b.handleCalendarRequest(ctx, msg)
	case strings.TrimSpace(msg.Text) == "":
		return
	default:
		b.handlePlannerRequest(ctx, msg)
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(startButton)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(calendarButton)),
	)
	reply := tgbotapi.NewMessage(msg.Chat.ID, welcomeText)
	reply.ReplyMarkup = keyboard
	if _, err := b.api.Send(reply); err != nil {
		b.logger.Warn("failed to send keyboard", "chat_id", msg.Chat.ID, "error", err)
	}
}

func (b *Bot) handlePlannerRequest(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, planningText))
	if err != nil {
		b.logger.Warn("failed to send initial reply", "chat_id", chatID, "error", err)
		return
	}

	if b.cfg.PlanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.PlanTimeout)
		defer cancel()
	}

	b.logger.Info("planning request", "chat_id", chatID, "text", msg.Text)
	it, err := b.planner.PlanTrip(ctx, msg.Text)
	if err != nil {
		text := failureText
		switch {
		case errors.Is(err, extract.ErrExtractionFailed):
			text = badRequestText
		case errors.Is(err, context.DeadlineExceeded):
			text = timeoutText
		default:
			b.logger.Error("error planning trip", "chat_id", chatID, "error", err)
		}
		b.edit(chatID, sent.MessageID, text)
		return
	}
	b.sessions.Save(chatID, it)

	parts := app.SplitMessage(app.FormatItinerary(it), app.MaxMessageLength)
	if len(parts) == 0 {
		return
	}
	b.edit(chatID, sent.MessageID, parts[0])
	for _, part := range parts[1:] {
		b.reply(chatID, part)
	}
}

func (b *Bot) handleCalendarRequest(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	it, ok := b.sessions.Get(chatID)
	if !ok {
		b.reply(chatID, noSessionText)
		return
	}
	userID := strconv.FormatInt(msg.From.ID, 10)

	if b.googleSink != nil {
		created, err := b.planner.ExportCalendar(ctx, b.googleSink, "google", userID, it)
		b.reply(chatID, exportSummary(created, err))
		return
	}

	ics := calendar.NewICSWriter()
	created, err := b.planner.ExportCalendar(ctx, ics, "ics", userID, it)
	if err != nil {
		b.reply(chatID, exportSummary(created, err))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "trip.ics", Bytes: ics.Bytes()})
	doc.Caption = fmt.Sprintf("📆 Событий: %d. Откройте файл, чтобы добавить поездку в календарь.", created)
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Warn("failed to send calendar file", "chat_id", chatID, "error", err)
	}

	if b.links == nil {
		return
	}
	link, err := b.links.URL(chatID, time.Now())
	if err != nil {
		b.logger.Warn("failed to sign calendar link", "chat_id", chatID, "error", err)
		return
	}
	b.reply(chatID, "🔗 Ссылка на календарь (действует ограниченное время):\n"+link)
}

func exportSummary(created int, err error) string {
	var exportErr *calendar.ExportError
	switch {
	case err == nil:
		return fmt.Sprintf("📅 Поездка добавлена в ваш Google Календарь! Событий: %d", created)
	case errors.Is(err, calendar.ErrNothingToExport):
		return nothingText
	case errors.As(err, &exportErr) && exportErr.Created > 0:
		return fmt.Sprintf("⚠️ Добавлено %d из %d событий, остальные сохранить не удалось.", exportErr.Created, exportErr.Total)
	default:
		return calendarFailText
	}
}

func (b *Bot) handleCalendarDownload(w http.ResponseWriter, r *http.Request) {
	if b.links == nil {
		http.NotFound(w, r)
		return
	}
	chatID, err := b.links.Verify(chi.URLParam(r, "token"))
	if err != nil {
		http.Error(w, "link is invalid or expired", http.StatusForbidden)
		return
	}
	it, ok := b.sessions.Get(chatID)
	if !ok {
		http.Error(w, "no trip for this link", http.StatusNotFound)
		return
	}
	data, err := calendar.RenderICS(r.Context(), strconv.FormatInt(chatID, 10), b.planner.CalendarEvents(it))
	if err != nil {
		if errors.Is(err, calendar.ErrNothingToExport) {
			http.Error(w, "trip has no events", http.StatusNotFound)
			return
		}
		b.logger.Error("failed to render calendar", "chat_id", chatID, "error", err)
		http.Error(w, "failed to render calendar", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trip.ics"`)
	_, _ = w.Write(data)
}

func (b *Bot) handleMetricsRequest(ctx context.Context, msg *tgbotapi.Message) {
	if b.cfg.AdminTelegramID == 0 || msg.From.ID != b.cfg.AdminTelegramID {
		b.reply(msg.Chat.ID, "⛔ Access Denied: Admin only.")
		return
	}

	var usage []metrics.DailyUsage
	if b.metricsStore != nil {
		var err error
		if usage, err = b.metricsStore.GetDailyUsage(ctx, 7); err != nil {
			b.logger.Error("error fetching metrics", "error", err)
			b.reply(msg.Chat.ID, "❌ Error fetching metrics.")
			return
		}
	}
	health := metrics.GetSysHealth(filepath.Dir(b.cfg.DatabasePath), b.startedAt)

	reply := tgbotapi.NewMessage(msg.Chat.ID, formatMetricsReport(usage, health, b.sessions.Len()))
	reply.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(reply); err != nil {
		b.logger.Warn("failed to send metrics report", "error", err)
	}
}

func formatMetricsReport(usage []metrics.DailyUsage, health metrics.SysHealth, sessions int) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", health.Uptime))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataSize))
	sb.WriteString(fmt.Sprintf("• Active sessions: %d\n", sessions))
	return sb.String()
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Warn("failed to send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		b.logger.Warn("failed to edit message", "chat_id", chatID, "error", err)
	}
}
