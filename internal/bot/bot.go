// Package bot serves the Telegram chat interface: a menu on /start, an on-demand rates
// check and a spreadsheet with recent history.
package bot

import (
	"context"
	"time"

	"bankrates/internal/adapters"
	"bankrates/internal/domain"
	"bankrates/internal/export"
	"bankrates/internal/rate"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	defaultHandlerTimeout = 60 * time.Second
	defaultStatsDays      = 30
	defaultTrendDays      = 3
	defaultPollTimeout    = 30
)

// Sender is the part of the Telegram API the handlers talk to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Client is a Sender that can also long-poll for updates. *tgbotapi.BotAPI implements it.
type Client interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Service interface {
	Run(ctx context.Context, trigger rate.Trigger) (domain.Report, error)
	History(ctx context.Context, window time.Duration) ([]domain.RateObservation, error)
}

type Options struct {
	StatsDays          int
	TrendDays          int
	HandlerTimeout     time.Duration
	PollTimeoutSeconds int
}

type Bot struct {
	client  Client
	service Service
	cache   adapters.ExportCache
	opts    Options
	now     func() time.Time
}

// Serve polls for updates and handles them one at a time until ctx is canceled or the
// update channel is closed.
func (b *Bot) Serve(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.opts.PollTimeoutSeconds
	updates := b.client.GetUpdatesChan(u)
	logrus.Info("✅ Bot is polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.client.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.Handle(ctx, update)
		}
	}
}

// Handle processes a single update within the per-update timeout.
func (b *Bot) Handle(ctx context.Context, update tgbotapi.Update) {
	hctx, cancel := context.WithTimeout(ctx, b.opts.HandlerTimeout)
	defer cancel()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(hctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	if msg.IsCommand() && msg.Command() == "start" {
		reply := tgbotapi.NewMessage(msg.Chat.ID, welcomeText)
		reply.ReplyMarkup = keyboard(b.opts.StatsDays)
		b.send(reply)
		return
	}
	b.send(tgbotapi.NewMessage(msg.Chat.ID, helpText))
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.client.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		logrus.WithError(err).WithField("callback", cq.Data).Warn("Failed to answer callback")
	}

	chatID, ok := callbackChat(cq)
	if !ok {
		logrus.WithField("callback", cq.Data).Warn("Callback without chat, ignoring")
		return
	}

	switch cq.Data {
	case CallbackCheck:
		b.checkRates(ctx, chatID)
	case CallbackStats:
		b.sendStats(ctx, chatID)
	default:
		b.send(tgbotapi.NewMessage(chatID, helpText))
	}
}

func (b *Bot) checkRates(ctx context.Context, chatID int64) {
	report, err := b.service.Run(ctx, rate.TriggerCommand)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("On-demand rates check failed")
		b.send(tgbotapi.NewMessage(chatID, checkFailedText))
		return
	}
	if !report.Ready() {
		b.send(tgbotapi.NewMessage(chatID, noDataText))
		return
	}
	b.send(tgbotapi.NewMessage(chatID, formatReport(report, b.opts.TrendDays)))
}

func (b *Bot) sendStats(ctx context.Context, chatID int64) {
	window := rate.Days(b.opts.StatsDays)

	data, hit := b.cachedExport(window)
	if !hit {
		history, err := b.service.History(ctx, window)
		if err != nil {
			logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to load rates history")
			b.send(tgbotapi.NewMessage(chatID, statsFailedText))
			return
		}
		if len(history) == 0 {
			b.send(tgbotapi.NewMessage(chatID, noStatsText(b.opts.StatsDays)))
			return
		}
		data, err = export.Workbook(history)
		if err != nil {
			logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to render rates workbook")
			b.send(tgbotapi.NewMessage(chatID, statsFailedText))
			return
		}
		if b.cache != nil {
			b.cache.Set(window, data)
		}
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: export.FileName(b.now()), Bytes: data})
	b.send(doc)
}

func (b *Bot) cachedExport(window time.Duration) ([]byte, bool) {
	if b.cache == nil {
		return nil, false
	}
	return b.cache.Get(window)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.client.Send(c); err != nil {
		logrus.WithError(err).Error("Failed to send bot reply")
	}
}

func callbackChat(cq *tgbotapi.CallbackQuery) (int64, bool) {
	if cq.Message != nil && cq.Message.Chat != nil {
		return cq.Message.Chat.ID, true
	}
	if cq.From != nil {
		return cq.From.ID, true
	}
	return 0, false
}

func New(client Client, service Service, cache adapters.ExportCache, opts Options) *Bot {
	if opts.StatsDays <= 0 {
		opts.StatsDays = defaultStatsDays
	}
	if opts.TrendDays <= 0 {
		opts.TrendDays = defaultTrendDays
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = defaultHandlerTimeout
	}
	if opts.PollTimeoutSeconds <= 0 {
		opts.PollTimeoutSeconds = defaultPollTimeout
	}
	return &Bot{client: client, service: service, cache: cache, opts: opts, now: time.Now}
}
