package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/signalfi-bot/internal/domain"
	"github.com/Proton-105/signalfi-bot/pkg/config"
)

const modeWebhook = "webhook"

// Sender is the subset of telebot.Bot used to deliver messages.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Outbox delivers outbound messages through the Telegram API as plain text.
type Outbox struct {
	api Sender
}

// NewOutbox wraps api.
func NewOutbox(api Sender) *Outbox {
	return &Outbox{api: api}
}

// Send blocks until Telegram accepts or rejects the message, keeping per-chat send order.
func (o *Outbox) Send(ctx context.Context, msg domain.OutboundMessage) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if o == nil || o.api == nil {
		return fmt.Errorf("send to %s: telegram client not configured", msg.ChatID)
	}

	if _, err := o.api.Send(msg.ChatID, msg.Text); err != nil {
		return fmt.Errorf("send to %s: %w", msg.ChatID, err)
	}
	return nil
}

// Bot wraps telebot.Bot and feeds text updates to the Router.
type Bot struct {
	telebot *telebot.Bot
	router  *Router
	outbox  *Outbox
	log     *slog.Logger

	// telebot.Bot.Stop blocks until the Start loop receives it, so Stop only
	// calls through while that loop is running.
	mu      sync.Mutex
	running bool
	stopped bool
}

// NewTelebot builds the Telegram client configured for polling or webhook delivery.
func NewTelebot(cfg config.BotConfig, log *slog.Logger) (*telebot.Bot, error) {
	if log == nil {
		log = slog.Default()
	}

	settings := telebot.Settings{
		Token: cfg.Token,
		OnError: func(err error, c telebot.Context) {
			attrs := []any{slog.Any("error", err)}
			if c != nil && c.Chat() != nil {
				attrs = append(attrs, slog.Int64("chat_id", c.Chat().ID))
			}
			log.Error("telegram update failed", attrs...)
		},
	}

	if cfg.Mode == modeWebhook {
		settings.Poller = &telebot.Webhook{
			Listen:   cfg.WebhookListen,
			Endpoint: &telebot.WebhookEndpoint{PublicURL: cfg.WebhookURL},
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Timeout,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	return tb, nil
}

// New wires router to text updates received by tb.
func New(tb *telebot.Bot, router *Router, log *slog.Logger) *Bot {
	if log == nil {
		log = slog.Default()
	}

	b := &Bot{
		telebot: tb,
		router:  router,
		outbox:  NewOutbox(tb),
		log:     log,
	}

	b.registerTelebotHandlers()

	return b
}

// Outbox returns the message sender shared by the router and the notifier.
func (b *Bot) Outbox() *Outbox {
	return b.outbox
}

// PublishCommands sets the command menu shown by Telegram clients.
func (b *Bot) PublishCommands() error {
	if b.telebot == nil {
		return nil
	}
	if err := b.telebot.SetCommands(menuCommands); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}
	return nil
}

// Start runs the telegram bot event loop. It blocks until Stop is called and returns
// immediately if Stop already ran.
func (b *Bot) Start() {
	if b.telebot == nil {
		return
	}

	b.mu.Lock()
	if b.stopped || b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
	}()

	username := ""
	if b.telebot.Me != nil {
		username = b.telebot.Me.Username
	}
	b.log.Info("telegram bot started", slog.String("username", username))
	b.telebot.Start()
}

// Stop gracefully stops the telegram bot. It is safe to call before Start.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	b.mu.Lock()
	b.stopped = true
	running := b.running
	b.mu.Unlock()

	if !running {
		return
	}

	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

func (b *Bot) registerTelebotHandlers() {
	if b.telebot == nil || b.router == nil {
		return
	}

	b.telebot.Handle(telebot.OnText, b.handleText)
}

func (b *Bot) handleText(c telebot.Context) error {
	msg, ok := InboundFromContext(c)
	if !ok {
		return nil
	}
	return b.router.Route(context.Background(), msg, b.outbox)
}

// InboundFromContext normalizes a telebot update. It reports false when the update has no chat.
func InboundFromContext(c telebot.Context) (domain.InboundMessage, bool) {
	if c == nil || c.Chat() == nil {
		return domain.InboundMessage{}, false
	}

	msg := domain.InboundMessage{
		ChatID: domain.ChatIDFromInt(c.Chat().ID),
		Text:   c.Text(),
	}
	if sender := c.Sender(); sender != nil && sender.ID != 0 {
		msg.SenderID = strconv.FormatInt(sender.ID, 10)
	}

	return msg, true
}
