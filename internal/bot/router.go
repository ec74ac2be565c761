package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Proton-105/signalfi-bot/internal/bot/handlers"
	"github.com/Proton-105/signalfi-bot/internal/domain"
	"github.com/Proton-105/signalfi-bot/pkg/logger"
	"github.com/Proton-105/signalfi-bot/pkg/metrics"
)

type route struct {
	pattern string
	name    string
	handler handlers.Handler
}

// Router matches message text against registered command patterns in registration order.
// It holds no per-message state, so Route may run concurrently.
type Router struct {
	mu             sync.RWMutex
	routes         []route
	defaultHandler handlers.Handler
	middlewares    []handlers.Middleware
	log            *slog.Logger
}

// NewRouter builds a Router with empty registries.
func NewRouter(log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	return &Router{
		middlewares: make([]handlers.Middleware, 0),
		log:         log,
	}
}

// RegisterCommand registers a handler for texts containing cmd. Re-registering cmd replaces
// its handler but keeps its position.
func (r *Router) RegisterCommand(cmd string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.TrimPrefix(cmd, handlers.CommandPrefix)
	for i := range r.routes {
		if r.routes[i].pattern == cmd {
			r.routes[i].handler = h
			return
		}
	}
	r.routes = append(r.routes, route{pattern: cmd, name: name, handler: h})
}

// Use appends a middleware to the chain.
func (r *Router) Use(mw handlers.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw)
}

// SetDefault sets the handler for non-empty text that is not a command.
func (r *Router) SetDefault(h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultHandler = h
}

// Route directs msg to the first matching command handler, swallows unknown commands
// and sends other non-empty text to the default handler.
func (r *Router) Route(ctx context.Context, msg domain.InboundMessage, out handlers.Outbox) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.EnsureCorrelationID(ctx)

	text := msg.Text
	if text == "" {
		return nil
	}

	if rt, ok := r.match(text); ok {
		return r.executeHandler(ctx, rt.name, rt.handler, msg, out)
	}

	if strings.HasPrefix(text, handlers.CommandPrefix) {
		r.log.Debug("ignoring unrecognized command",
			slog.String("chat_id", msg.ChatID.String()),
			slog.String("correlation_id", logger.CorrelationIDFromContext(ctx)),
		)
		metrics.RecordCommand(RouteIgnored, "ok", 0)
		return nil
	}

	if handler := r.getDefaultHandler(); handler != nil {
		return r.executeHandler(ctx, RouteFallback, handler, msg, out)
	}

	return nil
}

func (r *Router) match(text string) (route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rt := range r.routes {
		if rt.handler != nil && strings.Contains(text, rt.pattern) {
			return rt, true
		}
	}

	return route{}, false
}

func (r *Router) executeHandler(ctx context.Context, name string, h handlers.Handler, msg domain.InboundMessage, out handlers.Outbox) error {
	wrapped := r.applyMiddlewares(h)
	if wrapped == nil {
		return nil
	}
	return wrapped(handlers.WithCommand(ctx, name), msg, out)
}

func (r *Router) getDefaultHandler() handlers.Handler {
	r.mu.RLock()
	handler := r.defaultHandler
	r.mu.RUnlock()
	return handler
}

// applyMiddlewares wraps the handler with all registered middlewares.
func (r *Router) applyMiddlewares(h handlers.Handler) handlers.Handler {
	if h == nil {
		return nil
	}

	middlewares := r.middlewaresSnapshot()
	wrapped := h
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}

	return wrapped
}

func (r *Router) middlewaresSnapshot() []handlers.Middleware {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.middlewares) == 0 {
		return nil
	}

	snapshot := make([]handlers.Middleware, len(r.middlewares))
	copy(snapshot, r.middlewares)
	return snapshot
}
